package devnet

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/padolabs/pado-go-sdk/interfaces"
)

// DataRecord is one registered dataset in the simulated data registry.
type DataRecord struct {
	ID           string   `json:"id"`
	DataTag      string   `json:"dataTag"`
	Price        string   `json:"price"`
	ComputeNodes []string `json:"computeNodes"`
	Data         string   `json:"data"`
	Status       string   `json:"status"`
	From         string   `json:"from,omitempty"`
}

// State holds the in-memory registries behind the simulated processes.
// Handlers serialize on a single mutex, mirroring the per-process
// serializability the real processes guarantee.
type State struct {
	mu sync.Mutex

	nodes     []interfaces.NodeInfo
	nodeIndex map[string]int // name -> position in nodes

	data      map[string]*DataRecord
	dataOrder []string
}

// NewState creates empty registry state.
func NewState() *State {
	return &State{
		nodeIndex: make(map[string]int),
		data:      make(map[string]*DataRecord),
	}
}

// RegisterNode adds a node under a unique name. Registering an existing
// name fails; Update is the rotation path.
func (s *State) RegisterNode(name, publicKey, desc string) (interfaces.NodeInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return interfaces.NodeInfo{}, fmt.Errorf("node name is required")
	}
	if _, exists := s.nodeIndex[name]; exists {
		return interfaces.NodeInfo{}, fmt.Errorf("node %q already registered", name)
	}

	node := interfaces.NodeInfo{
		Index:     len(s.nodes) + 1,
		Name:      name,
		PublicKey: publicKey,
		Desc:      desc,
	}
	s.nodeIndex[name] = len(s.nodes)
	s.nodes = append(s.nodes, node)

	return node, nil
}

// UpdateNode replaces the public key and description of a registered node.
func (s *State) UpdateNode(name, publicKey, desc string) (interfaces.NodeInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, exists := s.nodeIndex[name]
	if !exists {
		return interfaces.NodeInfo{}, fmt.Errorf("node %q not registered", name)
	}

	s.nodes[pos].PublicKey = publicKey
	s.nodes[pos].Desc = desc

	return s.nodes[pos], nil
}

// Nodes returns the node listing as JSON, in registration order.
func (s *State) Nodes() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nodes == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.nodes)
}

// RegisterData stores a data record and returns its assigned identifier.
func (s *State) RegisterData(dataTag, price string, computeNodes []string, extraData, from string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := &DataRecord{
		ID:           uuid.NewString(),
		DataTag:      dataTag,
		Price:        price,
		ComputeNodes: computeNodes,
		Data:         extraData,
		Status:       "Valid",
		From:         from,
	}
	s.data[record.ID] = record
	s.dataOrder = append(s.dataOrder, record.ID)

	return record.ID
}

// AllData returns records matching the status filter, in registration
// order. The filter "All" matches every record.
func (s *State) AllData(status string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]*DataRecord, 0, len(s.dataOrder))
	for _, id := range s.dataOrder {
		record := s.data[id]
		if status == "All" || record.Status == status {
			records = append(records, record)
		}
	}

	return json.Marshal(records)
}

// DataByID returns a single record as JSON.
func (s *State) DataByID(id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.data[id]
	if !exists {
		return nil, fmt.Errorf("data %q not registered", id)
	}
	return json.Marshal(record)
}
