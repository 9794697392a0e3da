package devnet

import (
	"encoding/json"
	"fmt"

	"github.com/padolabs/pado-go-sdk/interfaces"
)

// inboundMessage is a message after transport decoding, regardless of
// whether it arrived as a signed data item or a dry-run envelope.
type inboundMessage struct {
	Target string
	Owner  string
	Tags   []interfaces.Tag
	Data   []byte
}

func (m inboundMessage) tag(name string) string {
	for _, tag := range m.Tags {
		if tag.Name == name {
			return tag.Value
		}
	}
	return ""
}

// dispatch routes a committed message to the process it targets and returns
// the response payload for the result's first message.
func (srv *Server) dispatch(msg inboundMessage) ([]byte, error) {
	switch msg.Target {
	case srv.cfg.NodeRegistryProcessID:
		return srv.dispatchNodeRegistry(msg)
	case srv.cfg.DataRegistryProcessID:
		return srv.dispatchDataRegistry(msg)
	default:
		return nil, fmt.Errorf("unknown process %q", msg.Target)
	}
}

func (srv *Server) dispatchNodeRegistry(msg inboundMessage) ([]byte, error) {
	switch action := msg.tag("Action"); action {
	case "Register":
		node, err := srv.state.RegisterNode(msg.tag("Name"), string(msg.Data), msg.tag("Desc"))
		if err != nil {
			return nil, err
		}
		return json.Marshal(node)
	case "Update":
		node, err := srv.state.UpdateNode(msg.tag("Name"), string(msg.Data), msg.tag("Desc"))
		if err != nil {
			return nil, err
		}
		return json.Marshal(node)
	case "Nodes":
		return srv.state.Nodes()
	default:
		return nil, fmt.Errorf("node registry: unknown action %q", action)
	}
}

func (srv *Server) dispatchDataRegistry(msg inboundMessage) ([]byte, error) {
	switch action := msg.tag("Action"); action {
	case "Register":
		var computeNodes []string
		if raw := msg.tag("ComputeNodes"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &computeNodes); err != nil {
				return nil, fmt.Errorf("invalid ComputeNodes tag: %v", err)
			}
		}
		id := srv.state.RegisterData(msg.tag("DataTag"), msg.tag("Price"), computeNodes, string(msg.Data), msg.Owner)
		return []byte(id), nil
	case "AllData":
		status := msg.tag("DataStatus")
		if status == "" {
			status = "Valid"
		}
		return srv.state.AllData(status)
	case "GetDataById":
		return srv.state.DataByID(msg.tag("DataId"))
	default:
		return nil, fmt.Errorf("data registry: unknown action %q", action)
	}
}
