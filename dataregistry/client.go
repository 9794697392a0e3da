package dataregistry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/padolabs/pado-go-sdk/interfaces"
)

// ErrNoSignerFactory is returned by SubmitData when no signer factory was
// configured.
var ErrNoSignerFactory = errors.New("no signer factory configured")

// DefaultDataStatus is the listing filter applied when none is given.
const DefaultDataStatus = "Valid"

// Config configures a data registry client.
type Config struct {
	// ProcessID is the data registry process identifier.
	ProcessID string

	// Messenger performs the process exchanges.
	Messenger interfaces.ProcessMessenger

	// Discovery selects compute node quorums for encryption policies.
	Discovery interfaces.NodeDiscovery

	// Encryptor encrypts payloads under a threshold policy.
	Encryptor interfaces.Encryptor

	// ArweaveBackend uploads ciphertext as native Arweave transactions.
	// This is the default upload route.
	ArweaveBackend interfaces.UploadBackend

	// ArseedingBackend uploads ciphertext through an Arseeding gateway.
	ArseedingBackend interfaces.UploadBackend

	// SignerFor derives a data item signer from a wallet credential.
	SignerFor interfaces.SignerFactory

	Log *slog.Logger
}

// Client is a façade over the data registry process. It is stateless apart
// from the configuration passed at construction.
type Client struct {
	cfg *Config
	log *slog.Logger
}

// NewClient creates a data registry client for the configured process.
func NewClient(cfg *Config) *Client {
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}

	return &Client{cfg: cfg, log: log}
}

// PrepareRegistry selects a quorum of schema.N nodes and folds it into a
// threshold policy plus the ordered public key list of the quorum. Node
// order as returned by discovery is preserved positionally; duplicates are
// not removed.
func (c *Client) PrepareRegistry(ctx context.Context, schema interfaces.EncryptionSchema) (interfaces.PolicyInfo, []string, error) {
	nodes, err := c.cfg.Discovery.SelectNodes(ctx, schema.N)
	if err != nil {
		return interfaces.PolicyInfo{}, nil, err
	}

	policy, publicKeys := formatPolicy(schema, nodes)
	return policy, publicKeys, nil
}

// formatPolicy zips a requested schema with the concrete quorum.
func formatPolicy(schema interfaces.EncryptionSchema, nodes []interfaces.NodeInfo) (interfaces.PolicyInfo, []string) {
	policy := interfaces.PolicyInfo{
		T:       schema.T,
		N:       schema.N,
		Indices: make([]int, 0, len(nodes)),
		Names:   make([]string, 0, len(nodes)),
	}

	publicKeys := make([]string, 0, len(nodes))
	for _, node := range nodes {
		policy.Indices = append(policy.Indices, node.Index)
		policy.Names = append(policy.Names, node.Name)
		publicKeys = append(publicKeys, node.PublicKey)
	}

	return policy, publicKeys
}

// EncryptData encrypts data under the policy, wrapping one key share per
// public key. Rejects an empty payload with interfaces.ErrEmptyPayload;
// encryption errors propagate unwrapped.
func (c *Client) EncryptData(data []byte, policy interfaces.PolicyInfo, publicKeys []string) (*interfaces.EncryptedPayload, error) {
	if len(data) == 0 {
		return nil, interfaces.ErrEmptyPayload
	}

	encrypted, err := c.cfg.Encryptor.Encrypt(publicKeys, data, policy)
	if err != nil {
		return nil, err
	}

	encrypted.Policy = policy
	return encrypted, nil
}

// Register submits a data registration to the registry process. All record
// fields arrive pre-serialized; the payload carries the recovery metadata.
// Returns the registry's response, the assigned data identifier.
func (c *Client) Register(ctx context.Context, dataTag, price, extraData string, computeNodes []string, signer interfaces.DataItemSigner) ([]byte, error) {
	computeNodesJSON, err := json.Marshal(computeNodes)
	if err != nil {
		return nil, fmt.Errorf("could not encode compute nodes: %w", err)
	}

	return c.cfg.Messenger.Send(ctx, interfaces.ProcessMessage{
		ProcessID: c.cfg.ProcessID,
		Action:    "Register",
		Attributes: []interfaces.Tag{
			{Name: "DataTag", Value: dataTag},
			{Name: "Price", Value: price},
			{Name: "ComputeNodes", Value: string(computeNodesJSON)},
		},
		Payload: []byte(extraData),
		Signer:  signer,
	})
}

// AllData lists registered data records with the given status filter.
// An empty status defaults to "Valid".
func (c *Client) AllData(ctx context.Context, status string) ([]byte, error) {
	if status == "" {
		status = DefaultDataStatus
	}

	return c.cfg.Messenger.DryRun(ctx, interfaces.ProcessMessage{
		ProcessID: c.cfg.ProcessID,
		Action:    "AllData",
		Attributes: []interfaces.Tag{
			{Name: "DataStatus", Value: status},
		},
	})
}

// GetDataByID fetches a single data record by its identifier.
func (c *Client) GetDataByID(ctx context.Context, dataID string) ([]byte, error) {
	return c.cfg.Messenger.DryRun(ctx, interfaces.ProcessMessage{
		ProcessID: c.cfg.ProcessID,
		Action:    "GetDataById",
		Attributes: []interfaces.Tag{
			{Name: "DataId", Value: dataID},
		},
	})
}

// SubmitData runs the full write path: upload the ciphertext to the chosen
// storage ledger, embed the resulting transaction ID in the recovery
// metadata, derive a signer from the wallet, and register the record.
// Returns the data identifier assigned by the registry, unchanged.
func (c *Client) SubmitData(ctx context.Context, encrypted *interfaces.EncryptedPayload, dataTag interfaces.DataTag, priceInfo interfaces.PriceInfo, wallet []byte, uploadParam *interfaces.UploadParam) (string, error) {
	if c.cfg.SignerFor == nil {
		return "", ErrNoSignerFactory
	}

	txID, storageType, err := c.uploadCiphertext(ctx, encrypted.Ciphertext, wallet, uploadParam)
	if err != nil {
		return "", err
	}

	dataTag.StorageType = storageType

	extraData := interfaces.ExtraData{
		Policy:          encrypted.Policy,
		Nonce:           encrypted.Nonce,
		TransactionID:   txID,
		EncryptedShares: encrypted.EncryptedShares,
	}

	dataTagJSON, err := json.Marshal(dataTag)
	if err != nil {
		return "", fmt.Errorf("could not encode data tag: %w", err)
	}
	priceJSON, err := json.Marshal(priceInfo)
	if err != nil {
		return "", fmt.Errorf("could not encode price info: %w", err)
	}
	extraJSON, err := json.Marshal(extraData)
	if err != nil {
		return "", fmt.Errorf("could not encode extra data: %w", err)
	}

	signer, err := c.cfg.SignerFor(wallet)
	if err != nil {
		return "", err
	}

	dataID, err := c.Register(ctx, string(dataTagJSON), string(priceJSON), string(extraJSON), encrypted.Policy.Names, signer)
	if err != nil {
		return "", err
	}

	c.log.Info("Data registered",
		slog.String("data_id", string(dataID)),
		slog.String("transaction_id", txID),
		slog.String("storage_type", string(storageType)))

	return string(dataID), nil
}

// uploadCiphertext routes the ciphertext to the requested storage ledger.
// A nil upload param or an unset storage type defaults to Arweave.
func (c *Client) uploadCiphertext(ctx context.Context, ciphertext []byte, wallet []byte, uploadParam *interfaces.UploadParam) (string, interfaces.StorageType, error) {
	if uploadParam != nil && uploadParam.StorageType == interfaces.StorageTypeArseeding {
		if c.cfg.ArseedingBackend == nil {
			return "", "", errors.New("no arseeding backend configured")
		}

		txID, err := c.cfg.ArseedingBackend.Upload(ctx, ciphertext, wallet, uploadParam.Symbol)
		if err != nil {
			return "", "", err
		}
		return txID, interfaces.StorageTypeArseeding, nil
	}

	if c.cfg.ArweaveBackend == nil {
		return "", "", errors.New("no arweave backend configured")
	}

	txID, err := c.cfg.ArweaveBackend.Upload(ctx, ciphertext, wallet, "")
	if err != nil {
		return "", "", err
	}
	return txID, interfaces.StorageTypeArweave, nil
}
