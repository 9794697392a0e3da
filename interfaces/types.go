package interfaces

import (
	"context"
	"errors"
)

// ErrEmptyPayload is returned when an empty plaintext is passed to
// EncryptData. Encrypting a zero-length payload is always a caller bug.
var ErrEmptyPayload = errors.New("payload must not be empty")

// NodeInfo is one compute node's identity within an encryption quorum.
type NodeInfo struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	PublicKey string `json:"publicKey"`
	Desc      string `json:"desc,omitempty"`
}

// EncryptionSchema requests a threshold scheme: any T of N nodes can
// recover the data key.
type EncryptionSchema struct {
	T int `json:"t"`
	N int `json:"n"`
}

// PolicyInfo is a concrete threshold policy: the schema zipped with the
// quorum actually chosen. Indices and Names are positionally aligned with
// the public key list the policy was built from; discovery order is
// preserved and duplicates are not removed.
type PolicyInfo struct {
	T       int      `json:"t"`
	N       int      `json:"n"`
	Indices []int    `json:"indices"`
	Names   []string `json:"names"`
}

// EncryptedPayload is the output of an Encryptor with the governing policy
// attached.
type EncryptedPayload struct {
	Ciphertext      []byte     `json:"ciphertext"`
	Nonce           string     `json:"nonce"`
	EncryptedShares []string   `json:"encryptedShares"`
	Policy          PolicyInfo `json:"policy"`
}

// StorageType identifies the ledger a ciphertext was uploaded to.
type StorageType string

const (
	// StorageTypeArweave stores ciphertext as a native Arweave transaction.
	StorageTypeArweave StorageType = "arweave"

	// StorageTypeArseeding stores ciphertext as an ANS-104 bundle item
	// through an Arseeding gateway.
	StorageTypeArseeding StorageType = "arseeding"
)

// DataTag is the provider-supplied descriptive metadata for a dataset.
// StorageType is filled in by SubmitData according to the upload route.
type DataTag struct {
	Name        string      `json:"name"`
	Desc        string      `json:"desc,omitempty"`
	StorageType StorageType `json:"storageType,omitempty"`
}

// PriceInfo is the asking price for one use of a dataset.
type PriceInfo struct {
	Amount string `json:"amount"`
	Symbol string `json:"symbol,omitempty"`
}

// ExtraData is the recovery metadata registered alongside a dataset
// pointer. TransactionID references the uploaded ciphertext; registration
// must never reference un-uploaded data.
type ExtraData struct {
	Policy          PolicyInfo `json:"policy"`
	Nonce           string     `json:"nonce"`
	TransactionID   string     `json:"transactionId"`
	EncryptedShares []string   `json:"encryptedShares"`
}

// UploadParam selects the storage route for SubmitData. A nil or
// zero-valued param routes to Arweave.
type UploadParam struct {
	StorageType StorageType `json:"storageType"`

	// Symbol is the payment token symbol for Arseeding bundle uploads.
	Symbol string `json:"symbol,omitempty"`
}

// NodeDiscovery selects a quorum of compute nodes for an encryption policy.
type NodeDiscovery interface {
	// SelectNodes returns n nodes in a stable order. The SDK folds them
	// into a policy positionally, without reordering or deduplication.
	SelectNodes(ctx context.Context, n int) ([]NodeInfo, error)
}

// Encryptor encrypts a payload under a threshold policy, wrapping one key
// share per public key. Errors propagate to SDK callers unwrapped.
type Encryptor interface {
	Encrypt(publicKeys []string, data []byte, policy PolicyInfo) (*EncryptedPayload, error)
}

// SignerFactory constructs a DataItemSigner from an opaque wallet
// credential (an Arweave JWK, for the default implementation).
type SignerFactory func(wallet []byte) (DataItemSigner, error)
