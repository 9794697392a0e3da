package interfaces

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

var (
	// ErrContentNotFound is returned when a transaction ID cannot be
	// resolved by the storage backend.
	ErrContentNotFound = errors.New("content not found")

	// ErrBackendUnavailable is returned when a storage backend is not
	// accessible. This could be due to network issues, authentication
	// failures, or service outages.
	ErrBackendUnavailable = errors.New("storage backend unavailable")

	// ErrInvalidLocationURI is returned when a storage location URI is
	// malformed or names an unsupported scheme.
	ErrInvalidLocationURI = errors.New("invalid storage location URI")
)

// StorageBackendLocation represents a parsed storage backend URI.
type StorageBackendLocation struct {
	Raw    string     // Original URI
	Scheme string     // Protocol
	Host   string     // Hostname
	Path   string     // Resource path
	Query  url.Values // Query parameters
}

// NewStorageBackendLocation parses and validates a storage backend URI.
// The format is [scheme]://host[:port][/path][?params].
func NewStorageBackendLocation(uri string) (StorageBackendLocation, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return StorageBackendLocation{}, fmt.Errorf("%w: %v", ErrInvalidLocationURI, err)
	}

	switch parsed.Scheme {
	case "arweave", "arseeding", "ipfs", "s3", "file":
	default:
		return StorageBackendLocation{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidLocationURI, parsed.Scheme)
	}

	return StorageBackendLocation{
		Raw:    uri,
		Scheme: parsed.Scheme,
		Host:   parsed.Host,
		Path:   parsed.Path,
		Query:  parsed.Query(),
	}, nil
}

// String returns the original URI string.
func (loc StorageBackendLocation) String() string {
	return loc.Raw
}

// GetParam returns a query parameter value.
func (loc StorageBackendLocation) GetParam(name string) string {
	return loc.Query.Get(name)
}

// UploadBackend is durable ciphertext storage addressed by transaction ID.
type UploadBackend interface {
	// Upload stores data and returns the transaction ID referencing it.
	// The wallet credential pays for storage where the ledger requires
	// payment; backends without payment semantics ignore it. The tag is
	// an optional payment token symbol.
	Upload(ctx context.Context, data []byte, wallet []byte, tag string) (string, error)

	// Fetch retrieves previously uploaded data by transaction ID.
	Fetch(ctx context.Context, txID string) ([]byte, error)

	// Available checks if the backend is accessible.
	Available(ctx context.Context) bool

	// Name returns an identifier for logging.
	Name() string

	// LocationURI returns the URI identifying this backend.
	LocationURI() string
}

// UploadBackendFactory creates upload backends from location URIs.
type UploadBackendFactory interface {
	// UploadBackendFor creates a backend from a URI.
	// Supports arweave://, arseeding://, ipfs://, s3://, file://.
	UploadBackendFor(location StorageBackendLocation) (UploadBackend, error)
}
