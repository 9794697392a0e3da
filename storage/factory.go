package storage

import (
	"fmt"
	"log/slog"

	"github.com/padolabs/pado-go-sdk/interfaces"
)

// BackendFactory creates upload backends from location URIs.
type BackendFactory struct {
	log *slog.Logger
}

// NewBackendFactory creates a factory instance.
func NewBackendFactory(log *slog.Logger) *BackendFactory {
	return &BackendFactory{log: log}
}

// UploadBackendFor creates an upload backend from a location URI.
//
// Supported schemes:
//   - arweave:// - native Arweave transactions via a gateway
//   - arseeding:// - ANS-104 bundle items via an Arseeding gateway
//   - ipfs:// - an IPFS node
//   - s3:// - Amazon S3 or compatible object storage
//   - file:// - local filesystem storage
func (f *BackendFactory) UploadBackendFor(location interfaces.StorageBackendLocation) (interfaces.UploadBackend, error) {
	switch location.Scheme {
	case "arweave":
		return NewArweaveBackend(gatewayURL(location), f.log), nil
	case "arseeding":
		return NewArseedingBackend(gatewayURL(location), f.log), nil
	case "ipfs":
		host, port := location.Host, "5001"
		if h, p, ok := splitHostPort(location.Host); ok {
			host, port = h, p
		}
		return NewIPFSBackend(host, port, f.log), nil
	case "s3":
		return NewS3Backend(
			location.Host,
			location.Path,
			location.GetParam("region"),
			location.GetParam("endpoint"),
			location.GetParam("access_key"),
			location.GetParam("secret_key"),
			f.log,
		)
	case "file":
		return NewFileBackend(location.Path, f.log)
	default:
		return nil, fmt.Errorf("%w: unsupported backend scheme: %s", interfaces.ErrInvalidLocationURI, location.Scheme)
	}
}

// gatewayURL turns a gateway location into an HTTP base URL. An empty host
// selects the backend's public default gateway.
func gatewayURL(location interfaces.StorageBackendLocation) string {
	if location.Host == "" {
		return ""
	}
	if location.GetParam("insecure") == "true" {
		return "http://" + location.Host
	}
	return "https://" + location.Host
}

func splitHostPort(hostport string) (host, port string, ok bool) {
	for i := len(hostport) - 1; i >= 0; i-- {
		if hostport[i] == ':' {
			return hostport[:i], hostport[i+1:], true
		}
	}
	return "", "", false
}
