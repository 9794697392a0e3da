package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	shell "github.com/ipfs/go-ipfs-api"

	"github.com/padolabs/pado-go-sdk/interfaces"
)

// IPFSBackend stores ciphertext on an IPFS node. The CID serves as the
// storage pointer; the wallet credential is ignored since IPFS has no
// payment semantics.
type IPFSBackend struct {
	shell       *shell.Shell
	host        string
	port        string
	log         *slog.Logger
	locationURI string
}

// NewIPFSBackend creates an IPFS storage backend connected to the specified
// host and port.
func NewIPFSBackend(host, port string, log *slog.Logger) *IPFSBackend {
	apiURL := fmt.Sprintf("%s:%s", host, port)

	return &IPFSBackend{
		shell:       shell.NewShell(apiURL),
		host:        host,
		port:        port,
		log:         log,
		locationURI: fmt.Sprintf("ipfs://%s", apiURL),
	}
}

// Upload adds data to IPFS and returns its CID.
func (b *IPFSBackend) Upload(ctx context.Context, data []byte, wallet []byte, tag string) (string, error) {
	start := time.Now()

	if !b.shell.IsUp() {
		b.log.Warn("IPFS node unavailable",
			slog.String("host", b.host),
			slog.String("port", b.port))
		return "", interfaces.ErrBackendUnavailable
	}

	cid, err := b.shell.Add(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("could not add data to IPFS: %w", err)
	}

	b.log.Debug("Uploaded data to IPFS",
		slog.String("cid", cid),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return cid, nil
}

// Fetch retrieves data from IPFS by CID. Returns ErrContentNotFound if the
// content doesn't exist or ErrBackendUnavailable if the node is not
// accessible.
func (b *IPFSBackend) Fetch(ctx context.Context, txID string) ([]byte, error) {
	if !b.shell.IsUp() {
		return nil, interfaces.ErrBackendUnavailable
	}

	reader, err := b.shell.Cat(txID)
	if err != nil {
		if strings.Contains(err.Error(), "no link named") || strings.Contains(err.Error(), "not found") {
			return nil, interfaces.ErrContentNotFound
		}
		return nil, fmt.Errorf("could not fetch data from IPFS: %w", err)
	}
	defer reader.Close()

	return io.ReadAll(reader)
}

// Available checks if the IPFS node is accessible.
func (b *IPFSBackend) Available(ctx context.Context) bool {
	return b.shell.IsUp()
}

// Name returns the backend identifier for logging.
func (b *IPFSBackend) Name() string {
	return "ipfs"
}

// LocationURI returns the URI identifying this backend.
func (b *IPFSBackend) LocationURI() string {
	return b.locationURI
}
