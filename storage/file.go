package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/padolabs/pado-go-sdk/interfaces"
)

// FileBackend stores ciphertext on the local filesystem, keyed by content
// hash. For development and tests; the wallet credential is ignored.
type FileBackend struct {
	baseDir     string
	log         *slog.Logger
	locationURI string
}

// NewFileBackend creates a file storage backend rooted at baseDir.
func NewFileBackend(baseDir string, log *slog.Logger) (*FileBackend, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &FileBackend{
		baseDir:     baseDir,
		log:         log,
		locationURI: fmt.Sprintf("file://%s", baseDir),
	}, nil
}

// Upload writes data under its content hash and returns the hash.
func (b *FileBackend) Upload(ctx context.Context, data []byte, wallet []byte, tag string) (string, error) {
	hash := sha256.Sum256(data)
	id := hex.EncodeToString(hash[:])

	if err := os.WriteFile(filepath.Join(b.baseDir, id), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	b.log.Debug("Stored data in file backend",
		slog.String("id", id),
		slog.Int("size", len(data)))

	return id, nil
}

// Fetch retrieves data by its content hash.
func (b *FileBackend) Fetch(ctx context.Context, txID string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(b.baseDir, txID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, interfaces.ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return data, nil
}

// Available checks that the base directory exists.
func (b *FileBackend) Available(ctx context.Context) bool {
	info, err := os.Stat(b.baseDir)
	return err == nil && info.IsDir()
}

// Name returns the backend identifier for logging.
func (b *FileBackend) Name() string {
	return "file"
}

// LocationURI returns the URI identifying this backend.
func (b *FileBackend) LocationURI() string {
	return b.locationURI
}
