package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/everFinance/goar"
	"github.com/everFinance/goar/types"
)

// DefaultArweaveGateway is the public Arweave gateway.
const DefaultArweaveGateway = "https://arweave.net"

// ArweaveBackend stores ciphertext as native Arweave transactions. Uploads
// are paid for by the caller's wallet; the transaction ID is the durable
// storage pointer.
type ArweaveBackend struct {
	gatewayURL  string
	client      *goar.Client
	log         *slog.Logger
	locationURI string
}

// NewArweaveBackend creates a backend for the given gateway URL, falling
// back to the public gateway.
func NewArweaveBackend(gatewayURL string, log *slog.Logger) *ArweaveBackend {
	if gatewayURL == "" {
		gatewayURL = DefaultArweaveGateway
	}

	return &ArweaveBackend{
		gatewayURL:  gatewayURL,
		client:      goar.NewClient(gatewayURL),
		log:         log,
		locationURI: fmt.Sprintf("arweave://%s", gatewayURL),
	}
}

// Upload submits data as an Arweave transaction signed and paid by the
// wallet keyfile. The tag parameter has no meaning on this route and is
// ignored.
func (b *ArweaveBackend) Upload(ctx context.Context, data []byte, wallet []byte, tag string) (string, error) {
	start := time.Now()

	w, err := goar.NewWallet(wallet, b.gatewayURL)
	if err != nil {
		return "", fmt.Errorf("could not load wallet: %w", err)
	}

	tx, err := w.SendData(data, []types.Tag{
		{Name: "Content-Type", Value: "application/octet-stream"},
	})
	if err != nil {
		return "", fmt.Errorf("could not submit arweave transaction: %w", err)
	}

	b.log.Debug("Uploaded data to arweave",
		slog.String("transaction_id", tx.ID),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return tx.ID, nil
}

// Fetch retrieves transaction data from the gateway.
func (b *ArweaveBackend) Fetch(ctx context.Context, txID string) ([]byte, error) {
	data, err := b.client.GetTransactionData(txID)
	if err != nil {
		return nil, fmt.Errorf("could not fetch arweave transaction %s: %w", txID, err)
	}
	return data, nil
}

// Available checks gateway reachability.
func (b *ArweaveBackend) Available(ctx context.Context) bool {
	_, err := b.client.GetInfo()
	return err == nil
}

// Name returns the backend identifier for logging.
func (b *ArweaveBackend) Name() string {
	return "arweave"
}

// LocationURI returns the URI identifying this backend.
func (b *ArweaveBackend) LocationURI() string {
	return b.locationURI
}
