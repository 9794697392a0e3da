package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/everFinance/goar"
	"github.com/everFinance/goar/types"

	"github.com/padolabs/pado-go-sdk/interfaces"
)

// DefaultArseedingGateway is the public Arseeding bundle gateway.
const DefaultArseedingGateway = "https://arseed.web3infra.dev"

// defaultCurrency is the payment token used when the caller supplies no
// symbol tag.
const defaultCurrency = "AR"

// ArseedingBackend stores ciphertext as ANS-104 bundle items through an
// Arseeding gateway. The wallet keyfile signs the item; the optional tag
// selects the payment token symbol.
type ArseedingBackend struct {
	gatewayURL  string
	client      *http.Client
	log         *slog.Logger
	locationURI string
}

// NewArseedingBackend creates a backend for the given gateway URL, falling
// back to the public gateway.
func NewArseedingBackend(gatewayURL string, log *slog.Logger) *ArseedingBackend {
	if gatewayURL == "" {
		gatewayURL = DefaultArseedingGateway
	}

	return &ArseedingBackend{
		gatewayURL:  gatewayURL,
		client:      http.DefaultClient,
		log:         log,
		locationURI: fmt.Sprintf("arseeding://%s", gatewayURL),
	}
}

// Upload signs data as a bundle item with the wallet keyfile and posts it
// to the gateway's bundle endpoint. Returns the item ID.
func (b *ArseedingBackend) Upload(ctx context.Context, data []byte, wallet []byte, tag string) (string, error) {
	start := time.Now()

	signer, err := goar.NewSigner(wallet)
	if err != nil {
		return "", fmt.Errorf("could not load wallet: %w", err)
	}

	itemSigner, err := goar.NewItemSigner(signer)
	if err != nil {
		return "", err
	}

	item, err := itemSigner.CreateAndSignItem(data, "", "", []types.Tag{
		{Name: "Content-Type", Value: "application/octet-stream"},
	})
	if err != nil {
		return "", fmt.Errorf("could not sign bundle item: %w", err)
	}

	currency := tag
	if currency == "" {
		currency = defaultCurrency
	}

	reqURL := fmt.Sprintf("%s/bundle/tx/%s", b.gatewayURL, url.PathEscape(currency))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(item.ItemBinary))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("could not request bundle endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("bundle endpoint returned error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var order struct {
		ItemID string `json:"itemId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return "", fmt.Errorf("could not parse bundle order: %w", err)
	}

	b.log.Debug("Uploaded data to arseeding",
		slog.String("item_id", order.ItemID),
		slog.String("currency", currency),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return order.ItemID, nil
}

// Fetch retrieves item data from the gateway.
func (b *ArseedingBackend) Fetch(ctx context.Context, txID string) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/%s", b.gatewayURL, url.PathEscape(txID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, interfaces.ErrContentNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway returned error %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// Available checks gateway reachability.
func (b *ArseedingBackend) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.gatewayURL+"/info", nil)
	if err != nil {
		return false
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// Name returns the backend identifier for logging.
func (b *ArseedingBackend) Name() string {
	return "arseeding"
}

// LocationURI returns the URI identifying this backend.
func (b *ArseedingBackend) LocationURI() string {
	return b.locationURI
}
