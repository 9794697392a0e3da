// Package noderegistry provides a client for the node registry process,
// where compute nodes publish their public keys and descriptive metadata.
package noderegistry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/padolabs/pado-go-sdk/interfaces"
)

// Config configures a node registry client.
type Config struct {
	// ProcessID is the node registry process identifier.
	ProcessID string

	// Messenger performs the process exchanges.
	Messenger interfaces.ProcessMessenger

	Log *slog.Logger
}

// Client is a thin façade over the node registry process. It is stateless
// apart from the configured process identifier.
type Client struct {
	processID string
	messenger interfaces.ProcessMessenger
	log       *slog.Logger
}

// NewClient creates a node registry client for the configured process.
func NewClient(cfg *Config) *Client {
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		processID: cfg.ProcessID,
		messenger: cfg.Messenger,
		log:       log,
	}
}

// Register registers a node's public key and description under the given
// name. The registry's response payload is returned opaquely; the process
// decides whether the registration is accepted.
func (c *Client) Register(ctx context.Context, name, publicKey, desc string, signer interfaces.DataItemSigner) ([]byte, error) {
	return c.submit(ctx, "Register", name, publicKey, desc, signer)
}

// Update updates the public key or description of a previously registered
// node. Authorization is enforced by the process, which verifies the signer
// owns the existing registration.
func (c *Client) Update(ctx context.Context, name, publicKey, desc string, signer interfaces.DataItemSigner) ([]byte, error) {
	return c.submit(ctx, "Update", name, publicKey, desc, signer)
}

func (c *Client) submit(ctx context.Context, action, name, publicKey, desc string, signer interfaces.DataItemSigner) ([]byte, error) {
	c.log.Debug("Submitting node registration",
		slog.String("action", action),
		slog.String("name", name))

	return c.messenger.Send(ctx, interfaces.ProcessMessage{
		ProcessID: c.processID,
		Action:    action,
		Attributes: []interfaces.Tag{
			{Name: "Name", Value: name},
			{Name: "Desc", Value: desc},
		},
		Payload: []byte(publicKey),
		Signer:  signer,
	})
}

// Nodes returns the full node listing as produced by the registry process.
// The payload format is defined by the process, not by this client.
func (c *Client) Nodes(ctx context.Context) ([]byte, error) {
	return c.messenger.DryRun(ctx, interfaces.ProcessMessage{
		ProcessID: c.processID,
		Action:    "Nodes",
	})
}

// NodeList fetches the node listing and decodes it.
func (c *Client) NodeList(ctx context.Context) ([]interfaces.NodeInfo, error) {
	data, err := c.Nodes(ctx)
	if err != nil {
		return nil, err
	}

	var nodes []interfaces.NodeInfo
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("could not parse node listing: %w", err)
	}

	return nodes, nil
}

// SelectNodes implements interfaces.NodeDiscovery by taking the first n
// nodes of the listing in registry order.
func (c *Client) SelectNodes(ctx context.Context, n int) ([]interfaces.NodeInfo, error) {
	nodes, err := c.NodeList(ctx)
	if err != nil {
		return nil, err
	}

	if len(nodes) < n {
		return nil, fmt.Errorf("registry lists %d nodes, %d required", len(nodes), n)
	}

	return nodes[:n], nil
}
