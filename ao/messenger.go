package ao

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/padolabs/pado-go-sdk/interfaces"
)

// Default AO testnet unit endpoints.
const (
	DefaultMessengerURL = "https://mu.ao-testnet.xyz"
	DefaultComputeURL   = "https://cu.ao-testnet.xyz"
)

// Protocol tags attached to every message ahead of the action tag.
const (
	tagDataProtocol = "ao"
	tagVariant      = "ao.TN.1"
	tagType         = "Message"
	tagSDK          = "pado-go-sdk"
)

// dryRunStub fills the identity fields of a dry-run envelope; the compute
// unit requires them to be present but does not verify them.
const dryRunStub = "1234"

// Config holds the unit endpoints for a Messenger. All fields are optional.
type Config struct {
	// MessengerURL is the messenger unit accepting signed data items.
	MessengerURL string

	// ComputeURL is the compute unit serving results and dry-runs.
	ComputeURL string

	// Client is the HTTP client used for all calls.
	Client *http.Client

	Log *slog.Logger
}

// Messenger exchanges messages with remote AO processes. It is stateless
// apart from its configured endpoints and safe for concurrent use.
type Messenger struct {
	messengerURL string
	computeURL   string
	client       *http.Client
	log          *slog.Logger
}

// NewMessenger creates a messenger for the configured unit endpoints,
// falling back to the public AO testnet units.
func NewMessenger(cfg *Config) *Messenger {
	if cfg == nil {
		cfg = &Config{}
	}

	m := &Messenger{
		messengerURL: cfg.MessengerURL,
		computeURL:   cfg.ComputeURL,
		client:       cfg.Client,
		log:          cfg.Log,
	}

	if m.messengerURL == "" {
		m.messengerURL = DefaultMessengerURL
	}
	if m.computeURL == "" {
		m.computeURL = DefaultComputeURL
	}
	if m.client == nil {
		m.client = http.DefaultClient
	}
	if m.log == nil {
		m.log = slog.Default()
	}

	return m
}

// Send signs msg as a data item, submits it to the messenger unit, and
// blocks until the correlated result is available on the compute unit.
// Returns the first result message's data.
func (m *Messenger) Send(ctx context.Context, msg interfaces.ProcessMessage) ([]byte, error) {
	start := time.Now()

	if msg.Signer == nil {
		return nil, fmt.Errorf("%w: no signer provided", interfaces.ErrSubmission)
	}

	item, err := msg.Signer.SignDataItem(ctx, msg.ProcessID, wireTags(msg), msg.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: signing: %v", interfaces.ErrSubmission, err)
	}

	if err := m.submit(ctx, item.Raw); err != nil {
		return nil, err
	}

	m.log.Debug("Message submitted",
		slog.String("process_id", msg.ProcessID),
		slog.String("action", msg.Action),
		slog.String("message_id", item.ID))

	data, err := m.result(ctx, msg.ProcessID, item.ID)
	if err != nil {
		return nil, err
	}

	m.log.Debug("Message result received",
		slog.String("process_id", msg.ProcessID),
		slog.String("message_id", item.ID),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return data, nil
}

// DryRun executes msg speculatively against current process state on the
// compute unit. No signer, identifier or correlation step is involved.
func (m *Messenger) DryRun(ctx context.Context, msg interfaces.ProcessMessage) ([]byte, error) {
	envelope := dryRunEnvelope{
		ID:     dryRunStub,
		Target: msg.ProcessID,
		Owner:  dryRunStub,
		Anchor: "0",
		Tags:   wireTags(msg),
		Data:   string(msg.Payload),
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("could not encode dry-run envelope: %w", err)
	}

	reqURL := fmt.Sprintf("%s/dry-run?process-id=%s", m.computeURL, url.QueryEscape(msg.ProcessID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not request dry-run endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpError("dry-run", resp)
	}

	return decodeResult(resp.Body)
}

// submit posts a serialized signed data item to the messenger unit.
func (m *Messenger) submit(ctx context.Context, raw []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.messengerURL, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", interfaces.ErrSubmission, err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", interfaces.ErrSubmission, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: messenger unit returned %d: %s", interfaces.ErrSubmission, resp.StatusCode, string(bodyBytes))
	}

	return nil
}

// result fetches the result correlated to a committed message.
func (m *Messenger) result(ctx context.Context, processID, messageID string) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/result/%s?process-id=%s", m.computeURL, url.PathEscape(messageID), url.QueryEscape(processID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not request result endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpError("result", resp)
	}

	return decodeResult(resp.Body)
}

// wireTags assembles the full tag list: protocol tags, the action tag, then
// the caller's attributes in their original order.
func wireTags(msg interfaces.ProcessMessage) []interfaces.Tag {
	tags := make([]interfaces.Tag, 0, len(msg.Attributes)+5)
	tags = append(tags,
		interfaces.Tag{Name: "Data-Protocol", Value: tagDataProtocol},
		interfaces.Tag{Name: "Variant", Value: tagVariant},
		interfaces.Tag{Name: "Type", Value: tagType},
		interfaces.Tag{Name: "SDK", Value: tagSDK},
		interfaces.Tag{Name: "Action", Value: msg.Action},
	)
	return append(tags, msg.Attributes...)
}

type dryRunEnvelope struct {
	ID     string           `json:"Id"`
	Target string           `json:"Target"`
	Owner  string           `json:"Owner"`
	Anchor string           `json:"Anchor"`
	Tags   []interfaces.Tag `json:"Tags"`
	Data   string           `json:"Data"`
}

type resultMessage struct {
	Data string `json:"Data"`
}

type resultEnvelope struct {
	Messages []resultMessage `json:"Messages"`
	Error    json.RawMessage `json:"Error"`
}

// decodeResult parses a compute unit result and extracts the first result
// message's data. Results never have their Messages dereferenced blindly: a
// zero-message result is interfaces.ErrEmptyResult.
func decodeResult(r io.Reader) ([]byte, error) {
	var envelope resultEnvelope
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("could not parse process result: %w", err)
	}

	if errText := processError(envelope.Error); errText != "" {
		return nil, errors.New(errText)
	}

	if len(envelope.Messages) == 0 {
		return nil, interfaces.ErrEmptyResult
	}

	return []byte(envelope.Messages[0].Data), nil
}

// processError normalizes the Error field of a result, which the compute
// unit encodes as either a string or an object, into a non-empty string
// when the process reported an error.
func processError(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return ""
		}
		return "process error: " + s
	}

	return "process error: " + string(raw)
}

func httpError(endpoint string, resp *http.Response) error {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s endpoint returned non-200 response: %d", endpoint, resp.StatusCode)
	}
	return fmt.Errorf("%s endpoint returned error %d: %s", endpoint, resp.StatusCode, string(bodyBytes))
}
