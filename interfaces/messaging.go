package interfaces

import (
	"context"
	"errors"
)

var (
	// ErrEmptyResult is returned when a remote process produced a result
	// with zero messages. The protocol convention is that the first result
	// message carries the response payload; an empty sequence is a hard
	// error for both committed and dry-run calls.
	ErrEmptyResult = errors.New("process result contains no messages")

	// ErrSubmission is returned when submitting a committed message fails,
	// due to either a signing failure or a transport failure. Exactly one
	// attempt is made per call; callers needing retries must wrap the call.
	ErrSubmission = errors.New("message submission failed")
)

// Tag is a single name/value attribute attached to a process message.
// Tag order is significant and preserved on the wire.
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProcessMessage is one request to a remote process. Immutable once
// constructed: the messenger reads it but never modifies it.
type ProcessMessage struct {
	// ProcessID is the target process identifier.
	ProcessID string

	// Action is the action tag understood by the target process.
	Action string

	// Attributes are the action's attribute tags, in caller order.
	Attributes []Tag

	// Payload is the opaque data blob, carried separately from the tags.
	Payload []byte

	// Signer authorizes the message. Required for committed sends,
	// ignored for dry-run queries.
	Signer DataItemSigner
}

// SignedDataItem is a signed ANS-104 data item ready for submission.
type SignedDataItem struct {
	// ID is the data item identifier, used to correlate the result.
	ID string

	// Raw is the serialized signed item.
	Raw []byte
}

// DataItemSigner signs a data item addressed to a process. Implementations
// wrap a wallet credential; the SDK never inspects the signature.
type DataItemSigner interface {
	// SignDataItem signs data with the given target and tags.
	SignDataItem(ctx context.Context, target string, tags []Tag, data []byte) (*SignedDataItem, error)
}

// ProcessMessenger performs request/response exchanges with remote processes.
type ProcessMessenger interface {
	// Send submits a committed message for asynchronous execution and
	// blocks until the correlated result is available. Returns the first
	// result message's data. Fails with ErrSubmission if submission
	// fails and ErrEmptyResult if the result carries no messages.
	Send(ctx context.Context, msg ProcessMessage) ([]byte, error)

	// DryRun executes a message speculatively against current process
	// state without committing it. Returns the first result message's
	// data, or ErrEmptyResult.
	DryRun(ctx context.Context, msg ProcessMessage) ([]byte, error)
}
