package inference

import "fmt"

type Kind string

const (
	// KindTransport covers failures before any HTTP status arrived.
	KindTransport Kind = "transport"
	// KindUnavailable means the backend answered 503 (model not loaded).
	KindUnavailable Kind = "unavailable"
	// KindServer covers every other non-success status or an error field
	// inside an otherwise successful body.
	KindServer Kind = "server"
	// KindDecode means the success body could not be parsed.
	KindDecode Kind = "decode"
)

// Error is the classified failure surfaced to the error panel. Message
// is already human-readable: either the backend's own error text or a
// generic fallback.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	cause      error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("inference %s error (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("inference %s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}
