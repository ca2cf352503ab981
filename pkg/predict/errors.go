package predict

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreachable reports that the request did not complete: DNS or
	// connection failures, timeouts, cancelled contexts.
	ErrUnreachable = errors.New("predict: prediction API unreachable")
	// ErrMalformedResponse reports a success status whose body is not a
	// prediction result.
	ErrMalformedResponse = errors.New("predict: malformed prediction response")
)

// TruncatedMarker is appended to a status body cut at MaxBodyBytes.
const TruncatedMarker = " [truncated]"

// StatusError carries a non-2xx response. Body is the raw response text, up
// to MaxBodyBytes; Truncated reports that the server sent more.
type StatusError struct {
	StatusCode int
	Body       string
	Truncated  bool
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("predict: server responded with status %d: %s", e.StatusCode, e.Details())
}

// Details returns the body as shown to users, marked when it was cut.
func (e *StatusError) Details() string {
	if e.Truncated {
		return e.Body + TruncatedMarker
	}
	return e.Body
}
