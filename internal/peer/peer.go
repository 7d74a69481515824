// Package peer holds what the outbound service clients share: the HTTP client
// and the error type callers use to tell "peer failed" apart from "no data".
package peer

import (
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Error is returned by peer clients for transport failures, non-2xx
// responses and undecodable bodies.
type Error struct {
	Peer       string
	Op         string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Peer, e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Peer, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewHTTPClient returns a client with a hard timeout and a traced transport.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}
