package torre

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the upstream has no such profile.
	ErrNotFound = errors.New("torre: not found")
	// ErrUpstream is returned for an upstream error status or an unreadable body.
	ErrUpstream = errors.New("torre: upstream error")
	// ErrNetwork is returned when the upstream could not be reached.
	ErrNetwork = errors.New("torre: network error")
	// ErrCircuitOpen is returned while the circuit breaker rejects calls.
	ErrCircuitOpen = errors.New("torre: circuit open")
)

// APIError carries an unexpected upstream status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("torre: upstream returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("torre: upstream returned HTTP %d: %s", e.StatusCode, e.Body)
}

// Unwrap lets errors.Is match ErrUpstream.
func (e *APIError) Unwrap() error { return ErrUpstream }
