package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Relay forwards a payload to an external webhook target
type Relay interface {
	// Forward POSTs payload as JSON to destination. It returns *UnavailableError when the
	// target cannot be reached and *RejectedError when it answers with a non-2xx status.
	Forward(ctx context.Context, destination string, payload any) (*Result, error)
}

// Result of a successful relay call
type Result struct {
	StatusCode int
	// Body is the upstream response when it parsed as JSON, nil otherwise
	Body json.RawMessage
}

// ErrDestinationNotAllowed is returned when the destination host is not on the allow-list
var ErrDestinationNotAllowed = errors.New("relay destination not allowed")

// UnavailableError means the request never produced an HTTP response
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("webhook unreachable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// RejectedError means the target answered with a non-2xx status
type RejectedError struct {
	StatusCode int
	Body       string // first 512 bytes
}

func (e *RejectedError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("webhook responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("webhook responded with status %d: %s", e.StatusCode, e.Body)
}
