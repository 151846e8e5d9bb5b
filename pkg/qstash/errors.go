package qstash

import (
	"errors"
	"fmt"
)

// Validation errors detected locally, before any network call is made.
var (
	ErrEmptyToken       = errors.New("qstash: token is empty")
	ErrEmptyDestination = errors.New("qstash: destination is empty")
)

// TransportError reports that no HTTP response was obtained: connection
// refused, DNS or TLS failure, timeout, or context cancellation.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("qstash: transport: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a success response whose body could not be decoded
// into the expected result shape. Body holds a snippet of the raw response.
type DecodeError struct {
	Err  error
	Body string
}

func (e *DecodeError) Error() string { return fmt.Sprintf("qstash: decode response: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// APIError reports a non-2xx response from the QStash API. Message is the
// server-provided error when the body carries one, otherwise a generic
// message derived from the status code. Callers needing per-status policy
// inspect StatusCode directly.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("qstash: api status %d: %s", e.StatusCode, e.Message)
}

// ClientError reports whether the status is in the 4xx range.
func (e *APIError) ClientError() bool { return e.StatusCode >= 400 && e.StatusCode < 500 }

// ServerError reports whether the status is in the 5xx range.
func (e *APIError) ServerError() bool { return e.StatusCode >= 500 && e.StatusCode < 600 }
