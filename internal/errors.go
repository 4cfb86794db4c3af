package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyMessage is returned when a text-only request has no text.
	ErrEmptyMessage = errors.New("message text is empty")
	// ErrDuplicateMessageID is returned when a message id already exists in the session.
	ErrDuplicateMessageID = errors.New("duplicate message id")
	// ErrInvalidMessage is returned for messages that violate the role rules.
	ErrInvalidMessage = errors.New("invalid message")
	// ErrInvalidProfitInput is returned for negative or non-finite profit inputs.
	ErrInvalidProfitInput = errors.New("invalid profit input")
	// ErrInvalidCropConditions is returned for missing fields or a pH outside 0-14.
	ErrInvalidCropConditions = errors.New("invalid crop conditions")
)

// TransportError represents an unreachable service or a timed out request
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError represents a non-2xx response from the remote service
type ProtocolError struct {
	Endpoint   string
	StatusCode int
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error: %s returned status %d", e.Endpoint, e.StatusCode)
}

// DecodeError represents a response body that could not be parsed
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: %s: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// PersistenceError represents a failed read or write against the KV store
type PersistenceError struct {
	Key string
	Op  string // "get", "set", "keys"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// CorruptCacheError represents a stored value that failed to parse or
// carries an unexpected schema
type CorruptCacheError struct {
	Key    string
	Schema string
	Err    error
}

func (e *CorruptCacheError) Error() string {
	return fmt.Sprintf("corrupt cache [%s] %s: %v", e.Schema, e.Key, e.Err)
}

func (e *CorruptCacheError) Unwrap() error {
	return e.Err
}
