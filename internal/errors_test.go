package internal

import (
	"errors"
	"strings"
	"testing"
)

func TestPersistenceError(t *testing.T) {
	originalErr := errors.New("disk full")
	err := &PersistenceError{
		Key: "session:abc",
		Op:  "set",
		Err: originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "persistence error") {
		t.Errorf("PersistenceError.Error() should contain 'persistence error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "session:abc") {
		t.Errorf("PersistenceError.Error() should contain key, got: %q", errorMsg)
	}
	if !errors.Is(err, originalErr) {
		t.Error("PersistenceError.Unwrap() should return original error")
	}
}

func TestCorruptCacheError(t *testing.T) {
	originalErr := errors.New("unexpected end of JSON input")
	err := &CorruptCacheError{
		Key:    "cache:market_prices",
		Schema: "market_prices/v1",
		Err:    originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "market_prices/v1") {
		t.Errorf("CorruptCacheError.Error() should contain schema, got: %q", errorMsg)
	}
	if !errors.Is(err, originalErr) {
		t.Error("CorruptCacheError.Unwrap() should return original error")
	}
}

func TestTransportError(t *testing.T) {
	originalErr := errors.New("connection refused")
	var err error = &TransportError{Endpoint: "/api/chat", Err: originalErr}

	if !errors.Is(err, originalErr) {
		t.Error("TransportError.Unwrap() should return original error")
	}

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatal("errors.As() should match *TransportError")
	}
	if te.Endpoint != "/api/chat" {
		t.Errorf("Endpoint = %q, want /api/chat", te.Endpoint)
	}
}

func TestProtocolError(t *testing.T) {
	err := &ProtocolError{Endpoint: "/api/chat", StatusCode: 503}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("ProtocolError.Error() should contain status code, got: %q", err.Error())
	}
}

func TestDecodeError(t *testing.T) {
	originalErr := errors.New("invalid character")
	err := &DecodeError{Endpoint: "/api/market/prices", Err: originalErr}
	if !errors.Is(err, originalErr) {
		t.Error("DecodeError.Unwrap() should return original error")
	}
	if !strings.Contains(err.Error(), "decode error") {
		t.Errorf("DecodeError.Error() should contain 'decode error', got: %q", err.Error())
	}
}
