package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Schemas identify the shape stored under each key family. A value whose
// schema does not match the reader's is treated as corrupt.
const (
	SchemaSession = "session/v1"
	SchemaAlerts  = "alerts/v1"
)

// cacheSchema returns the schema for a reference cache namespace
func cacheSchema(namespace string) string {
	return "cache:" + namespace + "/v1"
}

// storedValue is the on-disk wrapper around every persisted payload
type storedValue struct {
	Schema  string          `json:"schema"`
	SavedAt time.Time       `json:"saved_at"`
	Data    json.RawMessage `json:"data"`
}

// encodeValue serializes v under schema
func encodeValue(schema string, v any, savedAt time.Time) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", schema, err)
	}
	out, err := json.Marshal(storedValue{Schema: schema, SavedAt: savedAt.UTC(), Data: data})
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s envelope: %w", schema, err)
	}
	return string(out), nil
}

// decodeValue parses raw into T. Any failure is reported as a
// *CorruptCacheError so callers can degrade to a miss.
func decodeValue[T any](key, schema, raw string) (T, error) {
	var zero T

	var stored storedValue
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return zero, &CorruptCacheError{Key: key, Schema: schema, Err: err}
	}
	if stored.Schema != schema {
		return zero, &CorruptCacheError{Key: key, Schema: schema, Err: fmt.Errorf("unexpected schema %q", stored.Schema)}
	}
	if len(stored.Data) == 0 {
		return zero, &CorruptCacheError{Key: key, Schema: schema, Err: errors.New("missing data")}
	}

	var v T
	if err := json.Unmarshal(stored.Data, &v); err != nil {
		return zero, &CorruptCacheError{Key: key, Schema: schema, Err: err}
	}
	return v, nil
}

// ValueInfo summarizes a stored value without decoding its payload
type ValueInfo struct {
	Key     string    `json:"key"`
	Schema  string    `json:"schema,omitempty"`
	SavedAt time.Time `json:"saved_at,omitempty"`
	Items   int       `json:"items"`
	Bytes   int       `json:"bytes"`
	Problem string    `json:"problem,omitempty"`
}

// DescribeValue reads the envelope of raw. Values that cannot be read
// report a Problem instead of failing.
func DescribeValue(key, raw string) ValueInfo {
	info := ValueInfo{Key: key, Bytes: len(raw)}

	var stored storedValue
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		info.Problem = "not a versioned value"
		return info
	}
	info.Schema = stored.Schema
	info.SavedAt = stored.SavedAt

	var items []json.RawMessage
	if err := json.Unmarshal(stored.Data, &items); err != nil {
		info.Problem = "payload is not a list"
		return info
	}
	info.Items = len(items)
	return info
}
