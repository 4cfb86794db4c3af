package testutil

import (
	"encoding/json"
	"path/filepath"
	"testing"
)

// CreateTempStorePath returns a store path inside a fresh temp directory
func CreateTempStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "store", "digifarmer.db")
}

// JSONMarshal marshals a value to JSON for testing
func JSONMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal JSON: %v", err)
	}
	return data
}
