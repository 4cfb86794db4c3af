package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SessionFixture is a persisted session log with one exchange
const SessionFixture = `{"schema":"session/v1","saved_at":"2024-06-01T09:30:01Z","data":[` +
	`{"id":"u1","role":"user","text":"When should I sow wheat in Punjab?","timestamp":"2024-06-01T09:30:00Z","language":"en"},` +
	`{"id":"a1","role":"assistant","text":"Sow wheat between late October and mid November.","timestamp":"2024-06-01T09:30:01Z","language":"en"}]}`

// MarketPricesFixture is a persisted market price snapshot cache
const MarketPricesFixture = `{"schema":"cache:market_prices/v1","saved_at":"2024-06-01T08:00:00Z","data":[` +
	`{"payload":{"crop":"Wheat","prices":[{"crop_name":"Wheat","price_per_kg":22.5,"market_name":"Khanna Mandi","location":"Punjab"}]},"timestamp":"2024-06-01T08:00:00Z"}]}`

// AlertsFixture is a persisted alert list with a duplicate entry
const AlertsFixture = `{"schema":"alerts/v1","saved_at":"2024-06-01T08:00:00Z","data":[` +
	`{"crop":"Rice","target_price":30,"is_above":true},` +
	`{"crop":"Rice","target_price":30,"is_above":true}]}`

// WriteConfigFixture writes a .digifarmer.yaml with content into dir
func WriteConfigFixture(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ".digifarmer.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config fixture: %v", err)
	}
	return path
}
