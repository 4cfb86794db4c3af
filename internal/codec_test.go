package internal

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDecodeValue(t *testing.T) {
	alerts := []PriceAlert{{Crop: "Onion", TargetPrice: 18, IsAbove: false}}

	raw, err := encodeValue(SchemaAlerts, alerts, testTime)
	if err != nil {
		t.Fatalf("encodeValue() error = %v", err)
	}
	if !strings.Contains(raw, `"schema":"alerts/v1"`) {
		t.Errorf("encoded value missing schema: %s", raw)
	}

	got, err := decodeValue[[]PriceAlert]("alerts", SchemaAlerts, raw)
	if err != nil {
		t.Fatalf("decodeValue() error = %v", err)
	}
	if diff := cmp.Diff(alerts, got); diff != "" {
		t.Errorf("decodeValue() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeValue_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "definitely not json"},
		{name: "truncated", raw: `{"schema":"alerts/v1","data":[`},
		{name: "wrong schema", raw: `{"schema":"session/v1","data":[]}`},
		{name: "unversioned legacy array", raw: `[{"crop":"Rice","target_price":30,"is_above":true}]`},
		{name: "missing data", raw: `{"schema":"alerts/v1"}`},
		{name: "wrong data shape", raw: `{"schema":"alerts/v1","data":{"crop":"Rice"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeValue[[]PriceAlert]("alerts", SchemaAlerts, tt.raw)
			var corrupt *CorruptCacheError
			if !errors.As(err, &corrupt) {
				t.Fatalf("decodeValue() error = %v, want *CorruptCacheError", err)
			}
			if corrupt.Key != "alerts" {
				t.Errorf("CorruptCacheError.Key = %q, want alerts", corrupt.Key)
			}
		})
	}
}

func TestEncodeValue_SavedAtIsUTC(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	raw, err := encodeValue(SchemaSession, []Message{}, time.Date(2024, 6, 1, 15, 0, 0, 0, loc))
	if err != nil {
		t.Fatalf("encodeValue() error = %v", err)
	}
	if !strings.Contains(raw, `"saved_at":"2024-06-01T09:30:00Z"`) {
		t.Errorf("saved_at should be UTC, got %s", raw)
	}
}

func TestDescribeValue(t *testing.T) {
	raw, err := encodeValue(SchemaAlerts, []PriceAlert{{Crop: "Rice"}, {Crop: "Jute"}}, testTime)
	if err != nil {
		t.Fatalf("encodeValue() error = %v", err)
	}

	info := DescribeValue(AlertsKey, raw)
	if info.Schema != SchemaAlerts || info.Items != 2 || info.Problem != "" {
		t.Errorf("DescribeValue() = %+v", info)
	}
	if !info.SavedAt.Equal(testTime) {
		t.Errorf("SavedAt = %v, want %v", info.SavedAt, testTime)
	}
	if info.Bytes != len(raw) {
		t.Errorf("Bytes = %d, want %d", info.Bytes, len(raw))
	}

	tests := []struct {
		name string
		raw  string
	}{
		{"garbage", "%%%"},
		{"legacy array", `[{"crop":"Rice"}]`},
		{"object payload", `{"schema":"alerts/v1","data":{"crop":"Rice"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DescribeValue("k", tt.raw); got.Problem == "" {
				t.Errorf("DescribeValue() = %+v, want a problem", got)
			}
		})
	}
}
