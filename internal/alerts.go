package internal

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// AlertsKey is the KV key holding the price alert list
const AlertsKey = "alerts"

// AlertStore persists price alerts as a flat list. Duplicates are kept;
// nothing here evaluates alerts against prices.
type AlertStore struct {
	rec *record[PriceAlert]
}

// NewAlertStore creates an alert store over kv
func NewAlertStore(kv KVStore, now Clock) *AlertStore {
	return &AlertStore{rec: newRecord[PriceAlert](kv, AlertsKey, SchemaAlerts, now)}
}

// Add appends an alert and returns the full list
func (a *AlertStore) Add(ctx context.Context, alert PriceAlert) ([]PriceAlert, error) {
	alert.Crop = strings.TrimSpace(alert.Crop)
	if alert.Crop == "" {
		return nil, fmt.Errorf("alert crop is required")
	}
	if alert.TargetPrice < 0 || math.IsNaN(alert.TargetPrice) || math.IsInf(alert.TargetPrice, 0) {
		return nil, fmt.Errorf("invalid alert target price %v", alert.TargetPrice)
	}

	return a.rec.mutate(ctx, func(alerts []PriceAlert) ([]PriceAlert, error) {
		return append(alerts, alert), nil
	})
}

// List returns all alerts in insertion order
func (a *AlertStore) List(ctx context.Context) []PriceAlert {
	alerts := a.rec.snapshot(ctx)
	if alerts == nil {
		alerts = []PriceAlert{}
	}
	return alerts
}
