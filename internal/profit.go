package internal

import (
	"fmt"
	"math"
)

// quintalKg converts yield in quintals to kilograms
const quintalKg = 100

// CostBreakdown is the per-acre cost of growing a crop
type CostBreakdown struct {
	Seeds          float64 `json:"seeds" yaml:"seeds"`
	Fertilizer     float64 `json:"fertilizer" yaml:"fertilizer"`
	Irrigation     float64 `json:"irrigation" yaml:"irrigation"`
	Labor          float64 `json:"labor" yaml:"labor"`
	Pesticides     float64 `json:"pesticides" yaml:"pesticides"`
	Equipment      float64 `json:"equipment" yaml:"equipment"`
	Transportation float64 `json:"transportation" yaml:"transportation"`
}

// Total sums all cost lines
func (c CostBreakdown) Total() float64 {
	return c.Seeds + c.Fertilizer + c.Irrigation + c.Labor + c.Pesticides + c.Equipment + c.Transportation
}

func (c CostBreakdown) values() []float64 {
	return []float64{c.Seeds, c.Fertilizer, c.Irrigation, c.Labor, c.Pesticides, c.Equipment, c.Transportation}
}

// ProfitInput holds everything the profit formula needs
type ProfitInput struct {
	CostPerAcre  CostBreakdown `json:"cost_per_acre" yaml:"cost_per_acre"`
	AreaAcres    float64       `json:"area_acres" yaml:"area_acres"`
	YieldPerAcre float64       `json:"yield_per_acre" yaml:"yield_per_acre"` // quintals per acre
	PricePerKg   float64       `json:"price_per_kg" yaml:"price_per_kg"`
}

// Validate rejects negative or non-finite inputs
func (in ProfitInput) Validate() error {
	values := append(in.CostPerAcre.values(), in.AreaAcres, in.YieldPerAcre, in.PricePerKg)
	for _, v := range values {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidProfitInput, v)
		}
	}
	return nil
}

// ProfitResult is the deterministic profit breakdown. MarginPct is nil
// when there is no revenue.
type ProfitResult struct {
	TotalCost    float64  `json:"total_cost" yaml:"total_cost"`
	TotalYieldKg float64  `json:"total_yield_kg" yaml:"total_yield_kg"`
	TotalRevenue float64  `json:"total_revenue" yaml:"total_revenue"`
	NetProfit    float64  `json:"net_profit" yaml:"net_profit"`
	MarginPct    *float64 `json:"margin_pct,omitempty" yaml:"margin_pct,omitempty"`
}

// Margin returns the profit margin in percent, ok=false when not applicable
func (r ProfitResult) Margin() (float64, bool) {
	if r.MarginPct == nil {
		return 0, false
	}
	return *r.MarginPct, true
}

// ComputeProfit applies the profit formula. It performs no I/O.
func ComputeProfit(in ProfitInput) ProfitResult {
	totalCost := in.CostPerAcre.Total() * in.AreaAcres
	totalYieldKg := in.YieldPerAcre * in.AreaAcres * quintalKg
	totalRevenue := totalYieldKg * in.PricePerKg
	netProfit := totalRevenue - totalCost

	result := ProfitResult{
		TotalCost:    totalCost,
		TotalYieldKg: totalYieldKg,
		TotalRevenue: totalRevenue,
		NetProfit:    netProfit,
	}
	if totalRevenue != 0 {
		margin := netProfit / totalRevenue * 100
		result.MarginPct = &margin
	}
	return result
}
