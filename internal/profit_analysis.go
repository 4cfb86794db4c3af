package internal

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ProfitAnalysis is a stored profit computation with optional remote advice
type ProfitAnalysis struct {
	Crop       string       `json:"crop" yaml:"crop"`
	AreaAcres  float64      `json:"area_acres" yaml:"area_acres"`
	Location   string       `json:"location,omitempty" yaml:"location,omitempty"`
	Input      ProfitInput  `json:"input" yaml:"input"`
	Result     ProfitResult `json:"result" yaml:"result"`
	AIAnalysis string       `json:"ai_analysis,omitempty" yaml:"ai_analysis,omitempty"`
	Offline    bool         `json:"offline" yaml:"offline"`
}

// ProfitPredictor provides the optional remote enrichment
type ProfitPredictor interface {
	PredictProfit(ctx context.Context, req ProfitRequest) (ProfitPrediction, *Failure)
}

// ProfitAnalyzer computes profit locally, enriches it when the service is
// reachable and records every analysis in the profit history cache.
type ProfitAnalyzer struct {
	predictor ProfitPredictor
	history   *ReferenceCache[ProfitAnalysis]
	now       Clock
}

// NewProfitAnalyzer creates an analyzer. predictor may be nil for a
// purely local analysis.
func NewProfitAnalyzer(predictor ProfitPredictor, history *ReferenceCache[ProfitAnalysis], now Clock) *ProfitAnalyzer {
	if now == nil {
		now = time.Now
	}
	return &ProfitAnalyzer{predictor: predictor, history: history, now: now}
}

// Analyze runs the profit formula and, when possible, the remote prediction
func (a *ProfitAnalyzer) Analyze(ctx context.Context, crop, location string, in ProfitInput) (ProfitAnalysis, error) {
	crop = strings.TrimSpace(crop)
	if crop == "" {
		return ProfitAnalysis{}, fmt.Errorf("%w: crop is required", ErrInvalidProfitInput)
	}
	if err := in.Validate(); err != nil {
		return ProfitAnalysis{}, err
	}

	analysis := ProfitAnalysis{
		Crop:      crop,
		AreaAcres: in.AreaAcres,
		Location:  location,
		Input:     in,
		Result:    ComputeProfit(in),
		Offline:   true,
	}

	if a.predictor != nil {
		prediction, failure := a.predictor.PredictProfit(ctx, ProfitRequest{
			CropName:  crop,
			AreaAcres: in.AreaAcres,
			Location:  location,
		})
		if failure != nil {
			LogWarn("Profit prediction unavailable, using local computation: %v", failure)
		} else {
			analysis.Offline = false
			analysis.AIAnalysis = prediction.Analysis
			if analysis.AIAnalysis == "" {
				analysis.AIAnalysis = string(prediction.Raw)
			}
		}
	}

	if a.history != nil {
		a.history.Put(ctx, CacheEntry[ProfitAnalysis]{Payload: analysis, Timestamp: a.now()})
	}
	return analysis, nil
}

// History returns stored analyses, newest first
func (a *ProfitAnalyzer) History(ctx context.Context) []CacheEntry[ProfitAnalysis] {
	if a.history == nil {
		return nil
	}
	return a.history.GetAll(ctx)
}
