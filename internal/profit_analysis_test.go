package internal

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type fakePredictor struct {
	prediction ProfitPrediction
	failure    *Failure
	got        ProfitRequest
}

func (f *fakePredictor) PredictProfit(ctx context.Context, req ProfitRequest) (ProfitPrediction, *Failure) {
	f.got = req
	return f.prediction, f.failure
}

func newProfitHistory(t *testing.T) *ReferenceCache[ProfitAnalysis] {
	t.Helper()
	cache, err := NewReferenceCache[ProfitAnalysis](newTestStore(t), NamespaceProfitAnalyses, "", 3, nil)
	if err != nil {
		t.Fatalf("NewReferenceCache() error = %v", err)
	}
	return cache
}

var wheatInput = ProfitInput{CostPerAcre: wheatCosts, AreaAcres: 2, YieldPerAcre: 25, PricePerKg: 25.5}

func TestProfitAnalyzer_Online(t *testing.T) {
	predictor := &fakePredictor{prediction: ProfitPrediction{Analysis: "Good season for wheat."}}
	analyzer := NewProfitAnalyzer(predictor, newProfitHistory(t), SteppingClock(testTime))
	ctx := context.Background()

	analysis, err := analyzer.Analyze(ctx, " Wheat ", "Ludhiana", wheatInput)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if analysis.Offline {
		t.Error("Offline = true, want false")
	}
	if analysis.AIAnalysis != "Good season for wheat." {
		t.Errorf("AIAnalysis = %q", analysis.AIAnalysis)
	}
	if analysis.Result.NetProfit != 27500 {
		t.Errorf("NetProfit = %v, want 27500", analysis.Result.NetProfit)
	}
	if predictor.got != (ProfitRequest{CropName: "Wheat", AreaAcres: 2, Location: "Ludhiana"}) {
		t.Errorf("predictor request = %+v", predictor.got)
	}

	history := analyzer.History(ctx)
	if len(history) != 1 || history[0].Payload.Crop != "Wheat" {
		t.Fatalf("History() = %+v", history)
	}
	if !history[0].Timestamp.Equal(testTime) {
		t.Errorf("history timestamp = %v, want %v", history[0].Timestamp, testTime)
	}
}

func TestProfitAnalyzer_RawFallback(t *testing.T) {
	raw := json.RawMessage(`{"crop":"Rice","insight":"prices rising"}`)
	predictor := &fakePredictor{prediction: ProfitPrediction{Raw: raw}}
	analyzer := NewProfitAnalyzer(predictor, nil, nil)

	analysis, err := analyzer.Analyze(context.Background(), "Rice", "", wheatInput)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if analysis.AIAnalysis != string(raw) {
		t.Errorf("AIAnalysis = %q, want raw response", analysis.AIAnalysis)
	}
	if got := analyzer.History(context.Background()); got != nil {
		t.Errorf("History() without cache = %v, want nil", got)
	}
}

func TestProfitAnalyzer_Offline(t *testing.T) {
	predictor := &fakePredictor{failure: &Failure{Reason: FailureUnreachable, Err: errors.New("offline")}}
	analyzer := NewProfitAnalyzer(predictor, newProfitHistory(t), nil)

	analysis, err := analyzer.Analyze(context.Background(), "Wheat", "", wheatInput)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if !analysis.Offline || analysis.AIAnalysis != "" {
		t.Errorf("analysis = %+v, want offline without advice", analysis)
	}
	if analysis.Result.TotalRevenue != 127500 {
		t.Errorf("TotalRevenue = %v, want local result", analysis.Result.TotalRevenue)
	}
	if n := len(analyzer.History(context.Background())); n != 1 {
		t.Errorf("History() length = %d, want 1", n)
	}
}

func TestProfitAnalyzer_LocalOnly(t *testing.T) {
	analyzer := NewProfitAnalyzer(nil, newProfitHistory(t), nil)

	analysis, err := analyzer.Analyze(context.Background(), "Cotton", "", wheatInput)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if !analysis.Offline {
		t.Error("Offline = false without a predictor")
	}
}

func TestProfitAnalyzer_Invalid(t *testing.T) {
	predictor := &fakePredictor{}
	analyzer := NewProfitAnalyzer(predictor, newProfitHistory(t), nil)
	ctx := context.Background()

	if _, err := analyzer.Analyze(ctx, "  ", "", wheatInput); !errors.Is(err, ErrInvalidProfitInput) {
		t.Errorf("Analyze() blank crop error = %v", err)
	}
	bad := wheatInput
	bad.AreaAcres = -2
	if _, err := analyzer.Analyze(ctx, "Wheat", "", bad); !errors.Is(err, ErrInvalidProfitInput) {
		t.Errorf("Analyze() negative area error = %v", err)
	}
	if predictor.got != (ProfitRequest{}) {
		t.Error("predictor called for invalid input")
	}
	if n := len(analyzer.History(ctx)); n != 0 {
		t.Errorf("invalid analyses stored: %d", n)
	}
}
