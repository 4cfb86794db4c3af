package internal

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

// Validate requires every field and a pH between 0 and 14
func (c CropConditions) Validate() error {
	switch {
	case strings.TrimSpace(c.Location) == "":
		return fmt.Errorf("%w: location is required", ErrInvalidCropConditions)
	case strings.TrimSpace(c.SoilType) == "":
		return fmt.Errorf("%w: soil type is required", ErrInvalidCropConditions)
	case strings.TrimSpace(c.MoistureLevel) == "":
		return fmt.Errorf("%w: moisture level is required", ErrInvalidCropConditions)
	case math.IsNaN(c.PHLevel) || c.PHLevel < 0 || c.PHLevel > 14:
		return fmt.Errorf("%w: pH %v outside 0-14", ErrInvalidCropConditions, c.PHLevel)
	}
	return nil
}

// matches reports whether two condition sets describe the same field
func (c CropConditions) matches(other CropConditions) bool {
	return strings.EqualFold(strings.TrimSpace(c.Location), strings.TrimSpace(other.Location)) &&
		strings.EqualFold(strings.TrimSpace(c.SoilType), strings.TrimSpace(other.SoilType)) &&
		strings.EqualFold(strings.TrimSpace(c.MoistureLevel), strings.TrimSpace(other.MoistureLevel)) &&
		c.PHLevel == other.PHLevel
}

// CropRecommender provides remote crop recommendations
type CropRecommender interface {
	RecommendCrops(ctx context.Context, cond CropConditions) (CropRecommendation, *Failure)
}

// CropAdvisor fetches crop recommendations and keeps the delivered ones in
// the recommendation cache. When the service cannot be reached it serves
// the newest saved recommendation for the same conditions, or fixed
// offline advice when there is none.
type CropAdvisor struct {
	recommender CropRecommender
	history     *ReferenceCache[CropRecommendation]
	now         Clock
}

// NewCropAdvisor creates an advisor. recommender may be nil, in which case
// every request is answered offline.
func NewCropAdvisor(recommender CropRecommender, history *ReferenceCache[CropRecommendation], now Clock) *CropAdvisor {
	if now == nil {
		now = time.Now
	}
	return &CropAdvisor{recommender: recommender, history: history, now: now}
}

// Recommend returns a recommendation for cond. Only invalid conditions
// produce an error.
func (a *CropAdvisor) Recommend(ctx context.Context, cond CropConditions) (CropRecommendation, error) {
	if err := cond.Validate(); err != nil {
		return CropRecommendation{}, err
	}

	if a.recommender != nil {
		rec, failure := a.recommender.RecommendCrops(ctx, cond)
		if failure == nil {
			rec.Conditions = cond
			rec.Offline = false
			if a.history != nil {
				a.history.Put(ctx, CacheEntry[CropRecommendation]{Payload: rec, Timestamp: a.now()})
			}
			return rec, nil
		}
		LogWarn("Crop recommendation unavailable: %v", failure)
	}

	for _, entry := range a.History(ctx) {
		if entry.Payload.Conditions.matches(cond) {
			rec := entry.Payload
			rec.Offline = true
			rec.Cached = true
			return rec, nil
		}
	}

	return CropRecommendation{
		Conditions: cond,
		Advice:     RecommendationOfflineAdvice,
		Offline:    true,
	}, nil
}

// History returns saved recommendations, newest first
func (a *CropAdvisor) History(ctx context.Context) []CacheEntry[CropRecommendation] {
	if a.history == nil {
		return nil
	}
	return a.history.GetAll(ctx)
}
