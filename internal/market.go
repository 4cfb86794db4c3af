package internal

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// allCrops labels a snapshot fetched without a crop filter
const allCrops = "all"

// PriceFetcher fetches market prices from the remote service
type PriceFetcher interface {
	FetchMarketPrices(ctx context.Context, crop string) ([]MarketPrice, *Failure)
}

// MarketBoard keeps the market price snapshot cache fresh
type MarketBoard struct {
	fetcher     PriceFetcher
	cache       *ReferenceCache[MarketSnapshot]
	now         Clock
	concurrency int
}

// MarketRefresh reports what a refresh produced
type MarketRefresh struct {
	Snapshots []CacheEntry[MarketSnapshot]
	Failed    map[string]*Failure
}

// Stale reports whether any crop could not be refreshed
func (r MarketRefresh) Stale() bool {
	return len(r.Failed) > 0
}

// NewMarketBoard creates a market board fetching up to concurrency crops at once
func NewMarketBoard(fetcher PriceFetcher, cache *ReferenceCache[MarketSnapshot], now Clock, concurrency int) *MarketBoard {
	if now == nil {
		now = time.Now
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &MarketBoard{fetcher: fetcher, cache: cache, now: now, concurrency: concurrency}
}

// Refresh fetches prices for each crop (or all prices when crops is empty)
// and overwrites the snapshot cache. Crops that fail keep their previously
// cached snapshot, so the board always has something to show.
func (m *MarketBoard) Refresh(ctx context.Context, crops []string) MarketRefresh {
	crops = normalizeCrops(crops)

	type fetched struct {
		prices  []MarketPrice
		failure *Failure
	}
	results := make([]fetched, len(crops))

	var g errgroup.Group
	g.SetLimit(m.concurrency)
	for i, crop := range crops {
		i, crop := i, crop
		g.Go(func() error {
			filter := crop
			if crop == allCrops {
				filter = ""
			}
			prices, failure := m.fetcher.FetchMarketPrices(ctx, filter)
			results[i] = fetched{prices: prices, failure: failure}
			return nil
		})
	}
	_ = g.Wait()

	cached := make(map[string]CacheEntry[MarketSnapshot])
	for _, entry := range m.cache.GetAll(ctx) {
		cached[entry.Payload.Crop] = entry
	}

	refresh := MarketRefresh{Failed: make(map[string]*Failure)}
	entries := make([]CacheEntry[MarketSnapshot], 0, len(crops))
	now := m.now()
	for i, crop := range crops {
		if results[i].failure != nil {
			refresh.Failed[crop] = results[i].failure
			LogWarn("Market prices for %s unavailable: %v", crop, results[i].failure)
			if entry, ok := cached[crop]; ok {
				entries = append(entries, entry)
			}
			continue
		}
		prices := results[i].prices
		if prices == nil {
			prices = []MarketPrice{}
		}
		entries = append(entries, CacheEntry[MarketSnapshot]{
			Payload:   MarketSnapshot{Crop: crop, Prices: prices},
			Timestamp: now,
		})
	}

	if len(refresh.Failed) == len(crops) {
		// Nothing new; leave the cache exactly as it was.
		refresh.Snapshots = m.cache.GetAll(ctx)
		return refresh
	}

	refresh.Snapshots = m.cache.ReplaceAll(ctx, entries)
	return refresh
}

// Cached returns the stored snapshots without touching the network
func (m *MarketBoard) Cached(ctx context.Context) []CacheEntry[MarketSnapshot] {
	return m.cache.GetAll(ctx)
}

func normalizeCrops(crops []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(crops))
	for _, c := range crops {
		c = strings.TrimSpace(c)
		if c == "" || seen[strings.ToLower(c)] {
			continue
		}
		seen[strings.ToLower(c)] = true
		out = append(out, c)
	}
	if len(out) == 0 {
		out = append(out, allCrops)
	}
	return out
}
