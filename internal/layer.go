package internal

import (
	"fmt"
	"net/http"
	"time"
)

// Layer wires the store, caches and remote client together for one process
type Layer struct {
	Config   *Config
	Store    *SQLiteStore
	Sessions *SessionStore
	Alerts   *AlertStore
	Client   *SyncClient
	Profit   *ProfitAnalyzer
	Market   *MarketBoard
	Crops    *CropAdvisor
	Clock    Clock

	// ProfitHistory backs Profit; exposed for analyses run without the client
	ProfitHistory *ReferenceCache[ProfitAnalysis]
}

// OpenLayer opens the durable store at cfg.StorePath and builds every component
func OpenLayer(cfg *Config, httpClient *http.Client) (*Layer, error) {
	store, err := OpenStore(cfg.StorePath)
	if err != nil {
		return nil, err
	}

	layer, err := NewLayer(cfg, store, httpClient, time.Now)
	if err != nil {
		store.Close()
		return nil, err
	}
	return layer, nil
}

// NewLayer builds every component over an already open store
func NewLayer(cfg *Config, store *SQLiteStore, httpClient *http.Client, now Clock) (*Layer, error) {
	profitCache, err := NewReferenceCache[ProfitAnalysis](store, NamespaceProfitAnalyses, "", cfg.CacheBound, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create profit cache: %w", err)
	}
	marketCache, err := NewReferenceCache[MarketSnapshot](store, NamespaceMarketPrices, "", cfg.CacheBound, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create market cache: %w", err)
	}
	cropCache, err := NewReferenceCache[CropRecommendation](store, NamespaceCropRecommendations, "", cfg.CacheBound, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create recommendation cache: %w", err)
	}

	client := NewSyncClient(cfg.APIBaseURL, cfg.APITimeout, httpClient)
	return &Layer{
		Config:   cfg,
		Store:    store,
		Sessions: NewSessionStore(store, now),
		Alerts:   NewAlertStore(store, now),
		Client:   client,
		Profit:   NewProfitAnalyzer(client, profitCache, now),
		Market:   NewMarketBoard(client, marketCache, now, cfg.Concurrency),
		Crops:    NewCropAdvisor(client, cropCache, now),
		Clock:    now,

		ProfitHistory: profitCache,
	}, nil
}

// Conversation opens a conversation on sessionID for the given flow
func (l *Layer) Conversation(sessionID string, flow Flow) (*Conversation, error) {
	return NewConversation(sessionID, l.Sessions, l.Client, ConversationOptions{Flow: flow, Clock: l.Clock})
}

// Close releases the durable store
func (l *Layer) Close() error {
	return l.Store.Close()
}
