package internal

import "time"

// Modality is the kind of outbound chat request
type Modality string

const (
	ModalityText  Modality = "text"
	ModalityImage Modality = "image"
)

// LocationSnapshot is the user's position captured for one request
type LocationSnapshot struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Address   string  `json:"address,omitempty" yaml:"address,omitempty"`
	Region    string  `json:"region,omitempty" yaml:"region,omitempty"`
	Country   string  `json:"country,omitempty" yaml:"country,omitempty"`
}

// CacheEntry is one item in a reference cache namespace
type CacheEntry[T any] struct {
	Payload   T         `json:"payload" yaml:"payload"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// PriceAlert asks to be told when a crop crosses a target price
type PriceAlert struct {
	Crop        string  `json:"crop" yaml:"crop"`
	TargetPrice float64 `json:"target_price" yaml:"target_price"`
	IsAbove     bool    `json:"is_above" yaml:"is_above"`
}

// MarketPrice is a single quoted price from the remote service
type MarketPrice struct {
	ID         string  `json:"id,omitempty" yaml:"id,omitempty"`
	CropName   string  `json:"crop_name" yaml:"crop_name"`
	PricePerKg float64 `json:"price_per_kg" yaml:"price_per_kg"`
	MarketName string  `json:"market_name" yaml:"market_name"`
	Location   string  `json:"location" yaml:"location"`
	Timestamp  string  `json:"timestamp,omitempty" yaml:"timestamp,omitempty"` // as sent by the service
}

// MarketSnapshot groups the prices fetched for one crop
type MarketSnapshot struct {
	Crop   string        `json:"crop" yaml:"crop"`
	Prices []MarketPrice `json:"prices" yaml:"prices"`
}

// CropConditions describes a field for a crop recommendation
type CropConditions struct {
	Location      string  `json:"location" yaml:"location"`
	SoilType      string  `json:"soil_type" yaml:"soil_type"`
	PHLevel       float64 `json:"ph_level" yaml:"ph_level"`
	MoistureLevel string  `json:"moisture_level" yaml:"moisture_level"`
}

// CropRecommendation is the advice returned for a set of field conditions.
// Offline recommendations carry fixed advice and no crops unless they were
// served from an earlier saved recommendation (Cached).
type CropRecommendation struct {
	Conditions       CropConditions `json:"conditions" yaml:"conditions"`
	RecommendedCrops []string       `json:"recommended_crops" yaml:"recommended_crops"`
	ConfidenceScore  float64        `json:"confidence_score" yaml:"confidence_score"`
	Advice           string         `json:"advice,omitempty" yaml:"advice,omitempty"`
	Offline          bool           `json:"offline" yaml:"offline"`
	Cached           bool           `json:"cached,omitempty" yaml:"cached,omitempty"`
}

// RemoteExchange is one question and answer as recorded by the service
type RemoteExchange struct {
	ID          string `json:"id"`
	SessionID   string `json:"session_id"`
	Message     string `json:"message"`
	Response    string `json:"response"`
	MessageType string `json:"message_type,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"` // as sent by the service
}
