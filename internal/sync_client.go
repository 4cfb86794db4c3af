package internal

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultRequestTimeout bounds every call to the remote service
const DefaultRequestTimeout = 20 * time.Second

// maxResponseBytes caps how much of a response body is read
const maxResponseBytes = 8 << 20

// FailureReason classifies why a remote call did not deliver
type FailureReason string

const (
	FailureUnreachable FailureReason = "unreachable"
	FailureBadStatus   FailureReason = "bad_status"
	FailureMalformed   FailureReason = "malformed_response"
)

// Failure is the terminal state of an undelivered call
type Failure struct {
	Reason     FailureReason
	StatusCode int // set for FailureBadStatus
	Err        error
}

func (f *Failure) Error() string {
	if f.Reason == FailureBadStatus {
		return fmt.Sprintf("%s(%d): %v", f.Reason, f.StatusCode, f.Err)
	}
	return fmt.Sprintf("%s: %v", f.Reason, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Outcome is the result of one chat send: delivered, or failed with a reason
type Outcome struct {
	Delivered        bool
	Response         string
	DetectedLanguage string
	RemoteMessageID  string
	Failure          *Failure
}

// Dispatcher sends a chat envelope and always yields an outcome
type Dispatcher interface {
	Send(ctx context.Context, env RequestEnvelope) Outcome
}

// SyncClient talks to the remote advisory service. Each call makes exactly
// one attempt bounded by the configured timeout.
type SyncClient struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewSyncClient creates a client for baseURL. A nil httpClient uses
// http.DefaultClient; a non-positive timeout uses DefaultRequestTimeout.
func NewSyncClient(baseURL string, timeout time.Duration, httpClient *http.Client) *SyncClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &SyncClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: httpClient,
	}
}

type chatRequest struct {
	Message     string            `json:"message"`
	SessionID   string            `json:"session_id"`
	MessageType string            `json:"message_type"`
	Language    string            `json:"language,omitempty"`
	Location    *LocationSnapshot `json:"location,omitempty"`
	ImageData   string            `json:"image_data,omitempty"`
}

type chatResponse struct {
	MessageID          string `json:"message_id"`
	Response           string `json:"response"`
	TranslatedResponse string `json:"translated_response,omitempty"`
	DetectedLanguage   string `json:"detected_language,omitempty"`
}

// Send posts the envelope to /api/chat
func (c *SyncClient) Send(ctx context.Context, env RequestEnvelope) Outcome {
	req := chatRequest{
		Message:     env.Text,
		SessionID:   env.SessionID,
		MessageType: string(env.Modality),
		Language:    env.Language,
		Location:    env.Location,
	}
	if len(env.ImageData) > 0 {
		req.ImageData = base64.StdEncoding.EncodeToString(env.ImageData)
	}

	var resp chatResponse
	if failure := c.do(ctx, http.MethodPost, "/api/chat", req, &resp); failure != nil {
		LogWarn("Chat send failed for session %s: %v", env.SessionID, failure)
		return Outcome{Failure: failure}
	}

	text := resp.Response
	if strings.TrimSpace(resp.TranslatedResponse) != "" {
		text = resp.TranslatedResponse
	}
	if strings.TrimSpace(text) == "" {
		failure := &Failure{
			Reason: FailureMalformed,
			Err:    &DecodeError{Endpoint: "/api/chat", Err: errors.New("response text missing")},
		}
		LogWarn("Chat send failed for session %s: %v", env.SessionID, failure)
		return Outcome{Failure: failure}
	}

	return Outcome{
		Delivered:        true,
		Response:         text,
		DetectedLanguage: resp.DetectedLanguage,
		RemoteMessageID:  resp.MessageID,
	}
}

// ProfitRequest is the body of a remote profit prediction
type ProfitRequest struct {
	CropName  string  `json:"crop_name"`
	AreaAcres float64 `json:"area_acres"`
	Location  string  `json:"location"`
}

// ProfitPrediction is the remote enrichment for a profit analysis
type ProfitPrediction struct {
	Analysis string          `json:"analysis,omitempty"`
	Raw      json.RawMessage `json:"raw,omitempty"`
}

// PredictProfit asks the service for a profit analysis
func (c *SyncClient) PredictProfit(ctx context.Context, req ProfitRequest) (ProfitPrediction, *Failure) {
	var raw json.RawMessage
	if failure := c.do(ctx, http.MethodPost, "/api/market/predict-profit", req, &raw); failure != nil {
		return ProfitPrediction{}, failure
	}

	prediction := ProfitPrediction{Raw: raw}
	var fields struct {
		ProfitAnalysis string `json:"profit_analysis"`
	}
	if err := json.Unmarshal(raw, &fields); err == nil {
		prediction.Analysis = fields.ProfitAnalysis
	}
	return prediction, nil
}

// FetchMarketPrices returns the latest prices, optionally for one crop
func (c *SyncClient) FetchMarketPrices(ctx context.Context, crop string) ([]MarketPrice, *Failure) {
	path := "/api/market/prices"
	if crop != "" {
		path += "?crop=" + url.QueryEscape(crop)
	}

	var prices []MarketPrice
	if failure := c.do(ctx, http.MethodGet, path, nil, &prices); failure != nil {
		return nil, failure
	}
	return prices, nil
}

type recommendResponse struct {
	Recommendation struct {
		RecommendedCrops []string `json:"recommended_crops"`
		ConfidenceScore  float64  `json:"confidence_score"`
	} `json:"recommendation"`
	AIAdvice string `json:"ai_advice"`
}

// RecommendCrops asks the service which crops suit the given conditions.
// The service takes the conditions as query parameters.
func (c *SyncClient) RecommendCrops(ctx context.Context, cond CropConditions) (CropRecommendation, *Failure) {
	query := url.Values{}
	query.Set("location", cond.Location)
	query.Set("soil_type", cond.SoilType)
	query.Set("ph_level", strconv.FormatFloat(cond.PHLevel, 'f', -1, 64))
	query.Set("moisture_level", cond.MoistureLevel)

	var resp recommendResponse
	if failure := c.do(ctx, http.MethodPost, "/api/crops/recommend?"+query.Encode(), nil, &resp); failure != nil {
		return CropRecommendation{}, failure
	}
	if len(resp.Recommendation.RecommendedCrops) == 0 && strings.TrimSpace(resp.AIAdvice) == "" {
		return CropRecommendation{}, &Failure{
			Reason: FailureMalformed,
			Err:    &DecodeError{Endpoint: "/api/crops/recommend", Err: errors.New("recommendation missing")},
		}
	}

	return CropRecommendation{
		Conditions:       cond,
		RecommendedCrops: resp.Recommendation.RecommendedCrops,
		ConfidenceScore:  resp.Recommendation.ConfidenceScore,
		Advice:           resp.AIAdvice,
	}, nil
}

// FetchHistory returns the exchanges the service recorded for a session,
// oldest first
func (c *SyncClient) FetchHistory(ctx context.Context, sessionID string) ([]RemoteExchange, *Failure) {
	var exchanges []RemoteExchange
	if failure := c.do(ctx, http.MethodGet, "/api/chat/"+url.PathEscape(sessionID), nil, &exchanges); failure != nil {
		return nil, failure
	}
	if exchanges == nil {
		exchanges = []RemoteExchange{}
	}
	return exchanges, nil
}

// Ping checks that the service answers on its root endpoint
func (c *SyncClient) Ping(ctx context.Context) *Failure {
	var resp struct {
		Message string `json:"message"`
	}
	return c.do(ctx, http.MethodGet, "/api/", nil, &resp)
}

// do performs one request and decodes a 2xx JSON body into out
func (c *SyncClient) do(ctx context.Context, method, path string, in, out any) *Failure {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := strings.SplitN(path, "?", 2)[0]

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &Failure{Reason: FailureMalformed, Err: fmt.Errorf("failed to encode request: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Failure{Reason: FailureUnreachable, Err: &TransportError{Endpoint: endpoint, Err: err}}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	LogDebug("%s %s", method, c.baseURL+path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Failure{Reason: FailureUnreachable, Err: &TransportError{Endpoint: endpoint, Err: err}}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return &Failure{
			Reason:     FailureBadStatus,
			StatusCode: resp.StatusCode,
			Err:        &ProtocolError{Endpoint: endpoint, StatusCode: resp.StatusCode},
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &Failure{Reason: FailureUnreachable, Err: &TransportError{Endpoint: endpoint, Err: err}}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Failure{Reason: FailureMalformed, Err: &DecodeError{Endpoint: endpoint, Err: err}}
	}
	return nil
}
