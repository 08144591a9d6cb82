package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"insurisk/internal/models"
)

// ErrNoSession is returned when Predict is called without a session token.
// It is fatal for the call only; fallback estimation is unaffected.
var ErrNoSession = errors.New("no valid session for prediction call")

// ServiceError means the prediction endpoint was unreachable or returned a
// non-success status after retries were exhausted. The hybrid combiner
// downgrades it to the fallback path.
type ServiceError struct {
	StatusCode int
	Attempts   int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("prediction service failed after %d attempts: %v", e.Attempts, e.Err)
	}
	return fmt.Sprintf("prediction service returned status %d after %d attempts", e.StatusCode, e.Attempts)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Result carries a prediction plus call metadata for logging.
type Result struct {
	Response *models.MLPredictionResponse
	CacheHit bool
	Attempts int
}

// Predictor is the prediction client contract consumed by the hybrid
// combiner and the controllers.
type Predictor interface {
	Predict(ctx context.Context, in *models.MLModelInput, sessionToken string) (*Result, error)
	HealthCheck(ctx context.Context) error
}

// Client calls the hosted risk model over its authenticated HTTP proxy.
// The response cache and retry policy are injected at construction so tests
// can control time and isolate cache state.
type Client struct {
	endpoint   string
	httpClient *http.Client
	cache      *PredictionCache
	retry      RetryPolicy
}

// NewClient builds a prediction client. A nil cache gets the standard
// 1-hour window; a zero retry policy gets the default 3-attempt backoff.
func NewClient(endpoint string, cache *PredictionCache, retry RetryPolicy) *Client {
	if cache == nil {
		cache = NewPredictionCache(time.Hour, nil)
	}
	if retry.MaxAttempts == 0 {
		retry = DefaultRetryPolicy()
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      cache,
		retry:      retry,
	}
}

// Predict validates the full 38-field input, then serves from cache or calls
// the external endpoint with retries. Identical inputs inside the freshness
// window issue at most one network call.
func (c *Client) Predict(ctx context.Context, in *models.MLModelInput, sessionToken string) (*Result, error) {
	if verr := ValidateInput(in); verr != nil {
		return nil, verr
	}
	if sessionToken == "" {
		return nil, ErrNoSession
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prediction input: %w", err)
	}

	key := string(payload)
	if cached, ok := c.cache.Get(key); ok {
		return &Result{Response: cached, CacheHit: true}, nil
	}

	var response *models.MLPredictionResponse
	var lastStatus int
	attempts, err := c.retry.Do(ctx, func() error {
		resp, status, callErr := c.call(ctx, payload, sessionToken)
		lastStatus = status
		if callErr != nil {
			return callErr
		}
		response = resp
		return nil
	})
	if err != nil {
		return nil, &ServiceError{StatusCode: lastStatus, Attempts: attempts, Err: err}
	}

	c.cache.Put(key, response)
	return &Result{Response: response, Attempts: attempts}, nil
}

func (c *Client) call(ctx context.Context, payload []byte, sessionToken string) (*models.MLPredictionResponse, int, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", fmt.Sprintf("Bearer %s", sessionToken))

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return nil, 0, fmt.Errorf("prediction request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, fmt.Errorf("prediction endpoint returned status %d", resp.StatusCode)
	}

	var prediction models.MLPredictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to decode prediction response: %w", err)
	}
	return &prediction, resp.StatusCode, nil
}

// HealthCheck probes the prediction endpoint's health route.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("prediction service unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
