package ml

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"insurisk/internal/models"
)

func noSleep(ctx context.Context, d time.Duration) error { return nil }

func predictionServer(t *testing.T, calls *int32, resp models.MLPredictionResponse) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer session-abc", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in models.MLModelInput
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestPredictRejectsIncompleteInput(t *testing.T) {
	client := NewClient("http://unused", nil, RetryPolicy{MaxAttempts: 1, Sleep: noSleep})

	result, err := client.Predict(context.Background(), &models.MLModelInput{}, "session-abc")

	assert.Nil(t, result)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Len(t, verr.MissingFields, len(models.MLInputFieldNames))
}

func TestPredictRequiresSessionToken(t *testing.T) {
	client := NewClient("http://unused", nil, RetryPolicy{MaxAttempts: 1, Sleep: noSleep})

	result, err := client.Predict(context.Background(), fullInput(), "")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestPredictCallsEndpointAndCaches(t *testing.T) {
	var calls int32
	server := predictionServer(t, &calls, models.MLPredictionResponse{
		RiskCategory:          "Medium",
		RiskConfidence:        0.87,
		CustomerLifetimeValue: 240000,
	})
	defer server.Close()

	client := NewClient(server.URL, nil, RetryPolicy{MaxAttempts: 3, Sleep: noSleep})

	first, err := client.Predict(context.Background(), fullInput(), "session-abc")
	assert.NoError(t, err)
	assert.False(t, first.CacheHit)
	assert.Equal(t, 1, first.Attempts)
	assert.Equal(t, "Medium", first.Response.RiskCategory)
	assert.Equal(t, 0.87, first.Response.RiskConfidence)

	// Identical input inside the freshness window never reaches the network.
	second, err := client.Predict(context.Background(), fullInput(), "session-abc")
	assert.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Response, second.Response)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestPredictRefetchesAfterCacheExpiry(t *testing.T) {
	var calls int32
	server := predictionServer(t, &calls, models.MLPredictionResponse{RiskCategory: "Low"})
	defer server.Close()

	clock := newFakeClock()
	cache := NewPredictionCache(time.Hour, clock.Now)
	client := NewClient(server.URL, cache, RetryPolicy{MaxAttempts: 3, Sleep: noSleep})

	_, err := client.Predict(context.Background(), fullInput(), "session-abc")
	assert.NoError(t, err)

	clock.Advance(time.Hour + time.Minute)

	result, err := client.Predict(context.Background(), fullInput(), "session-abc")
	assert.NoError(t, err)
	assert.False(t, result.CacheHit)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestPredictDistinctInputsUseDistinctCacheEntries(t *testing.T) {
	var calls int32
	server := predictionServer(t, &calls, models.MLPredictionResponse{RiskCategory: "Medium"})
	defer server.Close()

	client := NewClient(server.URL, nil, RetryPolicy{MaxAttempts: 3, Sleep: noSleep})

	_, err := client.Predict(context.Background(), fullInput(), "session-abc")
	assert.NoError(t, err)

	other := fullInput()
	other.Age = intp(55)
	_, err = client.Predict(context.Background(), other, "session-abc")
	assert.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestPredictRetriesThenReportsServiceError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, RetryPolicy{MaxAttempts: 3, Sleep: noSleep})

	result, err := client.Predict(context.Background(), fullInput(), "session-abc")

	assert.Nil(t, result)
	var serr *ServiceError
	assert.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusInternalServerError, serr.StatusCode)
	assert.Equal(t, 3, serr.Attempts)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestPredictRecoversOnLaterAttempt(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(models.MLPredictionResponse{RiskCategory: "High"})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, RetryPolicy{MaxAttempts: 3, Sleep: noSleep})

	result, err := client.Predict(context.Background(), fullInput(), "session-abc")

	assert.NoError(t, err)
	assert.Equal(t, 3, result.Attempts)
	assert.Equal(t, "High", result.Response.RiskCategory)
}

func TestHealthCheck(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	client := NewClient(healthy.URL, nil, DefaultRetryPolicy())
	assert.NoError(t, client.HealthCheck(context.Background()))

	unhealthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer unhealthy.Close()

	client = NewClient(unhealthy.URL, nil, DefaultRetryPolicy())
	assert.Error(t, client.HealthCheck(context.Background()))
}
