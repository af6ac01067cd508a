package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:        2 * time.Second,
		RetryDelay:     time.Millisecond,
		Multiplier:     1,
		Threshold:      3,
		BreakerTimeout: time.Minute,
	}
}

func TestGetWithRetryReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "v", r.URL.Query().Get("k"))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewBaseClient("test", testClientConfig(), zap.NewNop())
	body, err := c.GetWithRetry(context.Background(), srv.URL, map[string][]string{"k": {"v"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestGetWithRetryDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer srv.Close()

	cfg := testClientConfig()
	cfg.MaxRetries = 2
	c := NewBaseClient("test", cfg, zap.NewNop())

	_, err := c.GetWithRetry(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.EqualValues(t, 1, calls.Load())
}

func TestGetWithRetryRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	cfg := testClientConfig()
	cfg.MaxRetries = 2
	c := NewBaseClient("test", cfg, zap.NewNop())

	_, err := c.GetWithRetry(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, calls.Load())
}

func TestClientErrorsDoNotOpenBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewBaseClient("test", testClientConfig(), zap.NewNop())
	for i := 0; i < 5; i++ {
		_, err := c.GetWithRetry(context.Background(), srv.URL, nil)
		require.True(t, IsStatus(err, http.StatusNotFound), "attempt %d: %v", i, err)
	}
	assert.Equal(t, gobreaker.StateClosed, c.circuitBreaker.State())
}

func TestServerErrorsOpenBreaker(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewBaseClient("test", testClientConfig(), zap.NewNop())
	for i := 0; i < 3; i++ {
		_, err := c.GetWithRetry(context.Background(), srv.URL, nil)
		require.True(t, IsStatus(err, http.StatusServiceUnavailable))
	}

	_, err := c.GetWithRetry(context.Background(), srv.URL, nil)
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.EqualValues(t, 3, calls.Load())
}

func TestGetWithRetryRateLimitHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	cfg := testClientConfig()
	cfg.RateLimit = 0.001
	cfg.Burst = 1
	c := NewBaseClient("test", cfg, zap.NewNop())

	_, err := c.GetWithRetry(context.Background(), srv.URL, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.GetWithRetry(ctx, srv.URL, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait canceled")
}
