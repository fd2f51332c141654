package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis_rate/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/blogsapi/internal/telemetry/metrics"
	"github.com/2beens/blogsapi/pkg"
)

type fakeRateLimiter struct {
	mutex sync.Mutex
	hits  map[string]int
	err   error
}

func newFakeRateLimiter() *fakeRateLimiter {
	return &fakeRateLimiter{hits: make(map[string]int)}
}

func (f *fakeRateLimiter) Allow(_ context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.hits[key]++
	if f.hits[key] > limit.Rate {
		return &redis_rate.Result{Limit: limit, Allowed: 0, RetryAfter: 1500 * time.Millisecond}, nil
	}
	return &redis_rate.Result{Limit: limit, Allowed: 1, Remaining: limit.Rate - f.hits[key]}, nil
}

func rateLimitedRequest(t *testing.T, handler http.Handler, ip string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/blogs", nil)
	req.RemoteAddr = ip + ":41234"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestRateLimit(t *testing.T) {
	limiter := newFakeRateLimiter()
	metricsManager := metrics.NewTestManager()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	handler := RateLimit(limiter, "blogs", 2, false, metricsManager)(next)

	assert.Equal(t, http.StatusCreated, rateLimitedRequest(t, handler, "10.0.0.1").Code)
	assert.Equal(t, http.StatusCreated, rateLimitedRequest(t, handler, "10.0.0.1").Code)

	rr := rateLimitedRequest(t, handler, "10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "2", rr.Header().Get("Retry-After"))
	var errResp pkg.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
	assert.Equal(t, "too many requests, retry after 2 seconds", errResp.Message)
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterRateLimitedRequests))

	// other clients have their own budget
	assert.Equal(t, http.StatusCreated, rateLimitedRequest(t, handler, "10.0.0.2").Code)
	assert.Equal(t, 3, limiter.hits["blogs::10.0.0.1"])
	assert.Equal(t, 1, limiter.hits["blogs::10.0.0.2"])
}

func TestRateLimit_limiterError(t *testing.T) {
	limiter := newFakeRateLimiter()
	limiter.err = errors.New("redis down")

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	})

	rr := rateLimitedRequest(t, RateLimit(limiter, "blogs", 2, false, nil)(next), "10.0.0.1")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.False(t, nextCalled)
}

func TestRateLimit_proxyHeaders(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	spoofed := func(handler http.Handler, realIP string) int {
		req := httptest.NewRequest("POST", "/blogs", nil)
		req.RemoteAddr = "10.0.0.9:41234"
		req.Header.Set("X-Real-Ip", realIP)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	// a new header value per request does not buy a new budget
	limiter := newFakeRateLimiter()
	handler := RateLimit(limiter, "blogs", 2, false, nil)(next)
	assert.Equal(t, http.StatusCreated, spoofed(handler, "1.1.1.1"))
	assert.Equal(t, http.StatusCreated, spoofed(handler, "1.1.1.2"))
	assert.Equal(t, http.StatusTooManyRequests, spoofed(handler, "1.1.1.3"))
	assert.Equal(t, 3, limiter.hits["blogs::10.0.0.9"])

	// behind a trusted proxy the header is the client
	limiter = newFakeRateLimiter()
	handler = RateLimit(limiter, "blogs", 2, true, nil)(next)
	assert.Equal(t, http.StatusCreated, spoofed(handler, "1.1.1.1"))
	assert.Equal(t, 1, limiter.hits["blogs::1.1.1.1"])
	assert.Zero(t, limiter.hits["blogs::10.0.0.9"])
}
