package restapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitMiddleware_AllowsRequestsWithinLimit(t *testing.T) {
	middleware := NewRateLimitMiddleware(5, time.Second)
	defer middleware.Stop()
	limitedHandler := middleware.Handler(okHandler())

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		limitedHandler.ServeHTTP(w, httptest.NewRequest("GET", "/test?key=test-api-key", nil))
		assert.Equal(t, http.StatusOK, w.Code, "Request %d should be allowed", i+1)
	}
}

func TestRateLimitMiddleware_BlocksRequestsOverLimit(t *testing.T) {
	middleware := NewRateLimitMiddleware(3, time.Second)
	defer middleware.Stop()
	limitedHandler := middleware.Handler(okHandler())

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		limitedHandler.ServeHTTP(w, httptest.NewRequest("GET", "/test?key=test-api-key", nil))
		assert.Equal(t, http.StatusOK, w.Code, "Request %d should be allowed", i+1)
	}

	w := httptest.NewRecorder()
	limitedHandler.ServeHTTP(w, httptest.NewRequest("GET", "/test?key=test-api-key", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")
}

func TestRateLimitMiddleware_PerAPIKeyLimiting(t *testing.T) {
	middleware := NewRateLimitMiddleware(2, time.Second)
	defer middleware.Stop()
	limitedHandler := middleware.Handler(okHandler())

	for _, key := range []string{"key1", "key2"} {
		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			limitedHandler.ServeHTTP(w, httptest.NewRequest("GET", "/test?key="+key, nil))
			assert.Equal(t, http.StatusOK, w.Code, "%s request %d should be allowed", key, i+1)
		}
	}

	w := httptest.NewRecorder()
	limitedHandler.ServeHTTP(w, httptest.NewRequest("GET", "/test?key=key1", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimitMiddleware_ZeroRejectsEverything(t *testing.T) {
	middleware := NewRateLimitMiddleware(0, time.Second)
	defer middleware.Stop()

	w := httptest.NewRecorder()
	middleware.Handler(okHandler()).ServeHTTP(w, httptest.NewRequest("GET", "/test?key=a", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "3600", w.Header().Get("Retry-After"))
}

func TestRateLimitMiddleware_NegativeDisablesLimiting(t *testing.T) {
	middleware := NewRateLimitMiddleware(-1, time.Second)
	defer middleware.Stop()
	limitedHandler := middleware.Handler(okHandler())

	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		limitedHandler.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitMiddleware_ConcurrentKeys(t *testing.T) {
	middleware := NewRateLimitMiddleware(10, time.Second)
	defer middleware.Stop()
	limitedHandler := middleware.Handler(okHandler())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := httptest.NewRecorder()
			limitedHandler.ServeHTTP(w, httptest.NewRequest("GET", fmt.Sprintf("/test?key=key-%d", i), nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}(i)
	}
	wg.Wait()

	middleware.mu.RLock()
	defer middleware.mu.RUnlock()
	assert.Len(t, middleware.limiters, 20)
}

func TestRateLimitMiddleware_StopIsIdempotent(t *testing.T) {
	middleware := NewRateLimitMiddleware(1, time.Second)
	middleware.Stop()
	middleware.Stop()
}

func TestRateLimitAppliesToAPIRoutes(t *testing.T) {
	api := createTestApi(t)
	api.rateLimiter.Stop()
	api.rateLimiter = NewRateLimitMiddleware(1, time.Minute)
	defer api.rateLimiter.Stop()

	resp, _ := serveApiAndRetrieveEndpoint(t, api, "/api/scenarios.json?key=TEST")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/scenarios.json?key=TEST")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, model.Code)
}
