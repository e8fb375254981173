package ratelimiter_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supersub/supersub/pkg/clientip"
	"github.com/supersub/supersub/pkg/ratelimiter"
)

type brokenStore struct{}

func (brokenStore) ConsumeTokens(context.Context, string, int, ratelimiter.Config) (int, time.Time, error) {
	return 0, time.Time{}, ratelimiter.ErrStoreUnavailable
}

func (brokenStore) Reset(context.Context, string) error {
	return errors.New("unused")
}

func byTenant(r *http.Request) string {
	return r.Header.Get("X-Tenant")
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	cfg := ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute}

	t.Run("limits per key", func(t *testing.T) {
		t.Parallel()
		b, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), cfg)
		require.NoError(t, err)
		h := ratelimiter.Middleware(b, ratelimiter.WithKeyFunc(byTenant))(okHandler())

		send := func(tenant string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/subscription/subscribeTo", nil)
			req.Header.Set("X-Tenant", tenant)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			return rec
		}

		first := send("a")
		assert.Equal(t, http.StatusNoContent, first.Code)
		assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

		second := send("a")
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
		assert.NotEmpty(t, second.Header().Get("Retry-After"))

		assert.Equal(t, http.StatusNoContent, send("b").Code)
	})

	t.Run("custom error handler", func(t *testing.T) {
		t.Parallel()
		b, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), cfg)
		require.NoError(t, err)

		var got error
		h := ratelimiter.Middleware(b,
			ratelimiter.WithKeyFunc(byTenant),
			ratelimiter.WithErrorHandler(func(w http.ResponseWriter, _ *http.Request, err error) {
				got = err
				assert.NotEmpty(t, w.Header().Get("Retry-After"))
				w.WriteHeader(http.StatusTeapot)
			}),
		)(okHandler())

		for _, want := range []int{http.StatusNoContent, http.StatusTeapot} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("X-Tenant", "a")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, want, rec.Code)
		}
		assert.ErrorIs(t, got, ratelimiter.ErrRateLimited)
	})

	t.Run("keys by client ip by default", func(t *testing.T) {
		t.Parallel()
		b, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), cfg)
		require.NoError(t, err)
		h := clientip.WithoutProxy().Middleware(ratelimiter.Middleware(b)(okHandler()))

		send := func(addr string) int {
			req := httptest.NewRequest(http.MethodGet, "/offers", nil)
			req.RemoteAddr = addr
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			return rec.Code
		}

		assert.Equal(t, http.StatusNoContent, send("10.0.0.1:1234"))
		assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:5678"))
		assert.Equal(t, http.StatusNoContent, send("10.0.0.2:1234"))
	})

	t.Run("empty key is not limited", func(t *testing.T) {
		t.Parallel()
		b, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), cfg)
		require.NoError(t, err)
		h := ratelimiter.Middleware(b, ratelimiter.WithKeyFunc(func(*http.Request) string { return "" }))(okHandler())

		for range 3 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
		}
	})

	t.Run("store failure lets requests through", func(t *testing.T) {
		t.Parallel()
		b, err := ratelimiter.NewBucket(brokenStore{}, cfg)
		require.NoError(t, err)
		h := ratelimiter.Middleware(b, ratelimiter.WithKeyFunc(func(*http.Request) string { return "k" }))(okHandler())

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
