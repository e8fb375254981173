package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/supersub/supersub/pkg/logger"
)

// Check is a named dependency check, such as pg.Healthcheck(pool).
type Check struct {
	Name string
	Fn   func(context.Context) error
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Liveness answers 200 ALIVE while the process can serve requests.
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeHealth(w, http.StatusOK, healthResponse{Status: "ALIVE"})
	}
}

// Readiness runs all checks concurrently, each bounded by timeout, and answers
// 200 READY or 503 NOT_READY with per-check results.
func Readiness(log *slog.Logger, timeout time.Duration, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		var (
			mu      sync.Mutex
			g       errgroup.Group
			results = make(map[string]string, len(checks))
			healthy = true
		)
		for _, c := range checks {
			g.Go(func() error {
				err := c.Fn(ctx)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					healthy = false
					results[c.Name] = "error"
					log.ErrorContext(ctx, "readiness check failed", logger.Component(c.Name), logger.Error(err))
					return nil
				}
				results[c.Name] = "ok"
				return nil
			})
		}
		_ = g.Wait()

		if !healthy {
			writeHealth(w, http.StatusServiceUnavailable, healthResponse{Status: "NOT_READY", Checks: results})
			return
		}
		writeHealth(w, http.StatusOK, healthResponse{Status: "READY", Checks: results})
	}
}

func writeHealth(w http.ResponseWriter, status int, body healthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
