package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/5w1tchy/pwstrength/internal/api/httpx"
)

// Check probes one dependency.
type Check func(ctx context.Context) error

const healthTimeout = 2 * time.Second

// Health reports "ok" per dependency, or 503 if any check fails.
// GET /healthz
func Health(checks map[string]Check) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for n := range checks {
		names = append(names, n)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(names))
		for _, n := range names {
			if err := checks[n](ctx); err != nil {
				results[n] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			results[n] = "ok"
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		httpx.WriteJSON(w, status, map[string]any{"status": overall, "checks": results})
	}
}
