package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/5w1tchy/pwstrength/internal/api/apperr"
	"github.com/5w1tchy/pwstrength/internal/api/httpx"
	"github.com/5w1tchy/pwstrength/internal/store/assessments"
)

// GET /v1/stats?window=24h
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.Sto == nil {
		apperr.WriteStatus(w, r, http.StatusServiceUnavailable, "Service Unavailable", "assessment recording is disabled")
		return
	}

	window, err := parseWindow(r.URL.Query().Get("window"))
	if err != nil {
		apperr.Write(w, r, apperr.Problem{
			Status:      http.StatusBadRequest,
			Title:       "Bad Request",
			FieldErrors: []apperr.FieldError{{Field: "window", Code: "invalid", Message: err.Error()}},
		})
		return
	}

	ctx := r.Context()
	key := cacheKeyPrefix + window.String()

	if st, ok := h.getCachedStats(ctx, key); ok {
		httpx.OK(w, st)
		return
	}

	now := time.Now().UTC()
	if h.now != nil {
		now = h.now().UTC()
	}
	st, err := h.Sto.StatsSince(ctx, now.Add(-window))
	if apperr.HandleDBError(w, r, err, "Stats unavailable") {
		h.Log.Warn().Err(err).Dur("window", window).Msg("stats query failed")
		return
	}

	h.cacheStats(ctx, key, st)
	httpx.OK(w, st)
}

func parseWindow(q string) (time.Duration, error) {
	if q == "" {
		return defaultWindow, nil
	}
	d, err := time.ParseDuration(q)
	if err != nil {
		return 0, fmt.Errorf("not a duration: %q", q)
	}
	if d <= 0 || d > maxWindow {
		return 0, fmt.Errorf("must be between 0 and %s", maxWindow)
	}
	return d, nil
}

func (h *Handler) getCachedStats(ctx context.Context, key string) (assessments.Stats, bool) {
	var st assessments.Stats
	if h.RDB == nil {
		return st, false
	}
	cached, err := h.RDB.Get(ctx, key).Bytes()
	if err != nil || len(cached) == 0 {
		return st, false
	}
	if err := json.Unmarshal(cached, &st); err != nil {
		return st, false
	}
	return st, true
}

func (h *Handler) cacheStats(ctx context.Context, key string, st assessments.Stats) {
	if h.RDB == nil {
		return
	}
	b, err := json.Marshal(st)
	if err != nil {
		return
	}
	_ = h.RDB.SetEx(ctx, key, b, cacheDuration).Err()
}
