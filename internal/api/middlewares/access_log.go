package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"github.com/5w1tchy/pwstrength/internal/metrics/prom"
	"github.com/rs/zerolog"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// AccessLog logs one line per request and records latency. Bodies are never
// logged: they carry passwords. Must sit inside RequestID and outside
// anything that replaces the request, so r.Pattern is visible after the mux runs.
func AccessLog(log zerolog.Logger, m *prom.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			dur := time.Since(start)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			if m != nil {
				m.RequestLatency.WithLabelValues(route, strconv.Itoa(sw.status/100)+"xx").Observe(dur.Seconds())
			}

			ev := log.Info()
			switch {
			case sw.status >= 500:
				ev = log.Error()
			case sw.status >= 400:
				ev = log.Warn()
			}
			ev.Str("request_id", GetRequestID(r)).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", route).
				Str("ip", clientIP(r)).
				Int("status", sw.status).
				Dur("duration", dur).
				Msg("request")
		})
	}
}
