package middlewares

import (
	"net/http"
	"runtime/debug"

	"github.com/5w1tchy/pwstrength/internal/api/apperr"
	"github.com/rs/zerolog"
)

func Recovery(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					rid := GetRequestID(r)
					if rid == "" {
						rid = "unknown"
					}

					log.Error().
						Str("request_id", rid).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Interface("panic", err).
						Bytes("stack", debug.Stack()).
						Msg("panic recovered")

					// Don't expose internal errors to client
					apperr.WriteStatus(w, r, http.StatusInternalServerError, "Internal Server Error", "")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
