package router

import (
	"net/http"

	"github.com/5w1tchy/pwstrength/internal/api/handlers"
	"github.com/5w1tchy/pwstrength/internal/api/handlers/passwords"
	"github.com/5w1tchy/pwstrength/internal/api/handlers/stats"
	"github.com/5w1tchy/pwstrength/internal/api/middlewares"
	jwtutil "github.com/5w1tchy/pwstrength/internal/security/jwt"
)

// Deps are the handlers and collaborators the routes need.
type Deps struct {
	Passwords *passwords.Handler
	Stats     *stats.Handler
	Tokens    middlewares.TokenParser
	Checks    map[string]handlers.Check
	Metrics   http.Handler // nil disables /metrics
}

func Router(d Deps) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /healthz", handlers.Health(d.Checks))
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics)
	}

	mux.HandleFunc("POST /v1/strength", d.Passwords.Strength)
	mux.HandleFunc("POST /v1/passwords/hash", d.Passwords.Hash)

	// Admin only
	mux.Handle("GET /v1/stats", middlewares.RequireRole(d.Tokens, jwtutil.RoleAdmin, http.HandlerFunc(d.Stats.Stats)))

	return mux
}
