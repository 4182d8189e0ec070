package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/5w1tchy/pwstrength/internal/api/handlers"
	"github.com/5w1tchy/pwstrength/internal/api/handlers/passwords"
	"github.com/5w1tchy/pwstrength/internal/api/handlers/stats"
	"github.com/5w1tchy/pwstrength/internal/metrics/prom"
	jwtutil "github.com/5w1tchy/pwstrength/internal/security/jwt"
	"github.com/5w1tchy/pwstrength/internal/security/password"
	"github.com/5w1tchy/pwstrength/internal/store/assessments"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptyStats struct{}

func (emptyStats) StatsSince(_ context.Context, since time.Time) (assessments.Stats, error) {
	return assessments.Stats{Since: since, ByStrength: map[string]int{}, ByCode: map[string]int{}}, nil
}

func testRouter(t *testing.T) (http.Handler, *jwtutil.Signer) {
	t.Helper()
	signer := jwtutil.NewSigner(jwtutil.Config{
		Secret:    []byte("0123456789abcdef0123456789abcdef"),
		ClockSkew: time.Minute,
		AccessTTL: time.Minute,
	})
	cheap := password.Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
	m := prom.New(prometheus.NewRegistry(), "test")

	h := Router(Deps{
		Passwords: passwords.NewHandler(password.NewPolicy(password.NewHasher(cheap)), nil, m, zerolog.Nop()),
		Stats:     stats.NewHandler(emptyStats{}, nil, zerolog.Nop()),
		Tokens:    signer,
		Checks:    map[string]handlers.Check{},
		Metrics:   m.Handler(),
	})
	return h, signer
}

func TestRoutes(t *testing.T) {
	h, signer := testRouter(t)
	admin, _, err := signer.SignAccess("ops", jwtutil.RoleAdmin)
	require.NoError(t, err)
	viewer, _, err := signer.SignAccess("bob", "viewer")
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		token  string
		status int
	}{
		{"health", http.MethodGet, "/healthz", "", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", "", http.StatusOK},
		{"strength", http.MethodPost, "/v1/strength", `{"password":"abc"}`, "", http.StatusOK},
		{"strength wrong method", http.MethodGet, "/v1/strength", "", "", http.StatusMethodNotAllowed},
		{"hash weak", http.MethodPost, "/v1/passwords/hash", `{"password":"abc"}`, "", http.StatusUnprocessableEntity},
		{"stats no token", http.MethodGet, "/v1/stats", "", "", http.StatusUnauthorized},
		{"stats wrong role", http.MethodGet, "/v1/stats", "", viewer, http.StatusForbidden},
		{"stats admin", http.MethodGet, "/v1/stats", "", admin, http.StatusOK},
		{"unknown", http.MethodGet, "/v1/nope", "", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
