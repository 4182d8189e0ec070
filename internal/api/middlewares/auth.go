package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/5w1tchy/pwstrength/internal/api/apperr"
	jwtutil "github.com/5w1tchy/pwstrength/internal/security/jwt"
)

// TokenParser verifies a bearer token and returns its claims.
type TokenParser interface {
	ParseAccess(token string) (*jwtutil.AccessClaims, error)
}

// RequireRole verifies the Bearer JWT, checks its role claim, then injects the
// subject into the context.
func RequireRole(tp TokenParser, role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("Authorization")
		if raw == "" {
			apperr.WriteStatus(w, r, http.StatusUnauthorized, "Unauthorized", "missing Authorization header")
			return
		}
		tokenStr, err := bearer(raw)
		if err != nil {
			apperr.WriteStatus(w, r, http.StatusUnauthorized, "Unauthorized", "invalid Authorization header")
			return
		}
		claims, err := tp.ParseAccess(tokenStr)
		if err != nil {
			apperr.WriteStatus(w, r, http.StatusUnauthorized, "Unauthorized", "invalid token")
			return
		}
		if claims.Role != role {
			apperr.WriteStatus(w, r, http.StatusForbidden, "Forbidden", "")
			return
		}

		ctx := WithSubject(r.Context(), claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearer(h string) (string, error) {
	const prefix = "bearer "
	if len(h) < len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", errors.New("no bearer")
	}
	tok := strings.TrimSpace(h[len(prefix):])
	if tok == "" {
		return "", errors.New("empty bearer")
	}
	return tok, nil
}
