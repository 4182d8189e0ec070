package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/5w1tchy/pwstrength/internal/config"
	"github.com/redis/go-redis/v9"
)

// Config validates settings the API cannot run safely without.
// Fail-fast on bad config.
func Config(cfg config.Config) error {
	// JWT secret must be present & reasonably long
	if len(cfg.JWT.Secret) < 32 {
		return errors.New("AUTH_JWT_SECRET must be at least 32 characters")
	}
	if cfg.JWT.AccessTTL <= 0 {
		return fmt.Errorf("AUTH_ACCESS_TTL: invalid duration %s", cfg.JWT.AccessTTL)
	}

	// Argon2 lower bounds
	if cfg.Argon2.Memory < 65536 { // >= 64MiB
		return fmt.Errorf("ARGON2_MEMORY: must be >= %d", 65536)
	}
	if cfg.Argon2.Iterations < 2 {
		return fmt.Errorf("ARGON2_ITER: must be >= %d", 2)
	}
	if cfg.Argon2.Parallelism < 1 {
		return fmt.Errorf("ARGON2_PAR: must be >= %d", 1)
	}

	if cfg.RateLimit.PerSecond <= 0 || cfg.RateLimit.Burst < 1 {
		return errors.New("RATE_LIMIT_PER_SECOND and RATE_LIMIT_BURST must be positive")
	}
	if cfg.MaxBody <= 0 {
		return errors.New("MAX_BODY_SIZE must be positive")
	}
	if _, _, err := ParseClock(cfg.Retention.At); err != nil {
		return fmt.Errorf("RETENTION_AT: %w", err)
	}
	if (cfg.TLSCert == "") != (cfg.TLSKey == "") {
		return errors.New("TLS_CERT and TLS_KEY must be set together")
	}
	return nil
}

// HardeningWarnings returns non-fatal warnings you may want to log on startup.
func HardeningWarnings(cfg config.Config) []string {
	var warns []string

	// Access TTL unusually long?
	if cfg.JWT.AccessTTL > time.Hour {
		warns = append(warns, fmt.Sprintf("AUTH_ACCESS_TTL=%s is > 1h; consider shorter admin tokens", cfg.JWT.AccessTTL))
	}
	if cfg.DatabaseURL == "" {
		warns = append(warns, "DATABASE_URL not set; assessments are not recorded and /v1/stats is disabled")
	}
	if !cfg.RedisConfigured() {
		warns = append(warns, "no Redis configured; rate limiting is disabled")
	}

	// Production-specific nudges
	if cfg.IsProduction() {
		if cfg.TLSCert == "" {
			warns = append(warns, "TLS_CERT/TLS_KEY not set; serving plain HTTP in production")
		}
		// Redis transport/auth checks
		if strings.HasPrefix(cfg.RedisURL, "redis://") {
			warns = append(warns, "UPSTASH_REDIS_URL uses redis:// (no TLS). Prefer rediss:// for TLS")
		}
		if cfg.RedisURL == "" && cfg.RedisAddr != "" {
			if cfg.RedisPassword == "" || cfg.RedisUser == "" {
				warns = append(warns, "REDIS_ADDR provided without REDIS_USER/REDIS_PASSWORD; require auth in production")
			}
		}
	}

	return warns
}

// PingRedis checks connectivity with a short timeout.
func PingRedis(rdb *redis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_, err := rdb.Ping(ctx).Result()
	return err
}

// ParseClock parses "HH:MM" (24h).
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q", s)
	}
	return t.Hour(), t.Minute(), nil
}
