package validate

import (
	"strings"
	"testing"

	"github.com/5w1tchy/pwstrength/internal/config"
)

func validConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	cfg.JWT.Secret = strings.Repeat("s", 32)
	return cfg
}

func TestConfig_OK(t *testing.T) {
	if err := Config(validConfig(t)); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestConfig_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"short secret", func(c *config.Config) { c.JWT.Secret = "short" }},
		{"weak argon memory", func(c *config.Config) { c.Argon2.Memory = 1024 }},
		{"one iteration", func(c *config.Config) { c.Argon2.Iterations = 1 }},
		{"zero burst", func(c *config.Config) { c.RateLimit.Burst = 0 }},
		{"bad retention clock", func(c *config.Config) { c.Retention.At = "25:99" }},
		{"cert without key", func(c *config.Config) { c.TLSCert = "cert.pem" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)
			if err := Config(cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestHardeningWarnings_Production(t *testing.T) {
	cfg := validConfig(t)
	cfg.AppEnv = "production"
	cfg.RedisURL = "redis://default:x@host:6379"

	warns := HardeningWarnings(cfg)
	joined := strings.Join(warns, "\n")
	for _, want := range []string{"TLS_CERT", "rediss://", "DATABASE_URL"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected warning mentioning %s, got:\n%s", want, joined)
		}
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("03:30")
	if err != nil || h != 3 || m != 30 {
		t.Fatalf("got %d:%d err=%v", h, m, err)
	}
	if _, _, err := ParseClock("3pm"); err == nil {
		t.Fatal("expected error")
	}
}
