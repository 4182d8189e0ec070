package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the whole process configuration, read from the environment.
type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	Port    string   `envconfig:"PORT" default:":3000"`
	TLSCert string   `envconfig:"TLS_CERT"`
	TLSKey  string   `envconfig:"TLS_KEY"`
	MaxBody int64    `envconfig:"MAX_BODY_SIZE" default:"65536"`
	Strict  bool     `envconfig:"STRICT_SECURITY" default:"false"`
	Origins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://127.0.0.1:5173"`

	DatabaseURL string `envconfig:"DATABASE_URL"`

	RedisURL      string `envconfig:"UPSTASH_REDIS_URL"`
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisUser     string `envconfig:"REDIS_USER"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	RateLimit RateLimit
	Argon2    Argon2
	JWT       JWT
	S3        S3
	Retention Retention
	Recorder  Recorder
}

type RateLimit struct {
	PerSecond float64       `envconfig:"RATE_LIMIT_PER_SECOND" default:"5"`
	Burst     int           `envconfig:"RATE_LIMIT_BURST" default:"20"`
	Window    time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"60m"`
	WindowMax int           `envconfig:"RATE_LIMIT_WINDOW_MAX" default:"3000"`
}

type Argon2 struct {
	Memory      uint32 `envconfig:"ARGON2_MEMORY" default:"131072"` // KiB
	Iterations  uint32 `envconfig:"ARGON2_ITER" default:"3"`
	Parallelism uint8  `envconfig:"ARGON2_PAR" default:"1"`
}

type JWT struct {
	Secret    string        `envconfig:"AUTH_JWT_SECRET"`
	ClockSkew time.Duration `envconfig:"AUTH_CLOCK_SKEW" default:"60s"`
	AccessTTL time.Duration `envconfig:"AUTH_ACCESS_TTL" default:"15m"`
}

type S3 struct {
	Endpoint  string `envconfig:"AWS_ENDPOINT"`
	Region    string `envconfig:"AWS_REGION" default:"auto"`
	Bucket    string `envconfig:"AWS_BUCKET"`
	AccessKey string `envconfig:"AWS_ACCESS_KEY_ID"`
	SecretKey string `envconfig:"AWS_SECRET_ACCESS_KEY"`
	Prefix    string `envconfig:"STATS_EXPORT_PREFIX" default:"pwstrength/stats"`
}

type Retention struct {
	Keep     time.Duration `envconfig:"RETENTION_KEEP" default:"720h"`
	At       string        `envconfig:"RETENTION_AT" default:"03:00"`
	Timezone string        `envconfig:"RETENTION_TZ" default:"UTC"`
}

type Recorder struct {
	Buffer  int `envconfig:"RECORDER_BUFFER" default:"10000"`
	Workers int `envconfig:"RECORDER_WORKERS" default:"2"`
}

// Load reads optional .env files (missing files are ignored) and then
// decodes the environment into a Config.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// RedisConfigured reports whether any Redis connection settings are present.
func (c Config) RedisConfigured() bool {
	return c.RedisURL != "" || c.RedisAddr != ""
}

func (c S3) Enabled() bool {
	return c.Bucket != ""
}
