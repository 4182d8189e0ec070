package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/5w1tchy/pwstrength/internal/config"
	"github.com/5w1tchy/pwstrength/internal/logger"
	jwtutil "github.com/5w1tchy/pwstrength/internal/security/jwt"
	"github.com/5w1tchy/pwstrength/internal/validate"
)

// Prints an admin access token for GET /v1/stats.
func main() {
	subject := flag.String("sub", "ops", "token subject")
	ttl := flag.Duration("ttl", 0, "token lifetime (default AUTH_ACCESS_TTL)")
	envFile := flag.String("env", ".env", "optional .env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true, Output: os.Stderr})

	if *ttl > 0 {
		cfg.JWT.AccessTTL = *ttl
	}
	if err := validate.Config(cfg); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	if cfg.JWT.AccessTTL > 24*time.Hour {
		log.Warn().Dur("ttl", cfg.JWT.AccessTTL).Msg("long-lived admin token")
	}

	tok, jti, err := jwtutil.NewSigner(jwtutil.ConfigFrom(cfg.JWT)).SignAccess(*subject, jwtutil.RoleAdmin)
	if err != nil {
		log.Fatal().Err(err).Msg("sign failed")
	}
	log.Info().Str("sub", *subject).Str("jti", jti).Dur("ttl", cfg.JWT.AccessTTL).Msg("admin token issued")
	fmt.Println(tok)
}
