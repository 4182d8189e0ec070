package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/5w1tchy/pwstrength/internal/config"
	"github.com/5w1tchy/pwstrength/internal/logger"
	"github.com/5w1tchy/pwstrength/internal/repository/sqlconnect"
	"github.com/5w1tchy/pwstrength/internal/store/migrations"
)

func main() {
	envFile := flag.String("env", ".env", "optional .env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: !cfg.IsProduction()})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := sqlconnect.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	if err := migrations.Up(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}
	log.Info().Msg("migrations applied")
}
