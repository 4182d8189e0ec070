package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/5w1tchy/pwstrength/internal/api/handlers"
	"github.com/5w1tchy/pwstrength/internal/api/handlers/passwords"
	"github.com/5w1tchy/pwstrength/internal/api/handlers/stats"
	mw "github.com/5w1tchy/pwstrength/internal/api/middlewares"
	"github.com/5w1tchy/pwstrength/internal/api/router"
	"github.com/5w1tchy/pwstrength/internal/config"
	"github.com/5w1tchy/pwstrength/internal/logger"
	"github.com/5w1tchy/pwstrength/internal/maintenance"
	"github.com/5w1tchy/pwstrength/internal/metrics/prom"
	"github.com/5w1tchy/pwstrength/internal/metrics/recorder"
	"github.com/5w1tchy/pwstrength/internal/repository/sqlconnect"
	jwtutil "github.com/5w1tchy/pwstrength/internal/security/jwt"
	"github.com/5w1tchy/pwstrength/internal/security/password"
	"github.com/5w1tchy/pwstrength/internal/storage/s3"
	"github.com/5w1tchy/pwstrength/internal/store/assessments"
	"github.com/5w1tchy/pwstrength/internal/store/migrations"
	"github.com/5w1tchy/pwstrength/internal/validate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load(".env", "../../.env")
	if err != nil {
		boot := logger.New(logger.Config{})
		boot.Fatal().Err(err).Msg("config load failed")
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: !cfg.IsProduction()})

	// Fail fast on bad config
	if err := validate.Config(cfg); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	for _, w := range validate.HardeningWarnings(cfg) {
		log.Warn().Msg(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := prom.New(reg, "pwstrength")

	checks := map[string]handlers.Check{}

	var rdb *redis.Client
	if cfg.RedisConfigured() {
		rdb, err = newRedis(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("redis config")
		}
		if err := validate.PingRedis(rdb, 3*time.Second); err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		log.Info().Msg("connected to redis")
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	var (
		db  *sql.DB
		rec *recorder.Recorder
		// interfaces stay nil unless their backing store exists
		recIface   passwords.Recorder
		statsSrc   stats.Source
		statsCache redis.Cmdable
	)
	if rdb != nil {
		statsCache = rdb
	}
	if cfg.DatabaseURL != "" {
		db, err = sqlconnect.ConnectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("database connection failed")
		}
		if err := migrations.Up(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("migrations failed")
		}
		log.Info().Msg("connected to database")
		checks["db"] = db.PingContext

		sto := assessments.New(db)
		statsSrc = sto

		rec = recorder.New(sto, cfg.Recorder.Buffer, log)
		rec.Start(cfg.Recorder.Workers)
		recIface = rec

		startRetention(ctx, cfg, sto, log)
	}

	signer := jwtutil.NewSigner(jwtutil.ConfigFrom(cfg.JWT))
	policy := password.NewPolicy(password.NewHasher(password.ParamsFromConfig(cfg.Argon2)))

	mux := router.Router(router.Deps{
		Passwords: passwords.NewHandler(policy, recIface, metrics, log),
		Stats:     stats.NewHandler(statsSrc, statsCache, log),
		Tokens:    signer,
		Checks:    checks,
		Metrics:   metrics.Handler(),
	})

	chain := []mw.Middleware{
		mw.RequestID,
		mw.Recovery(log),
		mw.AccessLog(log, metrics),
		mw.Cors(cfg.Origins, log),
		mw.ResponseTime,
		mw.BodySizeLimit(cfg.MaxBody),
	}
	if rdb != nil {
		tb := mw.NewRedisTokenBucket(rdb, cfg.RateLimit.PerSecond, cfg.RateLimit.Burst, mw.PerIPKey("tb"), log)
		sw := mw.NewRedisSlidingWindow(rdb, cfg.RateLimit.WindowMax, cfg.RateLimit.Window, mw.PerIPKey("sw"), log)
		chain = append(chain, tb.Middleware, sw.Middleware)
	}
	chain = append(chain, mw.Compression, mw.SecurityHeaders(cfg.Strict))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           mw.Chain(mux, chain...),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		TLSConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Port).Bool("tls", cfg.TLSCert != "").Msg("server is running")
		if cfg.TLSCert != "" {
			serveErr <- server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
			return
		}
		serveErr <- server.ListenAndServe()
	}()

	failed := false
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			failed = true
		}
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	// Handlers are done; flush queued records before closing the pool.
	rec.Shutdown()
	if db != nil {
		_ = db.Close()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	log.Info().Msg("server exited properly")
	if failed {
		os.Exit(1)
	}
}

func startRetention(ctx context.Context, cfg config.Config, sto *assessments.Store, log zerolog.Logger) {
	job := &maintenance.Job{Store: sto, Keep: cfg.Retention.Keep, Log: log}
	if cfg.S3.Enabled() {
		exp, err := s3.NewClient(ctx, cfg.S3)
		if err != nil {
			log.Warn().Err(err).Msg("stats export disabled")
		} else {
			job.Exporter = exp
		}
	}
	// validated at startup
	hour, minute, _ := validate.ParseClock(cfg.Retention.At)
	maintenance.Start(ctx, job, hour, minute, cfg.Retention.Timezone)
	log.Info().Str("at", cfg.Retention.At).Str("tz", cfg.Retention.Timezone).Dur("keep", cfg.Retention.Keep).Msg("retention scheduled")
}
