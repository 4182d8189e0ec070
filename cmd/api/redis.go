package main

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/5w1tchy/pwstrength/internal/config"
	"github.com/redis/go-redis/v9"
)

func newRedis(cfg config.Config) (*redis.Client, error) {
	if cfg.RedisURL != "" {
		// Path A: full URL, e.g. rediss://default:<token>@host:port
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid UPSTASH_REDIS_URL: %w", err)
		}
		if opt.TLSConfig == nil && cfg.IsProduction() {
			opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		opt.DialTimeout = 5 * time.Second
		opt.ReadTimeout = 1 * time.Second
		opt.WriteTimeout = 1 * time.Second
		return redis.NewClient(opt), nil
	}

	// Path B: split fields
	opt := &redis.Options{
		Addr:         cfg.RedisAddr,
		Username:     cfg.RedisUser,
		Password:     cfg.RedisPassword,
		DB:           0,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	}
	if cfg.RedisPassword != "" {
		opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return redis.NewClient(opt), nil
}
