package jwtutil

import (
	"time"

	"github.com/5w1tchy/pwstrength/internal/config"
)

type Config struct {
	Secret    []byte
	ClockSkew time.Duration
	AccessTTL time.Duration
}

func ConfigFrom(c config.JWT) Config {
	ttl := c.AccessTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return Config{
		Secret:    []byte(c.Secret),
		ClockSkew: c.ClockSkew,
		AccessTTL: ttl,
	}
}
