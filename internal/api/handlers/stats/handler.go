package stats

import (
	"context"
	"time"

	"github.com/5w1tchy/pwstrength/internal/store/assessments"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	cacheKeyPrefix = "stats:"
	cacheDuration  = 30 * time.Second

	defaultWindow = 24 * time.Hour
	maxWindow     = 31 * 24 * time.Hour
)

// Source aggregates recorded assessments.
type Source interface {
	StatsSince(ctx context.Context, since time.Time) (assessments.Stats, error)
}

type Handler struct {
	Sto Source        // nil when no database is configured
	RDB redis.Cmdable // optional response cache
	Log zerolog.Logger

	now func() time.Time
}

func NewHandler(sto Source, rdb redis.Cmdable, log zerolog.Logger) *Handler {
	return &Handler{
		Sto: sto,
		RDB: rdb,
		Log: log.With().Str("component", "stats").Logger(),
	}
}
