package maintenance

import (
	"context"
	"time"

	"github.com/5w1tchy/pwstrength/internal/store/assessments"
	"github.com/rs/zerolog"
)

// StatsStore is the store surface the daily job uses.
type StatsStore interface {
	StatsSince(ctx context.Context, since time.Time) (assessments.Stats, error)
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Exporter uploads a JSON document and returns its object key.
type Exporter interface {
	PutJSON(ctx context.Context, key string, v any) (string, error)
}

// Job exports yesterday's stats and prunes rows older than Keep.
type Job struct {
	Store    StatsStore
	Exporter Exporter // optional
	Keep     time.Duration
	Log      zerolog.Logger

	now func() time.Time
}

// RunOnce performs one export+prune cycle. Export failures are logged and do
// not block pruning.
func (j *Job) RunOnce(ctx context.Context) error {
	now := time.Now().UTC()
	if j.now != nil {
		now = j.now().UTC()
	}

	log := j.Log.With().Str("component", "retention").Logger()

	if j.Exporter != nil {
		since := now.Add(-24 * time.Hour)
		st, err := j.Store.StatsSince(ctx, since)
		if err != nil {
			log.Warn().Err(err).Msg("stats query failed")
		} else {
			key := "daily/" + now.Format("2006-01-02") + ".json"
			if full, err := j.Exporter.PutJSON(ctx, key, st); err != nil {
				log.Warn().Err(err).Msg("stats export failed")
			} else {
				log.Info().Str("key", full).Int("total", st.Total).Msg("stats exported")
			}
		}
	}

	if j.Keep <= 0 {
		return nil
	}
	n, err := j.Store.PruneBefore(ctx, now.Add(-j.Keep))
	if err != nil {
		return err
	}
	log.Info().Int64("rows", n).Dur("keep", j.Keep).Msg("old assessments pruned")
	return nil
}

// Start runs the job daily at hour:minute in tzName until ctx is done.
// Call once at startup: maintenance.Start(ctx, job, 3, 0, "UTC")
func Start(ctx context.Context, j *Job, hour, minute int, tzName string) {
	go func() {
		loc, err := time.LoadLocation(tzName)
		if err != nil {
			loc = time.UTC
		}
		for {
			timer := time.NewTimer(time.Until(NextRun(time.Now(), hour, minute, loc)))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				if err := j.RunOnce(ctx); err != nil {
					j.Log.Error().Err(err).Str("component", "retention").Msg("run failed")
				}
			}
		}
	}()
}

// NextRun returns the next occurrence of hour:minute in loc strictly after now.
func NextRun(now time.Time, hour, minute int, loc *time.Location) time.Time {
	now = now.In(loc)
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
