package passwords

import (
	"github.com/5w1tchy/pwstrength/internal/metrics/prom"
	"github.com/5w1tchy/pwstrength/internal/security/password"
	"github.com/5w1tchy/pwstrength/internal/store/assessments"
	"github.com/rs/zerolog"
)

// Recorder queues assessment records for persistence.
type Recorder interface {
	Enqueue(rec assessments.Record) bool
}

type Handler struct {
	Policy  *password.Policy
	Rec     Recorder      // optional
	Metrics *prom.Metrics // optional
	Log     zerolog.Logger
}

func NewHandler(p *password.Policy, rec Recorder, m *prom.Metrics, log zerolog.Logger) *Handler {
	return &Handler{
		Policy:  p,
		Rec:     rec,
		Metrics: m,
		Log:     log.With().Str("component", "passwords").Logger(),
	}
}
