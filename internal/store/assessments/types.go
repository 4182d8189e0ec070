package assessments

import (
	"time"

	"github.com/5w1tchy/pwstrength/internal/strength"
	"github.com/google/uuid"
)

// Source identifies which surface produced an assessment.
type Source string

const (
	SourceAPI  Source = "api"
	SourceCLI  Source = "cli"
	SourceHash Source = "hash"
)

// Record is what gets persisted per assessment. It never carries the password.
type Record struct {
	ID        uuid.UUID
	Strength  strength.Strength
	Score     int
	Length    int
	Codes     []string
	Source    Source
	CreatedAt time.Time
}

// NewRecord derives a Record from an assessment.
func NewRecord(a strength.Assessment, src Source) Record {
	return Record{
		ID:        uuid.New(),
		Strength:  a.Strength,
		Score:     a.Score,
		Length:    a.Features.Length,
		Codes:     append([]string(nil), a.Codes...),
		Source:    src,
		CreatedAt: time.Now().UTC(),
	}
}

// Stats aggregates recorded assessments since a point in time.
type Stats struct {
	Since      time.Time      `json:"since"`
	Total      int            `json:"total"`
	ByStrength map[string]int `json:"by_strength"`
	ByCode     map[string]int `json:"by_code"`
}
