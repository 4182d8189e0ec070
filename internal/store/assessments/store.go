package assessments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/5w1tchy/pwstrength/internal/store/dbx"
)

var ErrNoStore = errors.New("assessments: store not configured")

type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

const insertTmpl = `INSERT INTO strength_assessments (id, strength, score, length, suggestion_codes, source, created_at) VALUES %s`

// InsertBatch writes all records in one statement.
func (s *Store) InsertBatch(ctx context.Context, recs []Record) error {
	if len(recs) == 0 {
		return nil
	}
	if s == nil || s.db == nil {
		return ErrNoStore
	}
	// VALUES ($1,...,$7),($8,...)
	const cols = 7
	args := make([]any, 0, len(recs)*cols)
	vals := make([]string, 0, len(recs))
	for i, r := range recs {
		base := i * cols
		ph := make([]string, cols)
		for j := range ph {
			ph[j] = fmt.Sprintf("$%d", base+j+1)
		}
		vals = append(vals, "("+strings.Join(ph, ",")+")")
		args = append(args, r.ID.String(), string(r.Strength), r.Score, r.Length,
			strings.Join(r.Codes, ","), string(r.Source), r.CreatedAt)
	}
	if _, err := dbx.Exec(ctx, s.db, fmt.Sprintf(insertTmpl, strings.Join(vals, ",")), args...); err != nil {
		return fmt.Errorf("insert assessments: %w", err)
	}
	return nil
}

// StatsSince counts assessments per label and per suggestion code.
func (s *Store) StatsSince(ctx context.Context, since time.Time) (Stats, error) {
	if s == nil || s.db == nil {
		return Stats{}, ErrNoStore
	}
	st := Stats{Since: since, ByStrength: map[string]int{}, ByCode: map[string]int{}}

	rows, err := dbx.Query(ctx, s.db,
		`SELECT strength, COUNT(*) FROM strength_assessments WHERE created_at >= $1 GROUP BY strength`, since)
	if err != nil {
		return Stats{}, fmt.Errorf("stats by strength: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var label string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return Stats{}, err
		}
		st.ByStrength[label] = n
		st.Total += n
	}
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}

	codeRows, err := dbx.Query(ctx, s.db,
		`SELECT code, COUNT(*) FROM strength_assessments, unnest(string_to_array(NULLIF(suggestion_codes, ''), ',')) AS code WHERE created_at >= $1 GROUP BY code`, since)
	if err != nil {
		return Stats{}, fmt.Errorf("stats by code: %w", err)
	}
	defer codeRows.Close()
	for codeRows.Next() {
		var code string
		var n int
		if err := codeRows.Scan(&code, &n); err != nil {
			return Stats{}, err
		}
		st.ByCode[code] = n
	}
	return st, codeRows.Err()
}

// PruneBefore deletes rows created before cutoff and returns how many went.
func (s *Store) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if s == nil || s.db == nil {
		return 0, ErrNoStore
	}
	res, err := dbx.Exec(ctx, s.db, `DELETE FROM strength_assessments WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune assessments: %w", err)
	}
	return res.RowsAffected()
}
