package apperr

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// constraint name -> field (extend as you add constraints)
var constraintField = map[string]string{
	"strength_assessments_pkey":           "id",
	"strength_assessments_strength_check": "strength",
	"strength_assessments_length_check":   "length",
}

// FromPG maps a pgconn.PgError to a Problem. Returns (Problem, true) if mapped.
func FromPG(err error) (Problem, bool) {
	var pg *pgconn.PgError
	if !errors.As(err, &pg) {
		return Problem{}, false
	}

	p := Problem{Title: "Database error", Status: http.StatusInternalServerError}
	field := constraintField[pg.ConstraintName]
	if field == "" {
		field = pg.ColumnName
	}
	fieldErr := func(code, msg string) []FieldError {
		if field == "" {
			field = "field"
		}
		return []FieldError{{Field: field, Code: code, Message: msg}}
	}

	switch {
	case pg.Code == "23505": // unique_violation
		p.Status, p.Title = http.StatusConflict, "Conflict"
		p.FieldErrors = fieldErr("unique", "value already exists")
	case pg.Code == "23514": // check_violation
		p.Status, p.Title = http.StatusUnprocessableEntity, "Unprocessable Entity"
		p.FieldErrors = fieldErr("check", "constraint failed")
	case pg.Code == "23502": // not_null_violation
		p.Status, p.Title = http.StatusBadRequest, "Bad Request"
		p.FieldErrors = fieldErr("not_null", "required field is missing")
	case pg.Code == "22001": // string_data_right_truncation
		p.Status, p.Title = http.StatusBadRequest, "Bad Request"
		p.FieldErrors = fieldErr("too_long", "value is too long")
	case pg.Code == "40001", pg.Code == "40P01": // serialization_failure, deadlock_detected
		p.Status, p.Title = http.StatusConflict, "Conflict"
		p.Detail = "transaction conflict, please retry"
		p.Retryable = true
	case pg.Code == "57014": // query_canceled (statement timeout)
		p.Status, p.Title = http.StatusServiceUnavailable, "Service Unavailable"
		p.Retryable = true
	case strings.HasPrefix(pg.Code, "08"), strings.HasPrefix(pg.Code, "53"): // connection, resources
		p.Status, p.Title = http.StatusServiceUnavailable, "Service Unavailable"
		p.Retryable = true
	}
	return p, true
}

// HandleDBError maps err to a Problem and writes it. Returns true if handled.
func HandleDBError(w http.ResponseWriter, r *http.Request, err error, fallbackTitle string) bool {
	if err == nil {
		return false
	}
	if p, ok := FromPG(err); ok {
		Write(w, r, p)
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		Write(w, r, Problem{Status: http.StatusServiceUnavailable, Title: fallbackTitle, Retryable: true})
		return true
	}
	// Not a PG error: generic 500
	Write(w, r, Problem{Status: http.StatusInternalServerError, Title: fallbackTitle})
	return true
}
