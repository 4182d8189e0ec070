package assessments_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/5w1tchy/pwstrength/internal/store/assessments"
	"github.com/5w1tchy/pwstrength/internal/strength"
	"github.com/DATA-DOG/go-sqlmock"
)

func TestInsertBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	store := assessments.New(db)
	r1 := assessments.NewRecord(strength.Check("Password"), assessments.SourceAPI)
	r2 := assessments.NewRecord(strength.Check("Tr0ub4dor&9"), assessments.SourceCLI)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO strength_assessments (id, strength, score, length, suggestion_codes, source, created_at) VALUES ($1,$2,$3,$4,$5,$6,$7),($8,$9,$10,$11,$12,$13,$14)`,
	)).
		WithArgs(
			r1.ID.String(), "Weak", -1, 8, "digit,symbol,common", "api", sqlmock.AnyArg(),
			r2.ID.String(), "Strong", 4, 11, "", "cli", sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := store.InsertBatch(t.Context(), []assessments.Record{r1, r2}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestInsertBatch_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := assessments.New(db).InsertBatch(t.Context(), nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestStatsSince(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	since := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT strength, COUNT(*) FROM strength_assessments WHERE created_at >= $1 GROUP BY strength`,
	)).WithArgs(since).WillReturnRows(
		sqlmock.NewRows([]string{"strength", "count"}).
			AddRow("Weak", 5).
			AddRow("Strong", 2),
	)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT code, COUNT(*) FROM strength_assessments`)).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"code", "count"}).AddRow("symbol", 4))

	st, err := assessments.New(db).StatsSince(t.Context(), since)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if st.Total != 7 || st.ByStrength["Weak"] != 5 || st.ByStrength["Strong"] != 2 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	if st.ByCode["symbol"] != 4 {
		t.Fatalf("unexpected code stats: %+v", st.ByCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPruneBefore(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	cutoff := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM strength_assessments WHERE created_at < $1`)).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 12))

	n, err := assessments.New(db).PruneBefore(t.Context(), cutoff)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if n != 12 {
		t.Fatalf("want 12 rows pruned, got %d", n)
	}
}

func TestNilStore(t *testing.T) {
	var s *assessments.Store
	if _, err := s.StatsSince(t.Context(), time.Now()); !errors.Is(err, assessments.ErrNoStore) {
		t.Fatalf("want ErrNoStore, got %v", err)
	}
}

func TestNewRecord_OmitsPassword(t *testing.T) {
	r := assessments.NewRecord(strength.Check("Jan1999qwerty"), assessments.SourceHash)
	if r.Length != 13 || r.Strength != strength.Medium {
		t.Fatalf("unexpected record: %+v", r)
	}
	want := []string{strength.CodeSymbol, strength.CodeKeyboard, strength.CodeRepeat}
	if len(r.Codes) != len(want) {
		t.Fatalf("codes = %v, want %v", r.Codes, want)
	}
	for i := range want {
		if r.Codes[i] != want[i] {
			t.Fatalf("codes = %v, want %v", r.Codes, want)
		}
	}
}
