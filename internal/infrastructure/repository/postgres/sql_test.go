package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches wrapped unique violation", func(t *testing.T) {
		err := fmt.Errorf("insert game stats: %w", &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("ignores other pq codes", func(t *testing.T) {
		err := &pq.Error{Code: "42P01", Message: "relation game_stats does not exist"}
		if isUniqueViolation(err) {
			t.Fatalf("expected false for undefined table error")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if isUniqueViolation(fakeErr("pq: duplicate key (23505)")) {
			t.Fatalf("expected false for non pq error")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get season: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("boom")) {
		t.Fatalf("expected unrelated error to be found")
	}
}

func TestNullableTime(t *testing.T) {
	if got := nullableTime(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	if got := nullableTime(&time.Time{}); got != nil {
		t.Fatalf("expected nil for zero time, got %v", got)
	}

	local := time.Date(2026, 1, 10, 20, 0, 0, 0, time.FixedZone("EST", -5*3600))
	got := nullableTime(&local)
	if got == nil || got.Location() != time.UTC || !got.Equal(local) {
		t.Fatalf("expected utc copy of %v, got %v", local, got)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
