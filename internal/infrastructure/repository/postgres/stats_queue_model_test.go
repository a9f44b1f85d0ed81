package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/riskibarqy/hockey-league/internal/domain/gamestat"
	"github.com/riskibarqy/hockey-league/internal/domain/statsqueue"
)

func TestEncodeStatsStoresNullForEmptyPayload(t *testing.T) {
	got, err := encodeStats(nil)
	if err != nil {
		t.Fatalf("encode nil stats: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil payload, got %q", *got)
	}

	decoded, err := decodeStats([]byte("null"))
	if err != nil {
		t.Fatalf("decode null stats: %v", err)
	}
	if decoded != nil {
		t.Fatalf("expected nil stats, got %+v", decoded)
	}
}

func TestQueueItemFromRowKeepsGoalieFields(t *testing.T) {
	saves, against := 31, 2
	processedAt := time.Date(2026, 1, 10, 23, 0, 0, 0, time.UTC)
	stats := []gamestat.GameStat{
		{GameID: "g-1", PlayerID: "p-9", TeamID: "3383", Goals: 1, Assists: 1, Points: 2, Source: gamestat.SourceEASports},
		{GameID: "g-1", PlayerID: "p-30", TeamID: "3383", Saves: &saves, GoalsAgainst: &against, Source: gamestat.SourceEASports},
	}

	payload, err := encodeStats(stats)
	if err != nil {
		t.Fatalf("encode stats: %v", err)
	}
	if payload == nil || strings.HasSuffix(*payload, "\n") {
		t.Fatalf("expected trimmed payload, got %v", payload)
	}

	item, err := queueItemFromRow(statsQueueTableModel{
		PublicID:    "q-1",
		GameID:      "g-1",
		Provider:    string(statsqueue.ProviderEASports),
		Status:      statsqueue.StatusCompleted,
		Stats:       []byte(*payload),
		MaxRetries:  3,
		ProcessedAt: &processedAt,
		CreatedAt:   processedAt.Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("queue item from row: %v", err)
	}
	if diff := cmp.Diff(stats, item.Stats); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
	if item.Provider != statsqueue.ProviderEASports || item.MaxRetries != 3 {
		t.Fatalf("unexpected item fields: %+v", item)
	}
}

func TestQueueItemFromRowRejectsCorruptPayload(t *testing.T) {
	_, err := queueItemFromRow(statsQueueTableModel{PublicID: "q-bad", Stats: []byte("{not json")})
	if err == nil || !strings.Contains(err.Error(), "q-bad") {
		t.Fatalf("expected decode error naming the item, got %v", err)
	}
}

func TestClaimPendingQueryNumbersPlaceholders(t *testing.T) {
	now := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	staleBefore := now.Add(-10 * time.Minute)

	query, args, err := buildClaimPendingQuery(10, now, staleBefore)
	if err != nil {
		t.Fatalf("build claim query: %v", err)
	}

	for _, want := range []string{
		"claim_count = claim_count + 1",
		"status = $3 OR (status = $4 AND processed_at < $5)",
		"LIMIT $6",
		"FOR UPDATE SKIP LOCKED",
		"RETURNING *",
	} {
		if !strings.Contains(query, want) {
			t.Fatalf("expected %q in query: %s", want, query)
		}
	}
	if len(args) != 6 || args[2] != statsqueue.StatusPending || args[3] != statsqueue.StatusProcessing || args[5] != 10 {
		t.Fatalf("unexpected args: %#v", args)
	}
	if args[4] != staleBefore {
		t.Fatalf("unexpected stale cutoff: %#v", args[4])
	}
}

func TestClaimPendingQueryWithoutLeaseMatchesNoProcessingRows(t *testing.T) {
	_, args, err := buildClaimPendingQuery(5, time.Now(), time.Time{})
	if err != nil {
		t.Fatalf("build claim query: %v", err)
	}
	if args[4] != neverStale {
		t.Fatalf("expected epoch cutoff, got %#v", args[4])
	}
}
