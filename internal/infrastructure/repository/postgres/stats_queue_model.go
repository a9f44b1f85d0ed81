package postgres

import (
	"bytes"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/hockey-league/internal/domain/gamestat"
	"github.com/riskibarqy/hockey-league/internal/domain/statsqueue"
	"github.com/valyala/bytebufferpool"
)

type statsQueueTableModel struct {
	ID           int64      `db:"id"`
	PublicID     string     `db:"public_id"`
	GameID       string     `db:"game_public_id"`
	Provider     string     `db:"provider"`
	Status       string     `db:"status"`
	Stats        []byte     `db:"stats"`
	ErrorMessage string     `db:"error_message"`
	RetryCount   int        `db:"retry_count"`
	MaxRetries   int        `db:"max_retries"`
	ClaimCount   int        `db:"claim_count"`
	ProcessedAt  *time.Time `db:"processed_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

type statsQueueInsertModel struct {
	PublicID   string    `db:"public_id"`
	GameID     string    `db:"game_public_id"`
	Provider   string    `db:"provider"`
	Status     string    `db:"status"`
	Stats      *string   `db:"stats"`
	RetryCount int       `db:"retry_count"`
	MaxRetries int       `db:"max_retries"`
	CreatedAt  time.Time `db:"created_at"`
}

type statusCountRow struct {
	Status string `db:"status"`
	Total  int64  `db:"total"`
}

// encodeStats renders stats as a JSONB payload. No stats is stored as NULL.
func encodeStats(stats []gamestat.GameStat) (*string, error) {
	if len(stats) == 0 {
		return nil, nil
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(stats); err != nil {
		return nil, fmt.Errorf("encode queue stats: %w", err)
	}
	out := string(bytes.TrimSpace(buf.B))
	return &out, nil
}

func decodeStats(raw []byte) ([]gamestat.GameStat, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var out []gamestat.GameStat
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode queue stats: %w", err)
	}
	return out, nil
}

func queueItemFromRow(row statsQueueTableModel) (statsqueue.Item, error) {
	stats, err := decodeStats(row.Stats)
	if err != nil {
		return statsqueue.Item{}, fmt.Errorf("queue item %s: %w", row.PublicID, err)
	}

	return statsqueue.Item{
		ID:           row.PublicID,
		GameID:       row.GameID,
		Provider:     statsqueue.Provider(row.Provider),
		Status:       row.Status,
		Stats:        stats,
		CreatedAt:    row.CreatedAt,
		ProcessedAt:  row.ProcessedAt,
		ErrorMessage: row.ErrorMessage,
		RetryCount:   row.RetryCount,
		MaxRetries:   row.MaxRetries,
		Claims:       row.ClaimCount,
	}, nil
}
