package postgres

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hockey-league/internal/domain/statsqueue"
	qb "github.com/riskibarqy/hockey-league/internal/platform/querybuilder"
)

// claimPendingCondition picks the oldest pending rows, plus processing rows
// whose claim expired, and skips rows another worker already holds, so
// concurrent claimers never share an item.
const claimPendingCondition = `public_id IN (
    SELECT public_id FROM stats_queue
    WHERE status = ? OR (status = ? AND processed_at < ?)
    ORDER BY created_at, id
    LIMIT ?
    FOR UPDATE SKIP LOCKED
)`

// neverStale stands in for a zero staleBefore so the processing branch of
// claimPendingCondition matches nothing.
var neverStale = time.Unix(0, 0).UTC()

func buildClaimPendingQuery(limit int, now, staleBefore time.Time) (string, []any, error) {
	if staleBefore.IsZero() {
		staleBefore = neverStale
	}
	return qb.Update("stats_queue").
		Set("status", statsqueue.StatusProcessing).
		Set("processed_at", now.UTC()).
		SetExpr("claim_count", "claim_count + 1").
		SetExpr("updated_at", "NOW()").
		Where(qb.Expr(claimPendingCondition,
			statsqueue.StatusPending,
			statsqueue.StatusProcessing,
			staleBefore.UTC(),
			limit,
		)).
		Suffix("RETURNING *").
		ToSQL()
}

type StatsQueueRepository struct {
	db *sqlx.DB
}

func NewStatsQueueRepository(db *sqlx.DB) *StatsQueueRepository {
	return &StatsQueueRepository{db: db}
}

func (r *StatsQueueRepository) Create(ctx context.Context, items []statsqueue.Item) error {
	if len(items) == 0 {
		return nil
	}

	models := make([]statsQueueInsertModel, 0, len(items))
	for _, item := range items {
		stats, err := encodeStats(item.Stats)
		if err != nil {
			return err
		}
		models = append(models, statsQueueInsertModel{
			PublicID:   item.ID,
			GameID:     item.GameID,
			Provider:   string(item.Provider),
			Status:     item.Status,
			Stats:      stats,
			RetryCount: item.RetryCount,
			MaxRetries: item.MaxRetries,
			CreatedAt:  item.CreatedAt.UTC(),
		})
	}

	query, args, err := qb.InsertModels("stats_queue", models, "")
	if err != nil {
		return fmt.Errorf("build insert stats queue query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert stats queue items: %w", err)
	}

	return nil
}

func (r *StatsQueueRepository) ClaimPending(ctx context.Context, limit int, now, staleBefore time.Time) ([]statsqueue.Item, error) {
	if limit <= 0 {
		return []statsqueue.Item{}, nil
	}

	query, args, err := buildClaimPendingQuery(limit, now, staleBefore)
	if err != nil {
		return nil, fmt.Errorf("build claim stats queue query: %w", err)
	}

	var rows []statsQueueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("claim pending stats queue items: %w", err)
	}

	// RETURNING does not keep the subquery order.
	slices.SortFunc(rows, func(a, b statsQueueTableModel) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	out := make([]statsqueue.Item, 0, len(rows))
	for _, row := range rows {
		item, err := queueItemFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, nil
}

func (r *StatsQueueRepository) Update(ctx context.Context, item statsqueue.Item) error {
	stats, err := encodeStats(item.Stats)
	if err != nil {
		return err
	}

	query, args, err := qb.Update("stats_queue").
		Set("status", item.Status).
		Set("stats", stats).
		Set("error_message", strings.TrimSpace(item.ErrorMessage)).
		Set("retry_count", item.RetryCount).
		Set("max_retries", item.MaxRetries).
		Set("claim_count", item.Claims).
		Set("processed_at", nullableTime(item.ProcessedAt)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update stats queue query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update stats queue item=%s: %w", item.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows for stats queue item=%s: %w", item.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("stats queue item %s not found", item.ID)
	}

	return nil
}

func (r *StatsQueueRepository) CountByStatus(ctx context.Context) (statsqueue.Counts, error) {
	query, args, err := qb.Select("status", "COUNT(1) AS total").
		From("stats_queue").
		GroupBy("status").
		ToSQL()
	if err != nil {
		return statsqueue.Counts{}, fmt.Errorf("build count stats queue query: %w", err)
	}

	var rows []statusCountRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return statsqueue.Counts{}, fmt.Errorf("count stats queue by status: %w", err)
	}

	var counts statsqueue.Counts
	for _, row := range rows {
		counts.Add(row.Status, row.Total)
	}
	return counts, nil
}

func (r *StatsQueueRepository) DeleteByStatus(ctx context.Context, status string) (int64, error) {
	query, args, err := qb.DeleteFrom("stats_queue").
		Where(qb.Eq("status", status)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete stats queue query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete stats queue items status=%s: %w", status, err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted stats queue rows: %w", err)
	}
	return deleted, nil
}

func (r *StatsQueueRepository) GetByID(ctx context.Context, id string) (statsqueue.Item, bool, error) {
	query, args, err := qb.Select("*").From("stats_queue").
		Where(qb.Eq("public_id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return statsqueue.Item{}, false, fmt.Errorf("build select stats queue item query: %w", err)
	}

	var row statsQueueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return statsqueue.Item{}, false, nil
		}
		return statsqueue.Item{}, false, fmt.Errorf("get stats queue item: %w", err)
	}

	item, err := queueItemFromRow(row)
	if err != nil {
		return statsqueue.Item{}, false, err
	}
	return item, true, nil
}
