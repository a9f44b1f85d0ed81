package statsqueue

import (
	"context"
	"time"
)

// Repository persists queue items.
type Repository interface {
	Create(ctx context.Context, items []Item) error
	// ClaimPending moves up to limit of the oldest PENDING items, and
	// PROCESSING items whose claim is older than staleBefore, to PROCESSING
	// and returns them. An item is handed to one caller only. A zero
	// staleBefore claims PENDING items only.
	ClaimPending(ctx context.Context, limit int, now, staleBefore time.Time) ([]Item, error)
	Update(ctx context.Context, item Item) error
	CountByStatus(ctx context.Context) (Counts, error)
	DeleteByStatus(ctx context.Context, status string) (int64, error)
	GetByID(ctx context.Context, id string) (Item, bool, error)
}
