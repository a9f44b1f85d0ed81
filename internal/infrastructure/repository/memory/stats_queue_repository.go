package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/riskibarqy/hockey-league/internal/domain/gamestat"
	"github.com/riskibarqy/hockey-league/internal/domain/statsqueue"
)

// StatsQueueRepository keeps queue items in insertion order. Claims happen
// under the write lock, so concurrent callers never share an item.
type StatsQueueRepository struct {
	mu    sync.Mutex
	items map[string]statsqueue.Item
	order []string
}

func NewStatsQueueRepository() *StatsQueueRepository {
	return &StatsQueueRepository{items: make(map[string]statsqueue.Item)}
}

func (r *StatsQueueRepository) Create(_ context.Context, items []statsqueue.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if _, exists := r.items[item.ID]; exists {
			return fmt.Errorf("queue item %s already exists", item.ID)
		}
	}
	for _, item := range items {
		r.items[item.ID] = cloneQueueItem(item)
		r.order = append(r.order, item.ID)
	}
	return nil
}

func (r *StatsQueueRepository) ClaimPending(_ context.Context, limit int, now, staleBefore time.Time) ([]statsqueue.Item, error) {
	if limit <= 0 {
		return []statsqueue.Item{}, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	candidates := make([]statsqueue.Item, 0, limit)
	for _, id := range r.order {
		item := r.items[id]
		if item.Status == statsqueue.StatusPending || item.LeaseExpired(staleBefore) {
			candidates = append(candidates, item)
		}
	}
	slices.SortStableFunc(candidates, func(a, b statsqueue.Item) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	out := make([]statsqueue.Item, 0, len(candidates))
	for _, item := range candidates {
		item.Claim(now)
		r.items[item.ID] = item
		out = append(out, cloneQueueItem(item))
	}
	return out, nil
}

func (r *StatsQueueRepository) Update(_ context.Context, item statsqueue.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return fmt.Errorf("queue item %s not found", item.ID)
	}
	r.items[item.ID] = cloneQueueItem(item)
	return nil
}

func (r *StatsQueueRepository) CountByStatus(context.Context) (statsqueue.Counts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var counts statsqueue.Counts
	for _, item := range r.items {
		counts.Add(item.Status, 1)
	}
	return counts, nil
}

func (r *StatsQueueRepository) DeleteByStatus(_ context.Context, status string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	kept := make([]string, 0, len(r.order))
	for _, id := range r.order {
		if r.items[id].Status == status {
			delete(r.items, id)
			deleted++
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	return deleted, nil
}

func (r *StatsQueueRepository) GetByID(_ context.Context, id string) (statsqueue.Item, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return statsqueue.Item{}, false, nil
	}
	return cloneQueueItem(item), true, nil
}

func cloneQueueItem(item statsqueue.Item) statsqueue.Item {
	if item.ProcessedAt != nil {
		v := *item.ProcessedAt
		item.ProcessedAt = &v
	}
	if item.Stats != nil {
		stats := make([]gamestat.GameStat, 0, len(item.Stats))
		for _, stat := range item.Stats {
			stats = append(stats, cloneGameStat(stat))
		}
		item.Stats = stats
	}
	return item
}
