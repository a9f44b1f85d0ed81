package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/riskibarqy/hockey-league/internal/domain/season"
)

type SeasonRepository struct {
	mu   sync.RWMutex
	byID map[string]season.Season
}

func NewSeasonRepository(items []season.Season) *SeasonRepository {
	byID := make(map[string]season.Season, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return &SeasonRepository{byID: byID}
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[seasonID]
	if !ok {
		return season.Season{}, false, nil
	}
	item.Rules.Tiebreakers = slices.Clone(item.Rules.Tiebreakers)
	return item, true, nil
}
