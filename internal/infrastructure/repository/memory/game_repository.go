package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/hockey-league/internal/domain/game"
)

type GameRepository struct {
	mu    sync.RWMutex
	games map[string]game.Game
}

func NewGameRepository(items []game.Game) *GameRepository {
	games := make(map[string]game.Game, len(items))
	for _, item := range items {
		item.Status = game.NormalizeStatus(item.Status)
		games[item.ID] = item
	}
	return &GameRepository{games: games}
}

// ListBySeasonAndStatus returns matching games ordered by schedule time.
func (r *GameRepository) ListBySeasonAndStatus(_ context.Context, seasonID, status string) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	status = game.NormalizeStatus(status)
	out := make([]game.Game, 0, len(r.games))
	for _, item := range r.games {
		if item.SeasonID == seasonID && item.Status == status {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *GameRepository) GetByID(_ context.Context, gameID string) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.games[gameID]
	return item, ok, nil
}
