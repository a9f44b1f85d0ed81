package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/hockey-league/internal/domain/gamestat"
)

type GameStatRepository struct {
	mu   sync.RWMutex
	rows map[string]gamestat.GameStat
}

func NewGameStatRepository(items []gamestat.GameStat) *GameStatRepository {
	rows := make(map[string]gamestat.GameStat, len(items))
	for _, item := range items {
		rows[item.Key()] = cloneGameStat(item)
	}
	return &GameStatRepository{rows: rows}
}

func (r *GameStatRepository) Insert(_ context.Context, stats []gamestat.GameStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch := make(map[string]struct{}, len(stats))
	for _, item := range stats {
		key := item.Key()
		if _, exists := r.rows[key]; exists {
			return gamestat.ErrDuplicate
		}
		if _, exists := batch[key]; exists {
			return gamestat.ErrDuplicate
		}
		batch[key] = struct{}{}
	}
	for _, item := range stats {
		r.rows[item.Key()] = cloneGameStat(item)
	}
	return nil
}

func (r *GameStatRepository) Upsert(_ context.Context, stats []gamestat.GameStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range stats {
		if existing, ok := r.rows[item.Key()]; ok && item.ID == "" {
			item.ID = existing.ID
		}
		r.rows[item.Key()] = cloneGameStat(item)
	}
	return nil
}

func (r *GameStatRepository) GoalsByGame(_ context.Context, gameIDs []string) (gamestat.TeamGoals, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(gameIDs))
	for _, id := range gameIDs {
		wanted[id] = struct{}{}
	}

	out := make(gamestat.TeamGoals, len(gameIDs))
	for _, row := range r.rows {
		if _, ok := wanted[row.GameID]; !ok {
			continue
		}
		byTeam := out[row.GameID]
		if byTeam == nil {
			byTeam = make(map[string]int, 2)
			out[row.GameID] = byTeam
		}
		byTeam[row.TeamID] += row.Goals
	}
	return out, nil
}

// List returns one page ordered by game then player, plus the filtered total.
func (r *GameStatRepository) List(_ context.Context, filter gamestat.Filter) ([]gamestat.GameStat, int, error) {
	filter = filter.Normalize()

	r.mu.RLock()
	matched := make([]gamestat.GameStat, 0, len(r.rows))
	for _, row := range r.rows {
		if filter.Matches(row) {
			matched = append(matched, row)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].GameID != matched[j].GameID {
			return matched[i].GameID < matched[j].GameID
		}
		return matched[i].PlayerID < matched[j].PlayerID
	})

	total := len(matched)
	start := filter.Offset()
	if start >= total {
		return []gamestat.GameStat{}, total, nil
	}
	end := min(start+filter.Limit, total)

	out := make([]gamestat.GameStat, 0, end-start)
	for _, row := range matched[start:end] {
		out = append(out, cloneGameStat(row))
	}
	return out, total, nil
}

func cloneGameStat(item gamestat.GameStat) gamestat.GameStat {
	if item.Saves != nil {
		v := *item.Saves
		item.Saves = &v
	}
	if item.GoalsAgainst != nil {
		v := *item.GoalsAgainst
		item.GoalsAgainst = &v
	}
	if item.ProcessedAt != nil {
		v := *item.ProcessedAt
		item.ProcessedAt = &v
	}
	return item
}
