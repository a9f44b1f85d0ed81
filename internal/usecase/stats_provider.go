package usecase

import (
	"context"

	"github.com/riskibarqy/hockey-league/internal/domain/gamestat"
	"github.com/riskibarqy/hockey-league/internal/domain/statsqueue"
)

// StatsProvider fetches the player stat lines of one game from a source.
type StatsProvider interface {
	GetGameStats(ctx context.Context, gameID string) ([]gamestat.GameStat, error)
}

// StatsProviders resolves queue providers to their implementation.
type StatsProviders map[statsqueue.Provider]StatsProvider

func (p StatsProviders) Get(name statsqueue.Provider) (StatsProvider, bool) {
	provider, ok := p[name]
	if !ok || provider == nil {
		return nil, false
	}
	return provider, true
}

// ManualStatsProvider backs the "manual" queue provider. Manual lines are
// written through GameStatService, so a queued manual item has nothing to
// fetch and completes with an empty payload.
type ManualStatsProvider struct{}

func (ManualStatsProvider) GetGameStats(context.Context, string) ([]gamestat.GameStat, error) {
	return []gamestat.GameStat{}, nil
}
