package team

import "context"

// Repository describes team reads needed by the standings engine.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Team, error)
}
