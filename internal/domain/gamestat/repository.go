package gamestat

import "context"

// TeamGoals maps game id -> team id -> summed goals.
type TeamGoals map[string]map[string]int

func (g TeamGoals) For(gameID, teamID string) int {
	byTeam, ok := g[gameID]
	if !ok {
		return 0
	}
	return byTeam[teamID]
}

type Repository interface {
	// Insert stores all rows or none; an existing (game, player) row yields ErrDuplicate.
	Insert(ctx context.Context, stats []GameStat) error
	// Upsert replaces rows that collide on (game, player).
	Upsert(ctx context.Context, stats []GameStat) error
	GoalsByGame(ctx context.Context, gameIDs []string) (TeamGoals, error)
	List(ctx context.Context, filter Filter) ([]GameStat, int, error)
}
