package game

import "context"

type Repository interface {
	ListBySeasonAndStatus(ctx context.Context, seasonID, status string) ([]Game, error)
	GetByID(ctx context.Context, gameID string) (Game, bool, error)
}
