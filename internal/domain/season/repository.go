package season

import "context"

// Repository describes season reads needed by the standings engine.
type Repository interface {
	GetByID(ctx context.Context, seasonID string) (Season, bool, error)
}
