package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/hockey-league/internal/domain/game"
)

type gameTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	SeasonID    string         `db:"season_public_id"`
	HomeTeamID  string         `db:"home_team_public_id"`
	AwayTeamID  string         `db:"away_team_public_id"`
	ScheduledAt time.Time      `db:"scheduled_at"`
	Status      string         `db:"status"`
	Venue       sql.NullString `db:"venue"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	DeletedAt   *time.Time     `db:"deleted_at"`
}

type gameInsertModel struct {
	PublicID    string    `db:"public_id"`
	SeasonID    string    `db:"season_public_id"`
	HomeTeamID  string    `db:"home_team_public_id"`
	AwayTeamID  string    `db:"away_team_public_id"`
	ScheduledAt time.Time `db:"scheduled_at"`
	Status      string    `db:"status"`
	Venue       *string   `db:"venue"`
}

func gameFromRow(row gameTableModel) game.Game {
	return game.Game{
		ID:          row.PublicID,
		SeasonID:    row.SeasonID,
		HomeTeamID:  row.HomeTeamID,
		AwayTeamID:  row.AwayTeamID,
		ScheduledAt: row.ScheduledAt,
		Status:      game.NormalizeStatus(row.Status),
		Venue:       row.Venue.String,
	}
}
