package postgres

import (
	"time"

	"github.com/riskibarqy/hockey-league/internal/domain/gamestat"
)

type gameStatTableModel struct {
	ID             int64      `db:"id"`
	PublicID       string     `db:"public_id"`
	GameID         string     `db:"game_public_id"`
	PlayerID       string     `db:"player_public_id"`
	TeamID         string     `db:"team_public_id"`
	Goals          int        `db:"goals"`
	Assists        int        `db:"assists"`
	Points         int        `db:"points"`
	Shots          int        `db:"shots"`
	TimeOnIce      int        `db:"time_on_ice"`
	PenaltyMinutes int        `db:"penalty_minutes"`
	PlusMinus      int        `db:"plus_minus"`
	Saves          *int       `db:"saves"`
	GoalsAgainst   *int       `db:"goals_against"`
	Source         string     `db:"source"`
	ProcessedAt    *time.Time `db:"processed_at"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

type gameStatInsertModel struct {
	PublicID       string     `db:"public_id"`
	GameID         string     `db:"game_public_id"`
	PlayerID       string     `db:"player_public_id"`
	TeamID         string     `db:"team_public_id"`
	Goals          int        `db:"goals"`
	Assists        int        `db:"assists"`
	Points         int        `db:"points"`
	Shots          int        `db:"shots"`
	TimeOnIce      int        `db:"time_on_ice"`
	PenaltyMinutes int        `db:"penalty_minutes"`
	PlusMinus      int        `db:"plus_minus"`
	Saves          *int       `db:"saves"`
	GoalsAgainst   *int       `db:"goals_against"`
	Source         string     `db:"source"`
	ProcessedAt    *time.Time `db:"processed_at"`
}

type teamGoalsRow struct {
	GameID string `db:"game_public_id"`
	TeamID string `db:"team_public_id"`
	Goals  int    `db:"goals"`
}

func gameStatInsertModelFrom(item gamestat.GameStat) gameStatInsertModel {
	return gameStatInsertModel{
		PublicID:       item.ID,
		GameID:         item.GameID,
		PlayerID:       item.PlayerID,
		TeamID:         item.TeamID,
		Goals:          item.Goals,
		Assists:        item.Assists,
		Points:         item.Points,
		Shots:          item.Shots,
		TimeOnIce:      item.TimeOnIce,
		PenaltyMinutes: item.PenaltyMinutes,
		PlusMinus:      item.PlusMinus,
		Saves:          item.Saves,
		GoalsAgainst:   item.GoalsAgainst,
		Source:         gamestat.NormalizeSource(item.Source),
		ProcessedAt:    nullableTime(item.ProcessedAt),
	}
}

func gameStatFromRow(row gameStatTableModel) gamestat.GameStat {
	return gamestat.GameStat{
		ID:             row.PublicID,
		GameID:         row.GameID,
		PlayerID:       row.PlayerID,
		TeamID:         row.TeamID,
		Goals:          row.Goals,
		Assists:        row.Assists,
		Points:         row.Points,
		Shots:          row.Shots,
		TimeOnIce:      row.TimeOnIce,
		PenaltyMinutes: row.PenaltyMinutes,
		PlusMinus:      row.PlusMinus,
		Saves:          row.Saves,
		GoalsAgainst:   row.GoalsAgainst,
		Source:         gamestat.NormalizeSource(row.Source),
		ProcessedAt:    row.ProcessedAt,
	}
}
