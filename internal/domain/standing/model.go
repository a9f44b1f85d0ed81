package standing

import "github.com/riskibarqy/hockey-league/internal/domain/season"

// TeamStanding is a team's computed season record. It is rebuilt on every
// request and never stored.
type TeamStanding struct {
	TeamID           string `json:"team_id"`
	TeamName         string `json:"team_name"`
	TeamAbbreviation string `json:"team_abbreviation"`
	GamesPlayed      int    `json:"games_played"`
	Wins             int    `json:"wins"`
	Losses           int    `json:"losses"`
	OvertimeLosses   int    `json:"overtime_losses"`
	Points           int    `json:"points"`
	GoalsFor         int    `json:"goals_for"`
	GoalsAgainst     int    `json:"goals_against"`
	GoalDifferential int    `json:"goal_differential"`
	RegulationWins   int    `json:"regulation_wins"`
	HeadToHeadWins   int    `json:"head_to_head_wins"`
}

// Table is the ordered standings of one season.
type Table struct {
	SeasonID  string
	LeagueID  string
	Standings []TeamStanding
	Rules     season.Rules
}
