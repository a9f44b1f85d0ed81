package gamestat

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	SourceManual   = "MANUAL"
	SourceEASports = "EA_SPORTS"
)

// ErrDuplicate reports a second stat row for the same (game, player).
var ErrDuplicate = errors.New("stats already exist for this player in this game")

// GameStat is one player's line for one game. Saves and GoalsAgainst are
// only set for goalies.
type GameStat struct {
	ID             string     `json:"id,omitempty"`
	GameID         string     `json:"game_id"`
	PlayerID       string     `json:"player_id"`
	TeamID         string     `json:"team_id"`
	Goals          int        `json:"goals"`
	Assists        int        `json:"assists"`
	Points         int        `json:"points"`
	Shots          int        `json:"shots"`
	TimeOnIce      int        `json:"time_on_ice"`
	PenaltyMinutes int        `json:"penalty_minutes"`
	PlusMinus      int        `json:"plus_minus"`
	Saves          *int       `json:"saves,omitempty"`
	GoalsAgainst   *int       `json:"goals_against,omitempty"`
	Source         string     `json:"source"`
	ProcessedAt    *time.Time `json:"processed_at,omitempty"`
}

// Recompute derives Points from goals and assists.
func (s *GameStat) Recompute() {
	s.Points = s.Goals + s.Assists
}

func (s GameStat) IsGoalie() bool {
	return s.Saves != nil
}

// Key identifies the (game, player) pair a row is unique on.
func (s GameStat) Key() string {
	return s.GameID + "|" + s.PlayerID
}

func NormalizeSource(value string) string {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case SourceEASports:
		return SourceEASports
	default:
		return SourceManual
	}
}

// Validate applies the bounds enforced on manual entry.
func (s GameStat) Validate() error {
	if strings.TrimSpace(s.GameID) == "" {
		return fmt.Errorf("game id is required")
	}
	if strings.TrimSpace(s.PlayerID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(s.TeamID) == "" {
		return fmt.Errorf("team id is required")
	}

	checks := []struct {
		name     string
		value    int
		min, max int
	}{
		{"goals", s.Goals, 0, 20},
		{"assists", s.Assists, 0, 20},
		{"shots", s.Shots, 0, 50},
		{"time_on_ice", s.TimeOnIce, 0, 3600},
		{"penalty_minutes", s.PenaltyMinutes, 0, 60},
		{"plus_minus", s.PlusMinus, -10, 10},
	}
	if s.Saves != nil {
		checks = append(checks, struct {
			name     string
			value    int
			min, max int
		}{"saves", *s.Saves, 0, 100})
	}
	if s.GoalsAgainst != nil {
		checks = append(checks, struct {
			name     string
			value    int
			min, max int
		}{"goals_against", *s.GoalsAgainst, 0, 20})
	}

	for _, check := range checks {
		if check.value < check.min || check.value > check.max {
			return fmt.Errorf("%s must be between %d and %d", check.name, check.min, check.max)
		}
	}

	return nil
}

// Filter narrows stat listings. Empty fields match everything.
type Filter struct {
	GameID   string
	PlayerID string
	TeamID   string
	Page     int
	Limit    int
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

func (f Filter) Normalize() Filter {
	f.GameID = strings.TrimSpace(f.GameID)
	f.PlayerID = strings.TrimSpace(f.PlayerID)
	f.TeamID = strings.TrimSpace(f.TeamID)
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}
	return f
}

func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Matches reports whether s passes the equality filters of f.
func (f Filter) Matches(s GameStat) bool {
	if f.GameID != "" && s.GameID != f.GameID {
		return false
	}
	if f.PlayerID != "" && s.PlayerID != f.PlayerID {
		return false
	}
	if f.TeamID != "" && s.TeamID != f.TeamID {
		return false
	}
	return true
}
