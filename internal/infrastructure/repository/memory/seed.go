package memory

import (
	"time"

	"github.com/riskibarqy/hockey-league/internal/domain/game"
	"github.com/riskibarqy/hockey-league/internal/domain/gamestat"
	"github.com/riskibarqy/hockey-league/internal/domain/season"
	"github.com/riskibarqy/hockey-league/internal/domain/team"
)

const (
	LeagueIDProClubs = "nahl-pro-clubs"
	SeasonID2026     = "nahl-2026-winter"
)

// Seed team ids match their EA Sports club ids so imported stat lines land on
// the right team.
func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "3383", LeagueID: LeagueIDProClubs, Name: "Northside Huskies", Abbreviation: "NSH"},
		{ID: "4388", LeagueID: LeagueIDProClubs, Name: "Lakeshore Lynx", Abbreviation: "LKL"},
		{ID: "490", LeagueID: LeagueIDProClubs, Name: "Ironwood Bison", Abbreviation: "IWB"},
		{ID: "765", LeagueID: LeagueIDProClubs, Name: "Coastal Kraken", Abbreviation: "CKR"},
	}
}

func SeedSeasons() []season.Season {
	return []season.Season{
		{
			ID:        SeasonID2026,
			LeagueID:  LeagueIDProClubs,
			Name:      "Winter 2026",
			StartDate: time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, time.March, 30, 0, 0, 0, 0, time.UTC),
			Status:    season.StatusActive,
			Rules:     season.DefaultRules(),
		},
	}
}

func SeedGames() []game.Game {
	at := func(day, hour int) time.Time {
		return time.Date(2026, time.January, day, hour, 0, 0, 0, time.UTC)
	}
	return []game.Game{
		{ID: "g-2026-001", SeasonID: SeasonID2026, HomeTeamID: "3383", AwayTeamID: "4388", ScheduledAt: at(6, 20), Status: game.StatusCompleted, Venue: "Northside Arena"},
		{ID: "g-2026-002", SeasonID: SeasonID2026, HomeTeamID: "490", AwayTeamID: "765", ScheduledAt: at(6, 22), Status: game.StatusCompleted, Venue: "Ironwood Centre"},
		{ID: "g-2026-003", SeasonID: SeasonID2026, HomeTeamID: "4388", AwayTeamID: "490", ScheduledAt: at(13, 20), Status: game.StatusCompleted, Venue: "Lakeshore Gardens"},
		{ID: "g-2026-004", SeasonID: SeasonID2026, HomeTeamID: "765", AwayTeamID: "3383", ScheduledAt: at(13, 22), Status: game.StatusCompleted, Venue: "Coastal Dome"},
		{ID: "g-2026-005", SeasonID: SeasonID2026, HomeTeamID: "3383", AwayTeamID: "490", ScheduledAt: at(20, 20), Status: game.StatusScheduled, Venue: "Northside Arena"},
		{ID: "g-2026-006", SeasonID: SeasonID2026, HomeTeamID: "4388", AwayTeamID: "765", ScheduledAt: at(20, 22), Status: game.StatusScheduled, Venue: "Lakeshore Gardens"},
	}
}

func SeedGameStats() []gamestat.GameStat {
	intPtr := func(v int) *int { return &v }
	line := func(id, gameID, teamID, playerID string, goals, assists, shots int) gamestat.GameStat {
		stat := gamestat.GameStat{
			ID:        id,
			GameID:    gameID,
			PlayerID:  playerID,
			TeamID:    teamID,
			Goals:     goals,
			Assists:   assists,
			Shots:     shots,
			TimeOnIce: 1080,
			Source:    gamestat.SourceManual,
		}
		stat.Recompute()
		return stat
	}
	goalie := func(id, gameID, teamID, playerID string, saves, against int) gamestat.GameStat {
		stat := line(id, gameID, teamID, playerID, 0, 0, 0)
		stat.TimeOnIce = 3600
		stat.Saves = intPtr(saves)
		stat.GoalsAgainst = intPtr(against)
		return stat
	}

	return []gamestat.GameStat{
		// Huskies 4-1 Lynx
		line("gs-001", "g-2026-001", "3383", "p-nsh-09", 2, 1, 6),
		line("gs-002", "g-2026-001", "3383", "p-nsh-17", 2, 2, 4),
		goalie("gs-003", "g-2026-001", "3383", "p-nsh-31", 27, 1),
		line("gs-004", "g-2026-001", "4388", "p-lkl-11", 1, 0, 5),
		goalie("gs-005", "g-2026-001", "4388", "p-lkl-35", 22, 4),
		// Bison 3-2 Kraken
		line("gs-006", "g-2026-002", "490", "p-iwb-19", 3, 0, 8),
		line("gs-007", "g-2026-002", "765", "p-ckr-91", 1, 1, 3),
		line("gs-008", "g-2026-002", "765", "p-ckr-44", 1, 0, 2),
		// Lynx 2-2 Bison
		line("gs-009", "g-2026-003", "4388", "p-lkl-11", 2, 0, 7),
		line("gs-010", "g-2026-003", "490", "p-iwb-19", 1, 0, 4),
		line("gs-011", "g-2026-003", "490", "p-iwb-27", 1, 1, 3),
		// g-2026-004 has no stat rows yet and counts as 0-0.
	}
}
