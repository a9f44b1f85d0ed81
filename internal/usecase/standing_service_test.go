package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/hockey-league/internal/domain/game"
	"github.com/riskibarqy/hockey-league/internal/domain/gamestat"
	"github.com/riskibarqy/hockey-league/internal/domain/season"
	"github.com/riskibarqy/hockey-league/internal/domain/team"
	gamemock "github.com/riskibarqy/hockey-league/internal/mocks/domain/game"
	gamestatmock "github.com/riskibarqy/hockey-league/internal/mocks/domain/gamestat"
	seasonmock "github.com/riskibarqy/hockey-league/internal/mocks/domain/season"
	teammock "github.com/riskibarqy/hockey-league/internal/mocks/domain/team"
	"github.com/riskibarqy/hockey-league/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

type standingMocks struct {
	seasons *seasonmock.Repository
	teams   *teammock.Repository
	games   *gamemock.Repository
	stats   *gamestatmock.Repository
}

func newStandingServiceWithMocks(t *testing.T) (*StandingService, standingMocks) {
	t.Helper()

	m := standingMocks{
		seasons: seasonmock.NewRepository(t),
		teams:   teammock.NewRepository(t),
		games:   gamemock.NewRepository(t),
		stats:   gamestatmock.NewRepository(t),
	}
	return NewStandingService(m.seasons, m.teams, m.games, m.stats, logging.NewNop()), m
}

func standingTeams() []team.Team {
	return []team.Team{
		{ID: "t-wolves", LeagueID: "lg-1", Name: "Wolves", Abbreviation: "WOL"},
		{ID: "t-otters", LeagueID: "lg-1", Name: "Otters", Abbreviation: "OTT"},
	}
}

func TestStandingService_ComputeStandings_DefaultsLeagueToSeason(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, m := newStandingServiceWithMocks(t)

	m.seasons.On("GetByID", mock.Anything, "s-2026").
		Return(season.Season{ID: "s-2026", LeagueID: "lg-1"}, true, nil).Once()
	m.teams.On("ListByLeague", mock.Anything, "lg-1").Return(standingTeams(), nil).Once()
	m.games.On("ListBySeasonAndStatus", mock.Anything, "s-2026", game.StatusCompleted).
		Return([]game.Game{{ID: "g1", HomeTeamID: "t-wolves", AwayTeamID: "t-otters", Status: game.StatusCompleted}}, nil).Once()
	m.stats.On("GoalsByGame", mock.Anything, []string{"g1"}).
		Return(gamestat.TeamGoals{"g1": {"t-wolves": 1, "t-otters": 4}}, nil).Once()

	table, err := service.ComputeStandings(ctx, " s-2026 ", "")
	if err != nil {
		t.Fatalf("ComputeStandings error: %v", err)
	}
	if table.LeagueID != "lg-1" || table.SeasonID != "s-2026" {
		t.Fatalf("unexpected table scope: %+v", table)
	}
	if len(table.Standings) != 2 || table.Standings[0].TeamID != "t-otters" {
		t.Fatalf("unexpected standings: %+v", table.Standings)
	}
	if table.Standings[0].RegulationWins != 1 || table.Standings[0].Points != 2 {
		t.Fatalf("unexpected leader row: %+v", table.Standings[0])
	}
	if len(table.Rules.Tiebreakers) != 5 || table.Rules.Points.Win != 2 {
		t.Fatalf("expected default rules, got %+v", table.Rules)
	}
}

func TestStandingService_ComputeStandings_UsesSeasonRules(t *testing.T) {
	t.Parallel()

	service, m := newStandingServiceWithMocks(t)
	rules := season.Rules{
		Points:      season.PointRules{Win: 3, OTLoss: 1},
		Tiebreakers: []season.TiebreakerKey{season.TiebreakerGoalsFor},
	}

	m.seasons.On("GetByID", mock.Anything, "s-1").
		Return(season.Season{ID: "s-1", LeagueID: "lg-1", Rules: rules}, true, nil).Once()
	m.teams.On("ListByLeague", mock.Anything, "lg-2").Return(standingTeams(), nil).Once()
	m.games.On("ListBySeasonAndStatus", mock.Anything, "s-1", game.StatusCompleted).Return([]game.Game{}, nil).Once()

	table, err := service.ComputeStandings(context.Background(), "s-1", "lg-2")
	if err != nil {
		t.Fatalf("ComputeStandings error: %v", err)
	}
	if table.LeagueID != "lg-2" {
		t.Fatalf("explicit league must win, got %q", table.LeagueID)
	}
	if table.Rules.Points.Win != 3 || len(table.Rules.Tiebreakers) != 1 {
		t.Fatalf("unexpected rules: %+v", table.Rules)
	}
}

func TestStandingService_ComputeStandings_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing season id", func(t *testing.T) {
		t.Parallel()

		service, _ := newStandingServiceWithMocks(t)
		if _, err := service.ComputeStandings(context.Background(), "  ", ""); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("unknown season", func(t *testing.T) {
		t.Parallel()

		service, m := newStandingServiceWithMocks(t)
		m.seasons.On("GetByID", mock.Anything, "nope").Return(season.Season{}, false, nil).Once()

		if _, err := service.ComputeStandings(context.Background(), "nope", ""); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("team read failure", func(t *testing.T) {
		t.Parallel()

		service, m := newStandingServiceWithMocks(t)
		m.seasons.On("GetByID", mock.Anything, "s-1").Return(season.Season{ID: "s-1", LeagueID: "lg-1"}, true, nil).Once()
		m.teams.On("ListByLeague", mock.Anything, "lg-1").Return(nil, errors.New("connection reset")).Once()

		if _, err := service.ComputeStandings(context.Background(), "s-1", ""); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestStandingService_ComputeStandings_SkipsUnreadableGame(t *testing.T) {
	t.Parallel()

	service, m := newStandingServiceWithMocks(t)
	games := []game.Game{
		{ID: "g1", HomeTeamID: "t-wolves", AwayTeamID: "t-otters", Status: game.StatusCompleted},
		{ID: "g2", HomeTeamID: "t-otters", AwayTeamID: "t-wolves", Status: game.StatusCompleted},
	}

	m.seasons.On("GetByID", mock.Anything, "s-1").Return(season.Season{ID: "s-1", LeagueID: "lg-1"}, true, nil).Once()
	m.teams.On("ListByLeague", mock.Anything, "lg-1").Return(standingTeams(), nil).Once()
	m.games.On("ListBySeasonAndStatus", mock.Anything, "s-1", game.StatusCompleted).Return(games, nil).Once()
	m.stats.On("GoalsByGame", mock.Anything, []string{"g1", "g2"}).Return(nil, errors.New("timeout")).Once()
	m.stats.On("GoalsByGame", mock.Anything, []string{"g1"}).
		Return(gamestat.TeamGoals{"g1": {"t-wolves": 3, "t-otters": 0}}, nil).Once()
	m.stats.On("GoalsByGame", mock.Anything, []string{"g2"}).Return(nil, errors.New("timeout")).Once()

	table, err := service.ComputeStandings(context.Background(), "s-1", "")
	if err != nil {
		t.Fatalf("ComputeStandings error: %v", err)
	}

	wolves := table.Standings[0]
	if wolves.TeamID != "t-wolves" || wolves.Wins != 1 || wolves.OvertimeLosses != 0 || wolves.Points != 2 || wolves.GamesPlayed != 1 {
		t.Fatalf("unexpected wolves row: %+v", wolves)
	}
	otters := table.Standings[1]
	if otters.Losses != 1 || otters.OvertimeLosses != 0 || otters.GamesPlayed != 1 || otters.Points != 0 {
		t.Fatalf("unexpected otters row: %+v", otters)
	}
}

func TestStandingService_ComputeStandings_GameWithoutStatRowsIsTie(t *testing.T) {
	t.Parallel()

	service, m := newStandingServiceWithMocks(t)
	games := []game.Game{
		{ID: "g1", HomeTeamID: "t-wolves", AwayTeamID: "t-otters", Status: game.StatusCompleted},
	}

	m.seasons.On("GetByID", mock.Anything, "s-1").Return(season.Season{ID: "s-1", LeagueID: "lg-1"}, true, nil).Once()
	m.teams.On("ListByLeague", mock.Anything, "lg-1").Return(standingTeams(), nil).Once()
	m.games.On("ListBySeasonAndStatus", mock.Anything, "s-1", game.StatusCompleted).Return(games, nil).Once()
	m.stats.On("GoalsByGame", mock.Anything, []string{"g1"}).Return(gamestat.TeamGoals{}, nil).Once()

	table, err := service.ComputeStandings(context.Background(), "s-1", "")
	if err != nil {
		t.Fatalf("ComputeStandings error: %v", err)
	}
	for _, row := range table.Standings {
		if row.GamesPlayed != 1 || row.OvertimeLosses != 1 || row.Points != 1 {
			t.Fatalf("expected a 0-0 tie for %s, got %+v", row.TeamID, row)
		}
	}
}
