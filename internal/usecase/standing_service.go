package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/riskibarqy/hockey-league/internal/domain/game"
	"github.com/riskibarqy/hockey-league/internal/domain/gamestat"
	"github.com/riskibarqy/hockey-league/internal/domain/season"
	"github.com/riskibarqy/hockey-league/internal/domain/standing"
	"github.com/riskibarqy/hockey-league/internal/domain/team"
	"github.com/riskibarqy/hockey-league/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type StandingService struct {
	seasonRepo season.Repository
	teamRepo   team.Repository
	gameRepo   game.Repository
	statRepo   gamestat.Repository
	logger     *logging.Logger
}

func NewStandingService(
	seasonRepo season.Repository,
	teamRepo team.Repository,
	gameRepo game.Repository,
	statRepo gamestat.Repository,
	logger *logging.Logger,
) *StandingService {
	if logger == nil {
		logger = logging.Default()
	}

	return &StandingService{
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		gameRepo:   gameRepo,
		statRepo:   statRepo,
		logger:     logger.Named("standings"),
	}
}

// ComputeStandings ranks the teams of a league for one season. An empty
// leagueID selects the season's own league.
func (s *StandingService) ComputeStandings(ctx context.Context, seasonID, leagueID string) (standing.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ComputeStandings")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	leagueID = strings.TrimSpace(leagueID)
	if seasonID == "" {
		return standing.Table{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	item, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return standing.Table{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return standing.Table{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	rules := item.Rules.Normalize()
	if leagueID == "" {
		leagueID = item.LeagueID
	}
	span.SetAttributes(
		attribute.String("season.id", seasonID),
		attribute.String("league.id", leagueID),
	)

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return standing.Table{}, fmt.Errorf("list teams by league: %w", err)
	}

	games, err := s.gameRepo.ListBySeasonAndStatus(ctx, seasonID, game.StatusCompleted)
	if err != nil {
		return standing.Table{}, fmt.Errorf("list completed games: %w", err)
	}

	goals, unreadable := s.loadGoals(ctx, games)
	if len(unreadable) > 0 {
		games = slices.DeleteFunc(games, func(g game.Game) bool {
			_, skip := unreadable[g.ID]
			return skip
		})
	}
	rows := standing.Compute(teams, games, goals, rules)
	span.SetAttributes(
		attribute.Int("standings.games", len(games)),
		attribute.Int("standings.games_skipped", len(unreadable)),
		attribute.Int("standings.teams", len(rows)),
	)

	return standing.Table{
		SeasonID:  seasonID,
		LeagueID:  leagueID,
		Standings: rows,
		Rules:     rules,
	}, nil
}

// loadGoals reads team goal totals for games. When the bulk read fails each
// game is read on its own; games whose stats still cannot be read are
// returned in the second value and must be left out of the table. A game that
// simply has no stat rows is not unreadable.
func (s *StandingService) loadGoals(ctx context.Context, games []game.Game) (gamestat.TeamGoals, map[string]struct{}) {
	if len(games) == 0 {
		return gamestat.TeamGoals{}, nil
	}

	ids := make([]string, 0, len(games))
	for _, g := range games {
		ids = append(ids, g.ID)
	}

	goals, err := s.statRepo.GoalsByGame(ctx, ids)
	if err == nil {
		return goals, nil
	}
	s.logger.WarnContext(ctx, "bulk goal aggregation failed, reading games individually",
		"game_count", len(ids),
		"error", err,
	)

	goals = make(gamestat.TeamGoals, len(ids))
	var unreadable map[string]struct{}
	for _, gameID := range ids {
		one, err := s.statRepo.GoalsByGame(ctx, []string{gameID})
		if err != nil {
			s.logger.WarnContext(ctx, "read game stats failed, skipping game",
				"game_id", gameID,
				"error", err,
			)
			if unreadable == nil {
				unreadable = make(map[string]struct{})
			}
			unreadable[gameID] = struct{}{}
			continue
		}
		if byTeam, ok := one[gameID]; ok {
			goals[gameID] = byTeam
		}
	}
	return goals, unreadable
}
