package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/hockey-league/internal/domain/game"
	"github.com/riskibarqy/hockey-league/internal/domain/gamestat"
	"github.com/riskibarqy/hockey-league/internal/domain/user"
	"github.com/riskibarqy/hockey-league/internal/platform/id"
)

type GameStatService struct {
	gameRepo game.Repository
	statRepo gamestat.Repository
	idGen    id.Generator
	now      func() time.Time
}

func NewGameStatService(gameRepo game.Repository, statRepo gamestat.Repository, idGen id.Generator) *GameStatService {
	if idGen == nil {
		idGen = id.NewTimeOrderedGenerator()
	}
	return &GameStatService{
		gameRepo: gameRepo,
		statRepo: statRepo,
		idGen:    idGen,
		now:      time.Now,
	}
}

// GameStatPage is one page of stat lines.
type GameStatPage struct {
	Items []gamestat.GameStat `json:"items"`
	Total int                 `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}

// Create records a manually entered stat line for principal.
func (s *GameStatService) Create(ctx context.Context, principal user.Principal, stat gamestat.GameStat) (gamestat.GameStat, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameStatService.Create")
	defer span.End()

	if !principal.Can(user.PermissionEnterStats) {
		return gamestat.GameStat{}, fmt.Errorf("%w: role %s cannot enter stats", ErrForbidden, principal.Role)
	}

	stat.GameID = strings.TrimSpace(stat.GameID)
	stat.PlayerID = strings.TrimSpace(stat.PlayerID)
	stat.TeamID = strings.TrimSpace(stat.TeamID)
	if err := stat.Validate(); err != nil {
		return gamestat.GameStat{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, exists, err := s.gameRepo.GetByID(ctx, stat.GameID)
	if err != nil {
		return gamestat.GameStat{}, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return gamestat.GameStat{}, fmt.Errorf("%w: game=%s", ErrNotFound, stat.GameID)
	}

	statID, err := s.idGen.NewID()
	if err != nil {
		return gamestat.GameStat{}, fmt.Errorf("generate game stat id: %w", err)
	}
	now := s.now().UTC()
	stat.ID = statID
	stat.Source = gamestat.SourceManual
	stat.ProcessedAt = &now
	stat.Recompute()

	if err := s.statRepo.Insert(ctx, []gamestat.GameStat{stat}); err != nil {
		if errors.Is(err, gamestat.ErrDuplicate) {
			return gamestat.GameStat{}, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return gamestat.GameStat{}, fmt.Errorf("insert game stat: %w", err)
	}

	return stat, nil
}

func (s *GameStatService) List(ctx context.Context, filter gamestat.Filter) (GameStatPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameStatService.List")
	defer span.End()

	filter = filter.Normalize()
	items, total, err := s.statRepo.List(ctx, filter)
	if err != nil {
		return GameStatPage{}, fmt.Errorf("list game stats: %w", err)
	}
	if items == nil {
		items = []gamestat.GameStat{}
	}

	return GameStatPage{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}
