package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/hockey-league/internal/domain/game"
	"github.com/riskibarqy/hockey-league/internal/domain/gamestat"
	"github.com/riskibarqy/hockey-league/internal/domain/user"
	gamemock "github.com/riskibarqy/hockey-league/internal/mocks/domain/game"
	"github.com/stretchr/testify/mock"
)

func TestGameStatService_Create(t *testing.T) {
	t.Parallel()

	manager := user.Principal{UserID: "u-1", Role: user.RoleManager}
	line := gamestat.GameStat{GameID: "g-1", PlayerID: "p-9", TeamID: "t-1", Goals: 1, Assists: 2, Points: 40, Shots: 4}

	t.Run("stores manual line", func(t *testing.T) {
		t.Parallel()

		games := gamemock.NewRepository(t)
		games.On("GetByID", mock.Anything, "g-1").Return(game.Game{ID: "g-1"}, true, nil).Once()
		stats := newStubStatRepository()
		service := NewGameStatService(games, stats, &sequenceIDGenerator{})

		got, err := service.Create(context.Background(), manager, line)
		if err != nil {
			t.Fatalf("Create error: %v", err)
		}
		if got.ID == "" || got.Points != 3 || got.Source != gamestat.SourceManual || got.ProcessedAt == nil {
			t.Fatalf("unexpected stored line: %+v", got)
		}
		if stats.count() != 1 {
			t.Fatalf("expected 1 stored row, got %d", stats.count())
		}

		games.On("GetByID", mock.Anything, "g-1").Return(game.Game{ID: "g-1"}, true, nil).Once()
		if _, err := service.Create(context.Background(), manager, line); !errors.Is(err, ErrConflict) {
			t.Fatalf("expected ErrConflict on duplicate, got %v", err)
		}
	})

	t.Run("player role is forbidden", func(t *testing.T) {
		t.Parallel()

		service := NewGameStatService(gamemock.NewRepository(t), newStubStatRepository(), nil)
		_, err := service.Create(context.Background(), user.Principal{UserID: "u-2", Role: user.RolePlayer}, line)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("out of range values", func(t *testing.T) {
		t.Parallel()

		bad := line
		bad.Goals = 21
		service := NewGameStatService(gamemock.NewRepository(t), newStubStatRepository(), nil)
		if _, err := service.Create(context.Background(), manager, bad); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("unknown game", func(t *testing.T) {
		t.Parallel()

		games := gamemock.NewRepository(t)
		games.On("GetByID", mock.Anything, "g-1").Return(game.Game{}, false, nil).Once()
		service := NewGameStatService(games, newStubStatRepository(), nil)
		if _, err := service.Create(context.Background(), manager, line); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestGameStatService_ListNormalizesPaging(t *testing.T) {
	t.Parallel()

	stats := newStubStatRepository()
	_ = stats.Insert(context.Background(), []gamestat.GameStat{
		{GameID: "g-1", PlayerID: "p-1", TeamID: "t-1"},
		{GameID: "g-1", PlayerID: "p-2", TeamID: "t-2"},
	})
	service := NewGameStatService(gamemock.NewRepository(t), stats, nil)

	page, err := service.List(context.Background(), gamestat.Filter{TeamID: "t-2", Limit: 500})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if page.Page != 1 || page.Limit != gamestat.MaxPageLimit {
		t.Fatalf("unexpected paging: %+v", page)
	}
	if page.Total != 1 || page.Items[0].PlayerID != "p-2" {
		t.Fatalf("unexpected items: %+v", page)
	}
}
