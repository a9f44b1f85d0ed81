package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/hockey-league/internal/domain/gamestat"
)

// ExternalMatchClub is one side of a provider match.
type ExternalMatchClub struct {
	ClubID int64  `json:"club_id"`
	Name   string `json:"name"`
	Goals  int    `json:"goals"`
}

// ExternalMatch is a provider match with its normalized stat lines.
type ExternalMatch struct {
	MatchID  string              `json:"match_id"`
	PlayedAt time.Time           `json:"played_at"`
	Clubs    []ExternalMatchClub `json:"clubs"`
	Stats    []gamestat.GameStat `json:"stats"`
}

// MatchProvider is an external match-history source tracking a set of clubs.
type MatchProvider interface {
	StatsProvider
	ValidateConnection(ctx context.Context) bool
	FetchAllMatches(ctx context.Context) ([]ExternalMatch, error)
	ClubIDs() []int64
	SetClubIDs(ids []int64) error
	AddClubID(id int64) error
	RemoveClubID(id int64)
}

// ProviderStatus reports whether the provider answered a probe request.
type ProviderStatus struct {
	Connected bool      `json:"connected"`
	ClubIDs   []int64   `json:"club_ids"`
	CheckedAt time.Time `json:"timestamp"`
}

type ProviderService struct {
	provider    MatchProvider
	statRepo    gamestat.Repository
	upsertStats bool
	now         func() time.Time
}

func NewProviderService(provider MatchProvider, statRepo gamestat.Repository, upsertStats bool) *ProviderService {
	return &ProviderService{
		provider:    provider,
		statRepo:    statRepo,
		upsertStats: upsertStats,
		now:         time.Now,
	}
}

func (s *ProviderService) ensureConfigured() error {
	if s == nil || s.provider == nil {
		return fmt.Errorf("%w: match provider is not configured", ErrDependencyUnavailable)
	}
	return nil
}

func (s *ProviderService) Status(ctx context.Context) (ProviderStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProviderService.Status")
	defer span.End()

	if err := s.ensureConfigured(); err != nil {
		return ProviderStatus{}, err
	}
	return ProviderStatus{
		Connected: s.provider.ValidateConnection(ctx),
		ClubIDs:   s.provider.ClubIDs(),
		CheckedAt: s.now().UTC(),
	}, nil
}

func (s *ProviderService) ListMatches(ctx context.Context) ([]ExternalMatch, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProviderService.ListMatches")
	defer span.End()

	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}
	matches, err := s.provider.FetchAllMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch provider matches: %w", err)
	}
	return matches, nil
}

// ImportMatch fetches one match's stat lines and stores them.
func (s *ProviderService) ImportMatch(ctx context.Context, matchID string) ([]gamestat.GameStat, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProviderService.ImportMatch")
	defer span.End()

	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	stats, err := s.provider.GetGameStats(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("fetch match stats: %w", err)
	}
	if len(stats) == 0 {
		return []gamestat.GameStat{}, nil
	}

	if s.upsertStats {
		err = s.statRepo.Upsert(ctx, stats)
	} else {
		err = s.statRepo.Insert(ctx, stats)
	}
	if err != nil {
		if errors.Is(err, gamestat.ErrDuplicate) {
			return nil, fmt.Errorf("%w: match %s already imported", ErrConflict, matchID)
		}
		return nil, fmt.Errorf("store match stats: %w", err)
	}
	return stats, nil
}

func (s *ProviderService) ClubIDs() ([]int64, error) {
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}
	return s.provider.ClubIDs(), nil
}

func (s *ProviderService) SetClubIDs(ids []int64) ([]int64, error) {
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}
	if err := s.provider.SetClubIDs(ids); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.provider.ClubIDs(), nil
}

func (s *ProviderService) AddClubID(id int64) ([]int64, error) {
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}
	if err := s.provider.AddClubID(id); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.provider.ClubIDs(), nil
}

func (s *ProviderService) RemoveClubID(id int64) ([]int64, error) {
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}
	s.provider.RemoveClubID(id)
	return s.provider.ClubIDs(), nil
}
