package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hockey-league/internal/domain/season"
	"github.com/riskibarqy/hockey-league/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/hockey-league/internal/platform/querybuilder"
)

const seedConflictSuffix = "ON CONFLICT (public_id) DO NOTHING"

// BootstrapSeed loads the demo league into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM seasons WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count seasons for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	exec := func(kind, id string, model any) error {
		query, args, err := qb.InsertModel(kind+"s", model, seedConflictSuffix)
		if err != nil {
			return fmt.Errorf("build seed %s %s query: %w", kind, id, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed %s %s: %w", kind, id, err)
		}
		return nil
	}

	for _, s := range memory.SeedSeasons() {
		rules, err := season.MarshalRules(s.Rules)
		if err != nil {
			return fmt.Errorf("encode seed season %s rules: %w", s.ID, err)
		}
		if err := exec("season", s.ID, seasonInsertModel{
			PublicID:  s.ID,
			LeagueID:  s.LeagueID,
			Name:      s.Name,
			StartDate: s.StartDate.UTC(),
			EndDate:   s.EndDate.UTC(),
			Status:    s.Status,
			Rules:     string(rules),
		}); err != nil {
			return err
		}
	}

	for _, t := range memory.SeedTeams() {
		if err := exec("team", t.ID, teamInsertModel{
			PublicID:     t.ID,
			LeagueID:     t.LeagueID,
			Name:         t.Name,
			Abbreviation: t.Abbreviation,
		}); err != nil {
			return err
		}
	}

	for _, g := range memory.SeedGames() {
		var venue *string
		if g.Venue != "" {
			venue = &g.Venue
		}
		if err := exec("game", g.ID, gameInsertModel{
			PublicID:    g.ID,
			SeasonID:    g.SeasonID,
			HomeTeamID:  g.HomeTeamID,
			AwayTeamID:  g.AwayTeamID,
			ScheduledAt: g.ScheduledAt.UTC(),
			Status:      g.Status,
			Venue:       venue,
		}); err != nil {
			return err
		}
	}

	for _, s := range memory.SeedGameStats() {
		if err := exec("game_stat", s.ID, gameStatInsertModelFrom(s)); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
