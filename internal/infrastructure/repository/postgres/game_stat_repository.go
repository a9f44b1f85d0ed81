package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hockey-league/internal/domain/gamestat"
	qb "github.com/riskibarqy/hockey-league/internal/platform/querybuilder"
)

const gameStatUpsertSuffix = `ON CONFLICT (game_public_id, player_public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    team_public_id = EXCLUDED.team_public_id,
    goals = EXCLUDED.goals,
    assists = EXCLUDED.assists,
    points = EXCLUDED.points,
    shots = EXCLUDED.shots,
    time_on_ice = EXCLUDED.time_on_ice,
    penalty_minutes = EXCLUDED.penalty_minutes,
    plus_minus = EXCLUDED.plus_minus,
    saves = EXCLUDED.saves,
    goals_against = EXCLUDED.goals_against,
    source = EXCLUDED.source,
    processed_at = EXCLUDED.processed_at,
    updated_at = NOW()`

type GameStatRepository struct {
	db *sqlx.DB
}

func NewGameStatRepository(db *sqlx.DB) *GameStatRepository {
	return &GameStatRepository{db: db}
}

// Insert writes every row in one statement, so a unique violation on any
// (game, player) pair rejects the whole batch.
func (r *GameStatRepository) Insert(ctx context.Context, stats []gamestat.GameStat) error {
	if len(stats) == 0 {
		return nil
	}

	models := make([]gameStatInsertModel, 0, len(stats))
	for _, item := range stats {
		models = append(models, gameStatInsertModelFrom(item))
	}

	query, args, err := qb.InsertModels("game_stats", models, "")
	if err != nil {
		return fmt.Errorf("build insert game stats query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", gamestat.ErrDuplicate, err)
		}
		return fmt.Errorf("insert game stats: %w", err)
	}

	return nil
}

// Upsert keeps the stored public id of a colliding row. Within one batch the
// last row for a (game, player) pair wins.
func (r *GameStatRepository) Upsert(ctx context.Context, stats []gamestat.GameStat) error {
	if len(stats) == 0 {
		return nil
	}

	position := make(map[string]int, len(stats))
	models := make([]gameStatInsertModel, 0, len(stats))
	for _, item := range stats {
		if idx, ok := position[item.Key()]; ok {
			models[idx] = gameStatInsertModelFrom(item)
			continue
		}
		position[item.Key()] = len(models)
		models = append(models, gameStatInsertModelFrom(item))
	}

	query, args, err := qb.InsertModels("game_stats", models, gameStatUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert game stats query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert game stats: %w", err)
	}

	return nil
}

func (r *GameStatRepository) GoalsByGame(ctx context.Context, gameIDs []string) (gamestat.TeamGoals, error) {
	out := make(gamestat.TeamGoals, len(gameIDs))
	if len(gameIDs) == 0 {
		return out, nil
	}

	query, args, err := qb.Select("game_public_id", "team_public_id", "COALESCE(SUM(goals), 0) AS goals").
		From("game_stats").
		Where(
			qb.In("game_public_id", anySlice(gameIDs)),
			qb.IsNull("deleted_at"),
		).
		GroupBy("game_public_id", "team_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select goals by game query: %w", err)
	}

	var rows []teamGoalsRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select goals by game: %w", err)
	}

	for _, row := range rows {
		byTeam, ok := out[row.GameID]
		if !ok {
			byTeam = make(map[string]int, 2)
			out[row.GameID] = byTeam
		}
		byTeam[row.TeamID] = row.Goals
	}

	return out, nil
}

func (r *GameStatRepository) List(ctx context.Context, filter gamestat.Filter) ([]gamestat.GameStat, int, error) {
	filter = filter.Normalize()

	conditions := []qb.Condition{qb.IsNull("deleted_at")}
	if filter.GameID != "" {
		conditions = append(conditions, qb.Eq("game_public_id", filter.GameID))
	}
	if filter.PlayerID != "" {
		conditions = append(conditions, qb.Eq("player_public_id", filter.PlayerID))
	}
	if filter.TeamID != "" {
		conditions = append(conditions, qb.Eq("team_public_id", filter.TeamID))
	}

	countQuery, countArgs, err := qb.Select("COUNT(1)").From("game_stats").Where(conditions...).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build count game stats query: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count game stats: %w", err)
	}
	if total == 0 {
		return []gamestat.GameStat{}, 0, nil
	}

	query, args, err := qb.Select("*").From("game_stats").
		Where(conditions...).
		OrderBy("game_public_id", "player_public_id").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build select game stats query: %w", err)
	}

	var rows []gameStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("select game stats: %w", err)
	}

	out := make([]gamestat.GameStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameStatFromRow(row))
	}

	return out, total, nil
}
