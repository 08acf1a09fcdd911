package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/KevinKasozi/MatchWise/internal/domain/fixture"
	qb "github.com/KevinKasozi/MatchWise/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID int64) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(qb.Eq("id", fixtureID)).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build get fixture by id query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("get fixture by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *FixtureRepository) GetByKey(ctx context.Context, key fixture.Key) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(
			qb.Eq("season_id", key.SeasonID),
			qb.Eq("match_date", key.MatchDate),
			qb.Eq("home_team_id", key.HomeTeamID),
			qb.Eq("away_team_id", key.AwayTeamID),
		).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build get fixture by key query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("get fixture by key: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *FixtureRepository) ListBySeason(ctx context.Context, seasonID int64) ([]fixture.Fixture, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("match_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures by season query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures by season: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *FixtureRepository) CountBySeason(ctx context.Context, seasonID int64) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("fixtures").
		Where(qb.Eq("season_id", seasonID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count fixtures query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count fixtures by season: %w", err)
	}

	return count, nil
}

// Upsert inserts on the natural key or, when the key already exists, updates
// the mutable columns in place. Empty incoming time, stage and venue never
// blank out values a richer source already set.
func (r *FixtureRepository) Upsert(ctx context.Context, item fixture.Fixture) (fixture.Fixture, bool, error) {
	if err := item.Validate(); err != nil {
		return fixture.Fixture{}, false, err
	}

	query, args, err := qb.InsertInto("fixtures").
		Columns("season_id", "match_date", "match_time", "home_team_id", "away_team_id", "stage", "venue", "is_completed").
		Values(item.SeasonID, item.MatchDate, item.MatchTime, item.HomeTeamID, item.AwayTeamID, item.Stage, item.Venue, item.IsCompleted).
		Suffix(`ON CONFLICT (season_id, match_date, home_team_id, away_team_id)
DO UPDATE SET
    match_time = CASE WHEN EXCLUDED.match_time <> '' THEN EXCLUDED.match_time ELSE fixtures.match_time END,
    stage = CASE WHEN EXCLUDED.stage <> '' THEN EXCLUDED.stage ELSE fixtures.stage END,
    venue = CASE WHEN EXCLUDED.venue <> '' THEN EXCLUDED.venue ELSE fixtures.venue END,
    is_completed = EXCLUDED.is_completed,
    updated_at = NOW()
RETURNING id, match_time, stage, venue, (xmax = 0) AS inserted`).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build upsert fixture query: %w", err)
	}

	var created bool
	row := r.db.QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&item.ID, &item.MatchTime, &item.Stage, &item.Venue, &created); err != nil {
		if isUniqueViolation(err) {
			return fixture.Fixture{}, false, fixture.ErrDuplicateKey
		}
		return fixture.Fixture{}, false, fmt.Errorf("upsert fixture: %w", err)
	}

	return item, created, nil
}

func (r *FixtureRepository) SetResult(ctx context.Context, result fixture.Result) error {
	if err := result.Validate(); err != nil {
		return err
	}

	query, args, err := qb.InsertInto("match_results").
		Columns("fixture_id", "home_score", "away_score", "extra_time", "penalties", "recorded_at").
		Values(result.FixtureID, result.HomeScore, result.AwayScore, result.ExtraTime, result.Penalties, time.Now().UTC()).
		Suffix(`ON CONFLICT (fixture_id)
DO UPDATE SET
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    extra_time = EXCLUDED.extra_time,
    penalties = EXCLUDED.penalties,
    recorded_at = EXCLUDED.recorded_at`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert result query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert result for fixture %d: %w", result.FixtureID, err)
	}

	return nil
}

func (r *FixtureRepository) GetResult(ctx context.Context, fixtureID int64) (fixture.Result, bool, error) {
	query, args, err := qb.Select("*").From("match_results").
		Where(qb.Eq("fixture_id", fixtureID)).
		ToSQL()
	if err != nil {
		return fixture.Result{}, false, fmt.Errorf("build get result query: %w", err)
	}

	var row resultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Result{}, false, nil
		}
		return fixture.Result{}, false, fmt.Errorf("get result for fixture %d: %w", fixtureID, err)
	}

	return row.toDomain(), true, nil
}
