package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/KevinKasozi/MatchWise/internal/domain/competition"
	qb "github.com/KevinKasozi/MatchWise/internal/platform/querybuilder"
)

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) List(ctx context.Context) ([]competition.Competition, error) {
	query, args, err := qb.Select("*").From("competitions").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select competitions query: %w", err)
	}

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select competitions: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *CompetitionRepository) GetByID(ctx context.Context, competitionID int64) (competition.Competition, bool, error) {
	query, args, err := qb.Select("*").From("competitions").
		Where(qb.Eq("id", competitionID)).
		ToSQL()
	if err != nil {
		return competition.Competition{}, false, fmt.Errorf("build get competition by id query: %w", err)
	}

	var row competitionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, fmt.Errorf("get competition by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *CompetitionRepository) GetByName(ctx context.Context, name string) (competition.Competition, bool, error) {
	query, args, err := qb.Select("*").From("competitions").
		Where(qb.Eq("name", name)).
		ToSQL()
	if err != nil {
		return competition.Competition{}, false, fmt.Errorf("build get competition by name query: %w", err)
	}

	var row competitionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, fmt.Errorf("get competition by name: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *CompetitionRepository) Create(ctx context.Context, item competition.Competition) (competition.Competition, error) {
	if err := item.Validate(); err != nil {
		return competition.Competition{}, err
	}

	query, args, err := qb.InsertInto("competitions").
		Columns("name", "country", "type").
		Values(item.Name, item.Country, item.Type).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return competition.Competition{}, fmt.Errorf("build insert competition query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		if isUniqueViolation(err) {
			existing, found, getErr := r.GetByName(ctx, item.Name)
			if getErr == nil && found {
				return existing, nil
			}
		}
		return competition.Competition{}, fmt.Errorf("insert competition %s: %w", item.Name, err)
	}

	return item, nil
}

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) ListByCompetition(ctx context.Context, competitionID int64) ([]competition.Season, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(qb.Eq("competition_id", competitionID)).
		OrderBy("year_start", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select seasons by competition: %w", err)
	}

	out := make([]competition.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID int64) (competition.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(qb.Eq("id", seasonID)).
		ToSQL()
	if err != nil {
		return competition.Season{}, false, fmt.Errorf("build get season by id query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Season{}, false, nil
		}
		return competition.Season{}, false, fmt.Errorf("get season by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *SeasonRepository) GetByCompetitionAndName(ctx context.Context, competitionID int64, name string) (competition.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(
			qb.Eq("competition_id", competitionID),
			qb.Eq("name", name),
		).
		ToSQL()
	if err != nil {
		return competition.Season{}, false, fmt.Errorf("build get season by name query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Season{}, false, nil
		}
		return competition.Season{}, false, fmt.Errorf("get season by name: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *SeasonRepository) Create(ctx context.Context, item competition.Season) (competition.Season, error) {
	if err := item.Validate(); err != nil {
		return competition.Season{}, err
	}

	existing, err := r.ListByCompetition(ctx, item.CompetitionID)
	if err != nil {
		return competition.Season{}, fmt.Errorf("check season overlap: %w", err)
	}
	for _, other := range existing {
		if other.Overlaps(item) {
			return competition.Season{}, fmt.Errorf("season %s overlaps existing season %s", item.Name, other.Name)
		}
	}

	query, args, err := qb.InsertInto("seasons").
		Columns("competition_id", "year_start", "year_end", "name").
		Values(item.CompetitionID, item.YearStart, item.YearEnd, item.Name).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return competition.Season{}, fmt.Errorf("build insert season query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		if isUniqueViolation(err) {
			existing, found, getErr := r.GetByCompetitionAndName(ctx, item.CompetitionID, item.Name)
			if getErr == nil && found {
				return existing, nil
			}
		}
		return competition.Season{}, fmt.Errorf("insert season %s: %w", item.Name, err)
	}

	return item, nil
}
