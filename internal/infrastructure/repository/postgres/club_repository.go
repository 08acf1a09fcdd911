package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/KevinKasozi/MatchWise/internal/domain/club"
	qb "github.com/KevinKasozi/MatchWise/internal/platform/querybuilder"
)

type ClubRepository struct {
	db *sqlx.DB
}

func NewClubRepository(db *sqlx.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) List(ctx context.Context) ([]club.Club, error) {
	query, args, err := qb.Select("*").From("clubs").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select clubs query: %w", err)
	}

	var rows []clubTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select clubs: %w", err)
	}

	out := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID int64) (club.Club, bool, error) {
	query, args, err := qb.Select("*").From("clubs").
		Where(qb.Eq("id", clubID)).
		ToSQL()
	if err != nil {
		return club.Club{}, false, fmt.Errorf("build get club by id query: %w", err)
	}

	var row clubTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("get club by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *ClubRepository) GetByName(ctx context.Context, name string) (club.Club, bool, error) {
	query, args, err := qb.Select("*").From("clubs").
		Where(qb.Eq("name", name)).
		ToSQL()
	if err != nil {
		return club.Club{}, false, fmt.Errorf("build get club by name query: %w", err)
	}

	var row clubTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("get club by name: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *ClubRepository) Create(ctx context.Context, item club.Club) (club.Club, error) {
	if err := item.Validate(); err != nil {
		return club.Club{}, err
	}

	insert := clubInsertModel{
		Name:             item.Name,
		FoundedYear:      item.FoundedYear,
		StadiumName:      item.StadiumName,
		City:             item.City,
		Country:          item.Country,
		AlternativeNames: pq.StringArray(item.AlternativeNames),
	}
	query, args, err := qb.InsertModel("clubs", insert, "RETURNING id")
	if err != nil {
		return club.Club{}, fmt.Errorf("build insert club query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		if isUniqueViolation(err) {
			// Another worker created the same club first; hand back theirs.
			existing, found, getErr := r.GetByName(ctx, item.Name)
			if getErr == nil && found {
				return existing, nil
			}
		}
		return club.Club{}, fmt.Errorf("insert club %s: %w", item.Name, err)
	}

	return item, nil
}

func (r *ClubRepository) Update(ctx context.Context, item club.Club) error {
	query, args, err := qb.Update("clubs").
		Set("founded_year", item.FoundedYear).
		Set("stadium_name", item.StadiumName).
		Set("city", item.City).
		Set("country", item.Country).
		Set("alternative_names", pq.StringArray(item.AlternativeNames)).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update club query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update club %d: %w", item.ID, err)
	}

	return nil
}
