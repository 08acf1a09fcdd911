package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/KevinKasozi/MatchWise/internal/infrastructure/repository/memory"
)

// BootstrapSeed inserts the starter clubs into an empty database so the API
// has something to serve before the first ingestion run.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM clubs`); err != nil {
		return fmt.Errorf("count clubs for bootstrap seed: %w", err)
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

	for _, c := range memory.SeedClubs() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO clubs (name, founded_year, stadium_name, city, country, alternative_names)
VALUES (:name, :founded_year, :stadium_name, :city, :country, :alternative_names)
ON CONFLICT (name) DO NOTHING`, map[string]any{
			"name":              c.Name,
			"founded_year":      c.FoundedYear,
			"stadium_name":      c.StadiumName,
			"city":              c.City,
			"country":           c.Country,
			"alternative_names": pq.StringArray(c.AlternativeNames),
		})
		if err != nil {
			return fmt.Errorf("bind seed club %s query: %w", c.Name, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed club %s: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
