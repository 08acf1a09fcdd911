package fixture

import (
	"context"
	"errors"
)

// ErrDuplicateKey reports a natural-key uniqueness violation raised by a
// concurrent insert. Callers may retry the upsert once.
var ErrDuplicateKey = errors.New("fixture: duplicate natural key")

// Repository describes fixture persistence needs. Upsert is keyed by the
// natural key so re-ingesting a source file never duplicates a match.
type Repository interface {
	GetByID(ctx context.Context, fixtureID int64) (Fixture, bool, error)
	GetByKey(ctx context.Context, key Key) (Fixture, bool, error)
	ListBySeason(ctx context.Context, seasonID int64) ([]Fixture, error)
	CountBySeason(ctx context.Context, seasonID int64) (int, error)
	// Upsert inserts a new fixture or updates the mutable fields (time,
	// stage, venue, completion) of the row matching the natural key.
	// It reports whether a new row was created.
	Upsert(ctx context.Context, item Fixture) (Fixture, bool, error)
	// SetResult records or replaces the score of a completed fixture.
	SetResult(ctx context.Context, result Result) error
	GetResult(ctx context.Context, fixtureID int64) (Result, bool, error)
}
