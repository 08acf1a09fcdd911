package team

import "context"

// Repository describes team persistence needs from use cases and ingestion.
type Repository interface {
	GetByID(ctx context.Context, teamID int64) (Team, bool, error)
	// GetByClub returns the club's team of the given type; at most one exists.
	GetByClub(ctx context.Context, clubID int64, teamType string) (Team, bool, error)
	Create(ctx context.Context, item Team) (Team, error)
}
