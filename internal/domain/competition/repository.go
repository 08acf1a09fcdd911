package competition

import "context"

// Repository describes competition persistence needs from use cases and
// ingestion.
type Repository interface {
	List(ctx context.Context) ([]Competition, error)
	GetByID(ctx context.Context, competitionID int64) (Competition, bool, error)
	GetByName(ctx context.Context, name string) (Competition, bool, error)
	Create(ctx context.Context, item Competition) (Competition, error)
}

// SeasonRepository describes season persistence needs.
type SeasonRepository interface {
	ListByCompetition(ctx context.Context, competitionID int64) ([]Season, error)
	GetByID(ctx context.Context, seasonID int64) (Season, bool, error)
	GetByCompetitionAndName(ctx context.Context, competitionID int64, name string) (Season, bool, error)
	Create(ctx context.Context, item Season) (Season, error)
}
