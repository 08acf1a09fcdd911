package club

import "context"

// Repository describes club persistence needs from use cases and ingestion.
type Repository interface {
	List(ctx context.Context) ([]Club, error)
	GetByID(ctx context.Context, clubID int64) (Club, bool, error)
	GetByName(ctx context.Context, name string) (Club, bool, error)
	Create(ctx context.Context, item Club) (Club, error)
	// Update backfills mutable attributes; the name itself never changes here.
	Update(ctx context.Context, item Club) error
}
