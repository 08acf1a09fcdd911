package audit

import "context"

// Repository stores ingestion audit records.
type Repository interface {
	Append(ctx context.Context, rec Record) (Record, error)
	List(ctx context.Context, limit int) ([]Record, error)
	LatestByFile(ctx context.Context, repo, filePath string) (Record, bool, error)
}
