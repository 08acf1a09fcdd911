package usecase

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/KevinKasozi/MatchWise/internal/ingest"
)

// IngestionService runs data ingestions on demand. Runs are serialized: a
// second trigger while one is in flight is rejected rather than queued, since
// both would walk the same files.
type IngestionService struct {
	runner  *ingest.Runner
	running atomic.Bool
}

func NewIngestionService(runner *ingest.Runner) *IngestionService {
	return &IngestionService{runner: runner}
}

func (s *IngestionService) Run(ctx context.Context, opts ingest.Options) (ingest.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "IngestionService.Run")
	defer span.End()

	if !s.running.CompareAndSwap(false, true) {
		return ingest.Summary{}, ErrRunInProgress
	}
	defer s.running.Store(false)

	summary, err := s.runner.Run(ctx, opts)
	if err != nil {
		if ingest.IsConnectionFailure(err) {
			return ingest.Summary{}, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
		}
		return ingest.Summary{}, fmt.Errorf("run ingestion: %w", err)
	}

	return summary, nil
}

// Running reports whether an ingestion is currently in flight.
func (s *IngestionService) Running() bool {
	return s.running.Load()
}
