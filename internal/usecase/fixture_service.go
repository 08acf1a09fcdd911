package usecase

import (
	"context"
	"fmt"

	"github.com/KevinKasozi/MatchWise/internal/domain/competition"
	"github.com/KevinKasozi/MatchWise/internal/domain/fixture"
)

// FixtureWithResult pairs a fixture with its score when one is recorded.
type FixtureWithResult struct {
	Fixture fixture.Fixture
	Result  *fixture.Result
}

type FixtureService struct {
	seasonRepo  competition.SeasonRepository
	fixtureRepo fixture.Repository
}

func NewFixtureService(seasonRepo competition.SeasonRepository, fixtureRepo fixture.Repository) *FixtureService {
	return &FixtureService{
		seasonRepo:  seasonRepo,
		fixtureRepo: fixtureRepo,
	}
}

func (s *FixtureService) ListBySeason(ctx context.Context, seasonID int64) ([]FixtureWithResult, error) {
	ctx, span := startUsecaseSpan(ctx, "FixtureService.ListBySeason")
	defer span.End()

	if seasonID <= 0 {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	_, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: season=%d", ErrNotFound, seasonID)
	}

	items, err := s.fixtureRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures by season: %w", err)
	}

	out := make([]FixtureWithResult, 0, len(items))
	for _, item := range items {
		entry := FixtureWithResult{Fixture: item}
		if item.IsCompleted {
			result, found, err := s.fixtureRepo.GetResult(ctx, item.ID)
			if err != nil {
				return nil, fmt.Errorf("get result for fixture %d: %w", item.ID, err)
			}
			if found {
				entry.Result = &result
			}
		}
		out = append(out, entry)
	}

	return out, nil
}

func (s *FixtureService) GetByID(ctx context.Context, fixtureID int64) (FixtureWithResult, error) {
	ctx, span := startUsecaseSpan(ctx, "FixtureService.GetByID")
	defer span.End()

	if fixtureID <= 0 {
		return FixtureWithResult{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}

	item, exists, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return FixtureWithResult{}, fmt.Errorf("get fixture by id: %w", err)
	}
	if !exists {
		return FixtureWithResult{}, fmt.Errorf("%w: fixture=%d", ErrNotFound, fixtureID)
	}

	entry := FixtureWithResult{Fixture: item}
	result, found, err := s.fixtureRepo.GetResult(ctx, item.ID)
	if err != nil {
		return FixtureWithResult{}, fmt.Errorf("get result for fixture %d: %w", item.ID, err)
	}
	if found {
		entry.Result = &result
	}

	return entry, nil
}

func (s *FixtureService) CountBySeason(ctx context.Context, seasonID int64) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "FixtureService.CountBySeason")
	defer span.End()

	if seasonID <= 0 {
		return 0, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	count, err := s.fixtureRepo.CountBySeason(ctx, seasonID)
	if err != nil {
		return 0, fmt.Errorf("count fixtures by season: %w", err)
	}

	return count, nil
}
