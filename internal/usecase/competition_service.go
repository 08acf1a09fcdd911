package usecase

import (
	"context"
	"fmt"

	"github.com/KevinKasozi/MatchWise/internal/domain/competition"
)

type CompetitionService struct {
	competitionRepo competition.Repository
	seasonRepo      competition.SeasonRepository
}

func NewCompetitionService(
	competitionRepo competition.Repository,
	seasonRepo competition.SeasonRepository,
) *CompetitionService {
	return &CompetitionService{
		competitionRepo: competitionRepo,
		seasonRepo:      seasonRepo,
	}
}

func (s *CompetitionService) List(ctx context.Context) ([]competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "CompetitionService.List")
	defer span.End()

	items, err := s.competitionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}

	return items, nil
}

func (s *CompetitionService) ListSeasons(ctx context.Context, competitionID int64) ([]competition.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "CompetitionService.ListSeasons")
	defer span.End()

	if competitionID <= 0 {
		return nil, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	_, exists, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: competition=%d", ErrNotFound, competitionID)
	}

	seasons, err := s.seasonRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list seasons by competition: %w", err)
	}

	return seasons, nil
}
