package usecase

import (
	"context"
	"fmt"

	"github.com/KevinKasozi/MatchWise/internal/domain/club"
	"github.com/KevinKasozi/MatchWise/internal/domain/team"
)

// TeamDetails resolves a team back to the club it plays for. National teams
// carry no club.
type TeamDetails struct {
	Team team.Team
	Club *club.Club
}

type TeamService struct {
	teamRepo team.Repository
	clubRepo club.Repository
}

func NewTeamService(teamRepo team.Repository, clubRepo club.Repository) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		clubRepo: clubRepo,
	}
}

func (s *TeamService) GetDetails(ctx context.Context, teamID int64) (TeamDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.GetDetails")
	defer span.End()

	if teamID <= 0 {
		return TeamDetails{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return TeamDetails{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return TeamDetails{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}

	details := TeamDetails{Team: item}
	if item.ClubID != nil {
		owner, exists, err := s.clubRepo.GetByID(ctx, *item.ClubID)
		if err != nil {
			return TeamDetails{}, fmt.Errorf("get club for team: %w", err)
		}
		if !exists {
			return TeamDetails{}, fmt.Errorf("%w: club=%d for team=%d", ErrNotFound, *item.ClubID, teamID)
		}
		details.Club = &owner
	}

	return details, nil
}
