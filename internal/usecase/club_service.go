package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/KevinKasozi/MatchWise/internal/domain/club"
	"github.com/KevinKasozi/MatchWise/internal/domain/team"
)

// ClubDetails is a club together with its playing side.
type ClubDetails struct {
	Club club.Club
	Team *team.Team
}

type ClubService struct {
	clubRepo club.Repository
	teamRepo team.Repository
}

func NewClubService(clubRepo club.Repository, teamRepo team.Repository) *ClubService {
	return &ClubService{
		clubRepo: clubRepo,
		teamRepo: teamRepo,
	}
}

func (s *ClubService) List(ctx context.Context) ([]club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "ClubService.List")
	defer span.End()

	items, err := s.clubRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}

	return items, nil
}

func (s *ClubService) GetDetails(ctx context.Context, clubID int64) (ClubDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "ClubService.GetDetails")
	defer span.End()

	if clubID <= 0 {
		return ClubDetails{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}

	item, exists, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return ClubDetails{}, fmt.Errorf("get club by id: %w", err)
	}
	if !exists {
		return ClubDetails{}, fmt.Errorf("%w: club=%d", ErrNotFound, clubID)
	}

	details := ClubDetails{Club: item}
	side, exists, err := s.teamRepo.GetByClub(ctx, clubID, team.TypeClub)
	if err != nil {
		return ClubDetails{}, fmt.Errorf("get club team: %w", err)
	}
	if exists {
		details.Team = &side
	}

	return details, nil
}

// Search matches clubs whose canonical name or any alias contains the query,
// case-insensitively.
func (s *ClubService) Search(ctx context.Context, query string) ([]club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "ClubService.Search")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrInvalidInput)
	}

	items, err := s.clubRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}

	needle := strings.ToLower(query)
	var out []club.Club
	for _, item := range items {
		if clubMatches(item, needle) {
			out = append(out, item)
		}
	}

	return out, nil
}

func clubMatches(item club.Club, needle string) bool {
	if strings.Contains(strings.ToLower(item.Name), needle) {
		return true
	}
	for _, alias := range item.AlternativeNames {
		if strings.Contains(strings.ToLower(alias), needle) {
			return true
		}
	}
	return false
}
