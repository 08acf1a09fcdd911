package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KevinKasozi/MatchWise/internal/domain/club"
	"github.com/KevinKasozi/MatchWise/internal/domain/team"
)

type stubClubRepo struct {
	clubs []club.Club
}

func (s *stubClubRepo) List(_ context.Context) ([]club.Club, error) { return s.clubs, nil }

func (s *stubClubRepo) GetByID(_ context.Context, clubID int64) (club.Club, bool, error) {
	for _, c := range s.clubs {
		if c.ID == clubID {
			return c, true, nil
		}
	}
	return club.Club{}, false, nil
}

func (s *stubClubRepo) GetByName(_ context.Context, name string) (club.Club, bool, error) {
	for _, c := range s.clubs {
		if c.Name == name {
			return c, true, nil
		}
	}
	return club.Club{}, false, nil
}

func (s *stubClubRepo) Create(_ context.Context, item club.Club) (club.Club, error) {
	item.ID = int64(len(s.clubs) + 1)
	s.clubs = append(s.clubs, item)
	return item, nil
}

func (s *stubClubRepo) Update(_ context.Context, item club.Club) error {
	for i, c := range s.clubs {
		if c.ID == item.ID {
			s.clubs[i] = item
		}
	}
	return nil
}

type stubTeamRepo struct {
	teams []team.Team
}

func (s *stubTeamRepo) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	for _, t := range s.teams {
		if t.ID == teamID {
			return t, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (s *stubTeamRepo) GetByClub(_ context.Context, clubID int64, teamType string) (team.Team, bool, error) {
	for _, t := range s.teams {
		if t.ClubID != nil && *t.ClubID == clubID && t.Type == teamType {
			return t, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (s *stubTeamRepo) Create(_ context.Context, item team.Team) (team.Team, error) {
	item.ID = int64(len(s.teams) + 1)
	s.teams = append(s.teams, item)
	return item, nil
}

func TestClubServiceGetDetails(t *testing.T) {
	t.Parallel()

	clubID := int64(7)
	clubs := &stubClubRepo{clubs: []club.Club{{ID: clubID, Name: "Arsenal FC"}}}
	teams := &stubTeamRepo{teams: []team.Team{{ID: 3, ClubID: &clubID, Type: team.TypeClub}}}
	svc := NewClubService(clubs, teams)

	details, err := svc.GetDetails(context.Background(), clubID)
	require.NoError(t, err)
	assert.Equal(t, "Arsenal FC", details.Club.Name)
	require.NotNil(t, details.Team)
	assert.Equal(t, int64(3), details.Team.ID)
}

func TestClubServiceGetDetailsNotFound(t *testing.T) {
	t.Parallel()

	svc := NewClubService(&stubClubRepo{}, &stubTeamRepo{})

	_, err := svc.GetDetails(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetDetails(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestClubServiceSearchMatchesAliases(t *testing.T) {
	t.Parallel()

	clubs := &stubClubRepo{clubs: []club.Club{
		{ID: 1, Name: "Arsenal FC", AlternativeNames: []string{"The Gunners"}},
		{ID: 2, Name: "Chelsea FC"},
	}}
	svc := NewClubService(clubs, &stubTeamRepo{})

	found, err := svc.Search(context.Background(), "gunners")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Arsenal FC", found[0].Name)

	_, err = svc.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTeamServiceResolvesClub(t *testing.T) {
	t.Parallel()

	clubID := int64(7)
	clubs := &stubClubRepo{clubs: []club.Club{{ID: clubID, Name: "Arsenal FC"}}}
	teams := &stubTeamRepo{teams: []team.Team{{ID: 3, ClubID: &clubID, Type: team.TypeClub}}}
	svc := NewTeamService(teams, clubs)

	details, err := svc.GetDetails(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, details.Club)
	assert.Equal(t, "Arsenal FC", details.Club.Name)
}

func TestTeamServiceNationalTeamHasNoClub(t *testing.T) {
	t.Parallel()

	teams := &stubTeamRepo{teams: []team.Team{{ID: 5, Type: team.TypeNational}}}
	svc := NewTeamService(teams, &stubClubRepo{})

	details, err := svc.GetDetails(context.Background(), 5)
	require.NoError(t, err)
	assert.Nil(t, details.Club)
}
