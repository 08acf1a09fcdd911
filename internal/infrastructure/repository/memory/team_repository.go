package memory

import (
	"context"
	"sync"

	"github.com/KevinKasozi/MatchWise/internal/domain/team"
)

type TeamRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]team.Team
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{
		nextID: 1,
		byID:   make(map[int64]team.Team),
	}
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[teamID]
	return item, ok, nil
}

func (r *TeamRepository) GetByClub(_ context.Context, clubID int64, teamType string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.byID {
		if item.ClubID != nil && *item.ClubID == clubID && item.Type == teamType {
			return item, true, nil
		}
	}

	return team.Team{}, false, nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) (team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := item.Validate(); err != nil {
		return team.Team{}, err
	}

	item.ID = r.nextID
	r.nextID++
	r.byID[item.ID] = item

	return item, nil
}
