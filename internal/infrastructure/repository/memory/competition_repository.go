package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/KevinKasozi/MatchWise/internal/domain/competition"
)

type CompetitionRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]competition.Competition
}

func NewCompetitionRepository() *CompetitionRepository {
	return &CompetitionRepository{
		nextID: 1,
		byID:   make(map[int64]competition.Competition),
	}
}

func (r *CompetitionRepository) List(_ context.Context) ([]competition.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]competition.Competition, 0, len(r.byID))
	for _, item := range r.byID {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *CompetitionRepository) GetByID(_ context.Context, competitionID int64) (competition.Competition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[competitionID]
	return item, ok, nil
}

func (r *CompetitionRepository) GetByName(_ context.Context, name string) (competition.Competition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.byID {
		if item.Name == name {
			return item, true, nil
		}
	}

	return competition.Competition{}, false, nil
}

func (r *CompetitionRepository) Create(_ context.Context, item competition.Competition) (competition.Competition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.Name == item.Name {
			return competition.Competition{}, fmt.Errorf("competition name already exists: %s", item.Name)
		}
	}

	item.ID = r.nextID
	r.nextID++
	r.byID[item.ID] = item

	return item, nil
}

type SeasonRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]competition.Season
}

func NewSeasonRepository() *SeasonRepository {
	return &SeasonRepository{
		nextID: 1,
		byID:   make(map[int64]competition.Season),
	}
}

func (r *SeasonRepository) ListByCompetition(_ context.Context, competitionID int64) ([]competition.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []competition.Season
	for _, item := range r.byID {
		if item.CompetitionID == competitionID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].YearStart < out[j].YearStart })

	return out, nil
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID int64) (competition.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[seasonID]
	return item, ok, nil
}

func (r *SeasonRepository) GetByCompetitionAndName(_ context.Context, competitionID int64, name string) (competition.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.byID {
		if item.CompetitionID == competitionID && item.Name == name {
			return item, true, nil
		}
	}

	return competition.Season{}, false, nil
}

func (r *SeasonRepository) Create(_ context.Context, item competition.Season) (competition.Season, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.CompetitionID == item.CompetitionID && existing.Overlaps(item) {
			return competition.Season{}, fmt.Errorf("season %s overlaps existing season %s", item.Name, existing.Name)
		}
	}

	item.ID = r.nextID
	r.nextID++
	r.byID[item.ID] = item

	return item, nil
}
