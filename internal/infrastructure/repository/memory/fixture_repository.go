package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/KevinKasozi/MatchWise/internal/domain/fixture"
)

type FixtureRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]fixture.Fixture
	byKey   map[fixture.Key]int64
	results map[int64]fixture.Result
}

func NewFixtureRepository() *FixtureRepository {
	return &FixtureRepository{
		nextID:  1,
		byID:    make(map[int64]fixture.Fixture),
		byKey:   make(map[fixture.Key]int64),
		results: make(map[int64]fixture.Result),
	}
}

func (r *FixtureRepository) GetByID(_ context.Context, fixtureID int64) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[fixtureID]
	return item, ok, nil
}

func (r *FixtureRepository) GetByKey(_ context.Context, key fixture.Key) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byKey[key]
	if !ok {
		return fixture.Fixture{}, false, nil
	}
	return r.byID[id], true, nil
}

func (r *FixtureRepository) ListBySeason(_ context.Context, seasonID int64) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []fixture.Fixture
	for _, item := range r.byID {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].MatchDate.Equal(out[j].MatchDate) {
			return out[i].MatchDate.Before(out[j].MatchDate)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *FixtureRepository) CountBySeason(_ context.Context, seasonID int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, item := range r.byID {
		if item.SeasonID == seasonID {
			count++
		}
	}

	return count, nil
}

// Upsert inserts or updates by the natural key; the in-memory map stands in
// for the database unique index.
func (r *FixtureRepository) Upsert(_ context.Context, item fixture.Fixture) (fixture.Fixture, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := item.Key()
	if id, exists := r.byKey[key]; exists {
		current := r.byID[id]
		if item.MatchTime != "" {
			current.MatchTime = item.MatchTime
		}
		if item.Stage != "" {
			current.Stage = item.Stage
		}
		if item.Venue != "" {
			current.Venue = item.Venue
		}
		current.IsCompleted = item.IsCompleted
		r.byID[id] = current
		return current, false, nil
	}

	item.ID = r.nextID
	r.nextID++
	r.byID[item.ID] = item
	r.byKey[key] = item.ID

	return item, true, nil
}

func (r *FixtureRepository) SetResult(_ context.Context, result fixture.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[result.FixtureID]; !ok {
		return fmt.Errorf("fixture %d not found", result.FixtureID)
	}
	r.results[result.FixtureID] = result

	return nil
}

func (r *FixtureRepository) GetResult(_ context.Context, fixtureID int64) (fixture.Result, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result, ok := r.results[fixtureID]
	return result, ok, nil
}

// Len reports the total number of fixture rows, used by idempotence tests.
func (r *FixtureRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
