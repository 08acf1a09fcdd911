package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/KevinKasozi/MatchWise/internal/domain/club"
)

type ClubRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]club.Club
	byName map[string]int64
}

func NewClubRepository(clubs []club.Club) *ClubRepository {
	r := &ClubRepository{
		nextID: 1,
		byID:   make(map[int64]club.Club),
		byName: make(map[string]int64),
	}
	for _, item := range clubs {
		item.ID = r.nextID
		r.nextID++
		r.byID[item.ID] = item
		r.byName[item.Name] = item.ID
	}
	return r
}

func (r *ClubRepository) List(_ context.Context) ([]club.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]club.Club, 0, len(r.byID))
	for _, item := range r.byID {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *ClubRepository) GetByID(_ context.Context, clubID int64) (club.Club, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[clubID]
	return item, ok, nil
}

func (r *ClubRepository) GetByName(_ context.Context, name string) (club.Club, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[name]
	if !ok {
		return club.Club{}, false, nil
	}
	return r.byID[id], true, nil
}

func (r *ClubRepository) Create(_ context.Context, item club.Club) (club.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(item.Name) == "" {
		return club.Club{}, fmt.Errorf("club name is required")
	}
	if _, exists := r.byName[item.Name]; exists {
		return club.Club{}, fmt.Errorf("club name already exists: %s", item.Name)
	}

	item.ID = r.nextID
	r.nextID++
	r.byID[item.ID] = item
	r.byName[item.Name] = item.ID

	return item, nil
}

func (r *ClubRepository) Update(_ context.Context, item club.Club) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[item.ID]
	if !ok {
		return fmt.Errorf("club %d not found", item.ID)
	}
	if existing.Name != item.Name {
		delete(r.byName, existing.Name)
		r.byName[item.Name] = item.ID
	}
	r.byID[item.ID] = item

	return nil
}
