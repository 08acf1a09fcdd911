// Package cache decorates repositories with a TTL store on the list-heavy
// read paths the API serves. Ingestion writes go through the same decorators
// so cached views are invalidated as rows change.
package cache

import (
	"context"
	"strconv"

	"github.com/KevinKasozi/MatchWise/internal/domain/club"
	"github.com/KevinKasozi/MatchWise/internal/domain/competition"
	"github.com/KevinKasozi/MatchWise/internal/domain/fixture"
	basecache "github.com/KevinKasozi/MatchWise/internal/platform/cache"
)

type ClubRepository struct {
	club.Repository
	cache *basecache.Store
}

func NewClubRepository(next club.Repository, cache *basecache.Store) *ClubRepository {
	return &ClubRepository{Repository: next, cache: cache}
}

const clubListKey = "club:list"

func (r *ClubRepository) List(ctx context.Context) ([]club.Club, error) {
	if v, ok := r.cache.Get(ctx, clubListKey); ok {
		items, _ := v.([]club.Club)
		return append([]club.Club(nil), items...), nil
	}

	items, err := r.Repository.List(ctx)
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, clubListKey, append([]club.Club(nil), items...))
	return items, nil
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID int64) (club.Club, bool, error) {
	key := "club:id:" + strconv.FormatInt(clubID, 10)
	if v, ok := r.cache.Get(ctx, key); ok {
		cached, _ := v.(cachedClub)
		return cached.value, cached.exists, nil
	}

	item, exists, err := r.Repository.GetByID(ctx, clubID)
	if err != nil {
		return club.Club{}, false, err
	}

	r.cache.Set(ctx, key, cachedClub{value: item, exists: exists})
	return item, exists, nil
}

func (r *ClubRepository) Create(ctx context.Context, item club.Club) (club.Club, error) {
	created, err := r.Repository.Create(ctx, item)
	if err != nil {
		return club.Club{}, err
	}

	r.cache.Invalidate(ctx, clubListKey)
	return created, nil
}

func (r *ClubRepository) Update(ctx context.Context, item club.Club) error {
	if err := r.Repository.Update(ctx, item); err != nil {
		return err
	}

	r.cache.Invalidate(ctx, clubListKey)
	r.cache.Invalidate(ctx, "club:id:"+strconv.FormatInt(item.ID, 10))
	return nil
}

type cachedClub struct {
	value  club.Club
	exists bool
}

type CompetitionRepository struct {
	competition.Repository
	cache *basecache.Store
}

func NewCompetitionRepository(next competition.Repository, cache *basecache.Store) *CompetitionRepository {
	return &CompetitionRepository{Repository: next, cache: cache}
}

const competitionListKey = "competition:list"

func (r *CompetitionRepository) List(ctx context.Context) ([]competition.Competition, error) {
	if v, ok := r.cache.Get(ctx, competitionListKey); ok {
		items, _ := v.([]competition.Competition)
		return append([]competition.Competition(nil), items...), nil
	}

	items, err := r.Repository.List(ctx)
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, competitionListKey, append([]competition.Competition(nil), items...))
	return items, nil
}

func (r *CompetitionRepository) Create(ctx context.Context, item competition.Competition) (competition.Competition, error) {
	created, err := r.Repository.Create(ctx, item)
	if err != nil {
		return competition.Competition{}, err
	}

	r.cache.Invalidate(ctx, competitionListKey)
	return created, nil
}

type FixtureRepository struct {
	fixture.Repository
	cache *basecache.Store
}

func NewFixtureRepository(next fixture.Repository, cache *basecache.Store) *FixtureRepository {
	return &FixtureRepository{Repository: next, cache: cache}
}

func seasonFixturesKey(seasonID int64) string {
	return "fixture:season:" + strconv.FormatInt(seasonID, 10)
}

func (r *FixtureRepository) ListBySeason(ctx context.Context, seasonID int64) ([]fixture.Fixture, error) {
	key := seasonFixturesKey(seasonID)
	if v, ok := r.cache.Get(ctx, key); ok {
		items, _ := v.([]fixture.Fixture)
		return append([]fixture.Fixture(nil), items...), nil
	}

	items, err := r.Repository.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, key, append([]fixture.Fixture(nil), items...))
	return items, nil
}

func (r *FixtureRepository) Upsert(ctx context.Context, item fixture.Fixture) (fixture.Fixture, bool, error) {
	stored, inserted, err := r.Repository.Upsert(ctx, item)
	if err != nil {
		return fixture.Fixture{}, false, err
	}

	r.cache.Invalidate(ctx, seasonFixturesKey(stored.SeasonID))
	return stored, inserted, nil
}
