package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KevinKasozi/MatchWise/internal/domain/fixture"
)

func TestFixtureUpsertUpdatesInPlace(t *testing.T) {
	t.Parallel()

	repo := NewFixtureRepository()
	ctx := context.Background()
	date := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)

	first, created, err := repo.Upsert(ctx, fixture.Fixture{
		SeasonID:   1,
		MatchDate:  date,
		HomeTeamID: 10,
		AwayTeamID: 20,
	})
	require.NoError(t, err)
	assert.True(t, created)

	// Same natural key with richer detail updates the existing row.
	second, created, err := repo.Upsert(ctx, fixture.Fixture{
		SeasonID:    1,
		MatchDate:   date,
		MatchTime:   "15:00",
		HomeTeamID:  10,
		AwayTeamID:  20,
		Stage:       "Matchday 36",
		Venue:       "Emirates Stadium",
		IsCompleted: true,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "15:00", second.MatchTime)
	assert.Equal(t, "Emirates Stadium", second.Venue)
	assert.True(t, second.IsCompleted)
	assert.Equal(t, 1, repo.Len())

	// A later upsert with empty detail fields does not blank stored values.
	third, created, err := repo.Upsert(ctx, fixture.Fixture{
		SeasonID:    1,
		MatchDate:   date,
		HomeTeamID:  10,
		AwayTeamID:  20,
		IsCompleted: true,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "15:00", third.MatchTime)
	assert.Equal(t, "Matchday 36", third.Stage)
	assert.Equal(t, "Emirates Stadium", third.Venue)
}

func TestFixtureResultLifecycle(t *testing.T) {
	t.Parallel()

	repo := NewFixtureRepository()
	ctx := context.Background()

	stored, _, err := repo.Upsert(ctx, fixture.Fixture{
		SeasonID:    1,
		MatchDate:   time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC),
		HomeTeamID:  10,
		AwayTeamID:  20,
		IsCompleted: true,
	})
	require.NoError(t, err)

	_, found, err := repo.GetResult(ctx, stored.ID)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.SetResult(ctx, fixture.Result{FixtureID: stored.ID, HomeScore: 2, AwayScore: 1}))

	result, found, err := repo.GetResult(ctx, stored.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 2, result.HomeScore)
	assert.Equal(t, 1, result.AwayScore)

	// Replayed files overwrite the result row rather than duplicating it.
	require.NoError(t, repo.SetResult(ctx, fixture.Result{FixtureID: stored.ID, HomeScore: 2, AwayScore: 2}))
	result, _, err = repo.GetResult(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.AwayScore)

	assert.Error(t, repo.SetResult(ctx, fixture.Result{FixtureID: 999, HomeScore: 1}))
}

func TestFixtureCountAndListBySeason(t *testing.T) {
	t.Parallel()

	repo := NewFixtureRepository()
	ctx := context.Background()

	for day := 1; day <= 3; day++ {
		_, _, err := repo.Upsert(ctx, fixture.Fixture{
			SeasonID:   1,
			MatchDate:  time.Date(2024, time.May, day, 0, 0, 0, 0, time.UTC),
			HomeTeamID: 10,
			AwayTeamID: 20,
		})
		require.NoError(t, err)
	}
	_, _, err := repo.Upsert(ctx, fixture.Fixture{
		SeasonID:   2,
		MatchDate:  time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		HomeTeamID: 10,
		AwayTeamID: 20,
	})
	require.NoError(t, err)

	count, err := repo.CountBySeason(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	items, err := repo.ListBySeason(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.True(t, items[0].MatchDate.Before(items[1].MatchDate))
	assert.True(t, items[1].MatchDate.Before(items[2].MatchDate))
}
