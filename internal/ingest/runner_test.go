package ingest

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KevinKasozi/MatchWise/internal/domain/club"
	"github.com/KevinKasozi/MatchWise/internal/domain/fixture"
	"github.com/KevinKasozi/MatchWise/internal/infrastructure/repository/memory"
	"github.com/KevinKasozi/MatchWise/internal/ingest/mapper"
	"github.com/KevinKasozi/MatchWise/internal/platform/logging"
)

type testEnv struct {
	dataPath string
	runner   *Runner
	fixtures *memory.FixtureRepository
	audits   *memory.AuditRepository
}

func newTestEnv(t *testing.T, m *mapper.Mapper) *testEnv {
	t.Helper()

	dataPath := t.TempDir()
	fixtures := memory.NewFixtureRepository()
	audits := memory.NewAuditRepository()
	runner := NewRunner(RunnerParams{
		DataPath:     dataPath,
		StatePath:    filepath.Join(t.TempDir(), "state.json"),
		Mapper:       m,
		Clubs:        memory.NewClubRepository(nil),
		Teams:        memory.NewTeamRepository(),
		Competitions: memory.NewCompetitionRepository(),
		Seasons:      memory.NewSeasonRepository(),
		Fixtures:     fixtures,
		Audits:       audits,
		Logger:       logging.NewNop(),
	})

	return &testEnv{
		dataPath: dataPath,
		runner:   runner,
		fixtures: fixtures,
		audits:   audits,
	}
}

func (e *testEnv) writeFile(t *testing.T, rel, content string) {
	t.Helper()
	path := filepath.Join(e.dataPath, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, mapper.Empty())
	env.writeFile(t, "eng-england/2023-24/1-premierleague.txt", `[Sat Aug/12]
Arsenal FC v Chelsea FC
Liverpool FC v Everton FC
`)

	ctx := context.Background()
	first, err := env.runner.Run(ctx, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), first.FixturesAdded)
	countAfterFirst := env.fixtures.Len()

	// Unchanged file: the hash state short-circuits the whole file.
	second, err := env.runner.Run(ctx, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), second.FilesSkipped)
	assert.Equal(t, int64(0), second.FixturesAdded)
	assert.Equal(t, countAfterFirst, env.fixtures.Len())

	// Forced reprocessing walks the update path; still no new rows.
	third, err := env.runner.Run(ctx, Options{Force: true})
	require.NoError(t, err)
	assert.Equal(t, int64(0), third.FixturesAdded)
	assert.Equal(t, int64(2), third.FixturesUpdated)
	assert.Equal(t, countAfterFirst, env.fixtures.Len())
}

func TestNameVariantsConvergeToOneTeam(t *testing.T) {
	t.Parallel()

	b := mapper.NewBuilder(logging.NewNop())
	b.AddClubs([]club.Club{
		{Name: "Arsenal FC", AlternativeNames: []string{"Arsenal", "The Gunners"}},
		{Name: "Chelsea FC", AlternativeNames: []string{"Chelsea"}},
		{Name: "Everton FC", AlternativeNames: []string{"Everton"}},
	})

	env := newTestEnv(t, b.Build())
	env.writeFile(t, "eng-england/2023-24/1-premierleague.txt", `[Sat Aug/12]
Arsenal FC v Chelsea FC
[Sat Aug/19]
The Gunners v Everton FC
[Sat Aug/26]
Arsenal v Chelsea
`)

	summary, err := env.runner.Run(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.FixturesAdded)

	// All three spellings of Arsenal resolve to one home team id.
	seasons := collectSeasonFixtures(t, env)
	require.Len(t, seasons, 3)
	assert.Equal(t, seasons[0].HomeTeamID, seasons[1].HomeTeamID)
	assert.Equal(t, seasons[0].HomeTeamID, seasons[2].HomeTeamID)
	assert.Equal(t, seasons[0].AwayTeamID, seasons[2].AwayTeamID)
	assert.NotEqual(t, seasons[0].AwayTeamID, seasons[1].AwayTeamID)
}

func TestMalformedLineSkippedNotFatal(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, mapper.Empty())
	env.writeFile(t, "eng-england/2023-24/1-premierleague.txt", `[Sat Aug/12]
Arsenal v Chelsea
Liverpool v Everton
Fulham v Brentford
Burnley v Luton Town
Wolves v Brighton
Newcastle v Aston Villa
Spurs v Crystal Palace
Bournemouth v West Ham
Sheffield Wednesday v Watford
???
`)

	summary, err := env.runner.Run(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(9), summary.FixturesAdded)
	assert.Equal(t, int64(1), summary.RowErrors)
	assert.Equal(t, 9, env.fixtures.Len())

	records, err := env.audits.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "partial", records[0].Status)
	assert.Equal(t, 9, records[0].RecordsAdded)
	assert.Equal(t, 1, records[0].RecordsSkipped)
}

func TestScoredLineProducesCompletedFixtureWithResult(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, mapper.Empty())
	env.writeFile(t, "eng-england/2023-24/1-premierleague.txt", `2024-05-10 15:00 Arsenal FC Chelsea FC
2024-05-03 Liverpool FC Tottenham Hotspur FC 2-1
`)

	summary, err := env.runner.Run(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.FixturesAdded)

	items := collectSeasonFixtures(t, env)
	require.Len(t, items, 2)

	// Sorted by date: the played match (May 3) comes first.
	played := items[0]
	assert.True(t, played.IsCompleted)
	result, found, err := env.fixtures.GetResult(context.Background(), played.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 2, result.HomeScore)
	assert.Equal(t, 1, result.AwayScore)

	upcoming := items[1]
	assert.False(t, upcoming.IsCompleted)
	assert.Equal(t, "15:00", upcoming.MatchTime)
	_, found, err = env.fixtures.GetResult(context.Background(), upcoming.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAmbiguousNameSkipsRow(t *testing.T) {
	t.Parallel()

	b := mapper.NewBuilder(logging.NewNop())
	b.AddClubs([]club.Club{
		{Name: "AC Milan", AlternativeNames: []string{"Milan"}},
		{Name: "Inter Milan", AlternativeNames: []string{"Milan"}},
	})

	env := newTestEnv(t, b.Build())
	env.writeFile(t, "it-italy/2023-24/1-seriea.txt", `[Sat Aug/19]
Milan v Juventus FC
AC Milan v Juventus FC
`)

	summary, err := env.runner.Run(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.FixturesAdded)
	assert.Equal(t, int64(1), summary.RowsSkipped)

	queue := env.runner.ReviewQueue()
	require.Len(t, queue, 1)
	assert.Equal(t, "Milan", queue[0].Raw)
}

func TestLeagueFilterRestrictsRun(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, mapper.Empty())
	env.writeFile(t, "eng-england/2023-24/1-premierleague.txt", "[Sat Aug/12]\nArsenal v Chelsea\n")
	env.writeFile(t, "es-espana/2023-24/1-liga.txt", "[Sat Aug/12]\nGirona v Sevilla\n")

	summary, err := env.runner.Run(context.Background(), Options{League: "eng-england"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.FilesProcessed)
	assert.Equal(t, int64(1), summary.FixturesAdded)
}

func TestParallelRunMatchesSequential(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, mapper.Empty())
	env.writeFile(t, "eng-england/2023-24/1-premierleague.txt", "[Sat Aug/12]\nArsenal v Chelsea\nLiverpool v Everton\n")
	env.writeFile(t, "eng-england/2023-24/2-championship.txt", "[Sat Aug/12]\nLeeds United v Norwich City FC\n")
	env.writeFile(t, "es-espana/2023-24/1-liga.txt", "[Sat Aug/12]\nGirona v Sevilla\n")

	summary, err := env.runner.Run(context.Background(), Options{Parallel: true, Workers: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.FilesProcessed)
	assert.Equal(t, int64(4), summary.FixturesAdded)
	assert.Equal(t, 4, env.fixtures.Len())
}

func TestDryRunWritesNothing(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, mapper.Empty())
	env.writeFile(t, "eng-england/2023-24/1-premierleague.txt", "[Sat Aug/12]\nArsenal v Chelsea\n")

	summary, err := env.runner.Run(context.Background(), Options{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.FixturesAdded)
	assert.Equal(t, 0, env.fixtures.Len())

	records, err := env.audits.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

// racingFixtureRepo simulates another writer winning the natural-key race:
// the first Upsert calls fail with ErrDuplicateKey after the row has already
// landed, so a retry finds it and updates.
type racingFixtureRepo struct {
	*memory.FixtureRepository
	mu        sync.Mutex
	conflicts int
}

func (r *racingFixtureRepo) Upsert(ctx context.Context, item fixture.Fixture) (fixture.Fixture, bool, error) {
	r.mu.Lock()
	conflict := r.conflicts > 0
	if conflict {
		r.conflicts--
	}
	r.mu.Unlock()

	if conflict {
		_, _, _ = r.FixtureRepository.Upsert(ctx, item)
		return fixture.Fixture{}, false, fixture.ErrDuplicateKey
	}
	return r.FixtureRepository.Upsert(ctx, item)
}

func TestUpsertRetriesOnceOnNaturalKeyRace(t *testing.T) {
	t.Parallel()

	dataPath := t.TempDir()
	fixtures := &racingFixtureRepo{FixtureRepository: memory.NewFixtureRepository(), conflicts: 1}
	audits := memory.NewAuditRepository()
	runner := NewRunner(RunnerParams{
		DataPath:     dataPath,
		StatePath:    filepath.Join(t.TempDir(), "state.json"),
		Mapper:       mapper.Empty(),
		Clubs:        memory.NewClubRepository(nil),
		Teams:        memory.NewTeamRepository(),
		Competitions: memory.NewCompetitionRepository(),
		Seasons:      memory.NewSeasonRepository(),
		Fixtures:     fixtures,
		Audits:       audits,
		Logger:       logging.NewNop(),
	})

	path := filepath.Join(dataPath, "eng-england", "2023-24", "1-premierleague.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[Sat Aug/12]\nArsenal v Chelsea\n"), 0o644))

	summary, err := runner.Run(context.Background(), Options{})
	require.NoError(t, err)

	// The retry lands on the row the concurrent writer inserted.
	assert.Equal(t, int64(0), summary.FixturesAdded)
	assert.Equal(t, int64(1), summary.FixturesUpdated)
	assert.Equal(t, int64(0), summary.RowErrors)
	assert.Equal(t, 1, fixtures.Len())
	assert.Equal(t, 0, fixtures.conflicts)
}

func TestUpsertPersistentConflictCountsRowError(t *testing.T) {
	t.Parallel()

	dataPath := t.TempDir()
	fixtures := &racingFixtureRepo{FixtureRepository: memory.NewFixtureRepository(), conflicts: 2}
	audits := memory.NewAuditRepository()
	runner := NewRunner(RunnerParams{
		DataPath:     dataPath,
		StatePath:    filepath.Join(t.TempDir(), "state.json"),
		Mapper:       mapper.Empty(),
		Clubs:        memory.NewClubRepository(nil),
		Teams:        memory.NewTeamRepository(),
		Competitions: memory.NewCompetitionRepository(),
		Seasons:      memory.NewSeasonRepository(),
		Fixtures:     fixtures,
		Audits:       audits,
		Logger:       logging.NewNop(),
	})

	path := filepath.Join(dataPath, "eng-england", "2023-24", "1-premierleague.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[Sat Aug/12]\nArsenal v Chelsea\n"), 0o644))

	summary, err := runner.Run(context.Background(), Options{})
	require.NoError(t, err)

	// Exactly one retry: a second conflict fails the row instead of looping.
	assert.Equal(t, int64(0), summary.FixturesAdded)
	assert.Equal(t, int64(0), summary.FixturesUpdated)
	assert.Equal(t, int64(1), summary.RowErrors)

	records, err := audits.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "partial", records[0].Status)
}

func TestInvalidRootIsFatal(t *testing.T) {
	t.Parallel()

	runner := NewRunner(RunnerParams{
		DataPath:  filepath.Join(t.TempDir(), "missing"),
		StatePath: filepath.Join(t.TempDir(), "state.json"),
		Logger:    logging.NewNop(),
		Clubs:     memory.NewClubRepository(nil),
		Teams:     memory.NewTeamRepository(),
	})

	_, err := runner.Run(context.Background(), Options{})
	assert.True(t, IsConnectionFailure(err))
}

func collectSeasonFixtures(t *testing.T, env *testEnv) []fixtureRow {
	t.Helper()

	var out []fixtureRow
	for seasonID := int64(1); seasonID <= 4; seasonID++ {
		items, err := env.fixtures.ListBySeason(context.Background(), seasonID)
		require.NoError(t, err)
		for _, item := range items {
			out = append(out, fixtureRow{
				ID:          item.ID,
				HomeTeamID:  item.HomeTeamID,
				AwayTeamID:  item.AwayTeamID,
				IsCompleted: item.IsCompleted,
				MatchTime:   item.MatchTime,
			})
		}
	}
	return out
}

type fixtureRow struct {
	ID          int64
	HomeTeamID  int64
	AwayTeamID  int64
	IsCompleted bool
	MatchTime   string
}
