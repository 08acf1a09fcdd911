package verify

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KevinKasozi/MatchWise/internal/domain/club"
	"github.com/KevinKasozi/MatchWise/internal/domain/competition"
	"github.com/KevinKasozi/MatchWise/internal/domain/fixture"
	"github.com/KevinKasozi/MatchWise/internal/domain/team"
	"github.com/KevinKasozi/MatchWise/internal/infrastructure/repository/memory"
	"github.com/KevinKasozi/MatchWise/internal/platform/logging"
)

func writeRepoFile(t *testing.T, root, repo, season, name, content string) {
	t.Helper()
	dir := filepath.Join(root, repo, season)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestVerifierFlagsWrongCountryAndMissingTeams(t *testing.T) {
	t.Parallel()

	dataPath := t.TempDir()
	writeRepoFile(t, dataPath, "eng-england", "2024-25", "1-premierleague.txt",
		"[Sat Aug/17]\n  Arsenal FC v Chelsea FC\n")
	writeRepoFile(t, dataPath, "es-espana", "2024-25", "1-liga.txt",
		"[Sun Aug/18]\n  Real Madrid v Barcelona\n")

	ctx := context.Background()
	clubs := memory.NewClubRepository([]club.Club{
		{Name: "Arsenal FC"},
		{Name: "Chelsea FC"},
		{Name: "Real Madrid"},
		{Name: "Ghost FC"},
	})
	teams := memory.NewTeamRepository()
	teamIDs := make(map[string]int64)
	for _, name := range []string{"Arsenal FC", "Chelsea FC", "Real Madrid", "Ghost FC"} {
		item, found, err := clubs.GetByName(ctx, name)
		require.NoError(t, err)
		require.True(t, found)
		clubID := item.ID
		created, err := teams.Create(ctx, team.Team{ClubID: &clubID, Type: team.TypeClub})
		require.NoError(t, err)
		teamIDs[name] = created.ID
	}

	competitions := memory.NewCompetitionRepository()
	premierLeague, err := competitions.Create(ctx, competition.Competition{
		Name:    "Premier League",
		Country: "England",
		Type:    "league",
	})
	require.NoError(t, err)

	seasons := memory.NewSeasonRepository()
	season, err := seasons.Create(ctx, competition.Season{
		CompetitionID: premierLeague.ID,
		YearStart:     2024,
		YearEnd:       2025,
		Name:          "2024-25",
	})
	require.NoError(t, err)

	fixtures := memory.NewFixtureRepository()
	matchDate := time.Date(2024, time.August, 17, 0, 0, 0, 0, time.UTC)
	// Arsenal and Chelsea agree with the raw data; Real Madrid and Ghost FC
	// are stored under England but only Real Madrid appears in a raw repo.
	_, _, err = fixtures.Upsert(ctx, fixture.Fixture{
		SeasonID:   season.ID,
		MatchDate:  matchDate,
		HomeTeamID: teamIDs["Arsenal FC"],
		AwayTeamID: teamIDs["Chelsea FC"],
	})
	require.NoError(t, err)
	_, _, err = fixtures.Upsert(ctx, fixture.Fixture{
		SeasonID:   season.ID,
		MatchDate:  matchDate.AddDate(0, 0, 1),
		HomeTeamID: teamIDs["Real Madrid"],
		AwayTeamID: teamIDs["Ghost FC"],
	})
	require.NoError(t, err)

	verifier := NewVerifier(VerifierParams{
		DataPath:     dataPath,
		Clubs:        clubs,
		Teams:        teams,
		Competitions: competitions,
		Seasons:      seasons,
		Fixtures:     fixtures,
		Logger:       logging.NewNop(),
	})

	report, err := verifier.Run(ctx)
	require.NoError(t, err)
	require.Len(t, report.Issues, 2)

	assert.Equal(t, "Ghost FC", report.Issues[0].Team)
	assert.Equal(t, IssueMissingTeam, report.Issues[0].Kind)
	assert.Equal(t, "England", report.Issues[0].AssignedCountry)

	assert.Equal(t, "Real Madrid", report.Issues[1].Team)
	assert.Equal(t, IssueWrongCountry, report.Issues[1].Kind)
	assert.Equal(t, "Spain", report.Issues[1].ExpectedCountry)
}

func TestVerifierMatchesClubsByAlias(t *testing.T) {
	t.Parallel()

	dataPath := t.TempDir()
	// The raw file uses the short form; storage holds the canonical name.
	writeRepoFile(t, dataPath, "eng-england", "2024-25", "1-premierleague.txt",
		"[Sat Aug/17]\n  Arsenal v Chelsea\n")

	ctx := context.Background()
	clubs := memory.NewClubRepository([]club.Club{
		{Name: "Arsenal FC", AlternativeNames: []string{"Arsenal"}},
		{Name: "Chelsea FC", AlternativeNames: []string{"Chelsea"}},
	})
	teams := memory.NewTeamRepository()
	teamIDs := make(map[string]int64)
	for _, name := range []string{"Arsenal FC", "Chelsea FC"} {
		item, found, err := clubs.GetByName(ctx, name)
		require.NoError(t, err)
		require.True(t, found)
		clubID := item.ID
		created, err := teams.Create(ctx, team.Team{ClubID: &clubID, Type: team.TypeClub})
		require.NoError(t, err)
		teamIDs[name] = created.ID
	}

	competitions := memory.NewCompetitionRepository()
	premierLeague, err := competitions.Create(ctx, competition.Competition{
		Name:    "Premier League",
		Country: "England",
		Type:    "league",
	})
	require.NoError(t, err)

	seasons := memory.NewSeasonRepository()
	season, err := seasons.Create(ctx, competition.Season{
		CompetitionID: premierLeague.ID,
		YearStart:     2024,
		YearEnd:       2025,
		Name:          "2024-25",
	})
	require.NoError(t, err)

	fixtures := memory.NewFixtureRepository()
	_, _, err = fixtures.Upsert(ctx, fixture.Fixture{
		SeasonID:   season.ID,
		MatchDate:  time.Date(2024, time.August, 17, 0, 0, 0, 0, time.UTC),
		HomeTeamID: teamIDs["Arsenal FC"],
		AwayTeamID: teamIDs["Chelsea FC"],
	})
	require.NoError(t, err)

	verifier := NewVerifier(VerifierParams{
		DataPath:     dataPath,
		Clubs:        clubs,
		Teams:        teams,
		Competitions: competitions,
		Seasons:      seasons,
		Fixtures:     fixtures,
		Logger:       logging.NewNop(),
	})

	report, err := verifier.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, report.Issues)
}

func TestVerifierReportSaveRoundTrip(t *testing.T) {
	t.Parallel()

	report := Report{
		GeneratedAt: time.Now().UTC(),
		Issues: []Issue{
			{Team: "Ghost FC", AssignedCountry: "England", Kind: IssueMissingTeam},
		},
	}

	path := filepath.Join(t.TempDir(), "reports", "verify.json")
	require.NoError(t, report.Save(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Ghost FC")
	assert.Contains(t, string(raw), IssueMissingTeam)
}

func TestNewestSeasonDirPicksLatest(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	repo := filepath.Join(root, "eng-england")
	for _, dir := range []string{"2022-23", "2024-25", "2023-24", "archive"} {
		require.NoError(t, os.MkdirAll(filepath.Join(repo, dir), 0o755))
	}

	assert.Equal(t, "2024-25", newestSeasonDir(repo))
}
