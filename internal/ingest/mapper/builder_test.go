package mapper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KevinKasozi/MatchWise/internal/domain/club"
	"github.com/KevinKasozi/MatchWise/internal/platform/logging"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestBuilderScansClubAndFixtureFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	repo := filepath.Join(root, "eng-england")

	writeFile(t, filepath.Join(repo, "clubs", "england_clubs.txt"), `= England

Arsenal FC, 1886, @ Emirates Stadium, London
| Arsenal | The Gunners

Chelsea FC, 1905, @ Stamford Bridge, London
`)
	writeFile(t, filepath.Join(repo, "2023-24", "1-premierleague.txt"), `[Sat Aug/12]
  Arsenal FC v Chelsea FC
  Burnley FC v Everton FC
`)

	b := NewBuilder(logging.NewNop())
	require.NoError(t, b.ScanRoot(root))
	m := b.Build()

	canonical, known, err := m.Resolve("The Gunners")
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, "Arsenal FC", canonical)

	// Team seen only in fixture lines becomes its own canonical.
	canonical, known, err = m.Resolve("Burnley FC")
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, "Burnley FC", canonical)
}

func TestBuilderMergesDatabaseClubs(t *testing.T) {
	t.Parallel()

	b := NewBuilder(logging.NewNop())
	b.AddClubs([]club.Club{
		{Name: "Real Madrid CF", AlternativeNames: []string{"Real Madrid", "Los Blancos"}},
	})
	m := b.Build()

	canonical, known, err := m.Resolve("Los Blancos")
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, "Real Madrid CF", canonical)
}

func TestBuilderDropsContestedVariants(t *testing.T) {
	t.Parallel()

	b := NewBuilder(logging.NewNop())
	b.AddClubs([]club.Club{
		{Name: "AC Milan", AlternativeNames: []string{"Milan"}},
		{Name: "Inter Milan", AlternativeNames: []string{"Milan"}},
	})
	m := b.Build()

	// "Milan" is claimed by both clubs, so the variant is dropped and the
	// name has to go through fuzzy resolution instead of a silent guess.
	_, _, err := m.Resolve("Milan")
	assert.ErrorIs(t, err, ErrAmbiguousName)
}
