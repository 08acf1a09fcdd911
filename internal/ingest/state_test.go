package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStateMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	state, err := LoadState(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, state.Len())
}

func TestStateRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	state, err := LoadState(path)
	require.NoError(t, err)

	state.Set("eng-england/2023-24/1-premierleague.txt", "abc123")
	state.Set("es-espana/2023-24/1-liga.txt", "def456")
	require.NoError(t, state.Save())

	reloaded, err := LoadState(path)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Len())

	hash, ok := reloaded.Get("eng-england/2023-24/1-premierleague.txt")
	require.True(t, ok)
	assert.Equal(t, "abc123", hash)

	_, ok = reloaded.Get("nothing/here.txt")
	assert.False(t, ok)
}

func TestLoadStateCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadState(path)
	assert.Error(t, err)
}
