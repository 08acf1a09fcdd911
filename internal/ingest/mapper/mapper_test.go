package mapper

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Arsenal FC", "arsenal"},
		{"Arsenal F.C.", "arsenal"},
		{"AFC Bournemouth", "bournemouth"},
		{"Manchester United", "manchester"},
		{"Borussia Dortmund", "borussia dortmund"},
		{"Hannover 96", "hannover 96"},
		{"Schalke 04", "schalke"},
		{"Brighton & Hove Albion", "brighton hove albion"},
		{"  Wolverhampton   Wanderers  ", "wolverhampton wanderers"},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Normalize(tc.in), "input=%q", tc.in)
	}
}

func TestResolveExactAndNormalized(t *testing.T) {
	t.Parallel()

	m := newMapper(map[string]string{
		"Arsenal FC": "Arsenal FC",
		"Arsenal":    "Arsenal FC",
		"arsenal":    "Arsenal FC",
	})

	canonical, known, err := m.Resolve("Arsenal FC")
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, "Arsenal FC", canonical)

	canonical, known, err = m.Resolve("Arsenal F.C.")
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, "Arsenal FC", canonical)
}

func TestResolveUnknownReportsNew(t *testing.T) {
	t.Parallel()

	m := newMapper(map[string]string{"Arsenal FC": "Arsenal FC"})

	canonical, known, err := m.Resolve("Real Madrid")
	require.NoError(t, err)
	assert.False(t, known)
	assert.Equal(t, "Real Madrid", canonical)
}

func TestResolveSubstringMatch(t *testing.T) {
	t.Parallel()

	m := newMapper(map[string]string{
		"Tottenham Hotspur FC": "Tottenham Hotspur FC",
		"Everton FC":           "Everton FC",
	})

	canonical, known, err := m.Resolve("Tottenham")
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, "Tottenham Hotspur FC", canonical)
}

func TestResolveAmbiguousGoesToReviewQueue(t *testing.T) {
	t.Parallel()

	m := newMapper(map[string]string{
		"Manchester United FC": "Manchester United FC",
		"Manchester City FC":   "Manchester City FC",
	})

	_, _, err := m.Resolve("Manchester")
	require.ErrorIs(t, err, ErrAmbiguousName)

	queue := m.ReviewQueue()
	require.Len(t, queue, 1)
	assert.Equal(t, "Manchester", queue[0].Raw)
	assert.Equal(t, []string{"Manchester City FC", "Manchester United FC"}, queue[0].Candidates)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	m := newMapper(map[string]string{
		"Arsenal FC": "Arsenal FC",
		"Gunners":    "Arsenal FC",
	})
	path := filepath.Join(t.TempDir(), "mapper.json")
	require.NoError(t, m.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, m.Len(), loaded.Len())

	canonical, known, err := loaded.Resolve("Gunners")
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, "Arsenal FC", canonical)
}
