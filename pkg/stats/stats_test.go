package stats

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nathfavour/blubot/pkg/responder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "stats.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RecordAndList(t *testing.T) {
	s := openTemp(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	r := responder.NewDefault()
	for _, in := range []string{"hello", "hey", "tell me a joke", "qwerty"} {
		require.NoError(t, s.Record("cli", r.Match(in)))
	}
	require.NoError(t, s.Record("web", r.Match("hi")))

	hits, err := s.List()
	require.NoError(t, err)
	require.Len(t, hits, 4)
	assert.Equal(t, "greeting", hits[0].Rule)
	assert.Equal(t, "cli", hits[0].Surface)
	assert.EqualValues(t, 2, hits[0].Count)
	assert.True(t, fixed.Equal(hits[0].LastSeen))

	totals, err := s.Totals()
	require.NoError(t, err)
	assert.EqualValues(t, 3, totals["greeting"])
	assert.EqualValues(t, 1, totals["joke"])
	assert.EqualValues(t, 1, totals[FallbackRule])
}

func TestStore_Reset(t *testing.T) {
	s := openTemp(t)
	require.NoError(t, s.Record("cli", responder.Match{Rule: "x"}))
	require.NoError(t, s.Reset())

	hits, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Record("tui", responder.Match{Rule: "love"}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	totals, err := s.Totals()
	require.NoError(t, err)
	assert.EqualValues(t, 1, totals["love"])
}

func TestDiscard(t *testing.T) {
	assert.NoError(t, Discard.Record("cli", responder.Match{}))
}
