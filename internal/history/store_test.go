package history_test

import (
	"path/filepath"
	"testing"
	"time"

	"uaman/internal/history"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openStore(t)

	require.NoError(t, store.Record(history.Record{
		Target:   "/data/show.mkv",
		Args:     "upload-assistant /data/show.mkv --tmdb 123",
		Strategy: "gnome-terminal",
		OK:       true,
	}))

	records, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.StartedAt.IsZero())
	assert.Equal(t, "/data/show.mkv", rec.Target)
	assert.Equal(t, "upload-assistant /data/show.mkv --tmdb 123", rec.Args)
	assert.Equal(t, "gnome-terminal", rec.Strategy)
	assert.True(t, rec.OK)
}

func TestRecentNewestFirst(t *testing.T) {
	store := openStore(t)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, target := range []string{"/data/one", "/data/two", "/data/three"} {
		require.NoError(t, store.Record(history.Record{
			StartedAt: base.Add(time.Duration(i) * time.Second),
			Target:    target,
			Strategy:  "xterm",
			OK:        true,
		}))
	}

	records, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "/data/three", records[0].Target)
	assert.Equal(t, "/data/two", records[1].Target)
	assert.Equal(t, "/data/one", records[2].Target)
	assert.WithinDuration(t, base.Add(2*time.Second), records[0].StartedAt, 0)
}

func TestRecentCapsResults(t *testing.T) {
	store := openStore(t)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(history.Record{
			StartedAt: base.Add(time.Duration(i) * time.Second),
			Target:    "/data/show.mkv",
			Strategy:  "fallback",
		}))
	}

	records, err := store.Recent(2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.WithinDuration(t, base.Add(4*time.Second), records[0].StartedAt, 0)
	assert.WithinDuration(t, base.Add(3*time.Second), records[1].StartedAt, 0)
}

func TestFailedDispatchRecorded(t *testing.T) {
	store := openStore(t)

	require.NoError(t, store.Record(history.Record{
		Target:   "/data/show.mkv",
		Strategy: "",
		OK:       false,
	}))

	records, err := store.Recent(1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].OK)
}

func TestRecordsGetDistinctIDs(t *testing.T) {
	store := openStore(t)

	require.NoError(t, store.Record(history.Record{Target: "/data/a"}))
	require.NoError(t, store.Record(history.Record{Target: "/data/a"}))

	records, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.NotEqual(t, records[0].ID, records[1].ID)
}

func TestRecentOnEmptyLedger(t *testing.T) {
	store := openStore(t)

	records, err := store.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "history.db")

	store, err := history.Open(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Record(history.Record{Target: "/data/a"}))
	assert.FileExists(t, path)
}

func TestLedgerSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := history.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Record(history.Record{Target: "/data/kept", Strategy: "konsole", OK: true}))
	require.NoError(t, store.Close())

	reopened, err := history.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.Recent(10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "/data/kept", records[0].Target)
}

func TestNilStoreIsInert(t *testing.T) {
	var store *history.Store

	assert.NoError(t, store.Record(history.Record{Target: "/data/a"}))
	records, err := store.Recent(10)
	assert.NoError(t, err)
	assert.Nil(t, records)
	assert.NoError(t, store.Close())
}
