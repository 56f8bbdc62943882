package browse_test

import (
	"os"
	"path/filepath"
	"testing"

	"uaman/internal/browse"
	"uaman/internal/config"
	"uaman/internal/errors"
	"uaman/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, logsDir string) *browse.Engine {
	t.Helper()
	cfg := config.NewTestConfig()
	require.NoError(t, cfg.Set(config.SectionPaths, config.KeyLogsDir, logsDir))
	return browse.NewEngine(cfg)
}

func writeLog(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func labels(listing []types.Entry) []string {
	out := make([]string, len(listing))
	for i, e := range listing {
		out[i] = e.Label
	}
	return out
}

func TestListDirectory(t *testing.T) {
	engine := newEngine(t, t.TempDir())

	t.Run("sorted_mixed_entries", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "a"), 0755))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "B"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "C.txt"), []byte("abc"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "alpha.mkv"), []byte("abcde"), 0644))

		listing, err := engine.List(dir, types.Filter{})
		require.NoError(t, err)

		// Byte-order sort, files and directories interleaved
		assert.Equal(t, []string{"B", "C.txt", "a", "alpha.mkv"}, labels(listing))

		for _, entry := range listing {
			assert.Equal(t, types.EntryReal, entry.Kind)
			assert.True(t, entry.Navigable())
			assert.Equal(t, filepath.Join(dir, entry.Label), entry.Path)
		}
		assert.True(t, listing[0].IsDir)
		assert.False(t, listing[1].IsDir)
		assert.Equal(t, int64(3), listing[1].Size)
		assert.Equal(t, int64(5), listing[3].Size)
	})

	t.Run("empty_directory", func(t *testing.T) {
		listing, err := engine.List(t.TempDir(), types.Filter{})
		require.NoError(t, err)
		assert.Empty(t, listing)
	})

	t.Run("nonexistent_directory", func(t *testing.T) {
		// Plain browsing shrugs off a vanished directory
		listing, err := engine.List(filepath.Join(t.TempDir(), "gone"), types.Filter{})
		require.NoError(t, err)
		assert.Empty(t, listing)
	})
}

func TestListMissing(t *testing.T) {
	t.Run("matching_lines_in_file_order", func(t *testing.T) {
		logsDir := t.TempDir()
		writeLog(t, logsDir, "a.log", "ok\nMissing Torrent: foo.mkv\ntorrentmissingbar\n")
		writeLog(t, logsDir, "b.log", "MISSING TORRENT: later.mkv\n")
		writeLog(t, logsDir, "notes.txt", "missing torrent should not be read here\n")

		engine := newEngine(t, logsDir)
		listing, err := engine.List("ignored", types.Filter{MissingOnly: true})
		require.NoError(t, err)

		// Both tokens required, any order, case-insensitive; .txt skipped
		require.Len(t, listing, 3)
		assert.Equal(t, []string{
			types.MissingPrefix + "Missing Torrent: foo.mkv",
			types.MissingPrefix + "torrentmissingbar",
			types.MissingPrefix + "MISSING TORRENT: later.mkv",
		}, labels(listing))

		for _, entry := range listing {
			assert.Equal(t, types.EntryMissing, entry.Kind)
			assert.False(t, entry.Navigable())
		}
		assert.Equal(t, "Missing Torrent: foo.mkv", listing[0].Path)
	})

	t.Run("lines_trimmed", func(t *testing.T) {
		logsDir := t.TempDir()
		writeLog(t, logsDir, "run.log", "  \tMissing torrent: padded.mkv  \n")

		engine := newEngine(t, logsDir)
		listing, err := engine.List("", types.Filter{MissingOnly: true})
		require.NoError(t, err)

		require.Len(t, listing, 1)
		assert.Equal(t, types.MissingPrefix+"Missing torrent: padded.mkv", listing[0].Label)
		assert.Equal(t, "Missing torrent: padded.mkv", listing[0].Path)
	})

	t.Run("single_token_not_enough", func(t *testing.T) {
		logsDir := t.TempDir()
		writeLog(t, logsDir, "run.log", "missing something\ntorrent downloaded\nall good\n")

		engine := newEngine(t, logsDir)
		listing, err := engine.List("", types.Filter{MissingOnly: true})
		require.NoError(t, err)
		assert.Empty(t, listing)
	})

	t.Run("no_log_files", func(t *testing.T) {
		engine := newEngine(t, t.TempDir())
		listing, err := engine.List("", types.Filter{MissingOnly: true})
		require.NoError(t, err)
		assert.Empty(t, listing)
	})

	t.Run("logs_directory_missing", func(t *testing.T) {
		engine := newEngine(t, filepath.Join(t.TempDir(), "gone"))
		listing, err := engine.List("", types.Filter{MissingOnly: true})

		assert.Empty(t, listing)
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("logs_directory_unset", func(t *testing.T) {
		engine := newEngine(t, "")
		listing, err := engine.List("", types.Filter{MissingOnly: true})

		assert.Empty(t, listing)
		require.Error(t, err)
		assert.Equal(t, errors.ConfigNotSet, errors.KindOf(err))
		assert.Contains(t, errors.UserMessage(err), "Configuration problem")
	})

	t.Run("unreadable_log_skipped", func(t *testing.T) {
		if os.Getuid() == 0 {
			t.Skip("Skipping test when running as root")
		}

		logsDir := t.TempDir()
		writeLog(t, logsDir, "good.log", "missing torrent: keep.mkv\n")
		writeLog(t, logsDir, "locked.log", "missing torrent: hidden.mkv\n")
		require.NoError(t, os.Chmod(filepath.Join(logsDir, "locked.log"), 0000))
		defer os.Chmod(filepath.Join(logsDir, "locked.log"), 0644)

		engine := newEngine(t, logsDir)
		listing, err := engine.List("", types.Filter{MissingOnly: true})
		require.NoError(t, err)

		require.Len(t, listing, 1)
		assert.Equal(t, types.MissingPrefix+"missing torrent: keep.mkv", listing[0].Label)
	})

	t.Run("custom_pattern", func(t *testing.T) {
		logsDir := t.TempDir()
		writeLog(t, logsDir, "scan.out", "missing torrent: from-out.mkv\n")
		writeLog(t, logsDir, "scan.log", "missing torrent: from-log.mkv\n")

		cfg := config.NewTestConfig()
		require.NoError(t, cfg.Set(config.SectionPaths, config.KeyLogsDir, logsDir))
		require.NoError(t, cfg.Set(config.SectionPaths, config.KeyLogPattern, "*.out"))

		listing, err := browse.NewEngine(cfg).List("", types.Filter{MissingOnly: true})
		require.NoError(t, err)

		require.Len(t, listing, 1)
		assert.Equal(t, types.MissingPrefix+"missing torrent: from-out.mkv", listing[0].Label)
	})

	t.Run("bad_pattern_falls_back", func(t *testing.T) {
		logsDir := t.TempDir()
		writeLog(t, logsDir, "scan.log", "missing torrent: still-found.mkv\n")

		cfg := config.NewTestConfig()
		require.NoError(t, cfg.Set(config.SectionPaths, config.KeyLogsDir, logsDir))
		require.NoError(t, cfg.Set(config.SectionPaths, config.KeyLogPattern, "["))

		listing, err := browse.NewEngine(cfg).List("", types.Filter{MissingOnly: true})
		require.NoError(t, err)
		require.Len(t, listing, 1)
	})
}
