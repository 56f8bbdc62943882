package browse_test

import (
	"os"
	"path/filepath"
	"testing"

	"uaman/internal/browse"
	"uaman/internal/errors"
	"uaman/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func realEntry(t *testing.T, dir, name string) *types.Entry {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))
	return &types.Entry{Label: name, Path: path, Kind: types.EntryReal}
}

func TestResolve(t *testing.T) {
	var resolver browse.Resolver

	listing := []types.Entry{
		{Label: "a.mkv", Kind: types.EntryReal},
		{Label: "b.mkv", Kind: types.EntryReal},
	}

	tests := []struct {
		name    string
		listing []types.Entry
		index   int
		want    string
	}{
		{"first", listing, 0, "a.mkv"},
		{"last", listing, 1, "b.mkv"},
		{"negative", listing, -1, ""},
		{"past_end", listing, 2, ""},
		{"far_past_end", listing, 99, ""},
		{"empty_listing", nil, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.Resolve(tt.listing, tt.index)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Label)
		})
	}

	t.Run("points_into_listing", func(t *testing.T) {
		got := resolver.Resolve(listing, 0)
		require.NotNil(t, got)
		assert.Same(t, &listing[0], got)
	})
}

func TestLaunchable(t *testing.T) {
	var resolver browse.Resolver

	t.Run("real_entry", func(t *testing.T) {
		entry := &types.Entry{Label: "show.mkv", Path: "/data/show.mkv", Kind: types.EntryReal}
		assert.NoError(t, resolver.Launchable(entry))
	})

	t.Run("missing_entry", func(t *testing.T) {
		entry := &types.Entry{Label: types.MissingPrefix + "gone.mkv", Kind: types.EntryMissing}
		err := resolver.Launchable(entry)
		require.Error(t, err)
		assert.True(t, errors.IsUnsupported(err))
		assert.Contains(t, err.Error(), "launch")
	})

	t.Run("no_selection", func(t *testing.T) {
		err := resolver.Launchable(nil)
		require.Error(t, err)
		assert.False(t, errors.IsUnsupported(err))
	})
}

func TestRename(t *testing.T) {
	var resolver browse.Resolver

	t.Run("renames_in_place", func(t *testing.T) {
		dir := t.TempDir()
		entry := realEntry(t, dir, "old.mkv")

		newPath, err := resolver.Rename(entry, "new.mkv")
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dir, "new.mkv"), newPath)
		assert.NoFileExists(t, entry.Path)
		assert.FileExists(t, newPath)
	})

	t.Run("trims_input", func(t *testing.T) {
		dir := t.TempDir()
		entry := realEntry(t, dir, "old.mkv")

		newPath, err := resolver.Rename(entry, "  new.mkv  ")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "new.mkv"), newPath)
	})

	t.Run("same_name_noop", func(t *testing.T) {
		dir := t.TempDir()
		entry := realEntry(t, dir, "keep.mkv")

		newPath, err := resolver.Rename(entry, "keep.mkv")
		require.NoError(t, err)
		assert.Equal(t, entry.Path, newPath)
		assert.FileExists(t, entry.Path)
	})

	t.Run("missing_entry", func(t *testing.T) {
		entry := &types.Entry{Label: types.MissingPrefix + "gone.mkv", Kind: types.EntryMissing}
		_, err := resolver.Rename(entry, "anything.mkv")
		require.Error(t, err)
		assert.True(t, errors.IsUnsupported(err))
	})

	t.Run("no_selection", func(t *testing.T) {
		_, err := resolver.Rename(nil, "anything.mkv")
		assert.Error(t, err)
	})

	t.Run("empty_name", func(t *testing.T) {
		dir := t.TempDir()
		entry := realEntry(t, dir, "old.mkv")

		_, err := resolver.Rename(entry, "   ")
		require.Error(t, err)
		assert.Equal(t, errors.InvalidPath, errors.KindOf(err))
		assert.FileExists(t, entry.Path)
	})

	t.Run("rejects_separators", func(t *testing.T) {
		dir := t.TempDir()
		entry := realEntry(t, dir, "old.mkv")

		for _, bad := range []string{"sub/new.mkv", `sub\new.mkv`, "../escape.mkv"} {
			_, err := resolver.Rename(entry, bad)
			require.Error(t, err, "name %q", bad)
			assert.Equal(t, errors.InvalidPath, errors.KindOf(err))
		}
	})

	t.Run("target_exists", func(t *testing.T) {
		dir := t.TempDir()
		entry := realEntry(t, dir, "old.mkv")
		realEntry(t, dir, "taken.mkv")

		_, err := resolver.Rename(entry, "taken.mkv")
		require.Error(t, err)
		assert.Equal(t, errors.OperationFailed, errors.KindOf(err))
		assert.FileExists(t, entry.Path)
	})

	t.Run("source_vanished", func(t *testing.T) {
		dir := t.TempDir()
		entry := &types.Entry{
			Label: "ghost.mkv",
			Path:  filepath.Join(dir, "ghost.mkv"),
			Kind:  types.EntryReal,
		}

		_, err := resolver.Rename(entry, "new.mkv")
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("renames_directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "season1"), 0755))
		entry := &types.Entry{
			Label: "season1",
			Path:  filepath.Join(dir, "season1"),
			Kind:  types.EntryReal,
			IsDir: true,
		}

		newPath, err := resolver.Rename(entry, "Season 01")
		require.NoError(t, err)
		assert.DirExists(t, newPath)
		assert.Equal(t, filepath.Join(dir, "Season 01"), newPath)
	})
}
