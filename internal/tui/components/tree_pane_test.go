package components

import (
	"os"
	"path/filepath"
	"testing"

	"uaman/internal/browse"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTreePane(t *testing.T, base string, subdirs ...string) *TreePane {
	t.Helper()
	for _, sub := range subdirs {
		require.NoError(t, os.MkdirAll(filepath.Join(base, sub), 0755))
	}
	tree := browse.NewTree()
	tree.SetBasePath(base)
	return NewTreePane(tree)
}

func TestTreePaneMovement(t *testing.T) {
	tp := newTreePane(t, t.TempDir(), "a", "b")

	assert.Equal(t, 0, tp.Cursor())
	tp.MoveDown()
	assert.Equal(t, 0, tp.Cursor(), "single visible row")

	tp.Toggle()
	require.Len(t, tp.Rows(), 3)

	tp.MoveDown()
	tp.MoveDown()
	tp.MoveDown()
	assert.Equal(t, 2, tp.Cursor(), "cursor clamps at the last row")

	tp.MoveUp()
	assert.Equal(t, 1, tp.Cursor())

	tp.MoveTop()
	assert.Equal(t, 0, tp.Cursor())
	tp.MoveBottom()
	assert.Equal(t, 2, tp.Cursor())
}

func TestTreePaneCollapseOrParent(t *testing.T) {
	base := t.TempDir()
	tp := newTreePane(t, base, filepath.Join("a", "inner"))

	tp.Toggle()
	require.Len(t, tp.Rows(), 2)
	tp.MoveDown()

	// Expanding the child reveals its subdirectory
	node := tp.Expand()
	require.NotNil(t, node)
	assert.Equal(t, "a", node.Name)
	require.Len(t, tp.Rows(), 3)

	// First press closes the open directory
	node = tp.CollapseOrParent()
	assert.Equal(t, "a", node.Name)
	assert.Len(t, tp.Rows(), 2)
	assert.Equal(t, 1, tp.Cursor())

	// Second press jumps to the parent row
	node = tp.CollapseOrParent()
	assert.Equal(t, base, node.Path)
	assert.Equal(t, 0, tp.Cursor())
}

func TestTreePaneRefresh(t *testing.T) {
	base := t.TempDir()
	tp := newTreePane(t, base, "a")

	tp.Toggle()
	require.Len(t, tp.Rows(), 2)

	require.NoError(t, os.MkdirAll(filepath.Join(base, "b"), 0755))
	tp.MoveTop()
	tp.Refresh()

	rows := tp.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "a", rows[1].Name)
	assert.Equal(t, "b", rows[2].Name)
}

func TestTreePaneView(t *testing.T) {
	t.Run("unrooted_tree", func(t *testing.T) {
		tp := NewTreePane(browse.NewTree())
		assert.Contains(t, tp.View(), "No base path set")
	})

	t.Run("expansion_markers", func(t *testing.T) {
		base := t.TempDir()
		tp := newTreePane(t, base, filepath.Join("a", "inner"), "empty")

		view := tp.View()
		assert.Contains(t, view, "▸ "+filepath.Base(base), "collapsed root shows the expand marker")

		tp.Toggle()
		view = tp.View()
		assert.Contains(t, view, "▾ "+filepath.Base(base))
		assert.Contains(t, view, "  ▸ a", "children indent one level")
		assert.Contains(t, view, "    empty", "childless directories get no marker")
	})

	t.Run("scroll_indicators", func(t *testing.T) {
		base := t.TempDir()
		tp := newTreePane(t, base, "a", "b", "c", "d")
		tp.Toggle()
		tp.SetSize(40, 2)

		view := tp.View()
		assert.Contains(t, view, "↓ 3 more ↓")
		assert.NotContains(t, view, "↑ more ↑")

		tp.MoveBottom()
		view = tp.View()
		assert.Contains(t, view, "↑ more ↑")
		assert.NotContains(t, view, "↓")
	})
}
