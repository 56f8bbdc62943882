package components

import (
	"fmt"
	"strings"

	"uaman/internal/browse"
	"uaman/internal/tui/styles"
)

// TreePane renders the lazy directory tree and tracks a cursor over its
// visible rows. Tree structure and disk access live in browse.Tree; this
// component only decides what is on screen.
type TreePane struct {
	tree   *browse.Tree
	cursor int
	offset int
	height int
	width  int
}

func NewTreePane(tree *browse.Tree) *TreePane {
	return &TreePane{
		tree:   tree,
		height: 20,
		width:  40,
	}
}

func (tp *TreePane) SetSize(width, height int) {
	tp.width = width
	tp.height = height
	tp.ensureCursorVisible()
}

func (tp *TreePane) Rows() []*browse.Node {
	return tp.tree.VisibleRows()
}

func (tp *TreePane) Cursor() int {
	return tp.cursor
}

// Current returns the node under the cursor, or nil for an empty tree.
func (tp *TreePane) Current() *browse.Node {
	return tp.tree.At(tp.cursor)
}

func (tp *TreePane) MoveUp() {
	if tp.cursor > 0 {
		tp.cursor--
	}
	tp.ensureCursorVisible()
}

func (tp *TreePane) MoveDown() {
	if tp.cursor < len(tp.Rows())-1 {
		tp.cursor++
	}
	tp.ensureCursorVisible()
}

func (tp *TreePane) MoveTop() {
	tp.cursor = 0
	tp.ensureCursorVisible()
}

func (tp *TreePane) MoveBottom() {
	if n := len(tp.Rows()); n > 0 {
		tp.cursor = n - 1
	}
	tp.ensureCursorVisible()
}

// Toggle expands a collapsed directory under the cursor and collapses an
// expanded one, returning the node so the caller can follow the selection.
func (tp *TreePane) Toggle() *browse.Node {
	node := tp.Current()
	tp.tree.Toggle(node)
	tp.clampCursor()
	return node
}

// Expand opens the directory under the cursor.
func (tp *TreePane) Expand() *browse.Node {
	node := tp.Current()
	tp.tree.Expand(node)
	return node
}

// CollapseOrParent closes an open directory, or moves the cursor to the
// parent row when there is nothing to close.
func (tp *TreePane) CollapseOrParent() *browse.Node {
	node := tp.Current()
	if node == nil {
		return nil
	}
	if node.Expanded {
		tp.tree.Collapse(node)
		tp.clampCursor()
		return node
	}
	if parent := tp.tree.ParentIndex(tp.cursor); parent >= 0 {
		tp.cursor = parent
		tp.ensureCursorVisible()
	}
	return tp.Current()
}

// Refresh re-reads the subtree under the cursor from disk.
func (tp *TreePane) Refresh() *browse.Node {
	node := tp.Current()
	tp.tree.Refresh(node)
	tp.clampCursor()
	return node
}

func (tp *TreePane) clampCursor() {
	if n := len(tp.Rows()); tp.cursor >= n {
		tp.cursor = max(0, n-1)
	}
	tp.ensureCursorVisible()
}

func (tp *TreePane) ensureCursorVisible() {
	if tp.height <= 0 {
		return
	}
	if tp.cursor < tp.offset {
		tp.offset = tp.cursor
	}
	if tp.cursor >= tp.offset+tp.height {
		tp.offset = tp.cursor - tp.height + 1
	}
	if tp.offset < 0 {
		tp.offset = 0
	}
}

// View renders the visible window of the tree with one row per node:
// indentation by depth, an expansion affordance, and the directory name.
func (tp *TreePane) View() string {
	rows := tp.Rows()
	if len(rows) == 0 {
		return styles.Theme.Unselected.Render("No base path set")
	}

	startIdx := tp.offset
	endIdx := min(len(rows), tp.offset+tp.height)

	var b strings.Builder
	if startIdx > 0 {
		b.WriteString(styles.Theme.Unselected.Render("↑ more ↑") + "\n")
	}

	for i := startIdx; i < endIdx; i++ {
		node := rows[i]

		marker := "  "
		switch {
		case node.Expanded:
			marker = "▾ "
		case node.HasChildren():
			marker = "▸ "
		}

		line := strings.Repeat("  ", node.Level) + marker + node.Name
		if len(line) > tp.width && tp.width > 3 {
			line = line[:tp.width-1] + "…"
		}

		if i == tp.cursor {
			b.WriteString(styles.Cursor.Render(line))
		} else {
			b.WriteString(styles.Theme.Directory.Render(line))
		}
		b.WriteString("\n")
	}

	if endIdx < len(rows) {
		b.WriteString(styles.Theme.Unselected.Render(fmt.Sprintf("↓ %d more ↓", len(rows)-endIdx)) + "\n")
	}

	return b.String()
}
