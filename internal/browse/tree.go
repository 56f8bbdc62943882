// Package browse implements the directory-facing core of uaman: the lazy
// directory tree, the filtered listing engine, selection resolution, and
// subtree statistics. Child names are ordered by plain byte comparison
// throughout, so "B" sorts before "a".
package browse

import (
	"os"
	"path/filepath"
	"sort"

	"uaman/internal/log"
)

// ChildState records what is known about a node's subdirectories. It stands
// in for the placeholder child some browsers insert: instead of a fake row,
// each node carries an explicit tri-state.
type ChildState int

const (
	// NotProbed means the directory has not been checked for subdirectories
	NotProbed ChildState = iota
	// ProbedEmpty means the directory has been checked and has none
	ProbedEmpty
	// ProbedNonEmpty means at least one subdirectory exists but has not
	// been listed yet
	ProbedNonEmpty
)

// Node is one directory in the tree. Children are exclusively owned by
// their parent; there is no back-reference upward, callers navigate by row
// index instead (see ParentIndex).
type Node struct {
	Name       string
	Path       string
	Expanded   bool
	ChildState ChildState
	Children   []*Node
	Level      int
}

// HasChildren reports whether the node is known to have subdirectories.
func (n *Node) HasChildren() bool {
	if n.Children != nil {
		return len(n.Children) > 0
	}
	return n.ChildState == ProbedNonEmpty
}

// Tree is the lazy directory hierarchy rooted at a configurable base path.
// All mutation happens through SetBasePath, Expand, Collapse, and Toggle;
// only one goroutine may drive those at a time.
type Tree struct {
	root *Node
}

// NewTree creates an empty tree. Call SetBasePath to root it.
func NewTree() *Tree {
	return &Tree{}
}

// Root returns the root node, or nil for an empty tree.
func (t *Tree) Root() *Node {
	return t.root
}

// Empty reports whether the tree has no root.
func (t *Tree) Empty() bool {
	return t.root == nil
}

// SetBasePath resets the tree to a single unexpanded root at path. A path
// that does not exist or is not a directory leaves the tree empty; the
// operator notices through the empty listing, not through an error.
func (t *Tree) SetBasePath(path string) {
	t.root = nil

	info, err := os.Stat(path)
	if err != nil {
		log.With(log.F("path", path)).Warn("base path is not accessible")
		return
	}
	if !info.IsDir() {
		log.With(log.F("path", path)).Warn("base path is not a directory")
		return
	}

	t.root = &Node{
		Name: filepath.Base(path),
		Path: path,
	}
	t.ProbeChildren(t.root)
}

// ListChildren returns the immediate subdirectories of node as fresh,
// unattached nodes, sorted by name. Non-directories are skipped. Permission
// failures yield an empty slice; a corrupt or vanished directory is not an
// error here.
func (t *Tree) ListChildren(node *Node) []*Node {
	if node == nil {
		return nil
	}

	entries, err := os.ReadDir(node.Path)
	if err != nil {
		if os.IsPermission(err) {
			log.With(log.F("path", node.Path)).Debug("skipping unreadable directory")
		} else {
			log.With(log.F("path", node.Path), log.F("error", err.Error())).Debug("cannot list directory")
		}
		return []*Node{}
	}

	children := make([]*Node, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		children = append(children, &Node{
			Name:  entry.Name(),
			Path:  filepath.Join(node.Path, entry.Name()),
			Level: node.Level + 1,
		})
	}

	// ReadDir already sorts, but the ordering contract is ours, not the
	// platform's.
	sort.Slice(children, func(i, j int) bool {
		return children[i].Name < children[j].Name
	})

	return children
}

// ProbeChildren checks whether at least one direct subdirectory exists
// under node, recording the answer in node.ChildState. It never descends
// further than one level.
func (t *Tree) ProbeChildren(node *Node) bool {
	if node == nil {
		return false
	}
	if node.Children != nil {
		if len(node.Children) > 0 {
			node.ChildState = ProbedNonEmpty
			return true
		}
		node.ChildState = ProbedEmpty
		return false
	}

	entries, err := os.ReadDir(node.Path)
	if err != nil {
		node.ChildState = ProbedEmpty
		return false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			node.ChildState = ProbedNonEmpty
			return true
		}
	}
	node.ChildState = ProbedEmpty
	return false
}

// Expand materializes node's children. It is idempotent: an expanded node
// returns its current children untouched, and a collapsed node reuses the
// children it already loaded. Newly attached children are each probed once
// so the UI can offer an expand affordance without loading grandchildren.
func (t *Tree) Expand(node *Node) []*Node {
	if node == nil {
		return nil
	}
	if node.Expanded {
		return node.Children
	}

	if node.Children == nil {
		children := t.ListChildren(node)
		for _, child := range children {
			t.ProbeChildren(child)
		}
		node.Children = children
	}
	node.Expanded = true
	if len(node.Children) > 0 {
		node.ChildState = ProbedNonEmpty
	} else {
		node.ChildState = ProbedEmpty
	}

	return node.Children
}

// Refresh discards node's materialized children and re-reads them from
// disk. An expanded node stays expanded; expansion state below it is reset,
// matching a directory whose contents may have changed arbitrarily.
func (t *Tree) Refresh(node *Node) {
	if node == nil {
		return
	}
	node.Children = nil
	node.ChildState = NotProbed
	if node.Expanded {
		node.Expanded = false
		t.Expand(node)
		return
	}
	t.ProbeChildren(node)
}

// Collapse hides node's children without discarding them; re-expanding is
// cheap and keeps nested expansion state.
func (t *Tree) Collapse(node *Node) {
	if node == nil {
		return
	}
	node.Expanded = false
}

// Toggle expands a collapsed node and collapses an expanded one.
func (t *Tree) Toggle(node *Node) {
	if node == nil {
		return
	}
	if node.Expanded {
		t.Collapse(node)
		return
	}
	t.Expand(node)
}

// VisibleRows flattens the tree depth-first into the rows a list widget
// renders: every node whose ancestors are all expanded, root first.
func (t *Tree) VisibleRows() []*Node {
	if t.root == nil {
		return nil
	}
	rows := make([]*Node, 0, 16)
	var add func(n *Node)
	add = func(n *Node) {
		rows = append(rows, n)
		if n.Expanded {
			for _, child := range n.Children {
				add(child)
			}
		}
	}
	add(t.root)
	return rows
}

// At returns the node at a visible row index, or nil when out of range.
func (t *Tree) At(index int) *Node {
	rows := t.VisibleRows()
	if index < 0 || index >= len(rows) {
		return nil
	}
	return rows[index]
}

// ParentIndex returns the visible row index of the parent of the node at
// index: the nearest earlier row one level up. The root (and an invalid
// index) maps to -1.
func (t *Tree) ParentIndex(index int) int {
	rows := t.VisibleRows()
	if index <= 0 || index >= len(rows) {
		return -1
	}
	level := rows[index].Level
	for i := index - 1; i >= 0; i-- {
		if rows[i].Level < level {
			return i
		}
	}
	return -1
}
