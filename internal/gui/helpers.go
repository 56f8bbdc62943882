package gui

import (
	"fmt"

	"uaman/internal/browse"
	"uaman/internal/history"
	"uaman/pkg/types"

	"github.com/dustin/go-humanize"
)

// childPaths lists the immediate subdirectory paths under path. The tree
// widget works in path-valued node ids, so transient nodes bridge into the
// browse tree.
func childPaths(tree *browse.Tree, path string) []string {
	children := tree.ListChildren(&browse.Node{Path: path})
	paths := make([]string, 0, len(children))
	for _, child := range children {
		paths = append(paths, child.Path)
	}
	return paths
}

// hasSubdirs reports whether path has at least one subdirectory.
func hasSubdirs(tree *browse.Tree, path string) bool {
	return tree.ProbeChildren(&browse.Node{Path: path})
}

// entryDetail is the right-hand column of a listing row.
func entryDetail(entry types.Entry) string {
	if entry.Kind == types.EntryMissing {
		return "missing"
	}
	if entry.IsDir {
		return "dir"
	}
	return humanize.IBytes(uint64(entry.Size))
}

// historyLine renders one launch record as a table row.
func historyLine(rec history.Record) string {
	outcome := "ok"
	if !rec.OK {
		outcome = "failed"
	}
	return fmt.Sprintf("%s  %-6s  %-14s  %s",
		rec.StartedAt.Format("2006-01-02 15:04"), outcome, rec.Strategy, rec.Target)
}
