package types

import (
	"path/filepath"
	"strings"
)

// MissingPrefix labels entries extracted from log scans rather than the
// filesystem.
const MissingPrefix = "[MISSING] "

// EntryKind distinguishes real filesystem objects from synthetic entries
// derived from log text.
type EntryKind int

const (
	// EntryReal is a file or directory that exists on disk
	EntryReal EntryKind = iota
	// EntryMissing is a log line describing a missing item; its Path is an
	// opaque identifier, not a filesystem path
	EntryMissing
)

// String returns the kind as a short lowercase word.
func (k EntryKind) String() string {
	if k == EntryMissing {
		return "missing"
	}
	return "real"
}

// Entry is one row of a listing: either a real filesystem object or a
// missing-item line pulled from the logs.
type Entry struct {
	Label string    `json:"label"`
	Path  string    `json:"path"`
	Kind  EntryKind `json:"kind"`
	IsDir bool      `json:"is_dir,omitempty"`
	Size  int64     `json:"size,omitempty"`
}

// Name returns the base name for real entries and the label text (without
// the missing prefix) for synthetic ones.
func (e *Entry) Name() string {
	if e.Kind == EntryMissing {
		return strings.TrimPrefix(e.Label, MissingPrefix)
	}
	return filepath.Base(e.Path)
}

// Navigable reports whether the entry points at something on disk that can
// be renamed or dispatched.
func (e *Entry) Navigable() bool {
	return e.Kind == EntryReal
}

// String returns the display label.
func (e *Entry) String() string {
	return e.Label
}

// Filter selects which listing the engine produces.
type Filter struct {
	// MissingOnly switches the listing from directory contents to
	// missing-item lines scanned out of the logs directory.
	MissingOnly bool
}
