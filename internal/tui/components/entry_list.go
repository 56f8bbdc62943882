package components

import (
	"fmt"
	"strings"

	"uaman/internal/tui/styles"
	"uaman/pkg/types"

	"github.com/dustin/go-humanize"
)

// EntryList renders the right-hand listing: directory contents or the
// missing-item lines, depending on the active filter.
type EntryList struct {
	entries    []types.Entry
	cursor     int
	offset     int
	height     int
	width      int
	currentDir string
	missing    bool
}

func NewEntryList() *EntryList {
	return &EntryList{
		height: 20,
		width:  60,
	}
}

func (el *EntryList) SetSize(width, height int) {
	el.width = width
	el.height = height
	el.ensureCursorVisible()
}

// SetEntries replaces the listing. The cursor is clamped rather than reset
// so a refresh of the same directory keeps the operator's place.
func (el *EntryList) SetEntries(entries []types.Entry, missing bool) {
	el.entries = entries
	el.missing = missing
	if el.cursor >= len(entries) {
		el.cursor = max(0, len(entries)-1)
	}
	el.ensureCursorVisible()
}

func (el *EntryList) SetCurrentDir(dir string) {
	el.currentDir = dir
}

func (el *EntryList) CurrentDir() string {
	return el.currentDir
}

func (el *EntryList) Entries() []types.Entry {
	return el.entries
}

func (el *EntryList) Cursor() int {
	return el.cursor
}

func (el *EntryList) MoveCursor(delta int) {
	newPos := el.cursor + delta
	if newPos >= 0 && newPos < len(el.entries) {
		el.cursor = newPos
	}
	el.ensureCursorVisible()
}

func (el *EntryList) MoveTop() {
	el.cursor = 0
	el.ensureCursorVisible()
}

func (el *EntryList) MoveBottom() {
	if len(el.entries) > 0 {
		el.cursor = len(el.entries) - 1
	}
	el.ensureCursorVisible()
}

// Current returns the entry under the cursor, or nil for an empty listing.
func (el *EntryList) Current() *types.Entry {
	if el.cursor >= 0 && el.cursor < len(el.entries) {
		return &el.entries[el.cursor]
	}
	return nil
}

func (el *EntryList) ensureCursorVisible() {
	if el.height <= 0 {
		return
	}
	if el.cursor < el.offset {
		el.offset = el.cursor
	}
	if el.cursor >= el.offset+el.height {
		el.offset = el.cursor - el.height + 1
	}
	if el.offset < 0 {
		el.offset = 0
	}
}

func (el *EntryList) View() string {
	var b strings.Builder

	if len(el.entries) == 0 {
		if el.missing {
			b.WriteString(styles.Theme.Unselected.Render("No missing items found"))
		} else {
			b.WriteString(styles.Theme.Unselected.Render("Empty directory"))
		}
		return b.String()
	}

	startIdx := el.offset
	endIdx := min(len(el.entries), el.offset+el.height)

	if startIdx > 0 {
		b.WriteString(styles.Theme.Unselected.Render("↑ more ↑") + "\n")
	}

	for i := startIdx; i < endIdx; i++ {
		entry := &el.entries[i]

		cursor := " "
		if i == el.cursor {
			cursor = ">"
		}

		detail := ""
		if entry.Kind == types.EntryReal && !entry.IsDir {
			detail = fmt.Sprintf("  %8s", humanize.IBytes(uint64(entry.Size)))
		}

		line := entry.Label + detail
		render := entryStyle(entry, i == el.cursor)
		b.WriteString(fmt.Sprintf("%s %s\n", cursor, render(line)))
	}

	if endIdx < len(el.entries) {
		b.WriteString(styles.Theme.Unselected.Render(fmt.Sprintf("↓ %d more ↓", len(el.entries)-endIdx)) + "\n")
	}

	return b.String()
}

func entryStyle(entry *types.Entry, underCursor bool) func(...string) string {
	switch {
	case underCursor:
		return styles.Cursor.Render
	case entry.Kind == types.EntryMissing:
		return styles.Theme.Missing.Render
	case entry.IsDir:
		return styles.Theme.Directory.Render
	default:
		return styles.Theme.Unselected.Render
	}
}
