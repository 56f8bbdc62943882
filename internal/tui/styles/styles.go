package styles

import "github.com/charmbracelet/lipgloss"

// Pane borders for the split browse view; the focused pane carries the
// accent color so the operator can tell where keys land.
var (
	PaneFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7B61FF")).
			Padding(0, 1)

	PaneBlurred = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// Cursor marks the active row inside a pane.
var Cursor = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FFFFFF")).
	Background(lipgloss.Color("#6B5ECD")).
	Bold(true)
