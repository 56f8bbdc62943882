package views

import (
	"strings"

	"uaman/internal/tui/common"
	"uaman/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// RenderMainView draws the split browse screen: directory tree on the left,
// listing on the right, detail line and key hints underneath.
func RenderMainView(m common.ModelReader) string {
	var sb strings.Builder

	sb.WriteString(renderHeader(m))
	sb.WriteString("\n")

	left := styles.PaneBlurred.Render(m.TreePaneView())
	right := styles.PaneBlurred.Render(m.ListPaneView())
	if m.ActivePane() == common.TreePane {
		left = styles.PaneFocused.Render(m.TreePaneView())
	} else {
		right = styles.PaneFocused.Render(m.ListPaneView())
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	sb.WriteString("\n")

	if detail := m.DetailLine(); detail != "" {
		sb.WriteString(styles.Theme.Help.Render(detail) + "\n")
	}

	if m.ShowHelp() {
		sb.WriteString("\n" + RenderHelp())
	}
	sb.WriteString("\n" + RenderKeyCommands())

	return styles.Theme.App.Render(sb.String())
}

func renderHeader(m common.ModelReader) string {
	title := styles.Theme.Title.Render("uaman")
	location := styles.Theme.Help.Render("Directory: " + m.CurrentDir())
	if m.MissingOnly() {
		badge := styles.Theme.Missing.Render("[missing only]")
		return title + "  " + location + "  " + badge
	}
	return title + "  " + location
}

func RenderKeyCommands() string {
	return styles.Theme.Help.Render(`
[↑/k] Up  [↓/j] Down  [Tab] Pane  [Enter] Expand  [l] Launch  [m] Missing  [r] Rename  [q] Quit  [?] Help
`)
}

func RenderHelp() string {
	return styles.Theme.Help.Render(`
Navigation:
  ↑/k, ↓/j: Move cursor
  h/←: Collapse directory or jump to parent
  l/→: Expand directory (tree pane)
  enter, space: Expand or collapse (tree pane)
  tab: Switch between tree and listing
  g: Go to top    G: Go to bottom

Listing:
  m: Toggle missing-items filter
  R: Refresh from disk
  s: Measure directory size
  y: Copy path to clipboard

Actions:
  l, enter: Launch upload assistant (listing pane)
  r: Rename selected entry

Commands:
  q: Quit
  ?: Toggle help
`)
}
