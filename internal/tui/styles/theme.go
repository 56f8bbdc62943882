package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the core UI styles
var Theme = struct {
	App        lipgloss.Style
	Title      lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Directory  lipgloss.Style
	Missing    lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Help       lipgloss.Style
}{
	App: lipgloss.NewStyle().
		Padding(1, 2),
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7B61FF")).
		MarginBottom(1),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#73F59F")).
		Bold(true),
	Unselected: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666")),
	Directory: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#81A1C1")).
		Bold(true),
	Missing: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E5C07B")).
		Italic(true),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF5555")),
	Success: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#73F59F")),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5A9")),
}
