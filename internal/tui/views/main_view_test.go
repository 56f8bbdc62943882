package views

import (
	"fmt"
	"testing"

	"uaman/internal/tui/common"

	"github.com/stretchr/testify/assert"
)

// Mock model for testing
type mockModel struct {
	treeView    string
	listView    string
	activePane  common.Pane
	missingOnly bool
	showHelp    bool
	currentDir  string
	detailLine  string
}

func (m *mockModel) TreePaneView() string    { return m.treeView }
func (m *mockModel) ListPaneView() string    { return m.listView }
func (m *mockModel) ActivePane() common.Pane { return m.activePane }
func (m *mockModel) MissingOnly() bool       { return m.missingOnly }
func (m *mockModel) ShowHelp() bool          { return m.showHelp }
func (m *mockModel) CurrentDir() string      { return m.currentDir }
func (m *mockModel) DetailLine() string      { return m.detailLine }

func TestRenderMainView(t *testing.T) {
	tests := []struct {
		name     string
		model    *mockModel
		contains []string // Strings that should be present in the output
		excludes []string // Strings that should not be present in the output
	}{
		{
			name: "split view",
			model: &mockModel{
				treeView:   "▾ data\n  ▸ alpha",
				listView:   "> show.mkv",
				activePane: common.TreePane,
				currentDir: "/data",
			},
			contains: []string{
				"uaman",
				"Directory: /data",
				"alpha",
				"show.mkv",
			},
			excludes: []string{
				"[missing only]",
				"Navigation:",
			},
		},
		{
			name: "missing filter badge",
			model: &mockModel{
				treeView:    "▾ data",
				listView:    "[MISSING] Show S01E01",
				activePane:  common.ListPane,
				missingOnly: true,
				currentDir:  "/data",
			},
			contains: []string{
				"[missing only]",
				"[MISSING] Show S01E01",
			},
		},
		{
			name: "detail line",
			model: &mockModel{
				treeView:   "▾ data",
				listView:   "> Show S01",
				currentDir: "/data",
				detailLine: "/data/Show S01: 12 files, 2 dirs, 4.1 GiB",
			},
			contains: []string{
				"12 files, 2 dirs, 4.1 GiB",
			},
		},
		{
			name: "with help shown",
			model: &mockModel{
				treeView:   "▾ data",
				listView:   "",
				currentDir: "/data",
				showHelp:   true,
			},
			contains: []string{
				"Navigation:",
				"Listing:",
				"Actions:",
				"Commands:",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := RenderMainView(tt.model)

			// Check required strings are present
			for _, s := range tt.contains {
				assert.Contains(t, output, s, fmt.Sprintf("output should contain '%s'", s))
			}

			// Check excluded strings are not present
			for _, s := range tt.excludes {
				assert.NotContains(t, output, s, fmt.Sprintf("output should not contain '%s'", s))
			}
		})
	}
}

func TestRenderKeyCommands(t *testing.T) {
	output := RenderKeyCommands()
	requiredKeys := []string{
		"Up", "Down", "Pane", "Expand", "Launch", "Missing", "Rename", "Quit", "Help",
	}

	for _, key := range requiredKeys {
		assert.Contains(t, output, key, fmt.Sprintf("key commands should contain '%s'", key))
	}
}

func TestRenderHelp(t *testing.T) {
	output := RenderHelp()
	sections := []string{
		"Navigation:",
		"Listing:",
		"Actions:",
		"Commands:",
	}

	for _, section := range sections {
		assert.Contains(t, output, section, fmt.Sprintf("help should contain '%s' section", section))
	}

	// Test specific key bindings
	keyBindings := []string{
		"↑/k, ↓/j: Move cursor",
		"h/←: Collapse directory or jump to parent",
		"tab: Switch between tree and listing",
		"m: Toggle missing-items filter",
		"R: Refresh from disk",
		"s: Measure directory size",
		"y: Copy path to clipboard",
		"r: Rename selected entry",
		"q: Quit",
		"?: Toggle help",
	}

	for _, binding := range keyBindings {
		assert.Contains(t, output, binding, fmt.Sprintf("help should contain key binding '%s'", binding))
	}
}
