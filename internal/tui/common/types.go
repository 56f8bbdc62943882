package common

type Mode int

const (
	Browse Mode = iota
	ArgsForm
	Rename
	Confirm
)

// Pane names the half of the split view that key presses land in.
type Pane int

const (
	TreePane Pane = iota
	ListPane
)

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	TreePaneView() string
	ListPaneView() string
	ActivePane() Pane
	MissingOnly() bool
	ShowHelp() bool
	CurrentDir() string
	DetailLine() string
}
