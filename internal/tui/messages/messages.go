package messages

import (
	"uaman/internal/browse"
	"uaman/internal/dispatch"
	"uaman/internal/watch"
	"uaman/pkg/types"
)

type ErrorMsg struct {
	Err error
}

// ListingMsg delivers the result of a listing scan.
type ListingMsg struct {
	Dir     string
	Missing bool
	Entries []types.Entry
	Err     error
}

// ArgsSubmittedMsg carries the argument form state when the operator
// confirms a launch.
type ArgsSubmittedMsg struct {
	Target string
	Bag    dispatch.Bag
}

// LaunchDoneMsg reports how a dispatch ended.
type LaunchDoneMsg struct {
	Target   string
	Command  dispatch.Command
	Strategy string
	Err      error
}

// RenameDoneMsg reports a finished rename attempt.
type RenameDoneMsg struct {
	OldPath string
	NewPath string
	Err     error
}

// StatsMsg delivers a finished subtree measurement.
type StatsMsg struct {
	Path  string
	Stats browse.Stats
	Err   error
}

// WatchMsg wraps one filesystem event from the watcher.
type WatchMsg struct {
	Event watch.Event
}

// YankMsg reports a clipboard write.
type YankMsg struct {
	Text string
	Err  error
}
