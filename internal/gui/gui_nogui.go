//go:build nogui

// Package gui is the desktop front end. This build has it compiled out;
// Run reports that instead of opening a window.
package gui

import (
	"uaman/internal/config"
	"uaman/internal/errors"
)

// Available reports whether this build carries the desktop front end.
func Available() bool {
	return false
}

// Run is a stub for builds with the desktop front end disabled.
func Run(_ *config.Config) error {
	return errors.New("this build has no desktop front end; use the terminal interface")
}
