package main

import (
	"fmt"
	"io"
	"os"

	"uaman/internal/gui"
	"uaman/internal/log"
	"uaman/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// browseCmd starts the terminal interface. This is also what the bare
// root command runs.
func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [dir]",
		Short: "Start the terminal interface",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(args)
		},
	}
}

func runBrowse(args []string) error {
	if len(args) > 0 {
		cfg.Paths.TorrentsDir = args[0]
	}

	// The interface owns the terminal; keep the logger off it.
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			defer f.Close()
			log.Configure(log.WithOutput(f))
		} else {
			log.Configure(log.WithOutput(io.Discard))
		}
	} else {
		log.Configure(log.WithOutput(io.Discard))
	}
	log.SetDebug(verbose)

	m := tui.New(cfg)
	defer m.Close()

	// No alt screen; plays nicer when stdout is not a tty.
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running terminal interface: %w", err)
	}
	return nil
}

func guiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Start the desktop interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return gui.Run(cfg)
		},
	}
}
