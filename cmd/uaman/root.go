package main

import (
	"fmt"

	"uaman/cmd/uaman/cli"
	"uaman/internal/config"
	"uaman/internal/log"

	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	basePath string
	verbose  bool
	logFile  string

	cfg *config.Config
)

// NewRootCmd creates the root command. Without a subcommand the terminal
// interface starts in the configured base directory.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "uaman",
		Short: "Browse releases and hand them to the upload assistant",
		Long: `uaman is a front end for the upload assistant: browse the torrents
directory, surface missing items from the cross-pollinator logs, and
launch the assistant with remembered arguments.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/uaman/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&basePath, "base", "", "base directory to browse (overrides the configured one)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append logs to this file")

	rootCmd.AddCommand(browseCmd())
	rootCmd.AddCommand(guiCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(missingCmd())
	rootCmd.AddCommand(launchCmd())
	rootCmd.AddCommand(renameCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(historyCmd())

	return rootCmd
}

// setup loads the configuration and wires logging from the global flags.
// Every subcommand runs through here.
func setup() error {
	if logFile != "" {
		log.Configure(log.WithFile(logFile))
	}
	log.SetDebug(verbose)

	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFile(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		cli.PrintWarning(fmt.Sprintf("could not load config: %v", err))
		cli.PrintInfo("using default settings")
		cfg = config.New()
	}

	// Session override; it persists only if something later saves the
	// config.
	if basePath != "" {
		cfg.Paths.TorrentsDir = basePath
	}
	return nil
}
