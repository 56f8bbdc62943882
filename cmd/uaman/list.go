package main

import (
	"fmt"

	"uaman/cmd/uaman/cli"
	"uaman/internal/browse"
	"uaman/pkg/types"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "Print the entries of a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := cfg.Paths.TorrentsDir
			if len(args) > 0 {
				dir = args[0]
			}

			engine := browse.NewEngine(cfg)
			entries, err := engine.List(dir, types.Filter{})
			if err != nil {
				return err
			}
			printEntries(entries, long)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "include kind and size columns")

	return cmd
}

func missingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "missing",
		Short: "Print missing items scanned from the logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := browse.NewEngine(cfg)
			entries, err := engine.List("", types.Filter{MissingOnly: true})
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				cli.PrintInfo("no missing items found")
				return nil
			}
			for _, entry := range entries {
				fmt.Println(entry.Path)
			}
			return nil
		},
	}
}

func printEntries(entries []types.Entry, long bool) {
	if len(entries) == 0 {
		cli.PrintInfo("no entries")
		return
	}
	for _, entry := range entries {
		if !long {
			fmt.Println(entry.Label)
			continue
		}

		kind := "file"
		if entry.IsDir {
			kind = "dir"
		}
		if entry.Kind == types.EntryMissing {
			kind = "missing"
		}
		size := ""
		if entry.Kind == types.EntryReal && !entry.IsDir {
			size = humanize.IBytes(uint64(entry.Size))
		}
		fmt.Printf("%-8s %10s  %s\n", kind, size, entry.Label)
	}
}
