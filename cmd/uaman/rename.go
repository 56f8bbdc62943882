package main

import (
	"path/filepath"

	"uaman/cmd/uaman/cli"
	"uaman/internal/browse"
	"uaman/pkg/types"

	"github.com/spf13/cobra"
)

func renameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <path> <new-name>",
		Short: "Rename a file or directory in place",
		Long:  `Rename the file or directory at path to new-name within the same parent.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			entry := types.Entry{Label: filepath.Base(path), Path: path, Kind: types.EntryReal}
			newPath, err := browse.Resolver{}.Rename(&entry, args[1])
			if err != nil {
				return err
			}
			cli.PrintSuccess("renamed to " + newPath)
			return nil
		},
	}
}
