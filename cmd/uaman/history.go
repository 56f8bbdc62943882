package main

import (
	"fmt"

	"uaman/cmd/uaman/cli"
	"uaman/internal/history"

	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent upload-assistant launches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := history.Open(cfg.Paths.HistoryDB)
			if err != nil {
				return err
			}
			defer ledger.Close()

			records, err := ledger.Recent(limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				cli.PrintInfo("no launches recorded yet")
				return nil
			}
			for _, rec := range records {
				outcome := "ok"
				if !rec.OK {
					outcome = "failed"
				}
				fmt.Printf("%s  %-6s  %-14s  %s\n",
					rec.StartedAt.Format("2006-01-02 15:04"), outcome, rec.Strategy, rec.Target)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of launches to show")

	return cmd
}
