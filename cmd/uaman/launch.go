package main

import (
	"fmt"
	"os"
	"path/filepath"

	"uaman/cmd/uaman/cli"
	"uaman/internal/dispatch"
	"uaman/internal/errors"
	"uaman/internal/history"
	"uaman/internal/log"
	"uaman/pkg/types"

	"github.com/spf13/cobra"
)

// argUsage is the per-flag help text for the pass-through arguments.
var argUsage = map[types.ArgKey]string{
	types.ArgTMDB:            "TMDb id",
	types.ArgIMDB:            "IMDb id",
	types.ArgMAL:             "MyAnimeList id",
	types.ArgCategory:        "content category (movie, tv, ...)",
	types.ArgType:            "release type",
	types.ArgSource:          "media source",
	types.ArgEdition:         "edition name",
	types.ArgResolution:      "video resolution",
	types.ArgFreeleech:       "request freeleech",
	types.ArgTag:             "uploader tag",
	types.ArgRegion:          "disc region",
	types.ArgSeason:          "season number",
	types.ArgEpisode:         "episode number",
	types.ArgDaily:           "daily episode",
	types.ArgNoDupe:          "disallow duplicate uploads",
	types.ArgSkipImghost:     "skip image host uploads",
	types.ArgPersonalRelease: "mark as personal release",
}

func launchCmd() *cobra.Command {
	var (
		dryRun bool
		here   bool
	)
	stringVals := make(map[types.ArgKey]*string)
	boolVals := make(map[types.ArgKey]*bool)

	cmd := &cobra.Command{
		Use:   "launch <target>",
		Short: "Dispatch the upload assistant against a file or directory",
		Long: `Build the upload-assistant command line for the target and start it in a
new terminal window. Flags given here override the persisted argument
defaults for this launch only.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			if _, err := os.Stat(target); err != nil {
				return errors.NewFileError("target not found", target, errors.NotFound, nil)
			}

			bag := dispatch.BagFromStore(cfg)
			for key, val := range stringVals {
				if cmd.Flags().Changed(string(key)) {
					bag.Set(key, *val)
				}
			}
			for key, val := range boolVals {
				if cmd.Flags().Changed(string(key)) {
					bag.SetBool(key, *val)
				}
			}

			launch := dispatch.BuildCommand(cfg.Paths.UploadAssistantPath, target, bag)
			if dryRun {
				fmt.Println(launch.Line())
				return nil
			}

			var (
				dispatcher dispatch.Dispatcher
				strategy   string
			)
			if here {
				strategy, err = dispatcher.RunHere(launch)
			} else {
				strategy, err = dispatcher.Launch(launch)
			}

			recordLaunch(target, launch, strategy, err)
			if err != nil {
				return err
			}
			cli.PrintSuccess("launched via " + strategy)
			return nil
		},
	}

	for _, key := range types.ArgKeys() {
		usage := argUsage[key]
		if usage == "" {
			usage = "passed through to the upload assistant"
		}
		if key.Bool() {
			boolVals[key] = cmd.Flags().Bool(string(key), false, usage)
		} else {
			stringVals[key] = cmd.Flags().String(string(key), "", usage)
		}
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the command line without launching")
	cmd.Flags().BoolVar(&here, "here", false, "run synchronously in this terminal")

	return cmd
}

// recordLaunch writes the launch to the history ledger, best effort.
func recordLaunch(target string, launch dispatch.Command, strategy string, launchErr error) {
	ledger, err := history.Open(cfg.Paths.HistoryDB)
	if err != nil {
		log.LogWithError(err).Warn("history unavailable")
		return
	}
	defer ledger.Close()

	_ = ledger.Record(history.Record{
		Target:   target,
		Args:     launch.Line(),
		Strategy: strategy,
		OK:       launchErr == nil,
	})
}
