package main

import (
	"fmt"
	"strings"

	"uaman/cmd/uaman/cli"
	"uaman/internal/config"
	"uaman/internal/errors"
	"uaman/pkg/types"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit the persisted configuration",
	}
	cmd.AddCommand(configGetCmd())
	cmd.AddCommand(configSetCmd())
	cmd.AddCommand(configShowCmd())
	return cmd
}

func configGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <section.key>",
		Short: "Print one configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, key, err := splitKey(args[0])
			if err != nil {
				return err
			}
			if !knownKey(section, key) {
				return errors.NewConfigError("unknown key", args[0], errors.InvalidConfig, nil)
			}
			fmt.Println(cfg.Get(section, key, ""))
			return nil
		},
	}
}

func configSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <section.key> <value>",
		Short: "Set one configuration value and persist it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, key, err := splitKey(args[0])
			if err != nil {
				return err
			}
			if err := cfg.Set(section, key, args[1]); err != nil {
				return err
			}
			cli.PrintSuccess(fmt.Sprintf("%s.%s = %s", section, key, args[1]))
			return nil
		},
	}
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the full configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			if cfg.Path() != "" {
				cli.PrintInfo("file: " + cfg.Path())
			}
			fmt.Print(string(data))
			return nil
		},
	}
}

func splitKey(arg string) (string, string, error) {
	section, key, ok := strings.Cut(arg, ".")
	if !ok || section == "" || key == "" {
		return "", "", errors.Newf("expected section.key, got %q", arg)
	}
	return section, key, nil
}

func knownKey(section, key string) bool {
	switch section {
	case config.SectionPaths:
		switch key {
		case config.KeyLogsDir, config.KeyTorrentsDir, config.KeyUploadAssistant,
			config.KeyLogPattern, config.KeyHistoryDB:
			return true
		}
		return false
	case config.SectionArguments:
		return types.IsValidArgKey(key)
	}
	return false
}
