package main

import (
	"os"

	"uaman/cmd/uaman/cli"
	"uaman/internal/errors"
)

var version = "dev"

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		cli.PrintError(errors.UserMessage(err))
		os.Exit(1)
	}
}
