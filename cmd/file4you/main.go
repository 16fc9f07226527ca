package main

import (
	"context"
	"errors"
	"os"

	internal "github.com/ZanzyTHEbar/file4you/f4y"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			logger := internal.GetLogger()
			logger.Error().Err(err).Msg("command failed")
		}
		os.Exit(1)
	}
}
