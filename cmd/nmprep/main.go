package main

import (
	"errors"
	"os"

	"nmprep/internal/slogutil"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Errors raised after the session logger exists were already logged.
		var reported *reportedError
		if !errors.As(err, &reported) {
			logger := slogutil.NewLogger(os.Stderr, slogutil.LevelFromString("error"))
			logger.Error("Command execution failed", "error", err.Error())
		}
		os.Exit(1)
	}
}
