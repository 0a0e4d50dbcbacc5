package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var logFile *os.File

// setupLogging installs the default logger. Logs go to path when given and
// to stderr otherwise; interactive commands call quietLogs so the alternate
// screen stays clean.
func setupLogging(path string, debug bool) error {
	var w io.Writer = os.Stderr
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		w = f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "survivors",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)
	return nil
}

// quietLogs drops log output unless it is going to a file.
func quietLogs() {
	if logFile == nil {
		log.Default().SetOutput(io.Discard)
	}
}

func closeLog() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
