package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// setupLog routes logging to SKIM_LOGFILE when set and discards it
// otherwise; the TUI owns the terminal. Returns a closer for the log
// sink.
func setupLog() (func() error, error) {
	log.SetOutput(io.Discard)

	logFile := os.Getenv("SKIM_LOGFILE")
	if logFile == "" {
		return func() error { return nil }, nil
	}

	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("error setting up logging: %w", err)
	}

	log.SetOutput(f)
	log.SetLevel(log.DebugLevel)
	return f.Close, nil
}
