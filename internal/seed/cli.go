package seed

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/podium/pkg/logger"
)

// SetupLogging sends log records to stdout and, when logFile is set, to
// that file as JSON lines.
func SetupLogging(logFile string) error {
	if logFile == "" {
		if err := logger.Init(); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	}
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	if err := logger.Init(logger.WithFormat(logger.FormatJSON), logger.WithOutput(io.MultiWriter(os.Stdout, file))); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// ShowHelp prints usage information for the seed tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Podium seed tool
================

Posts a roster to a running leaderboard server and checks the ranking it
returns.

Usage:
  seed [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -students int
        Number of random students to generate; 0 posts the ten-student sample (default 0)
  -tie string
        Tie breaker: shared or stable (default "shared")
  -import
        Parse the sample through the server's /import endpoint
  -workers int
        Concurrent rank lookups (default 4)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Write the posted roster to this JSON file
  -log string
        Also write logs to this file
  -verbose
        Print the whole leaderboard
  -help
        Show this help message
`)
}
