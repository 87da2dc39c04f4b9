package herdtest

import (
	"fmt"
	"os"

	"github.com/okian/paddock/pkg/logger"
)

// SetupLogging initializes the logger for a CLI run.
func SetupLogging(verbose bool) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug") //nolint:wrapcheck // level names are fixed here
	}
	return nil
}

// ShowHelp prints usage information for the herd test tool.
func ShowHelp() {
	os.Stdout.WriteString(`Paddock Herd Test Tool
======================

Generates random herds, exercises /rank, /consolidate and /reorder against
a running paddock service, and verifies the engine's properties on every
response: ranking is a strict permutation, front 0 is non-dominated, plans
never collide, consolidation preserves the population, and reordering a
sorted zone is a no-op.

Usage:
  go run cmd/herdtest/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -rounds int
        Number of generated worlds to run (default 100)
  -herd int
        Horses per generated world (default 20)
  -stats int
        Primary stats per generated world (default 3)
  -timeout duration
        HTTP request timeout (default 30s)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Test with default settings
  go run cmd/herdtest/main.go

  # Larger herds against a custom address
  go run cmd/herdtest/main.go -rounds 500 -herd 50 -url http://localhost:8080
`)
}
