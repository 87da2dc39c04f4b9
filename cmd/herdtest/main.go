package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/paddock/internal/herdtest"
)

// Default configuration constants.
const (
	defaultRounds      = 100
	defaultHerdSize    = 20
	defaultStatCount   = 3
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:9080", "Base URL of the service")
		rounds    = flag.Int("rounds", defaultRounds, "Number of generated worlds to run")
		herdSize  = flag.Int("herd", defaultHerdSize, "Horses per generated world")
		statCount = flag.Int("stats", defaultStatCount, "Primary stats per generated world")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		herdtest.ShowHelp()
		return
	}

	if err := herdtest.SetupLogging(*verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	cfg := &herdtest.Config{
		BaseURL:   *baseURL,
		Rounds:    *rounds,
		HerdSize:  *herdSize,
		StatCount: *statCount,
		Timeout:   *timeout,
		Verbose:   *verbose,
	}

	if err := herdtest.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
