package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/vendorboard/internal/apicheck"
)

// Default configuration constants.
const (
	defaultSeed       = 7
	defaultLimit      = 5
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		seed    = flag.Int64("seed", defaultSeed, "Seed for the session round-trip check")
		limit   = flag.Int("limit", defaultLimit, "Leaderboard limit to request")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile = flag.String("log", "", "Log file for check output (default: apicheck_TIMESTAMP.log)")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		apicheck.ShowHelp()
		return
	}

	// Setup logging
	if err := apicheck.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// Create check configuration
	config := &apicheck.Config{
		BaseURL:     *baseURL,
		Timeout:     *timeout,
		SessionSeed: *seed,
		Limit:       *limit,
		LogFile:     *logFile,
		Verbose:     *verbose,
	}

	// Run the checks
	if err := apicheck.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Check failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
