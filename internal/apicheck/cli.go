package apicheck

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/okian/vendorboard/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "apicheck_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the API check tool.
func ShowHelp() {
	os.Stdout.WriteString(`Vendorboard API Check Tool
==========================

An end-to-end smoke check for a running vendorboard instance: filter,
KPI, leaderboard, trend, export, and session behavior over the HTTP API.

Usage:
  go run cmd/apicheck/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -seed int
        Seed for the session round-trip check (default 7)
  -limit int
        Leaderboard limit to request (default 5)
  -timeout duration
        HTTP request timeout (default 30s)
  -log string
        Log file for check output (default: apicheck_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Check a local instance
  go run cmd/apicheck/main.go

  # Check a remote instance with a custom seed
  go run cmd/apicheck/main.go -url http://vendorboard:9080 -seed 1234
`)
}
