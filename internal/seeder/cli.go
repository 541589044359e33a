package seeder

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/ghighi/quoteboard/pkg/logger"
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
		logFile = "seed_log_" + timestamp + ".log"
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

// ShowHelp prints usage information for the seeding tool.
func ShowHelp() {
	os.Stdout.WriteString(`Quoteboard Seeder
=================

Fills a running quoteboard with demo quotes so the board has something
to show.

Usage:
  go run cmd/seed-quotes/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8080")
  -count int
        Number of quotes to generate and submit (default 40)
  -interval duration
        Pause between submissions (default 0s)
  -timeout duration
        HTTP request timeout (default 10s)
  -log string
        Log file for run output (default: seed_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Seed with default settings
  go run cmd/seed-quotes/main.go

  # Seed a remote instance with more quotes
  go run cmd/seed-quotes/main.go -count 200 -url http://quoteboard.local:8080

  # Seed slowly to watch the board fill up
  go run cmd/seed-quotes/main.go -count 20 -interval 500ms
`)
}
