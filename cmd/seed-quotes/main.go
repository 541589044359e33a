package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/ghighi/quoteboard/internal/seeder"
)

// Default configuration constants.
const (
	defaultCount      = 40
	defaultTimeout    = 10 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8080", "Base URL of the service")
		count    = flag.Int("count", defaultCount, "Number of quotes to generate and submit")
		interval = flag.Duration("interval", 0, "Pause between submissions")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile  = flag.String("log", "", "Log file for run output (default: seed_log_TIMESTAMP.log)")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seeder.ShowHelp()
		return
	}

	// Setup logging
	if err := seeder.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// Create run configuration
	config := &seeder.Config{
		BaseURL:  *baseURL,
		Count:    *count,
		Timeout:  *timeout,
		Interval: *interval,
		LogFile:  *logFile,
		Verbose:  *verbose,
	}

	// Run the seeding
	if err := seeder.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seeding failed: " + err.Error() + "\n")
		return
	}
}
