package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/ghighi/quoteboard/pkg/logger"
)

// Run executes a complete seeding run.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting quoteboard seeding run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("count", config.Count),
		logger.String("timeout", config.Timeout.String()),
		logger.String("interval", config.Interval.String()),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate demo quotes
	subs, err := generateQuotes(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("quote generation failed: %w", err)
	}

	// Step 3: Submit quotes sequentially
	if err := submitQuotes(ctx, config, subs, stats); err != nil {
		return fmt.Errorf("quote submission failed: %w", err)
	}

	// Step 4: Read the board back
	size, err := fetchBoardSize(ctx, config)
	if err != nil {
		return fmt.Errorf("board verification failed: %w", err)
	}
	stats.BoardSize = size

	if size < stats.QuotesSuccessful {
		return fmt.Errorf("board holds %d quotes, expected at least %d", size, stats.QuotesSuccessful)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "seeding completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	var successRate, quotesPerSecond float64

	if stats.QuotesSubmitted > 0 {
		successRate = float64(stats.QuotesSuccessful) / float64(stats.QuotesSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		quotesPerSecond = float64(stats.QuotesSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("quotesGenerated", stats.QuotesGenerated),
		logger.Int("quotesSubmitted", stats.QuotesSubmitted),
		logger.Int("quotesSuccessful", stats.QuotesSuccessful),
		logger.Int("quotesFailed", stats.QuotesFailed),
		logger.Int("boardSize", stats.BoardSize),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("quotesPerSecond", quotesPerSecond))
}
