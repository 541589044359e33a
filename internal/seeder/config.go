package seeder

import "time"

// Config holds configuration for a seeding run
type Config struct {
	BaseURL  string        // Base URL of the service
	Count    int           // Number of quotes to generate
	Timeout  time.Duration // HTTP request timeout
	Interval time.Duration // Pause between submissions
	LogFile  string        // Log file for run output
	Verbose  bool          // Enable verbose logging
}

// Submission represents a quote to be submitted
type Submission struct {
	Date               string  `json:"date"`
	Player             string  `json:"player"`
	Event              string  `json:"event"`
	Quote              string  `json:"quote"`
	ImpliedProbability float64 `json:"implied_probability"`
}

// StoredQuote represents the response from a quote submission
type StoredQuote struct {
	TimestampUTC       string  `json:"timestamp_utc"`
	Date               string  `json:"date"`
	Player             string  `json:"player"`
	Event              string  `json:"event"`
	Quote              string  `json:"quote"`
	ImpliedProbability float64 `json:"implied_probability"`
}

// Stats holds seeding run statistics
type Stats struct {
	QuotesGenerated  int
	QuotesSubmitted  int
	QuotesSuccessful int
	QuotesFailed     int
	BoardSize        int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
