// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Layer optional YAML file and env vars on top via Load.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Storage backend selectors.
const (
	StorageCSV    = "csv"
	StorageSheets = "sheets"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Storage selects the backing store: "csv" or "sheets".
	Storage string `koanf:"storage"`

	// CSVPath locates the CSV file used by the csv backend.
	CSVPath string `koanf:"csv_path"`

	// SheetsDocID is the spreadsheet document identifier.
	SheetsDocID string `koanf:"sheets_doc_id"`

	// SheetsWorksheet names the worksheet holding the quote rows.
	SheetsWorksheet string `koanf:"sheets_worksheet"`

	// SheetsCredentialsFile points at a service-account key file.
	SheetsCredentialsFile string `koanf:"sheets_credentials_file"`

	// SheetsCredentialsJSON carries the service-account key inline.
	SheetsCredentialsJSON string `koanf:"sheets_credentials_json"`

	// MaxHistoryLimit caps GET /quotes?limit.
	MaxHistoryLimit int `koanf:"max_history_limit"`
}

// New creates a Config with defaults. Context is accepted first to
// satisfy the project-wide convention; it is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":8080",
		Storage:         StorageCSV,
		CSVPath:         "data/quotes.csv",
		SheetsWorksheet: "quotes",
		MaxHistoryLimit: 1000,
	}
}
