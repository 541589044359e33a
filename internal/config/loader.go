package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if QUOTEBOARD_CONFIG is set
//  3. env (prefix QUOTEBOARD_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("QUOTEBOARD_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: QUOTEBOARD_ADDR, QUOTEBOARD_CSV_PATH, ...
	// Map env keys like QUOTEBOARD_CSV_PATH -> csv_path (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("QUOTEBOARD_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "quoteboard_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate applies the startup checks that make a config usable at all.
// Header-shape validation of the backing store happens when the store
// is opened, not here.
func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.Storage {
	case StorageCSV:
		if c.CSVPath == "" {
			return fmt.Errorf("%w: csv_path must not be empty", ErrInvalidConfig)
		}
	case StorageSheets:
		if c.SheetsDocID == "" {
			return fmt.Errorf("%w: sheets_doc_id is required for the sheets backend", ErrInvalidConfig)
		}
		if c.SheetsWorksheet == "" {
			return fmt.Errorf("%w: sheets_worksheet must not be empty", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage %q", ErrInvalidConfig, c.Storage)
	}
	if c.MaxHistoryLimit < 1 {
		return fmt.Errorf("%w: max_history_limit must be positive", ErrInvalidConfig)
	}
	return nil
}
