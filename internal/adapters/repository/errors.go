package repository

import "errors"

// Sentinel kinds for store errors.
var (
	// ErrSchemaMismatch marks a backing store whose header row does not
	// match model.Columns(). Fatal at startup, never a per-record error.
	ErrSchemaMismatch = errors.New("backing store header does not match expected schema")

	// ErrUnavailable marks a backing store that cannot be reached:
	// filesystem failure for CSV, network or auth failure for Sheets.
	ErrUnavailable = errors.New("backing store unavailable")
)
