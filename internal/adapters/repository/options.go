// Package repository defines the quote store interface and errors.
package repository

import "os"

// CSVOption applies a configuration option to the CSVStore.
type CSVOption func(*CSVStore)

// WithFileMode sets the permissions used when creating the CSV file.
func WithFileMode(mode os.FileMode) CSVOption {
	return func(s *CSVStore) {
		if mode != 0 {
			s.fileMode = mode
		}
	}
}

// SheetOption applies a configuration option to the SheetStore.
type SheetOption func(*SheetStore)

// WithWorksheet sets the worksheet name holding the quote rows.
func WithWorksheet(name string) SheetOption {
	return func(s *SheetStore) {
		if name != "" {
			s.worksheet = name
		}
	}
}

// WithCredentialsJSON sets the service-account credential blob used to
// authenticate against the Sheets API.
func WithCredentialsJSON(blob []byte) SheetOption {
	return func(s *SheetStore) {
		if len(blob) > 0 {
			s.credentialsJSON = blob
		}
	}
}

// WithCredentialsFile sets the path of a service-account credential file.
func WithCredentialsFile(path string) SheetOption {
	return func(s *SheetStore) {
		if path != "" {
			s.credentialsFile = path
		}
	}
}

// withValues injects the values client directly, bypassing the Sheets
// API client construction. Test seam.
func withValues(v valuesClient) SheetOption {
	return func(s *SheetStore) {
		s.values = v
	}
}
