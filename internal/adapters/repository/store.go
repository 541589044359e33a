// Package repository defines the quote store interface and errors.
package repository

import (
	"context"

	"github.com/ghighi/quoteboard/internal/domain/model"
)

// Store provides append-only access to the quote history.
//
// Implementations make no atomicity promise under concurrent writers:
// two simultaneous appends may interleave or one may be lost depending
// on the backing store's own behavior.
type Store interface {
	// Append writes one record to the end of the backing store.
	// Returns ErrUnavailable when the store cannot be reached.
	Append(ctx context.Context, rec model.Record) error

	// ReadAll returns every record currently in the store, in
	// insertion order. Returns ErrUnavailable when the store cannot
	// be reached.
	ReadAll(ctx context.Context) ([]model.Record, error)

	// Count returns the number of records currently stored, or 0 when
	// the store cannot be read. Used for stats only.
	Count(ctx context.Context) int
}
