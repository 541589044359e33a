// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strconv"
)

// Column names of the backing store, in canonical order. The header row
// of a backing store must match this list exactly; anything else is a
// configuration error, not data.
const (
	ColTimestampUTC       = "timestamp_utc"
	ColDate               = "date"
	ColPlayer             = "player"
	ColEvent              = "event"
	ColQuote              = "quote"
	ColImpliedProbability = "implied_probability"
)

// Record represents one quote submission: a player's probability
// estimate for a real-life event. Records are immutable once appended.
type Record struct {
	TimestampUTC       string  // RFC3339 UTC, stamped by the service on submit
	Date               string  // YYYY-MM-DD date of the event
	Player             string  // who makes the quote
	Event              string  // free-text event description
	Quote              string  // free-text description of the prediction
	ImpliedProbability float64 // stated probability in [0, 1]
}

// Columns returns the canonical header row for a backing store.
func Columns() []string {
	return []string{
		ColTimestampUTC,
		ColDate,
		ColPlayer,
		ColEvent,
		ColQuote,
		ColImpliedProbability,
	}
}

// HeaderMatches reports whether header is exactly the canonical column
// list, in order.
func HeaderMatches(header []string) bool {
	cols := Columns()
	if len(header) != len(cols) {
		return false
	}
	for i, c := range cols {
		if header[i] != c {
			return false
		}
	}
	return true
}

// Row encodes the record as one store row in canonical column order.
// The probability is formatted with the shortest representation that
// parses back to the same float64, so 0 and 1 round-trip exactly.
func (r Record) Row() []string {
	return []string{
		r.TimestampUTC,
		r.Date,
		r.Player,
		r.Event,
		r.Quote,
		strconv.FormatFloat(r.ImpliedProbability, 'g', -1, 64),
	}
}

// FromRow decodes one store row in canonical column order.
func FromRow(row []string) (Record, error) {
	if len(row) != len(Columns()) {
		return Record{}, fmt.Errorf("row has %d fields, want %d", len(row), len(Columns()))
	}
	p, err := strconv.ParseFloat(row[5], 64)
	if err != nil {
		return Record{}, fmt.Errorf("parse %s: %w", ColImpliedProbability, err)
	}
	return Record{
		TimestampUTC:       row[0],
		Date:               row[1],
		Player:             row[2],
		Event:              row[3],
		Quote:              row[4],
		ImpliedProbability: p,
	}, nil
}
