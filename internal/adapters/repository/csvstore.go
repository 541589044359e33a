package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ghighi/quoteboard/internal/domain/model"
	"github.com/ghighi/quoteboard/pkg/metrics"
)

// Default CSV store configuration constants.
const (
	defaultCSVFileMode = os.FileMode(0o644)
	defaultCSVDirMode  = os.FileMode(0o755)

	csvBackendLabel = "csv"
)

// CSVStore persists quote records to a local CSV file, one record per
// line below the canonical header row.
type CSVStore struct {
	path     string
	fileMode os.FileMode
}

// NewCSVStore opens the CSV file at path, creating it (and its parent
// directories) with the canonical header when it does not exist. An
// existing file whose header row differs from model.Columns() yields
// ErrSchemaMismatch: a fatal configuration error, checked once here at
// startup.
func NewCSVStore(ctx context.Context, path string, opts ...CSVOption) (*CSVStore, error) {
	s := &CSVStore{
		path:     path,
		fileMode: defaultCSVFileMode,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	if err := s.ensureHeader(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// ensureHeader creates the file with the header row when missing, and
// verifies the header row otherwise.
func (s *CSVStore) ensureHeader(_ context.Context) error {
	_, err := os.Stat(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return s.create()
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	header, err := csv.NewReader(f).Read()
	if errors.Is(err, io.EOF) {
		// Zero-byte file: treat like a fresh store and write the header.
		return s.writeHeader()
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !model.HeaderMatches(header) {
		return fmt.Errorf("%w: got %v, want %v", ErrSchemaMismatch, header, model.Columns())
	}
	return nil
}

func (s *CSVStore) create() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, defaultCSVDirMode); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	return s.writeHeader()
}

func (s *CSVStore) writeHeader() error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, s.fileMode)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(model.Columns()); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Append writes one record to the end of the file. No locking: the file
// is the sole shared resource and concurrent writers are not serialized.
func (s *CSVStore) Append(_ context.Context, rec model.Record) error {
	start := time.Now()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, s.fileMode)
	if err != nil {
		metrics.RecordStoreError(csvBackendLabel, "append")
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(rec.Row()); err != nil {
		metrics.RecordStoreError(csvBackendLabel, "append")
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		metrics.RecordStoreError(csvBackendLabel, "append")
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	metrics.RecordStoreAppendLatency(csvBackendLabel, float64(time.Since(start).Milliseconds()))
	return nil
}

// ReadAll parses the whole file and returns the records in file order.
func (s *CSVStore) ReadAll(_ context.Context) ([]model.Record, error) {
	start := time.Now()

	f, err := os.Open(s.path)
	if err != nil {
		metrics.RecordStoreError(csvBackendLabel, "read")
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		metrics.RecordStoreError(csvBackendLabel, "read")
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(rows) == 0 || !model.HeaderMatches(rows[0]) {
		return nil, fmt.Errorf("%w: header row missing or changed", ErrSchemaMismatch)
	}

	records := make([]model.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := model.FromRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		records = append(records, rec)
	}

	metrics.RecordStoreReadLatency(csvBackendLabel, float64(time.Since(start).Milliseconds()))
	return records, nil
}

// Count returns the number of stored records, or 0 when the file cannot
// be read.
func (s *CSVStore) Count(ctx context.Context) int {
	records, err := s.ReadAll(ctx)
	if err != nil {
		return 0
	}
	return len(records)
}
