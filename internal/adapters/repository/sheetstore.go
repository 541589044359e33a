package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/ghighi/quoteboard/internal/domain/model"
	"github.com/ghighi/quoteboard/pkg/metrics"
)

// Default Sheets store configuration constants.
const (
	defaultWorksheet = "quotes"

	sheetBackendLabel = "sheets"
)

// valuesClient abstracts the spreadsheet-values calls used by the
// SheetStore, so the store logic is testable without the network.
type valuesClient interface {
	get(ctx context.Context, readRange string) ([][]interface{}, error)
	append(ctx context.Context, writeRange string, row []interface{}) error
	update(ctx context.Context, writeRange string, row []interface{}) error
}

// SheetStore persists quote records to a Google Sheets worksheet using
// a service-account credential.
type SheetStore struct {
	docID           string
	worksheet       string
	credentialsJSON []byte
	credentialsFile string
	values          valuesClient
}

// NewSheetStore opens the worksheet inside the spreadsheet docID. An
// entirely empty worksheet gets the canonical header written; a
// non-matching header yields ErrSchemaMismatch. Both checks happen once
// here at startup.
func NewSheetStore(ctx context.Context, docID string, opts ...SheetOption) (*SheetStore, error) {
	s := &SheetStore{
		docID:     docID,
		worksheet: defaultWorksheet,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	if s.values == nil {
		v, err := newGoogleValues(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		s.values = v
	}

	if err := s.ensureHeader(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// ensureHeader verifies the worksheet header row, writing it first when
// the worksheet is empty.
func (s *SheetStore) ensureHeader(ctx context.Context) error {
	rows, err := s.values.get(ctx, s.rangeRef("1:1"))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		header := make([]interface{}, 0, len(model.Columns()))
		for _, c := range model.Columns() {
			header = append(header, c)
		}
		if err := s.values.update(ctx, s.rangeRef("A1"), header); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil
	}

	header := make([]string, 0, len(rows[0]))
	for _, cell := range rows[0] {
		header = append(header, cellString(cell))
	}
	if !model.HeaderMatches(header) {
		return fmt.Errorf("%w: got %v, want %v", ErrSchemaMismatch, header, model.Columns())
	}
	return nil
}

// Append writes one record below the last row of the worksheet. The
// Sheets API handles placement; concurrent writers are not serialized
// beyond that.
func (s *SheetStore) Append(ctx context.Context, rec model.Record) error {
	start := time.Now()

	row := make([]interface{}, 0, len(model.Columns()))
	for _, cell := range rec.Row() {
		row = append(row, cell)
	}
	if err := s.values.append(ctx, s.rangeRef("A:F"), row); err != nil {
		metrics.RecordStoreError(sheetBackendLabel, "append")
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	metrics.RecordStoreAppendLatency(sheetBackendLabel, float64(time.Since(start).Milliseconds()))
	return nil
}

// ReadAll fetches the whole worksheet and returns the records in row
// order.
func (s *SheetStore) ReadAll(ctx context.Context) ([]model.Record, error) {
	start := time.Now()

	rows, err := s.values.get(ctx, s.rangeRef("A:F"))
	if err != nil {
		metrics.RecordStoreError(sheetBackendLabel, "read")
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: header row missing", ErrSchemaMismatch)
	}

	header := make([]string, 0, len(rows[0]))
	for _, cell := range rows[0] {
		header = append(header, cellString(cell))
	}
	if !model.HeaderMatches(header) {
		return nil, fmt.Errorf("%w: got %v, want %v", ErrSchemaMismatch, header, model.Columns())
	}

	records := make([]model.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		cells := make([]string, len(model.Columns()))
		for j := range cells {
			if j < len(row) {
				cells[j] = cellString(row[j])
			}
		}
		rec, err := model.FromRow(cells)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}

	metrics.RecordStoreReadLatency(sheetBackendLabel, float64(time.Since(start).Milliseconds()))
	return records, nil
}

// Count returns the number of stored records, or 0 when the worksheet
// cannot be read.
func (s *SheetStore) Count(ctx context.Context) int {
	records, err := s.ReadAll(ctx)
	if err != nil {
		return 0
	}
	return len(records)
}

// rangeRef builds an A1 reference scoped to the store's worksheet.
// Worksheet names are quoted so names with spaces stay valid.
func (s *SheetStore) rangeRef(cells string) string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(s.worksheet, "'", "''"), cells)
}

// cellString normalizes a Sheets cell value to its string form. With
// unformatted rendering, numeric cells decode as float64.
func cellString(v interface{}) string {
	switch c := v.(type) {
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(c)
	case nil:
		return ""
	default:
		return fmt.Sprint(c)
	}
}

// googleValues implements valuesClient against the real Sheets API.
type googleValues struct {
	svc   *sheets.Service
	docID string
}

func newGoogleValues(ctx context.Context, s *SheetStore) (*googleValues, error) {
	clientOpts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	switch {
	case len(s.credentialsJSON) > 0:
		clientOpts = append(clientOpts, option.WithCredentialsJSON(s.credentialsJSON))
	case s.credentialsFile != "":
		clientOpts = append(clientOpts, option.WithCredentialsFile(s.credentialsFile))
	}

	svc, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, err
	}
	return &googleValues{svc: svc, docID: s.docID}, nil
}

func (g *googleValues) get(ctx context.Context, readRange string) ([][]interface{}, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.docID, readRange).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (g *googleValues) append(ctx context.Context, writeRange string, row []interface{}) error {
	body := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := g.svc.Spreadsheets.Values.Append(g.docID, writeRange, body).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	return err
}

func (g *googleValues) update(ctx context.Context, writeRange string, row []interface{}) error {
	body := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := g.svc.Spreadsheets.Values.Update(g.docID, writeRange, body).
		ValueInputOption("RAW").
		Context(ctx).Do()
	return err
}
