// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	repository "github.com/ghighi/quoteboard/internal/adapters/repository"
	"github.com/ghighi/quoteboard/internal/domain/model"
	"github.com/ghighi/quoteboard/internal/domain/odds"
	"github.com/ghighi/quoteboard/internal/domain/types"
	"github.com/ghighi/quoteboard/pkg/logger"
	"github.com/ghighi/quoteboard/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultMaxHistoryLimit = 1000

	dateLayout = "2006-01-02"
)

// Service implements the API dependencies for the quote board.
type Service struct {
	mu sync.RWMutex

	// Core components
	store repository.Store

	// Configuration
	maxHistoryLimit int
	now             func() time.Time

	// State
	started   bool
	submitted int64
	rejected  int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the backing store. Required before Start.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the time source used for stamping records.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMaxHistoryLimit caps the limit accepted by history queries.
func WithMaxHistoryLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxHistoryLimit = limit
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxHistoryLimit: defaultMaxHistoryLimit,
		now:             time.Now,
		logger:          nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start validates the wiring and marks the service ready. The store is
// opened (and its header verified) by the caller before it gets here;
// submission handling itself is synchronous, so there is nothing to
// spin up.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.store == nil {
		return ErrNoStore
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.started = true
	s.logger.Info(ctx, "quote service started",
		logger.Int("maxHistoryLimit", s.maxHistoryLimit),
	)
	return nil
}

// Stop marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "quote service stopped")
}

// SubmitQuote stamps, validates and appends one quote record, then
// returns the stored shape. Append failures are returned to the caller
// untouched so the transport layer can surface them; nothing is retried.
func (s *Service) SubmitQuote(ctx context.Context, sub types.Submission) (types.Quote, error) {
	rec, err := s.buildRecord(sub)
	if err != nil {
		s.countRejection()
		metrics.RecordSubmissionError("validation")
		return types.Quote{}, err
	}

	if err := s.store.Append(ctx, rec); err != nil {
		s.countRejection()
		metrics.RecordSubmissionError("store")
		s.logger.Error(ctx, "append failed",
			logger.String("player", rec.Player),
			logger.String("event", rec.Event),
			logger.Error(err),
		)
		return types.Quote{}, err
	}

	s.countSubmission()
	metrics.RecordQuoteSubmitted()
	s.logger.Info(ctx, "quote stored",
		logger.String("player", rec.Player),
		logger.String("event", rec.Event),
		logger.Float64("impliedProbability", rec.ImpliedProbability),
	)
	return toQuote(rec), nil
}

// buildRecord turns a submission into a complete record.
func (s *Service) buildRecord(sub types.Submission) (model.Record, error) {
	player := strings.TrimSpace(sub.Player)
	event := strings.TrimSpace(sub.Event)
	if player == "" {
		return model.Record{}, fmt.Errorf("%w: player must not be empty", ErrValidation)
	}
	if event == "" {
		return model.Record{}, fmt.Errorf("%w: event must not be empty", ErrValidation)
	}

	p := sub.ImpliedProbability
	if sub.DecimalOdds != 0 {
		derived, err := odds.ImpliedProbability(sub.DecimalOdds)
		if err != nil {
			return model.Record{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		p = derived
	}
	if err := odds.ValidateProbability(p); err != nil {
		return model.Record{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	now := s.now().UTC()
	date := strings.TrimSpace(sub.Date)
	if date == "" {
		// The event date defaults to today, like the submission form.
		date = now.Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return model.Record{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}

	return model.Record{
		TimestampUTC:       now.Format(time.RFC3339),
		Date:               date,
		Player:             player,
		Event:              event,
		Quote:              strings.TrimSpace(sub.Quote),
		ImpliedProbability: p,
	}, nil
}

// History returns every stored quote in insertion order, capped at
// limit when limit is positive.
func (s *Service) History(ctx context.Context, limit int) ([]types.Quote, error) {
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	metrics.UpdateHistorySize(len(records))

	if limit > 0 && limit < len(records) {
		records = records[len(records)-limit:]
	}
	return toQuotes(records), nil
}

// EventHistory returns the quotes for one event, insertion order.
func (s *Service) EventHistory(ctx context.Context, event string) ([]types.Quote, error) {
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	metrics.UpdateHistorySize(len(records))

	filtered := make([]model.Record, 0, len(records))
	for _, rec := range records {
		if rec.Event == event {
			filtered = append(filtered, rec)
		}
	}
	return toQuotes(filtered), nil
}

// LatestByPlayer returns each player's most recent quote for an event,
// ordered by event date descending then player name.
func (s *Service) LatestByPlayer(ctx context.Context, event string) ([]types.Quote, error) {
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	latest := make(map[string]model.Record)
	for _, rec := range records {
		if rec.Event != event || rec.Player == "" {
			continue
		}
		prev, ok := latest[rec.Player]
		if !ok || !newerThan(prev, rec) {
			latest[rec.Player] = rec
		}
	}

	out := make([]model.Record, 0, len(latest))
	for _, rec := range latest {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Player < out[j].Player
	})
	return toQuotes(out), nil
}

// newerThan reports whether a is strictly newer than b by submission
// timestamp. Unparsable timestamps lose, which keeps insertion order as
// the tiebreak.
func newerThan(a, b model.Record) bool {
	ta, errA := time.Parse(time.RFC3339, a.TimestampUTC)
	if errA != nil {
		return false
	}
	tb, errB := time.Parse(time.RFC3339, b.TimestampUTC)
	if errB != nil {
		return true
	}
	return ta.After(tb)
}

// Events returns the sorted distinct non-blank event names.
func (s *Service) Events(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, func(rec model.Record) string { return rec.Event })
}

// Players returns the sorted distinct non-blank player names.
func (s *Service) Players(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, func(rec model.Record) string { return rec.Player })
}

func (s *Service) distinct(ctx context.Context, field func(model.Record) string) ([]string, error) {
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, rec := range records {
		v := strings.TrimSpace(field(rec))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

// MaxHistoryLimit exposes the configured history cap to the API layer.
func (s *Service) MaxHistoryLimit() int {
	return s.maxHistoryLimit
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":   s.started,
		"submitted": s.submitted,
		"rejected":  s.rejected,
	}

	if s.started {
		count := s.store.Count(context.Background())
		stats["historySize"] = count
		metrics.UpdateHistorySize(count)
	}

	return stats
}

func (s *Service) countSubmission() {
	s.mu.Lock()
	s.submitted++
	s.mu.Unlock()
}

func (s *Service) countRejection() {
	s.mu.Lock()
	s.rejected++
	s.mu.Unlock()
}

func toQuote(rec model.Record) types.Quote {
	return types.Quote{
		TimestampUTC:       rec.TimestampUTC,
		Date:               rec.Date,
		Player:             rec.Player,
		Event:              rec.Event,
		Quote:              rec.Quote,
		ImpliedProbability: rec.ImpliedProbability,
	}
}

func toQuotes(records []model.Record) []types.Quote {
	quotes := make([]types.Quote, len(records))
	for i, rec := range records {
		quotes[i] = toQuote(rec)
	}
	return quotes
}
