// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	repository "github.com/ghighi/quoteboard/internal/adapters/repository"
	"github.com/ghighi/quoteboard/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// SubmitQuote stamps and persists one quote, returning the stored shape.
	SubmitQuote(ctx context.Context, sub Submission) (Quote, error)

	// Read operations expose the quote history.
	History(ctx context.Context, limit int) ([]Quote, error)
	EventHistory(ctx context.Context, event string) ([]Quote, error)
	LatestByPlayer(ctx context.Context, event string) ([]Quote, error)
	Events(ctx context.Context) ([]string, error)
	Players(ctx context.Context) ([]string, error)
}

// Quote mirrors the read shape returned by history queries.
type Quote = types.Quote

// Submission mirrors the write shape handed to the service.
type Submission = types.Submission

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	quotesHandler  *QuotesHandler
	eventsHandler  *EventsHandler
	playersHandler *PlayersHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		quotesHandler:  NewQuotesHandler(deps, maxLimit),
		eventsHandler:  NewEventsHandler(deps),
		playersHandler: NewPlayersHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/quotes", RequestIDMiddleware(MetricsMiddleware(s.quotesHandler.HandleQuotes, "quotes")))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandleGetEvents, "events"))
	mux.HandleFunc("/players", MetricsMiddleware(s.playersHandler.HandleGetPlayers, "players"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isUnavailable reports whether the backing store could not be reached.
func isUnavailable(err error) bool {
	return errors.Is(err, repository.ErrUnavailable)
}

// isValidation allows the API to translate upstream validation errors
// to 400. Best-effort unwrap-free check to avoid tight coupling with
// the service package.
func isValidation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "invalid submission")
}
