// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// EventsDependencies defines the interface for event list lookups.
type EventsDependencies interface {
	Events(ctx context.Context) ([]string, error)
}

// EventsHandler handles event list requests.
type EventsHandler struct {
	deps EventsDependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps EventsDependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandleGetEvents handles GET /events requests. The form uses this list
// to offer known events before a player types a new one.
func (h *EventsHandler) HandleGetEvents(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_events"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	events, err := h.deps.Events(r.Context())
	if err != nil {
		if isUnavailable(err) {
			writeError(w, http.StatusServiceUnavailable, "backend_unavailable", WrapKind(op, ErrUnavailable, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// PlayersDependencies defines the interface for player list lookups.
type PlayersDependencies interface {
	Players(ctx context.Context) ([]string, error)
}

// PlayersHandler handles player list requests.
type PlayersHandler struct {
	deps PlayersDependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayersDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// HandleGetPlayers handles GET /players requests.
func (h *PlayersHandler) HandleGetPlayers(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_players"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	players, err := h.deps.Players(r.Context())
	if err != nil {
		if isUnavailable(err) {
			writeError(w, http.StatusServiceUnavailable, "backend_unavailable", WrapKind(op, ErrUnavailable, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, players)
}
