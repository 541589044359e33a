// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// QuotesHandler handles quote submission and history requests.
type QuotesHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewQuotesHandler creates a new quotes handler.
func NewQuotesHandler(deps Dependencies, maxLimit int) *QuotesHandler {
	return &QuotesHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleQuotes dispatches /quotes by method: POST submits a new quote,
// GET reads the history back.
func (h *QuotesHandler) HandleQuotes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handlePost(w, r)
	case http.MethodGet:
		h.handleGet(w, r)
	default:
		http.NotFound(w, r)
	}
}

// quoteRequest mirrors the JSON schema for POST /quotes. The implied
// probability is a pointer so that an explicit 0 survives decoding.
// When decimal_odds is set the probability is derived from it instead.
type quoteRequest struct {
	Date               string   `json:"date"`
	Player             string   `json:"player"`
	Event              string   `json:"event"`
	Quote              string   `json:"quote"`
	ImpliedProbability *float64 `json:"implied_probability"`
	DecimalOdds        float64  `json:"decimal_odds"`
}

func (q quoteRequest) validate() error {
	switch {
	case strings.TrimSpace(q.Player) == "":
		return errors.New("missing player")
	case strings.TrimSpace(q.Event) == "":
		return errors.New("missing event")
	case q.ImpliedProbability == nil && q.DecimalOdds == 0:
		return errors.New("missing implied_probability or decimal_odds")
	}
	if q.ImpliedProbability != nil && q.DecimalOdds == 0 {
		if p := *q.ImpliedProbability; p < 0 || p > 1 {
			return errors.New("implied_probability must be between 0 and 1")
		}
	}
	if q.Date != "" {
		if _, err := time.Parse("2006-01-02", q.Date); err != nil {
			return errors.New("invalid date; must be YYYY-MM-DD")
		}
	}
	return nil
}

func (q quoteRequest) submission() Submission {
	sub := Submission{
		Date:        q.Date,
		Player:      q.Player,
		Event:       q.Event,
		Quote:       q.Quote,
		DecimalOdds: q.DecimalOdds,
	}
	if q.ImpliedProbability != nil {
		sub.ImpliedProbability = *q.ImpliedProbability
	}
	return sub
}

// handlePost handles POST /quotes requests.
func (h *QuotesHandler) handlePost(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_quote"
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	quote, err := h.deps.SubmitQuote(r.Context(), req.submission())
	if err != nil {
		h.writeSubmitError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, quote)
}

// writeSubmitError surfaces submission failures to the caller: store
// unavailability must stay visible so the page can show it, and nothing
// is retried on the server side.
func (h *QuotesHandler) writeSubmitError(w http.ResponseWriter, op string, err error) {
	switch {
	case isUnavailable(err):
		writeError(w, http.StatusServiceUnavailable, "backend_unavailable", WrapKind(op, ErrUnavailable, err))
	case isValidation(err):
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// handleGet handles GET /quotes[?event=...&latest=1&limit=N] requests.
func (h *QuotesHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_quotes"
	q := r.URL.Query()

	limit := 0
	if limitStr := q.Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}

	event := q.Get("event")
	latest := q.Get("latest") == "1" || strings.EqualFold(q.Get("latest"), "true")
	if latest && event == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	var (
		quotes []Quote
		err    error
	)
	switch {
	case latest:
		quotes, err = h.deps.LatestByPlayer(r.Context(), event)
	case event != "":
		quotes, err = h.deps.EventHistory(r.Context(), event)
	default:
		quotes, err = h.deps.History(r.Context(), limit)
	}
	if err != nil {
		if isUnavailable(err) {
			writeError(w, http.StatusServiceUnavailable, "backend_unavailable", WrapKind(op, ErrUnavailable, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}
