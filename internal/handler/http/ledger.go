package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/pagination"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
	"github.com/MKhiriev/go-ledger-sync/models"
)

// Query parameters of the report endpoints.
const (
	queryRange  = "range"
	queryFrom   = "from"
	queryTo     = "to"
	queryCursor = "cursor"
	queryLimit  = "limit"
)

const maxPageLimit = 500

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	scope := chi.URLParam(r, "scope")

	customers, err := h.services.LedgerService.Customers(r.Context(), scope)
	if err != nil {
		h.fail(w, r, "*Handler.listCustomers", "error listing customers", err)
		return
	}
	if customers == nil {
		customers = []models.Customer{}
	}

	utils.WriteJSON(w, customers, http.StatusOK)
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	scope := chi.URLParam(r, "scope")

	entries, err := h.services.LedgerService.Entries(r.Context(), scope)
	if err != nil {
		h.fail(w, r, "*Handler.listEntries", "error listing entries", err)
		return
	}
	if entries == nil {
		entries = []models.LedgerEntry{}
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}

// submit applies one queued client mutation. A fresh submission answers
// 201, a replay of an applied one 200 with the original ack.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	scope := chi.URLParam(r, "scope")

	var sub models.Submission
	if err := utils.ReadJSON(w, r, &sub); err != nil {
		log.Err(err).Str("func", "*Handler.submit").Msg("Invalid JSON was passed")
		utils.WriteError(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return
	}
	if sub.Scope == "" {
		sub.Scope = scope
	}
	if sub.Scope != scope {
		log.Warn().Str("func", "*Handler.submit").Str("body_scope", sub.Scope).Msg("submission scope differs from path")
		utils.WriteError(w, "submission scope differs from path", http.StatusBadRequest)
		return
	}

	ack, err := h.services.LedgerService.Submit(r.Context(), sub)
	if err != nil {
		h.fail(w, r, "*Handler.submit", "submission not applied", err)
		return
	}

	log.Debug().Str("func", "*Handler.submit").
		Str("mutation_id", sub.MutationID).
		Bool("replayed", ack.Replayed).
		Msg("submission applied")

	status := http.StatusCreated
	if ack.Replayed {
		status = http.StatusOK
	}
	utils.WriteJSON(w, ack, status)
}

func (h *Handler) reportEntries(w http.ResponseWriter, r *http.Request) {
	scope := chi.URLParam(r, "scope")
	q := r.URL.Query()

	rng, err := parseRange(q)
	if err != nil {
		h.fail(w, r, "*Handler.reportEntries", "invalid range", err)
		return
	}
	cursor, err := models.DecodeCursor(q.Get(queryCursor))
	if err != nil {
		h.fail(w, r, "*Handler.reportEntries", "invalid cursor", err)
		return
	}
	limit, err := parseLimit(q.Get(queryLimit))
	if err != nil {
		h.fail(w, r, "*Handler.reportEntries", "invalid limit", err)
		return
	}

	page, err := h.services.LedgerService.PageEntries(r.Context(), scope, rng, cursor, limit)
	if err != nil {
		h.fail(w, r, "*Handler.reportEntries", "error paging entries", err)
		return
	}
	if page.Rows == nil {
		page.Rows = []models.LedgerEntry{}
	}

	utils.WriteJSON(w, page, http.StatusOK)
}

func (h *Handler) reportSummary(w http.ResponseWriter, r *http.Request) {
	scope := chi.URLParam(r, "scope")

	rng, err := parseRange(r.URL.Query())
	if err != nil {
		h.fail(w, r, "*Handler.reportSummary", "invalid range", err)
		return
	}

	summary, err := h.services.LedgerService.Summary(r.Context(), scope, rng)
	if err != nil {
		h.fail(w, r, "*Handler.reportSummary", "error computing summary", err)
		return
	}

	utils.WriteJSON(w, summary, http.StatusOK)
}

// fail logs err and answers with the status mapped from it.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, fn, msg string, err error) {
	status := statusFromError(err)

	event := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Str("func", fn).Int("status", status).Msg(msg)

	utils.WriteError(w, err.Error(), status)
}

// parseRange reads the range parameter, falling back to the from/to
// timestamps of a half-open interval.
func parseRange(q url.Values) (models.DateRange, error) {
	if raw := q.Get(queryRange); raw != "" {
		return models.ParseDateRange(raw)
	}

	from, err := time.Parse(time.RFC3339, q.Get(queryFrom))
	if err != nil {
		return models.DateRange{}, fmt.Errorf("%w: %w", models.ErrInvalidDateRange, err)
	}
	to, err := time.Parse(time.RFC3339, q.Get(queryTo))
	if err != nil {
		return models.DateRange{}, fmt.Errorf("%w: %w", models.ErrInvalidDateRange, err)
	}
	if !to.After(from) {
		return models.DateRange{}, fmt.Errorf("%w: empty interval", models.ErrInvalidDateRange)
	}

	return models.DateRange{
		From: from.Format(time.DateOnly),
		To:   to.Add(-time.Nanosecond).Format(time.DateOnly),
	}, nil
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return pagination.DefaultPageSize, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLimit, raw)
	}
	return min(limit, maxPageLimit), nil
}
