package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
	"github.com/MKhiriev/go-ledger-sync/models"
)

// Query parameters of the report endpoints.
const (
	QueryRange  = "range"
	QueryFrom   = "from"
	QueryTo     = "to"
	QueryCursor = "cursor"
	QueryLimit  = "limit"
)

type httpRemoteAPI struct {
	client *utils.HTTPClient
	signer *utils.Signer
	token  string
	now    func() time.Time

	logger *logger.Logger
}

// NewHTTPRemoteAPI constructs the HTTP/JSON implementation of [RemoteAPI].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and
// request timeout. Submission bodies are signed when appCfg.HashKey is set.
func NewHTTPRemoteAPI(adapterCfg config.ClientAdapter, appCfg config.ClientApp, log *logger.Logger) (RemoteAPI, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return &httpRemoteAPI{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		signer: utils.NewSigner(appCfg.HashKey),
		token:  strings.TrimSpace(adapterCfg.Token),
		now:    time.Now,
		logger: log,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Ping implements [RemoteAPI] with GET /api/health.
func (h *httpRemoteAPI) Ping(ctx context.Context) error {
	resp, err := h.request(ctx).Get("/api/health")
	if err != nil {
		return transportError("ping", err)
	}
	return mapHTTPError(resp)
}

// FetchRecords implements [RemoteAPI]. Customers come from
// GET /api/scopes/{scope}/customers and entries from
// GET /api/scopes/{scope}/entries.
func (h *httpRemoteAPI) FetchRecords(ctx context.Context, scope string, entityType models.EntityType) ([]models.LocalRecord, error) {
	switch entityType {
	case models.EntityCustomer:
		var customers []models.Customer
		if err := h.getJSON(ctx, scopePath(scope, "customers"), nil, &customers); err != nil {
			return nil, err
		}
		return toRecords(scope, entityType, customers, func(c models.Customer) (string, time.Time) {
			return c.ID, c.UpdatedAt
		})
	case models.EntityLedgerEntry:
		var entries []models.LedgerEntry
		if err := h.getJSON(ctx, scopePath(scope, "entries"), nil, &entries); err != nil {
			return nil, err
		}
		return toRecords(scope, entityType, entries, func(e models.LedgerEntry) (string, time.Time) {
			return e.ID, e.CreatedAt
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, entityType)
	}
}

// Submit implements [RemoteAPI] with POST /api/scopes/{scope}/submissions.
// The body is signed with the HashSHA256 header when a hash key is set.
func (h *httpRemoteAPI) Submit(ctx context.Context, sub models.Submission) (models.SubmitAck, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return models.SubmitAck{}, fmt.Errorf("encode submission: %w", err)
	}

	req := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if h.signer.Enabled() {
		req.SetHeader(utils.HashHeader, h.signer.SignHex(body))
	}

	resp, err := req.Post(scopePath(sub.Scope, "submissions"))
	if err != nil {
		return models.SubmitAck{}, transportError("submit", err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Str("func", "*httpRemoteAPI.Submit").
			Str("mutation_id", sub.MutationID).
			Err(err).
			Msg("submission not accepted")
		return models.SubmitAck{}, err
	}

	var ack models.SubmitAck
	if err = json.Unmarshal(resp.Body(), &ack); err != nil {
		return models.SubmitAck{}, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}
	return ack, nil
}

// FetchEntriesPage implements [RemoteAPI] with
// GET /api/scopes/{scope}/reports/entries.
func (h *httpRemoteAPI) FetchEntriesPage(ctx context.Context, scope string, r models.DateRange, cursor *models.Cursor, limit int) (models.Page[models.LedgerEntry], error) {
	params, err := h.rangeParams(r)
	if err != nil {
		return models.Page[models.LedgerEntry]{}, err
	}
	if cursor != nil {
		params[QueryCursor] = cursor.Encode()
	}
	if limit > 0 {
		params[QueryLimit] = strconv.Itoa(limit)
	}

	var page models.Page[models.LedgerEntry]
	if err = h.getJSON(ctx, scopePath(scope, "reports/entries"), params, &page); err != nil {
		return models.Page[models.LedgerEntry]{}, err
	}
	return page, nil
}

// FetchSummary implements [RemoteAPI] with
// GET /api/scopes/{scope}/reports/summary.
func (h *httpRemoteAPI) FetchSummary(ctx context.Context, scope string, r models.DateRange) (models.Summary, error) {
	params, err := h.rangeParams(r)
	if err != nil {
		return models.Summary{}, err
	}

	var summary models.Summary
	if err = h.getJSON(ctx, scopePath(scope, "reports/summary"), params, &summary); err != nil {
		return models.Summary{}, err
	}
	return summary, nil
}

// rangeParams resolves r in the client's location, so "today" means the
// shop's today rather than the server's.
func (h *httpRemoteAPI) rangeParams(r models.DateRange) (map[string]string, error) {
	from, to, err := r.Resolve(h.now())
	if err != nil {
		return nil, err
	}
	return map[string]string{
		QueryRange: r.String(),
		QueryFrom:  from.Format(time.RFC3339),
		QueryTo:    to.Format(time.RFC3339),
	}, nil
}

func (h *httpRemoteAPI) getJSON(ctx context.Context, path string, params map[string]string, out any) error {
	resp, err := h.request(ctx).SetQueryParams(params).Get(path)
	if err != nil {
		return transportError("get "+path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}
	if err = json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}
	return nil
}

func (h *httpRemoteAPI) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.token != "" {
		req.SetAuthToken(h.token)
	}
	return req
}

func scopePath(scope, rest string) string {
	return "/api/scopes/" + url.PathEscape(scope) + "/" + rest
}

func toRecords[T any](scope string, entityType models.EntityType, rows []T, key func(T) (string, time.Time)) ([]models.LocalRecord, error) {
	recs := make([]models.LocalRecord, 0, len(rows))
	for _, row := range rows {
		id, updatedAt := key(row)
		rec, err := models.NewLocalRecord(scope, entityType, id, row, models.SyncStatusSynced, updatedAt)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
