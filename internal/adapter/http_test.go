// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
	"github.com/MKhiriev/go-ledger-sync/models"
)

const testHashKey = "testhashkey"

// newTestAPI создаёт httpRemoteAPI, направленный на тестовый сервер
func newTestAPI(t *testing.T, serverURL string) *httpRemoteAPI {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 2 * time.Second, Token: "tok"}
	appCfg := config.ClientApp{HashKey: testHashKey}

	api, err := NewHTTPRemoteAPI(adapterCfg, appCfg, logger.Nop())
	require.NoError(t, err)

	h := api.(*httpRemoteAPI)
	h.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }
	return h
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── constructor ──────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"localhost:8080", "http://localhost:8080", false},
		{"https://ledger.example/", "https://ledger.example", false},
		{"  http://127.0.0.1:9000  ", "http://127.0.0.1:9000", false},
		{"", "", true},
		{"http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPRemoteAPI_InvalidAddress(t *testing.T) {
	_, err := NewHTTPRemoteAPI(config.ClientAdapter{}, config.ClientApp{}, logger.Nop())
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

// ── Ping ─────────────────────────────────────────────────────────────────────

func TestPing_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.NoError(t, newTestAPI(t, srv.URL).Ping(context.Background()))
}

func TestPing_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := newTestAPI(t, url).Ping(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, IsPermanent(err))
}

// ── FetchRecords ─────────────────────────────────────────────────────────────

func TestFetchRecords_Customers(t *testing.T) {
	updated := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/scopes/shop-1/customers", r.URL.Path)
		writeJSON(t, w, http.StatusOK, []models.Customer{
			{ID: "c-1", Name: "Karim", TotalDue: 500, UpdatedAt: updated},
		})
	}))
	defer srv.Close()

	recs, err := newTestAPI(t, srv.URL).FetchRecords(context.Background(), "shop-1", models.EntityCustomer)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.Equal(t, "c-1", recs[0].ID)
	assert.Equal(t, "shop-1", recs[0].Scope)
	assert.Equal(t, models.SyncStatusSynced, recs[0].SyncStatus)
	assert.True(t, updated.Equal(recs[0].UpdatedAt))

	typed, err := models.DecodeRecord[models.Customer](recs[0])
	require.NoError(t, err)
	assert.Equal(t, int64(500), typed.Value.TotalDue)
}

func TestFetchRecords_Entries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/scopes/shop-1/entries", r.URL.Path)
		writeJSON(t, w, http.StatusOK, []models.LedgerEntry{
			{ID: "e-1", Kind: models.EntryKindCash, Amount: 100},
			{ID: "e-2", Kind: models.EntryKindExpense, Amount: 40},
		})
	}))
	defer srv.Close()

	recs, err := newTestAPI(t, srv.URL).FetchRecords(context.Background(), "shop-1", models.EntityLedgerEntry)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Equal(t, models.EntityLedgerEntry, recs[1].EntityType)
}

func TestFetchRecords_UnknownEntity(t *testing.T) {
	api := newTestAPI(t, "http://localhost:1")
	_, err := api.FetchRecords(context.Background(), "shop-1", "invoice")
	assert.ErrorIs(t, err, ErrUnknownEntity)
}

func TestFetchRecords_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	_, err := newTestAPI(t, srv.URL).FetchRecords(context.Background(), "shop-1", models.EntityCustomer)
	assert.ErrorIs(t, err, ErrDecodeResponse)
}

// ── Submit ───────────────────────────────────────────────────────────────────

func TestSubmit_SignedAndAcked(t *testing.T) {
	sub := models.Submission{
		Scope:      "shop-1",
		EntityType: models.EntityCustomer,
		Operation:  models.OperationCreate,
		LocalID:    "c-1",
		MutationID: "m-1",
		Payload:    json.RawMessage(`{"id":"c-1","name":"Karim"}`),
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/scopes/shop-1/submissions", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.True(t, utils.NewSigner(testHashKey).Verify(body, r.Header.Get(utils.HashHeader)))

		var got models.Submission
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "m-1", got.MutationID)

		writeJSON(t, w, http.StatusCreated, models.SubmitAck{LocalID: "c-1", MutationID: "m-1", ServerID: "c-1"})
	}))
	defer srv.Close()

	ack, err := newTestAPI(t, srv.URL).Submit(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, "c-1", ack.ServerID)
	assert.Equal(t, "m-1", ack.MutationID)
}

func TestSubmit_UnsignedWithoutKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get(utils.HashHeader))
		writeJSON(t, w, http.StatusOK, models.SubmitAck{LocalID: "c-1"})
	}))
	defer srv.Close()

	api, err := NewHTTPRemoteAPI(config.ClientAdapter{HTTPAddress: srv.URL, RequestTimeout: time.Second}, config.ClientApp{}, logger.Nop())
	require.NoError(t, err)

	_, err = api.Submit(context.Background(), models.Submission{Scope: "shop-1"})
	assert.NoError(t, err)
}

func TestSubmit_StatusMapping(t *testing.T) {
	tests := []struct {
		status    int
		want      error
		permanent bool
	}{
		{http.StatusBadRequest, ErrRejected, true},
		{http.StatusConflict, ErrRejected, true},
		{http.StatusUnprocessableEntity, ErrRejected, true},
		{http.StatusUnauthorized, ErrUnauthorized, false},
		{http.StatusForbidden, ErrForbidden, false},
		{http.StatusNotFound, ErrNotFound, true},
		{http.StatusGone, ErrRejected, true},
		{http.StatusRequestTimeout, ErrUnavailable, false},
		{http.StatusTooManyRequests, ErrUnavailable, false},
		{http.StatusInternalServerError, ErrUnavailable, false},
		{http.StatusServiceUnavailable, ErrUnavailable, false},
		{http.StatusTeapot, ErrRejected, true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				utils.WriteError(w, "nope", tt.status)
			}))
			defer srv.Close()

			_, err := newTestAPI(t, srv.URL).Submit(context.Background(), models.Submission{Scope: "shop-1"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.permanent, IsPermanent(err))
			assert.Contains(t, err.Error(), "nope")
		})
	}
}

func TestSubmit_MissingRecordIsRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, "customer c1 not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestAPI(t, srv.URL).Submit(context.Background(), models.Submission{Scope: "shop-1"})
	assert.ErrorIs(t, err, ErrRejected)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, IsPermanent(err))
}

func TestSubmit_UnknownRouteIsNotPermanent(t *testing.T) {
	// chi отвечает обычным текстом, значит адрес сервера неверный
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := newTestAPI(t, srv.URL).Submit(context.Background(), models.Submission{Scope: "shop-1"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, IsPermanent(err))
}

func TestSubmit_RedirectIsUnexpected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotModified)
	}))
	defer srv.Close()

	_, err := newTestAPI(t, srv.URL).Submit(context.Background(), models.Submission{Scope: "shop-1"})
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.False(t, IsPermanent(err))
}

// ── reports ──────────────────────────────────────────────────────────────────

func TestFetchEntriesPage_Params(t *testing.T) {
	cursor := &models.Cursor{At: time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC), ID: "e-5"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/scopes/shop-1/reports/entries", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "today", q.Get(QueryRange))
		assert.Equal(t, "2026-03-15T00:00:00Z", q.Get(QueryFrom))
		assert.Equal(t, "2026-03-16T00:00:00Z", q.Get(QueryTo))
		assert.Equal(t, cursor.Encode(), q.Get(QueryCursor))
		assert.Equal(t, "2", q.Get(QueryLimit))

		next := models.Cursor{At: cursor.At.Add(time.Minute), ID: "e-7"}
		writeJSON(t, w, http.StatusOK, models.Page[models.LedgerEntry]{
			Rows:       []models.LedgerEntry{{ID: "e-6"}, {ID: "e-7"}},
			HasMore:    true,
			NextCursor: &next,
		})
	}))
	defer srv.Close()

	page, err := newTestAPI(t, srv.URL).FetchEntriesPage(context.Background(), "shop-1", models.Preset(models.RangeToday), cursor, 2)
	require.NoError(t, err)
	assert.Len(t, page.Rows, 2)
	assert.True(t, page.HasMore)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, "e-7", page.NextCursor.ID)
}

func TestFetchEntriesPage_FirstPageHasNoCursor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has(QueryCursor))
		writeJSON(t, w, http.StatusOK, models.Page[models.LedgerEntry]{})
	}))
	defer srv.Close()

	_, err := newTestAPI(t, srv.URL).FetchEntriesPage(context.Background(), "shop-1", models.Preset(models.RangeThisMonth), nil, 0)
	assert.NoError(t, err)
}

func TestFetchEntriesPage_InvalidRange(t *testing.T) {
	api := newTestAPI(t, "http://localhost:1")
	_, err := api.FetchEntriesPage(context.Background(), "shop-1", models.DateRange{From: "x", To: "y"}, nil, 10)
	assert.ErrorIs(t, err, models.ErrInvalidDateRange)
}

func TestFetchSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/scopes/shop-1/reports/summary", r.URL.Path)
		assert.Equal(t, "2026-03-01..2026-03-07", r.URL.Query().Get(QueryRange))
		writeJSON(t, w, http.StatusOK, models.Summary{Sales: 900, Payments: 400, Count: 3})
	}))
	defer srv.Close()

	r := models.DateRange{From: "2026-03-01", To: "2026-03-07"}
	summary, err := newTestAPI(t, srv.URL).FetchSummary(context.Background(), "shop-1", r)
	require.NoError(t, err)
	assert.Equal(t, int64(900), summary.Sales)
	assert.Equal(t, 3, summary.Count)
}

func TestFetchSummary_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestAPI(t, srv.URL).FetchSummary(ctx, "shop-1", models.Preset(models.RangeToday))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}
