package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-ledger-sync/internal/adapter"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/mock"
	"github.com/MKhiriev/go-ledger-sync/models"
)

func newTestReports(t *testing.T, h *harness, remote adapter.RemoteAPI) *reportService {
	t.Helper()
	return NewReportService(h.store, remote, h.monitor, logger.Nop()).(*reportService)
}

func seedEntries(t *testing.T, h *harness, n int) []models.LedgerEntry {
	t.Helper()
	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond)

	var out []models.LedgerEntry
	for i := range n {
		e, err := h.write.AddEntry(context.Background(), "shop-1", models.LedgerEntry{
			ID:        fmt.Sprintf("e%02d", i),
			Kind:      models.EntryKindCash,
			Amount:    int64(10 * (i + 1)),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
		out = append(out, e)
	}
	return out
}

func TestReportService_EntriesPage_OfflineUsesMirror(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, false)
	seeded := seedEntries(t, h, 5)
	svc := newTestReports(t, h, mock.NewMockRemoteAPI(ctrl))
	ctx := context.Background()
	week := models.Preset(models.RangeLast7Days)

	first, err := svc.EntriesPage(ctx, "shop-1", week, nil, 2)
	require.NoError(t, err)
	require.Len(t, first.Rows, 2)
	assert.True(t, first.HasMore)
	assert.Equal(t, seeded[0].ID, first.Rows[0].ID)

	var all []models.LedgerEntry
	all = append(all, first.Rows...)
	for page := first; page.HasMore; {
		page, err = svc.EntriesPage(ctx, "shop-1", week, page.NextCursor, 2)
		require.NoError(t, err)
		all = append(all, page.Rows...)
	}
	assert.Len(t, all, 5)
}

func TestReportService_Summary_FallsBackWhenServerUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, false)
	seedEntries(t, h, 3)
	h.monitor.SetOnline(true)

	remote := mock.NewMockRemoteAPI(ctrl)
	svc := newTestReports(t, h, remote)
	week := models.Preset(models.RangeLast7Days)

	remote.EXPECT().FetchSummary(gomock.Any(), "shop-1", week).
		Return(models.Summary{}, fmt.Errorf("%w: 503", adapter.ErrUnavailable))

	got, err := svc.Summary(context.Background(), "shop-1", week)
	require.NoError(t, err)
	assert.Equal(t, int64(60), got.Cash)
	assert.Equal(t, 3, got.Count)
}

func TestReportService_Summary_OnlineUsesServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, true)
	remote := mock.NewMockRemoteAPI(ctrl)
	svc := newTestReports(t, h, remote)
	today := models.Preset(models.RangeToday)

	want := models.Summary{Range: today, Sales: 1000, Count: 4}
	remote.EXPECT().FetchSummary(gomock.Any(), "shop-1", today).Return(want, nil)

	got, err := svc.Summary(context.Background(), "shop-1", today)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReportService_PermanentErrorIsReturned(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, true)
	remote := mock.NewMockRemoteAPI(ctrl)
	svc := newTestReports(t, h, remote)
	today := models.Preset(models.RangeToday)

	remote.EXPECT().FetchEntriesPage(gomock.Any(), "shop-1", today, nil, 10).
		Return(models.Page[models.LedgerEntry]{}, adapter.ErrForbidden)

	_, err := svc.EntriesPage(context.Background(), "shop-1", today, nil, 10)
	require.ErrorIs(t, err, adapter.ErrForbidden)
}

func TestReportService_InvalidRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, true)
	svc := newTestReports(t, h, mock.NewMockRemoteAPI(ctrl))
	bad := models.DateRange{From: "2026-03-10", To: "2026-03-01"}

	_, err := svc.Summary(context.Background(), "shop-1", bad)
	require.ErrorIs(t, err, models.ErrInvalidDateRange)
}

func TestReportService_Customers_IncludesUnsynced(t *testing.T) {
	h := newHarness(t, false)
	h.putRecord(t, "shop-1", models.Customer{ID: "a", Name: "A"}, models.SyncStatusSynced)
	_, err := h.write.AddCustomer(context.Background(), "shop-1", models.Customer{ID: "b", Name: "B"})
	require.NoError(t, err)

	svc := newTestReports(t, h, h.server)
	got, err := svc.Customers(context.Background(), "shop-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	status := map[string]models.SyncStatus{}
	for _, c := range got {
		status[c.Value.ID] = c.SyncStatus
	}
	assert.Equal(t, map[string]models.SyncStatus{"a": models.SyncStatusSynced, "b": models.SyncStatusNew}, status)
}
