package service

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/adapter"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/pagination"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/models"
)

type reportService struct {
	store   store.LocalStore
	remote  adapter.RemoteAPI
	monitor Connectivity
	now     func() time.Time

	logger *logger.Logger
}

// NewReportService returns a report service reading through remote while
// online and from localStore otherwise.
func NewReportService(localStore store.LocalStore, remote adapter.RemoteAPI, monitor Connectivity, log *logger.Logger) ReportService {
	return &reportService{
		store:   localStore,
		remote:  remote,
		monitor: monitor,
		now:     time.Now,
		logger:  log,
	}
}

// EntriesPage implements [ReportService].
func (s *reportService) EntriesPage(ctx context.Context, scope string, r models.DateRange, cursor *models.Cursor, limit int) (models.Page[models.LedgerEntry], error) {
	if _, _, err := r.Resolve(s.now()); err != nil {
		return models.Page[models.LedgerEntry]{}, err
	}

	if s.monitor.IsOnline() {
		page, err := s.remote.FetchEntriesPage(ctx, scope, r, cursor, limit)
		if !s.fallBack(err) {
			return page, err
		}
		s.logger.Warn().Err(err).Str("func", "*reportService.EntriesPage").Str("scope", scope).
			Msg("server unavailable, paging local mirror")
	}

	entries, err := s.localEntries(ctx, scope, r)
	if err != nil {
		return models.Page[models.LedgerEntry]{}, err
	}
	return pagination.Slice(entries, models.LedgerEntry.Cursor, cursor, limit), nil
}

// Summary implements [ReportService].
func (s *reportService) Summary(ctx context.Context, scope string, r models.DateRange) (models.Summary, error) {
	if _, _, err := r.Resolve(s.now()); err != nil {
		return models.Summary{}, err
	}

	if s.monitor.IsOnline() {
		summary, err := s.remote.FetchSummary(ctx, scope, r)
		if !s.fallBack(err) {
			return summary, err
		}
		s.logger.Warn().Err(err).Str("func", "*reportService.Summary").Str("scope", scope).
			Msg("server unavailable, summarizing local mirror")
	}

	entries, err := s.localEntries(ctx, scope, r)
	if err != nil {
		return models.Summary{}, err
	}

	summary := models.Summary{Range: r}
	for _, e := range entries {
		summary.Add(e)
	}
	return summary, nil
}

// Customers implements [ReportService]. Customers are always read from the
// mirror so that unsynced ones show up with their status.
func (s *reportService) Customers(ctx context.Context, scope string) ([]models.Record[models.Customer], error) {
	recs, err := s.store.ReadAll(ctx, scope, store.TableCustomers)
	if err != nil {
		return nil, err
	}
	return models.DecodeRecords[models.Customer](recs)
}

func (s *reportService) localEntries(ctx context.Context, scope string, r models.DateRange) ([]models.LedgerEntry, error) {
	recs, err := s.store.ReadAll(ctx, scope, store.TableLedgerEntries)
	if err != nil {
		return nil, err
	}
	typed, err := models.DecodeRecords[models.LedgerEntry](recs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	entries := make([]models.LedgerEntry, 0, len(typed))
	for _, rec := range typed {
		if r.Contains(rec.Value.CreatedAt, now) {
			entries = append(entries, rec.Value)
		}
	}
	return entries, nil
}

// fallBack reports whether a remote failure should be answered locally.
func (s *reportService) fallBack(err error) bool {
	return err != nil && errors.Is(err, adapter.ErrUnavailable)
}
