package cache

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-ledger-sync/internal/pagination"
	"github.com/MKhiriev/go-ledger-sync/models"
)

// ReportSource answers the ledger report queries, online or from the local
// mirror.
type ReportSource interface {
	EntriesPage(ctx context.Context, scope string, r models.DateRange, cursor *models.Cursor, limit int) (models.Page[models.LedgerEntry], error)
	Summary(ctx context.Context, scope string, r models.DateRange) (models.Summary, error)
	Customers(ctx context.Context, scope string) ([]models.Record[models.Customer], error)
}

// Reports is the typed read facade over a cache fed by a ReportSource.
type Reports struct {
	cache    *Cache
	pageSize int
}

// RegisterReports registers the summary, entries and customers resources of
// source on c. Entry pages hold pageSize rows.
func RegisterReports(c *Cache, source ReportSource, pageSize int) *Reports {
	if pageSize <= 0 {
		pageSize = pagination.DefaultPageSize
	}

	c.RegisterResource(ResourceSummary, func(key QueryKey) (Fetcher, error) {
		return func(ctx context.Context) (any, error) {
			return source.Summary(ctx, key.Scope, key.Range)
		}, nil
	})
	c.RegisterResource(ResourceEntries, func(key QueryKey) (Fetcher, error) {
		cursor, err := models.DecodeCursor(key.Cursor)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) (any, error) {
			return source.EntriesPage(ctx, key.Scope, key.Range, cursor, pageSize)
		}, nil
	})
	c.RegisterResource(ResourceCustomers, func(key QueryKey) (Fetcher, error) {
		return func(ctx context.Context) (any, error) {
			return source.Customers(ctx, key.Scope)
		}, nil
	})

	return &Reports{cache: c, pageSize: pageSize}
}

// PageSize returns the rows per entries page.
func (r *Reports) PageSize() int { return r.pageSize }

func (r *Reports) Summary(ctx context.Context, scope string, rng models.DateRange) (models.Summary, error) {
	return load[models.Summary](ctx, r.cache, SummaryKey(scope, rng))
}

func (r *Reports) Customers(ctx context.Context, scope string) ([]models.Record[models.Customer], error) {
	return load[[]models.Record[models.Customer]](ctx, r.cache, CustomersKey(scope))
}

// Entries returns a fetch func for a pager over the entries of rng. Every
// page goes through the cache, keyed by its cursor.
func (r *Reports) Entries(scope string, rng models.DateRange) pagination.FetchFunc[models.LedgerEntry] {
	return func(ctx context.Context, cursor *models.Cursor, _ int) (models.Page[models.LedgerEntry], error) {
		return load[models.Page[models.LedgerEntry]](ctx, r.cache, EntriesKey(scope, rng, cursor))
	}
}

func load[T any](ctx context.Context, c *Cache, key QueryKey) (T, error) {
	var zero T

	value, err := c.Load(ctx, key, nil)
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("cached %s holds %T", key, value)
	}
	return typed, nil
}
