// Package pagination implements keyset paging over rows ordered by
// (created_at, id).
//
// A page request carries the cursor of the last row already seen and the
// next page starts strictly after it, so rows inserted while a reader pages
// through a range can neither repeat nor disappear.
package pagination

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-ledger-sync/models"
)

var (
	// ErrCursorNotRetained is returned when a page is requested whose
	// preceding cursor was never seen.
	ErrCursorNotRetained = errors.New("cursor for the requested page is not retained")
	// ErrNoMorePages is returned by Next after the last page.
	ErrNoMorePages = errors.New("no more pages")
	// ErrNoPreviousPage is returned by Prev on the first page.
	ErrNoPreviousPage = errors.New("no previous page")
	// ErrInvalidPage is returned for page numbers below 1.
	ErrInvalidPage = errors.New("page numbers start at 1")
	// ErrStalledCursor is returned when a fetcher claims more rows without
	// handing out a cursor to reach them.
	ErrStalledCursor = errors.New("page has more rows but no next cursor")
)

// DefaultPageSize is used when a caller does not pick a page size.
const DefaultPageSize = 20

// FetchFunc loads the page starting after cursor. A nil cursor means the
// first page.
type FetchFunc[T any] func(ctx context.Context, cursor *models.Cursor, limit int) (models.Page[T], error)

// Pager walks a result set page by page and retains every cursor it has
// seen, so earlier pages are replayed from their cursor instead of being
// re-derived. Page numbers start at 1. Calls are serialised.
type Pager[T any] struct {
	mu      sync.Mutex
	fetch   FetchFunc[T]
	size    int
	cursors []*models.Cursor // cursors[i] starts page i+1
	current int
	hasMore bool
}

// NewPager returns a pager fetching size rows per page.
func NewPager[T any](fetch FetchFunc[T], size int) *Pager[T] {
	if size <= 0 {
		size = 1
	}
	return &Pager[T]{fetch: fetch, size: size, cursors: []*models.Cursor{nil}}
}

// Next loads the page after the current one.
func (p *Pager[T]) Next(ctx context.Context) (models.Page[T], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current > 0 && !p.hasMore {
		return models.Page[T]{}, ErrNoMorePages
	}
	return p.load(ctx, p.current+1)
}

// Prev reloads the page before the current one.
func (p *Pager[T]) Prev(ctx context.Context) (models.Page[T], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current <= 1 {
		return models.Page[T]{}, ErrNoPreviousPage
	}
	return p.load(ctx, p.current-1)
}

// Page loads page n. Cursor n-1 must have been retained by an earlier call.
func (p *Pager[T]) Page(ctx context.Context, n int) (models.Page[T], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.load(ctx, n)
}

// Reset forgets every retained cursor.
func (p *Pager[T]) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cursors = []*models.Cursor{nil}
	p.current = 0
	p.hasMore = false
}

// Current returns the number of the last loaded page, 0 before the first.
func (p *Pager[T]) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Retained returns the highest page number reachable right now.
func (p *Pager[T]) Retained() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cursors)
}

func (p *Pager[T]) load(ctx context.Context, n int) (models.Page[T], error) {
	if n < 1 {
		return models.Page[T]{}, fmt.Errorf("%w: %d", ErrInvalidPage, n)
	}
	if n > len(p.cursors) {
		return models.Page[T]{}, fmt.Errorf("%w: page %d, retained up to %d", ErrCursorNotRetained, n, len(p.cursors))
	}

	page, err := p.fetch(ctx, p.cursors[n-1], p.size)
	if err != nil {
		return models.Page[T]{}, err
	}
	if page.HasMore && page.NextCursor == nil {
		return models.Page[T]{}, ErrStalledCursor
	}

	if page.HasMore {
		next := *page.NextCursor
		if n == len(p.cursors) {
			p.cursors = append(p.cursors, &next)
		} else {
			p.cursors[n] = &next
		}
	}
	p.current = n
	p.hasMore = page.HasMore

	return page, nil
}

// Collect pages through the whole result set and returns every row.
func Collect[T any](ctx context.Context, fetch FetchFunc[T], size int) ([]T, error) {
	var (
		rows   []T
		cursor *models.Cursor
	)
	for {
		page, err := fetch(ctx, cursor, size)
		if err != nil {
			return nil, err
		}
		rows = append(rows, page.Rows...)

		if !page.HasMore {
			return rows, nil
		}
		if page.NextCursor == nil || (cursor != nil && !cursor.Less(*page.NextCursor)) {
			return nil, ErrStalledCursor
		}
		cursor = page.NextCursor
	}
}
