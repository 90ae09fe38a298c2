package pagination

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ledger-sync/models"
)

var base = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func entry(i int, at time.Time) models.LedgerEntry {
	return models.LedgerEntry{ID: fmt.Sprintf("e-%03d", i), Kind: models.EntryKindCash, Amount: int64(i), CreatedAt: at}
}

// ── fake source ──

type source struct {
	mu    sync.Mutex
	rows  []models.LedgerEntry
	calls []*models.Cursor
	err   error
}

func (s *source) add(e models.LedgerEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, e)
}

func (s *source) fetch(_ context.Context, cursor *models.Cursor, limit int) (models.Page[models.LedgerEntry], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, cursor)
	if s.err != nil {
		return models.Page[models.LedgerEntry]{}, s.err
	}
	return Slice(s.rows, models.LedgerEntry.Cursor, cursor, limit), nil
}

func newSource(n int) *source {
	s := &source{}
	for i := 0; i < n; i++ {
		// пары записей с одинаковым временем, порядок решает id
		s.rows = append(s.rows, entry(i, base.Add(time.Duration(i/2)*time.Minute)))
	}
	return s
}

func ids(rows []models.LedgerEntry) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

// ── Slice ──

func TestSlice_FirstPage(t *testing.T) {
	src := newSource(5)
	page := Slice(src.rows, models.LedgerEntry.Cursor, nil, 2)

	assert.Equal(t, []string{"e-000", "e-001"}, ids(page.Rows))
	assert.True(t, page.HasMore)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, "e-001", page.NextCursor.ID)
}

func TestSlice_LastPageHasNoCursor(t *testing.T) {
	src := newSource(4)
	after := src.rows[1].Cursor()
	page := Slice(src.rows, models.LedgerEntry.Cursor, &after, 2)

	assert.Equal(t, []string{"e-002", "e-003"}, ids(page.Rows))
	assert.False(t, page.HasMore)
	assert.Nil(t, page.NextCursor)
}

func TestSlice_UnsortedInput(t *testing.T) {
	rows := []models.LedgerEntry{
		entry(3, base.Add(2*time.Minute)),
		entry(1, base),
		entry(2, base),
	}
	page := Slice(rows, models.LedgerEntry.Cursor, nil, 10)

	assert.Equal(t, []string{"e-001", "e-002", "e-003"}, ids(page.Rows))
	assert.Equal(t, "e-003", rows[0].ID, "input must stay untouched")
}

func TestSlice_CursorBetweenRows(t *testing.T) {
	src := newSource(6)
	// курсор, которого нет среди строк
	after := models.Cursor{At: base.Add(time.Minute), ID: "e-002a"}
	page := Slice(src.rows, models.LedgerEntry.Cursor, &after, 10)

	assert.Equal(t, []string{"e-003", "e-004", "e-005"}, ids(page.Rows))
}

func TestSlice_Empty(t *testing.T) {
	page := Slice[models.LedgerEntry](nil, models.LedgerEntry.Cursor, nil, 3)
	assert.Empty(t, page.Rows)
	assert.False(t, page.HasMore)
}

// ── Collect ──

func TestCollect_StableForEveryPageSize(t *testing.T) {
	const n = 11
	src := newSource(n)
	want := ids(src.rows)

	for size := 1; size <= n+1; size++ {
		t.Run(fmt.Sprintf("size=%d", size), func(t *testing.T) {
			got, err := Collect(context.Background(), src.fetch, size)
			require.NoError(t, err)
			assert.Equal(t, want, ids(got))
		})
	}
}

func TestCollect_PropagatesError(t *testing.T) {
	src := newSource(3)
	src.err = errors.New("boom")

	_, err := Collect(context.Background(), src.fetch, 2)
	assert.EqualError(t, err, "boom")
}

func TestCollect_StalledCursor(t *testing.T) {
	fetch := func(context.Context, *models.Cursor, int) (models.Page[int], error) {
		return models.Page[int]{Rows: []int{1}, HasMore: true}, nil
	}
	_, err := Collect(context.Background(), fetch, 1)
	assert.ErrorIs(t, err, ErrStalledCursor)
}

func TestCollect_CursorMustAdvance(t *testing.T) {
	c := models.Cursor{At: base, ID: "x"}
	fetch := func(context.Context, *models.Cursor, int) (models.Page[int], error) {
		return models.Page[int]{Rows: []int{1}, HasMore: true, NextCursor: &c}, nil
	}
	_, err := Collect(context.Background(), fetch, 1)
	assert.ErrorIs(t, err, ErrStalledCursor)
}

// ── Pager ──

func TestPager_WalksForwardAndBack(t *testing.T) {
	src := newSource(5)
	p := NewPager(src.fetch, 2)
	ctx := context.Background()

	first, err := p.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"e-000", "e-001"}, ids(first.Rows))

	second, err := p.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"e-002", "e-003"}, ids(second.Rows))

	third, err := p.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"e-004"}, ids(third.Rows))
	assert.Equal(t, 3, p.Current())

	_, err = p.Next(ctx)
	assert.ErrorIs(t, err, ErrNoMorePages)

	back, err := p.Prev(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids(second.Rows), ids(back.Rows))
	assert.Equal(t, 2, p.Current())

	// Prev перечитывает страницу по сохранённому курсору
	last := src.calls[len(src.calls)-1]
	require.NotNil(t, last)
	assert.Equal(t, "e-001", last.ID)
}

func TestPager_PageRequiresRetainedCursor(t *testing.T) {
	src := newSource(10)
	p := NewPager(src.fetch, 2)
	ctx := context.Background()

	_, err := p.Page(ctx, 3)
	assert.ErrorIs(t, err, ErrCursorNotRetained)
	assert.Empty(t, src.calls)

	_, err = p.Page(ctx, 1)
	require.NoError(t, err)
	_, err = p.Page(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Retained())

	page, err := p.Page(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"e-004", "e-005"}, ids(page.Rows))

	_, err = p.Page(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidPage)
}

func TestPager_PrevOnFirstPage(t *testing.T) {
	p := NewPager(newSource(3).fetch, 2)

	_, err := p.Prev(context.Background())
	assert.ErrorIs(t, err, ErrNoPreviousPage)

	_, err = p.Next(context.Background())
	require.NoError(t, err)
	_, err = p.Prev(context.Background())
	assert.ErrorIs(t, err, ErrNoPreviousPage)
}

func TestPager_InsertsDuringPagingDoNotShiftPages(t *testing.T) {
	src := newSource(6)
	p := NewPager(src.fetch, 2)
	ctx := context.Background()

	first, err := p.Next(ctx)
	require.NoError(t, err)

	// новые записи позже последней страницы и до уже прочитанной
	src.add(entry(100, base.Add(-time.Hour)))
	src.add(entry(101, base.Add(time.Hour)))

	var seen []string
	seen = append(seen, ids(first.Rows)...)
	for {
		page, err := p.Next(ctx)
		if errors.Is(err, ErrNoMorePages) {
			break
		}
		require.NoError(t, err)
		seen = append(seen, ids(page.Rows)...)
	}

	assert.Equal(t, []string{"e-000", "e-001", "e-002", "e-003", "e-004", "e-005", "e-101"}, seen)
}

func TestPager_FetchErrorKeepsPosition(t *testing.T) {
	src := newSource(4)
	p := NewPager(src.fetch, 2)
	ctx := context.Background()

	_, err := p.Next(ctx)
	require.NoError(t, err)

	src.err = errors.New("offline")
	_, err = p.Next(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, p.Current())

	src.err = nil
	page, err := p.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"e-002", "e-003"}, ids(page.Rows))
}

func TestPager_Reset(t *testing.T) {
	src := newSource(4)
	p := NewPager(src.fetch, 2)
	ctx := context.Background()

	_, _ = p.Next(ctx)
	_, _ = p.Next(ctx)
	p.Reset()

	assert.Equal(t, 0, p.Current())
	assert.Equal(t, 1, p.Retained())

	page, err := p.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "e-000", page.Rows[0].ID)
}
