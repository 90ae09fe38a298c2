package pagination

import (
	"slices"

	"github.com/MKhiriev/go-ledger-sync/models"
)

// KeyFunc extracts the ordering key of a row.
type KeyFunc[T any] func(T) models.Cursor

// Slice pages rows in memory with the same contract the server implements
// in SQL. rows need not be sorted.
func Slice[T any](rows []T, key KeyFunc[T], after *models.Cursor, limit int) models.Page[T] {
	sorted := SortByKey(rows, key)

	start := 0
	if after != nil {
		start, _ = slices.BinarySearchFunc(sorted, *after, func(row T, target models.Cursor) int {
			return compare(key(row), target)
		})
		// skip the row equal to after itself
		for start < len(sorted) && !after.Less(key(sorted[start])) {
			start++
		}
	}

	rest := sorted[start:]
	if limit <= 0 || len(rest) <= limit {
		return models.Page[T]{Rows: rest}
	}

	page := models.Page[T]{Rows: rest[:limit], HasMore: true}
	next := key(page.Rows[len(page.Rows)-1])
	page.NextCursor = &next
	return page
}

// SortByKey returns a copy of rows ordered by key.
func SortByKey[T any](rows []T, key KeyFunc[T]) []T {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return compare(key(a), key(b))
	})
	return sorted
}

func compare(a, b models.Cursor) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	}
	return 0
}
