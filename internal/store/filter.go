package store

import (
	"time"

	"github.com/MKhiriev/go-ledger-sync/models"
)

// EntryFilter narrows ledger entry queries to a half-open [From, To) window.
// After and Limit apply to PageEntries only.
type EntryFilter struct {
	Range models.DateRange
	From  time.Time
	To    time.Time
	After *models.Cursor
	Limit int
}

// NewEntryFilter resolves r at now into a filter.
func NewEntryFilter(r models.DateRange, now time.Time, after *models.Cursor, limit int) (EntryFilter, error) {
	from, to, err := r.Resolve(now)
	if err != nil {
		return EntryFilter{}, err
	}
	return EntryFilter{Range: r, From: from, To: to, After: after, Limit: limit}, nil
}
