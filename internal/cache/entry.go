package cache

import "time"

// Entry is a cached read result.
type Entry struct {
	Key         QueryKey
	Value       any
	FetchedAt   time.Time
	StaleAfter  time.Duration
	Invalidated bool

	// invalidatedAt keeps a fetch that started before the last
	// invalidation from marking the entry fresh again.
	invalidatedAt time.Time
}

// Fresh reports whether the entry can be served without a refresh.
func (e *Entry) Fresh(now time.Time) bool {
	return !e.Invalidated && now.Before(e.FetchedAt.Add(e.StaleAfter))
}
