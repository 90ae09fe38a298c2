package cache

import (
	"strconv"
	"strings"

	"github.com/MKhiriev/go-ledger-sync/models"
)

// Resources served by the ledger client.
const (
	ResourceSummary   = "summary"
	ResourceEntries   = "entries"
	ResourceCustomers = "customers"
)

// QueryKey identifies one cached read. It is comparable and used as a map
// key directly.
type QueryKey struct {
	Resource string
	Scope    string
	Range    models.DateRange
	// Cursor is the encoded page cursor, empty for the first page.
	Cursor string
}

// String renders the key for logs and as the singleflight call id. Fields
// are quoted, so a "|" inside a scope cannot make two keys collide.
func (k QueryKey) String() string {
	var rng string
	if !k.Range.IsZero() {
		rng = k.Range.String()
	}
	return strings.Join([]string{
		strconv.Quote(k.Resource),
		strconv.Quote(k.Scope),
		strconv.Quote(rng),
		strconv.Quote(k.Cursor),
	}, "|")
}

// WithRange returns a copy of k for r, positioned at the first page.
func (k QueryKey) WithRange(r models.DateRange) QueryKey {
	k.Range = r
	k.Cursor = ""
	return k
}

func SummaryKey(scope string, r models.DateRange) QueryKey {
	return QueryKey{Resource: ResourceSummary, Scope: scope, Range: r}
}

// EntriesKey addresses the page of entries of r that follows cursor.
func EntriesKey(scope string, r models.DateRange, cursor *models.Cursor) QueryKey {
	return QueryKey{Resource: ResourceEntries, Scope: scope, Range: r, Cursor: models.EncodeCursor(cursor)}
}

func CustomersKey(scope string) QueryKey {
	return QueryKey{Resource: ResourceCustomers, Scope: scope}
}

// QueryPattern selects keys. Zero fields match anything. With Prefix set,
// Resource matches every resource starting with it.
type QueryPattern struct {
	Resource string
	Prefix   bool
	Scope    string
	Range    models.DateRange
	Cursor   string
}

// Matches reports whether k is selected by p.
func (p QueryPattern) Matches(k QueryKey) bool {
	switch {
	case p.Resource != "" && !p.Prefix && k.Resource != p.Resource:
		return false
	case p.Resource != "" && p.Prefix && !strings.HasPrefix(k.Resource, p.Resource):
		return false
	case p.Scope != "" && k.Scope != p.Scope:
		return false
	case !p.Range.IsZero() && k.Range != p.Range:
		return false
	case p.Cursor != "" && k.Cursor != p.Cursor:
		return false
	}
	return true
}

// Exact returns the pattern matching k alone.
func Exact(k QueryKey) QueryPattern {
	return QueryPattern{Resource: k.Resource, Scope: k.Scope, Range: k.Range, Cursor: k.Cursor}
}
