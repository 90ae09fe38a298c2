package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-ledger-sync/models"
)

func TestQueryPattern_Matches(t *testing.T) {
	cursor := &models.Cursor{At: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), ID: "e-1"}
	page2 := EntriesKey("shop-1", today, cursor)

	tests := []struct {
		name    string
		pattern QueryPattern
		key     QueryKey
		want    bool
	}{
		{name: "empty pattern matches all", pattern: QueryPattern{}, key: page2, want: true},
		{name: "resource", pattern: QueryPattern{Resource: ResourceEntries}, key: page2, want: true},
		{name: "other resource", pattern: QueryPattern{Resource: ResourceSummary}, key: page2, want: false},
		{name: "prefix", pattern: QueryPattern{Resource: "entr", Prefix: true}, key: page2, want: true},
		{name: "prefix is not exact", pattern: QueryPattern{Resource: "entr"}, key: page2, want: false},
		{name: "scope", pattern: QueryPattern{Scope: "shop-2"}, key: page2, want: false},
		{name: "range", pattern: QueryPattern{Range: models.Preset(models.RangeYesterday)}, key: page2, want: false},
		{name: "exact", pattern: Exact(page2), key: page2, want: true},
		{name: "exact first page", pattern: Exact(EntriesKey("shop-1", today, nil)), key: page2, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pattern.Matches(tt.key))
		})
	}
}

func TestQueryKey_String(t *testing.T) {
	assert.Equal(t, `"customers"|"shop-1"|""|""`, CustomersKey("shop-1").String())
	assert.Equal(t, `"summary"|"shop-1"|"today"|""`, SummaryKey("shop-1", today).String())
}

func TestQueryKey_StringKeepsScopesApart(t *testing.T) {
	// с разделителем внутри scope ключи раньше совпадали
	a := QueryKey{Resource: ResourceCustomers, Scope: "shop|", Cursor: "x"}
	b := QueryKey{Resource: ResourceCustomers, Scope: "shop", Cursor: "|x"}

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a.String(), b.String())
}

func TestQueryKey_WithRangeResetsCursor(t *testing.T) {
	key := EntriesKey("shop-1", today, &models.Cursor{At: time.Now(), ID: "e-1"})
	next := key.WithRange(models.Preset(models.RangeYesterday))

	assert.Empty(t, next.Cursor)
	assert.Equal(t, models.RangeYesterday, next.Range.Preset)
	assert.NotEmpty(t, key.Cursor)
}
