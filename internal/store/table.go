package store

import (
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/go-ledger-sync/models"
)

// Table names a collection of the local store.
type Table string

const (
	TableCustomers     Table = "customers"
	TableLedgerEntries Table = "ledger_entries"
	TableOutbox        Table = "outbox"
)

// allTables is the canonical lock order.
var allTables = []Table{TableCustomers, TableLedgerEntries, TableOutbox}

// EntityTables lists the tables holding mirrored records.
var EntityTables = []Table{TableCustomers, TableLedgerEntries}

// TableFor returns the table that stores records of the given entity type.
func TableFor(entityType models.EntityType) (Table, error) {
	switch entityType {
	case models.EntityCustomer:
		return TableCustomers, nil
	case models.EntityLedgerEntry:
		return TableLedgerEntries, nil
	}
	return "", fmt.Errorf("%w: no table for entity %q", ErrUnknownTable, entityType)
}

// EntityType returns the entity type stored in t, or "" for the outbox.
func (t Table) EntityType() models.EntityType {
	switch t {
	case TableCustomers:
		return models.EntityCustomer
	case TableLedgerEntries:
		return models.EntityLedgerEntry
	}
	return ""
}

func (t Table) valid() bool {
	return slices.Contains(allTables, t)
}

func (t Table) isEntity() bool {
	return t == TableCustomers || t == TableLedgerEntries
}

// tableLocker hands out per-table write locks.
type tableLocker struct {
	locks map[Table]*sync.Mutex
}

func newTableLocker() *tableLocker {
	l := &tableLocker{locks: make(map[Table]*sync.Mutex, len(allTables))}
	for _, t := range allTables {
		l.locks[t] = &sync.Mutex{}
	}
	return l
}

// canonical deduplicates tables and sorts them into lock order.
func canonical(tables []Table) ([]Table, error) {
	out := make([]Table, 0, len(tables))
	for _, t := range allTables {
		if slices.Contains(tables, t) {
			out = append(out, t)
		}
	}
	for _, t := range tables {
		if !t.valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTable, t)
		}
	}
	return out, nil
}

// lock acquires the locks of tables in canonical order and returns the
// release func together with the locked set.
func (l *tableLocker) lock(tables []Table) (func(), []Table, error) {
	ordered, err := canonical(tables)
	if err != nil {
		return nil, nil, err
	}

	for _, t := range ordered {
		l.locks[t].Lock()
	}

	return func() {
		for i := len(ordered) - 1; i >= 0; i-- {
			l.locks[ordered[i]].Unlock()
		}
	}, ordered, nil
}

// txScope checks that a transaction only touches the tables it locked.
type txScope []Table

func (s txScope) check(t Table) error {
	if !t.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownTable, t)
	}
	if !slices.Contains(s, t) {
		return fmt.Errorf("%w: %q", ErrTableNotLocked, t)
	}
	return nil
}

// tablesOf returns the distinct entity tables of records.
func tablesOf(recs []models.LocalRecord) ([]Table, error) {
	var tables []Table
	for _, rec := range recs {
		t, err := TableFor(rec.EntityType)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(tables, t) {
			tables = append(tables, t)
		}
	}
	return tables, nil
}

func validateRecord(rec models.LocalRecord) error {
	switch {
	case rec.Scope == "":
		return fmt.Errorf("%w: empty scope", ErrInvalidRecord)
	case rec.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidRecord)
	case !rec.SyncStatus.Valid():
		return fmt.Errorf("%w: sync status %q", ErrInvalidRecord, rec.SyncStatus)
	}
	return nil
}
