package models

import (
	"errors"
	"fmt"
)

// SyncStatus describes how a mirrored record relates to the server of record.
//
// The lifecycle is a two-phase protocol: a record is staged locally
// ([SyncStatusNew] or [SyncStatusDirty]) and confirmed remotely
// ([SyncStatusSynced]) once the matching outbox entry is acknowledged.
type SyncStatus string

const (
	// SyncStatusNew marks a record created locally and not yet acknowledged.
	SyncStatusNew SyncStatus = "new"
	// SyncStatusDirty marks a synced record that was edited locally and whose
	// edit is not yet acknowledged.
	SyncStatusDirty SyncStatus = "dirty"
	// SyncStatusSynced marks a record that reflects server state.
	SyncStatusSynced SyncStatus = "synced"
)

// ErrInvalidTransition is returned by [SyncStatus.Transition] for a move the
// state machine does not allow.
var ErrInvalidTransition = errors.New("invalid sync status transition")

// allowedTransitions lists every legal (from -> to) move.
var allowedTransitions = map[SyncStatus]map[SyncStatus]bool{
	SyncStatusNew:    {SyncStatusNew: true, SyncStatusSynced: true},
	SyncStatusDirty:  {SyncStatusDirty: true, SyncStatusSynced: true},
	SyncStatusSynced: {SyncStatusSynced: true, SyncStatusDirty: true},
}

// Valid reports whether s is one of the known statuses.
func (s SyncStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// Transition returns to if moving from s to to is allowed.
func (s SyncStatus) Transition(to SyncStatus) (SyncStatus, error) {
	if allowedTransitions[s][to] {
		return to, nil
	}
	return s, fmt.Errorf("%w: %q -> %q", ErrInvalidTransition, s, to)
}

// Edited returns the status a record takes after a local edit.
// A record the server has never seen stays new.
func (s SyncStatus) Edited() SyncStatus {
	if s == SyncStatusNew {
		return SyncStatusNew
	}
	return SyncStatusDirty
}

// Pending reports whether the record carries a write the server has not
// acknowledged yet.
func (s SyncStatus) Pending() bool {
	return s == SyncStatusNew || s == SyncStatusDirty
}

// Reseedable reports whether reconciliation may delete and replace the
// record. Only synced mirrors qualify.
func (s SyncStatus) Reseedable() bool {
	return s == SyncStatusSynced
}
