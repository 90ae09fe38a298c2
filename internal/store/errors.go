// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by the local store and the server repository to
// signal well-known failure conditions. Callers should use [errors.Is] to
// match against these values.
var (
	// ErrRecordNotFound is returned when no record exists for (scope, id).
	ErrRecordNotFound = errors.New("record not found")

	// ErrEntryNotFound is returned when an outbox entry addressed by queue id
	// does not exist.
	ErrEntryNotFound = errors.New("queue entry not found")

	// ErrUnknownTable is returned for a table name the store does not manage.
	ErrUnknownTable = errors.New("unknown table")

	// ErrTableNotLocked is returned when a transaction touches a table it did
	// not declare in RunTransaction.
	ErrTableNotLocked = errors.New("table is not locked by this transaction")

	// ErrInvalidRecord is returned for a record without scope, id or a known
	// sync status.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrConflict is returned by the server repository when a write violates a
	// uniqueness or reference constraint.
	ErrConflict = errors.New("conflicting ledger write")

	// ErrTransientStorage is returned by the server repository for failures
	// that may succeed when retried (lost connection, serialization failure).
	ErrTransientStorage = errors.New("transient storage failure")

	// ErrSubmissionNotFound is returned when no submission was recorded for a
	// mutation id.
	ErrSubmissionNotFound = errors.New("submission not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// store methods when a storage-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database cannot start a
	// new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning fails mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrBoltOperation wraps failures reported by the bbolt backend.
	ErrBoltOperation = errors.New("bolt operation failed")

	// ErrEncodingValue is returned when a stored value cannot be encoded or
	// decoded.
	ErrEncodingValue = errors.New("failed to encode stored value")
)
