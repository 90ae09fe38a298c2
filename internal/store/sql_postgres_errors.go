package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells whether a failed statement may succeed on retry.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

// PostgresErrorClassifier classifies pgx errors by SQLSTATE.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify reports [Retryable] only for postgres errors whose code passes
// [ClassifyPgError]; nil and foreign errors are [NonRetryable].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return NonRetryable
	}
	return ClassifyPgError(pgErr)
}

// ClassifyPgError treats the whole of class 08 (connection exception) and
// class 40 (transaction rollback) as retryable, plus 57P03 from a server
// that is still starting up. Constraint, data and syntax errors and every
// other code are not.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch code := pgErr.Code; {
	case pgerrcode.IsConnectionException(code),
		pgerrcode.IsTransactionRollback(code),
		code == pgerrcode.CannotConnectNow:
		return Retryable
	default:
		return NonRetryable
	}
}

// sqlState returns the SQLSTATE of err, or "" for non-postgres errors.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// classifyError turns a failed ledger write into [ErrConflict] for constraint
// violations, [ErrTransientStorage] when a retry may help, or base otherwise.
func (db *DB) classifyError(base, err error) error {
	switch sqlState(err) {
	case pgerrcode.UniqueViolation, pgerrcode.ForeignKeyViolation, pgerrcode.CheckViolation:
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}

	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w: %w", ErrTransientStorage, base, err)
	}
	return fmt.Errorf("%w: %w", base, err)
}
