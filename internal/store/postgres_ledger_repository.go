package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/models"
)

const (
	// recalculateTotalDue derives a customer's due amount from its sales and
	// payments.
	recalculateTotalDue = `UPDATE customers
		SET total_due = (
			SELECT COALESCE(SUM(CASE kind WHEN 'sale' THEN amount WHEN 'payment' THEN -amount ELSE 0 END), 0)
			FROM ledger_entries
			WHERE scope = $1 AND customer_id = $2
		), updated_at = NOW()
		WHERE scope = $1 AND id = $2`

	findEntryCustomer = `SELECT COALESCE(customer_id, '')
		FROM ledger_entries
		WHERE scope = $1 AND id = $2
		FOR UPDATE`
)

var (
	customerColumns = []string{"id", "name", "phone", "total_due", "created_at", "updated_at"}
	entryColumns    = []string{"id", "COALESCE(customer_id, '')", "kind", "amount", "note", "created_at"}
)

// ledgerRepository is the postgres-backed implementation of
// [LedgerRepository].
//
// Every write records the submission that caused it in the same transaction,
// which makes a replayed mutation id detectable.
type ledgerRepository struct {
	db      *DB
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

// NewLedgerRepository constructs a [LedgerRepository] backed by db.
func NewLedgerRepository(db *DB, logger *logger.Logger) LedgerRepository {
	logger.Debug().Msg("creating ledger repository")
	return &ledgerRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger:  logger,
	}
}

func (r *ledgerRepository) ListCustomers(ctx context.Context, scope string) ([]models.Customer, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.Select(customerColumns...).
		From("customers").
		Where(sq.Eq{"scope": scope}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "ledgerRepository.ListCustomers").Str("scope", scope).Msg("failed to query customers")
		return nil, r.db.classifyError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	customers := make([]models.Customer, 0)
	for rows.Next() {
		c, scanErr := scanCustomer(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "ledgerRepository.ListCustomers").Msg("failed to scan customer row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		customers = append(customers, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return customers, nil
}

func (r *ledgerRepository) ListEntries(ctx context.Context, scope string) ([]models.LedgerEntry, error) {
	query, args, err := r.builder.Select(entryColumns...).
		From("ledger_entries").
		Where(sq.Eq{"scope": scope}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryEntries(ctx, "ledgerRepository.ListEntries", query, args)
}

// PageEntries returns one keyset page ordered by (created_at, id). One extra
// row is fetched to tell whether another page exists.
func (r *ledgerRepository) PageEntries(ctx context.Context, scope string, filter EntryFilter) (models.Page[models.LedgerEntry], error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	builder := r.builder.Select(entryColumns...).
		From("ledger_entries").
		Where(sq.Eq{"scope": scope}).
		Where(sq.GtOrEq{"created_at": filter.From}).
		Where(sq.Lt{"created_at": filter.To})
	if filter.After != nil {
		builder = builder.Where(sq.Expr("(created_at, id) > (?, ?)", filter.After.At, filter.After.ID))
	}

	query, args, err := builder.OrderBy("created_at", "id").Limit(uint64(limit + 1)).ToSql()
	if err != nil {
		return models.Page[models.LedgerEntry]{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.queryEntries(ctx, "ledgerRepository.PageEntries", query, args)
	if err != nil {
		return models.Page[models.LedgerEntry]{}, err
	}

	page := models.Page[models.LedgerEntry]{Rows: rows}
	if len(rows) > limit {
		page.Rows = rows[:limit]
		page.HasMore = true
	}
	if page.HasMore {
		next := page.Rows[len(page.Rows)-1].Cursor()
		page.NextCursor = &next
	}

	return page, nil
}

func (r *ledgerRepository) Summary(ctx context.Context, scope string, filter EntryFilter) (models.Summary, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.Select("kind", "COALESCE(SUM(amount), 0)", "COUNT(*)").
		From("ledger_entries").
		Where(sq.Eq{"scope": scope}).
		Where(sq.GtOrEq{"created_at": filter.From}).
		Where(sq.Lt{"created_at": filter.To}).
		GroupBy("kind").
		ToSql()
	if err != nil {
		return models.Summary{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "ledgerRepository.Summary").Str("scope", scope).Msg("failed to query summary")
		return models.Summary{}, r.db.classifyError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	summary := models.Summary{Range: filter.Range}
	for rows.Next() {
		var (
			kind  models.EntryKind
			total int64
			count int
		)
		if err = rows.Scan(&kind, &total, &count); err != nil {
			return models.Summary{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		switch kind {
		case models.EntryKindSale:
			summary.Sales = total
		case models.EntryKindPayment:
			summary.Payments = total
		case models.EntryKindExpense:
			summary.Expenses = total
		case models.EntryKindCash:
			summary.Cash = total
		}
		summary.Count += count
	}
	if err = rows.Err(); err != nil {
		return models.Summary{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return summary, nil
}

func (r *ledgerRepository) FindSubmission(ctx context.Context, scope, mutationID string) (models.SubmitAck, error) {
	query, args, err := r.builder.Select("local_id", "server_id", "record").
		From("submissions").
		Where(sq.Eq{"scope": scope, "mutation_id": mutationID}).
		ToSql()
	if err != nil {
		return models.SubmitAck{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	ack := models.SubmitAck{MutationID: mutationID}
	var record []byte
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&ack.LocalID, &ack.ServerID, &record)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SubmitAck{}, ErrSubmissionNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "ledgerRepository.FindSubmission").
			Str("mutation_id", mutationID).Msg("failed to find submission")
		return models.SubmitAck{}, r.db.classifyError(ErrScanningRow, err)
	}
	ack.Record = record

	return ack, nil
}

func (r *ledgerRepository) ApplyCustomer(ctx context.Context, sub models.Submission, customer models.Customer) (models.SubmitAck, error) {
	var builder sq.Sqlizer
	switch sub.Operation {
	case models.OperationCreate:
		builder = r.builder.Insert("customers").
			Columns("scope", "id", "name", "phone").
			Values(sub.Scope, customer.ID, customer.Name, customer.Phone).
			Suffix("RETURNING " + strings.Join(customerColumns, ", "))
	case models.OperationUpdate:
		builder = r.builder.Update("customers").
			Set("name", customer.Name).
			Set("phone", customer.Phone).
			Set("updated_at", sq.Expr("NOW()")).
			Where(sq.Eq{"scope": sub.Scope, "id": customer.ID}).
			Suffix("RETURNING " + strings.Join(customerColumns, ", "))
	default:
		return models.SubmitAck{}, fmt.Errorf("%w: operation %q", ErrConflict, sub.Operation)
	}

	return r.apply(ctx, "ledgerRepository.ApplyCustomer", sub, func(tx *sql.Tx) (string, any, error) {
		query, args, err := builder.ToSql()
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		saved, err := scanCustomer(tx.QueryRowContext(ctx, query, args...))
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, ErrRecordNotFound
		}
		if err != nil {
			return "", nil, r.db.classifyError(ErrExecutingQuery, err)
		}
		return saved.ID, saved, nil
	})
}

func (r *ledgerRepository) ApplyEntry(ctx context.Context, sub models.Submission, entry models.LedgerEntry) (models.SubmitAck, error) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	entry.CreatedAt = entry.CreatedAt.Truncate(time.Microsecond)
	customerID := sql.NullString{String: entry.CustomerID, Valid: entry.CustomerID != ""}

	return r.apply(ctx, "ledgerRepository.ApplyEntry", sub, func(tx *sql.Tx) (string, any, error) {
		affected := []string{entry.CustomerID}

		var builder sq.Sqlizer
		switch sub.Operation {
		case models.OperationCreate:
			builder = r.builder.Insert("ledger_entries").
				Columns("scope", "id", "customer_id", "kind", "amount", "note", "created_at").
				Values(sub.Scope, entry.ID, customerID, string(entry.Kind), entry.Amount, entry.Note, entry.CreatedAt).
				Suffix("RETURNING " + strings.Join(entryColumns, ", "))
		case models.OperationUpdate:
			var previous string
			err := tx.QueryRowContext(ctx, findEntryCustomer, sub.Scope, entry.ID).Scan(&previous)
			if errors.Is(err, sql.ErrNoRows) {
				return "", nil, ErrRecordNotFound
			}
			if err != nil {
				return "", nil, r.db.classifyError(ErrExecutingQuery, err)
			}
			affected = append(affected, previous)

			builder = r.builder.Update("ledger_entries").
				Set("customer_id", customerID).
				Set("kind", string(entry.Kind)).
				Set("amount", entry.Amount).
				Set("note", entry.Note).
				Where(sq.Eq{"scope": sub.Scope, "id": entry.ID}).
				Suffix("RETURNING " + strings.Join(entryColumns, ", "))
		default:
			return "", nil, fmt.Errorf("%w: operation %q", ErrConflict, sub.Operation)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		saved, err := scanEntry(tx.QueryRowContext(ctx, query, args...))
		if err != nil {
			return "", nil, r.db.classifyError(ErrExecutingQuery, err)
		}

		seen := make(map[string]bool, len(affected))
		for _, id := range affected {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			if _, err = tx.ExecContext(ctx, recalculateTotalDue, sub.Scope, id); err != nil {
				return "", nil, r.db.classifyError(ErrExecutingQuery, err)
			}
		}

		return saved.ID, saved, nil
	})
}

// apply runs write inside a transaction and records the submission.
func (r *ledgerRepository) apply(ctx context.Context, fn string, sub models.Submission, write func(tx *sql.Tx) (string, any, error)) (models.SubmitAck, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to begin transaction")
		return models.SubmitAck{}, r.db.classifyError(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	serverID, saved, err := write(tx)
	if err != nil {
		log.Err(err).Str("func", fn).Str("scope", sub.Scope).Str("local_id", sub.LocalID).Msg("failed to apply submission")
		return models.SubmitAck{}, err
	}

	record, err := json.Marshal(saved)
	if err != nil {
		return models.SubmitAck{}, fmt.Errorf("%w: %w", ErrEncodingValue, err)
	}

	query, args, err := r.builder.Insert("submissions").
		Columns("scope", "mutation_id", "local_id", "entity_type", "operation", "server_id", "record").
		Values(sub.Scope, sub.MutationID, sub.LocalID, string(sub.EntityType), string(sub.Operation), serverID, record).
		ToSql()
	if err != nil {
		return models.SubmitAck{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", fn).Str("mutation_id", sub.MutationID).Msg("failed to record submission")
		return models.SubmitAck{}, r.db.classifyError(ErrExecutingQuery, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", fn).Msg("failed to commit transaction")
		return models.SubmitAck{}, r.db.classifyError(ErrCommitingTransaction, err)
	}

	return models.SubmitAck{
		LocalID:    sub.LocalID,
		MutationID: sub.MutationID,
		ServerID:   serverID,
		Record:     record,
	}, nil
}

func (r *ledgerRepository) queryEntries(ctx context.Context, fn, query string, args []any) ([]models.LedgerEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("failed to query ledger entries")
		return nil, r.db.classifyError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.LedgerEntry, 0)
	for rows.Next() {
		e, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

func scanCustomer(row rowScanner) (models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.TotalDue, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func scanEntry(row rowScanner) (models.LedgerEntry, error) {
	var e models.LedgerEntry
	err := row.Scan(&e.ID, &e.CustomerID, &e.Kind, &e.Amount, &e.Note, &e.CreatedAt)
	e.CreatedAt = e.CreatedAt.UTC()
	return e, err
}
