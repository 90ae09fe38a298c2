package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/models"
)

var (
	recordColumns = []string{"scope", "id", "data", "updated_at", "sync_status"}
	outboxColumns = []string{
		"queue_id", "scope", "entity_type", "operation", "payload", "local_id",
		"mutation_id", "created_at", "attempts", "last_error", "last_attempt_at",
	}
)

const (
	upsertRecordSuffix = `ON CONFLICT (scope, id) DO UPDATE SET
		data = excluded.data,
		updated_at = excluded.updated_at,
		sync_status = excluded.sync_status`

	selectAllScopes = `SELECT scope FROM customers
		UNION SELECT scope FROM ledger_entries
		UNION SELECT scope FROM outbox
		ORDER BY scope`
)

// sqliteStore is the SQLite-backed [LocalStore].
type sqliteStore struct {
	db      *DB
	locker  *tableLocker
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

// NewSQLiteStore opens the SQLite file at path and applies pending
// migrations.
func NewSQLiteStore(ctx context.Context, path string, log *logger.Logger) (LocalStore, error) {
	db, err := NewConnectSQLite(ctx, path, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.MigrateSQLite(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &sqliteStore{
		db:      db,
		locker:  newTableLocker(),
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  log,
	}, nil
}

func (s *sqliteStore) ReadAll(ctx context.Context, scope string, table Table) ([]models.LocalRecord, error) {
	if !table.isEntity() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return s.readAll(ctx, s.db, scope, table)
}

func (s *sqliteStore) Get(ctx context.Context, scope string, table Table, id string) (models.LocalRecord, error) {
	if !table.isEntity() {
		return models.LocalRecord{}, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return s.get(ctx, s.db, scope, table, id)
}

func (s *sqliteStore) Put(ctx context.Context, rec models.LocalRecord) error {
	return putRecords(ctx, s, []models.LocalRecord{rec})
}

func (s *sqliteStore) BulkPut(ctx context.Context, recs []models.LocalRecord) error {
	return putRecords(ctx, s, recs)
}

func (s *sqliteStore) DeleteWhere(ctx context.Context, scope string, table Table, pred RecordPredicate) (int, error) {
	return deleteWhere(ctx, s, scope, table, pred)
}

func (s *sqliteStore) RunTransaction(ctx context.Context, tables []Table, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	unlock, locked, err := s.locker.lock(tables)
	if err != nil {
		return err
	}
	defer unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Err(err).Str("func", "sqliteStore.RunTransaction").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
	}()

	if err = fn(&sqliteTx{ctx: ctx, tx: sqlTx, scope: locked, store: s}); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			s.logger.Err(rbErr).Str("func", "sqliteStore.RunTransaction").Msg("failed to rollback transaction")
		}
		return err
	}

	if err = sqlTx.Commit(); err != nil {
		s.logger.Err(err).Str("func", "sqliteStore.RunTransaction").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (s *sqliteStore) Pending(ctx context.Context, scope string) ([]models.QueueEntry, error) {
	return s.pending(ctx, s.db, scope)
}

func (s *sqliteStore) QueueScopes(ctx context.Context) ([]string, error) {
	query, args, err := s.builder.Select("DISTINCT scope").From(string(TableOutbox)).OrderBy("scope").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return s.scanScopes(ctx, "sqliteStore.QueueScopes", query, args...)
}

func (s *sqliteStore) Scopes(ctx context.Context) ([]string, error) {
	return s.scanScopes(ctx, "sqliteStore.Scopes", selectAllScopes)
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func (s *sqliteStore) scanScopes(ctx context.Context, fn, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Err(err).Str("func", fn).Msg("failed to query scopes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	scopes := make([]string, 0)
	for rows.Next() {
		var scope string
		if err = rows.Scan(&scope); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		scopes = append(scopes, scope)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return scopes, nil
}

func (s *sqliteStore) readAll(ctx context.Context, q querier, scope string, table Table) ([]models.LocalRecord, error) {
	query, args, err := s.builder.Select(recordColumns...).
		From(string(table)).
		Where(sq.Eq{"scope": scope}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Err(err).Str("func", "sqliteStore.ReadAll").Str("scope", scope).Str("table", string(table)).
			Msg("failed to query records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	recs := make([]models.LocalRecord, 0)
	for rows.Next() {
		rec, scanErr := scanRecord(rows, table)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		recs = append(recs, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return recs, nil
}

func (s *sqliteStore) get(ctx context.Context, q querier, scope string, table Table, id string) (models.LocalRecord, error) {
	query, args, err := s.builder.Select(recordColumns...).
		From(string(table)).
		Where(sq.Eq{"scope": scope, "id": id}).
		ToSql()
	if err != nil {
		return models.LocalRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rec, err := scanRecord(q.QueryRowContext(ctx, query, args...), table)
	if errors.Is(err, sql.ErrNoRows) {
		return models.LocalRecord{}, ErrRecordNotFound
	}
	if err != nil {
		s.logger.Err(err).Str("func", "sqliteStore.Get").Str("scope", scope).Str("id", id).Msg("failed to get record")
		return models.LocalRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return rec, nil
}

func (s *sqliteStore) pending(ctx context.Context, q querier, scope string) ([]models.QueueEntry, error) {
	query, args, err := s.builder.Select(outboxColumns...).
		From(string(TableOutbox)).
		Where(sq.Eq{"scope": scope}).
		OrderBy("queue_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Err(err).Str("func", "sqliteStore.Pending").Str("scope", scope).Msg("failed to query outbox")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.QueueEntry, 0)
	for rows.Next() {
		var (
			e             models.QueueEntry
			createdAt     int64
			lastAttemptAt sql.NullInt64
			payload       []byte
		)
		if err = rows.Scan(&e.QueueID, &e.Scope, &e.EntityType, &e.Operation, &payload, &e.LocalID,
			&e.MutationID, &createdAt, &e.Attempts, &e.LastError, &lastAttemptAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		e.Payload = payload
		e.CreatedAt = fromNanos(createdAt)
		if lastAttemptAt.Valid {
			at := fromNanos(lastAttemptAt.Int64)
			e.LastAttemptAt = &at
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner, table Table) (models.LocalRecord, error) {
	var (
		rec       models.LocalRecord
		data      []byte
		updatedAt int64
	)
	if err := row.Scan(&rec.Scope, &rec.ID, &data, &updatedAt, &rec.SyncStatus); err != nil {
		return models.LocalRecord{}, err
	}
	rec.EntityType = table.EntityType()
	rec.Data = data
	rec.UpdatedAt = fromNanos(updatedAt)
	return rec, nil
}

// sqliteTx is the [Tx] handed to RunTransaction callbacks.
type sqliteTx struct {
	ctx   context.Context
	tx    *sql.Tx
	scope txScope
	store *sqliteStore
}

func (t *sqliteTx) Get(scope string, table Table, id string) (models.LocalRecord, error) {
	if err := t.checkEntity(table); err != nil {
		return models.LocalRecord{}, err
	}
	return t.store.get(t.ctx, t.tx, scope, table, id)
}

func (t *sqliteTx) ReadAll(scope string, table Table) ([]models.LocalRecord, error) {
	if err := t.checkEntity(table); err != nil {
		return nil, err
	}
	return t.store.readAll(t.ctx, t.tx, scope, table)
}

func (t *sqliteTx) Put(rec models.LocalRecord) error {
	table, err := TableFor(rec.EntityType)
	if err != nil {
		return err
	}
	if err = t.scope.check(table); err != nil {
		return err
	}
	if err = validateRecord(rec); err != nil {
		return err
	}

	query, args, err := t.store.builder.Insert(string(table)).
		Columns(recordColumns...).
		Values(rec.Scope, rec.ID, rawOrNull(rec.Data), toNanos(rec.UpdatedAt), string(rec.SyncStatus)).
		Suffix(upsertRecordSuffix).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = t.tx.ExecContext(t.ctx, query, args...); err != nil {
		t.store.logger.Err(err).Str("func", "sqliteTx.Put").Str("scope", rec.Scope).Str("id", rec.ID).
			Msg("failed to upsert record")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (t *sqliteTx) BulkPut(recs []models.LocalRecord) error {
	for _, rec := range recs {
		if err := t.Put(rec); err != nil {
			return err
		}
	}
	return nil
}

func (t *sqliteTx) DeleteWhere(scope string, table Table, pred RecordPredicate) (int, error) {
	recs, err := t.ReadAll(scope, table)
	if err != nil {
		return 0, err
	}

	ids := make([]string, 0, len(recs))
	for _, rec := range recs {
		if pred == nil || pred(rec) {
			ids = append(ids, rec.ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := t.store.builder.Delete(string(table)).
		Where(sq.Eq{"scope": scope, "id": ids}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := t.tx.ExecContext(t.ctx, query, args...)
	if err != nil {
		t.store.logger.Err(err).Str("func", "sqliteTx.DeleteWhere").Str("scope", scope).Msg("failed to delete records")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return int(n), nil
}

func (t *sqliteTx) Enqueue(entry models.QueueEntry) (models.QueueEntry, error) {
	if err := t.scope.check(TableOutbox); err != nil {
		return models.QueueEntry{}, err
	}

	query, args, err := t.store.builder.Insert(string(TableOutbox)).
		Columns(outboxColumns[1:]...).
		Values(entry.Scope, string(entry.EntityType), string(entry.Operation), rawOrNull(entry.Payload), entry.LocalID,
			entry.MutationID, toNanos(entry.CreatedAt), entry.Attempts, entry.LastError, nullableNanos(entry.LastAttemptAt)).
		ToSql()
	if err != nil {
		return models.QueueEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := t.tx.ExecContext(t.ctx, query, args...)
	if err != nil {
		t.store.logger.Err(err).Str("func", "sqliteTx.Enqueue").Str("scope", entry.Scope).Msg("failed to enqueue entry")
		return models.QueueEntry{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if entry.QueueID, err = res.LastInsertId(); err != nil {
		return models.QueueEntry{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return entry, nil
}

func (t *sqliteTx) PendingEntries(scope string) ([]models.QueueEntry, error) {
	if err := t.scope.check(TableOutbox); err != nil {
		return nil, err
	}
	return t.store.pending(t.ctx, t.tx, scope)
}

func (t *sqliteTx) HasPending(scope, localID string) (bool, error) {
	if err := t.scope.check(TableOutbox); err != nil {
		return false, err
	}

	query, args, err := t.store.builder.Select("COUNT(*)").
		From(string(TableOutbox)).
		Where(sq.Eq{"scope": scope, "local_id": localID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var n int
	if err = t.tx.QueryRowContext(t.ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return n > 0, nil
}

func (t *sqliteTx) UpdateEntry(entry models.QueueEntry) error {
	if err := t.scope.check(TableOutbox); err != nil {
		return err
	}

	query, args, err := t.store.builder.Update(string(TableOutbox)).
		Set("attempts", entry.Attempts).
		Set("last_error", entry.LastError).
		Set("last_attempt_at", nullableNanos(entry.LastAttemptAt)).
		Where(sq.Eq{"queue_id": entry.QueueID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return t.execOne("sqliteTx.UpdateEntry", entry.QueueID, query, args)
}

func (t *sqliteTx) RemoveEntry(queueID int64) error {
	if err := t.scope.check(TableOutbox); err != nil {
		return err
	}

	query, args, err := t.store.builder.Delete(string(TableOutbox)).
		Where(sq.Eq{"queue_id": queueID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return t.execOne("sqliteTx.RemoveEntry", queueID, query, args)
}

func (t *sqliteTx) execOne(fn string, queueID int64, query string, args []any) error {
	res, err := t.tx.ExecContext(t.ctx, query, args...)
	if err != nil {
		t.store.logger.Err(err).Str("func", fn).Int64("queue_id", queueID).Msg("failed to execute outbox statement")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrEntryNotFound, queueID)
	}

	return nil
}

func (t *sqliteTx) checkEntity(table Table) error {
	if !table.isEntity() {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return t.scope.check(table)
}

func nullableNanos(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toNanos(*t), Valid: true}
}
