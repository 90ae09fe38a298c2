package store

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.etcd.io/bbolt"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/models"
)

// keySep separates scope and id in record keys, so a scope prefix seek
// never matches a longer scope.
const keySep = 0x00

// boltStore is the bbolt-backed [LocalStore]. Every table is a bucket;
// records are keyed by scope+0x00+id and outbox entries by their big-endian
// sequence number.
type boltStore struct {
	db     *bbolt.DB
	locker *tableLocker
	logger *logger.Logger
}

// NewBoltStore opens (creating if needed) the bbolt file at path.
func NewBoltStore(path string, log *logger.Logger) (LocalStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create boltdb dir: %w", err)
		}
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		log.Err(err).Str("func", "NewBoltStore").Str("path", path).Msg("failed to open boltdb")
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &boltStore{db: db, locker: newTableLocker(), logger: log}
	if err = s.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}
	log.Debug().Str("func", "NewBoltStore").Str("path", path).Msg("opened boltdb successfully")

	return s, nil
}

func (s *boltStore) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, t := range allTables {
			if _, err := tx.CreateBucketIfNotExists([]byte(t)); err != nil {
				return fmt.Errorf("%w: create bucket %s: %w", ErrBoltOperation, t, err)
			}
		}
		return nil
	})
}

func (s *boltStore) ReadAll(ctx context.Context, scope string, table Table) ([]models.LocalRecord, error) {
	if !table.isEntity() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	var recs []models.LocalRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		recs, err = readBucket(tx, scope, table)
		return err
	})
	if err != nil {
		s.logger.Err(err).Str("func", "boltStore.ReadAll").Str("scope", scope).Str("table", string(table)).
			Msg("failed to read records")
		return nil, err
	}

	return recs, nil
}

func (s *boltStore) Get(ctx context.Context, scope string, table Table, id string) (models.LocalRecord, error) {
	if !table.isEntity() {
		return models.LocalRecord{}, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	var rec models.LocalRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		rec, err = getRecord(tx, scope, table, id)
		return err
	})

	return rec, err
}

func (s *boltStore) Put(ctx context.Context, rec models.LocalRecord) error {
	return putRecords(ctx, s, []models.LocalRecord{rec})
}

func (s *boltStore) BulkPut(ctx context.Context, recs []models.LocalRecord) error {
	return putRecords(ctx, s, recs)
}

func (s *boltStore) DeleteWhere(ctx context.Context, scope string, table Table, pred RecordPredicate) (int, error) {
	return deleteWhere(ctx, s, scope, table, pred)
}

func (s *boltStore) RunTransaction(ctx context.Context, tables []Table, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	unlock, locked, err := s.locker.lock(tables)
	if err != nil {
		return err
	}
	defer unlock()

	// bbolt rolls back and re-raises when fn panics
	var fnErr error
	err = s.db.Update(func(tx *bbolt.Tx) error {
		fnErr = fn(&boltTx{tx: tx, scope: locked})
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		s.logger.Err(err).Str("func", "boltStore.RunTransaction").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (s *boltStore) Pending(ctx context.Context, scope string) ([]models.QueueEntry, error) {
	var entries []models.QueueEntry
	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		entries, err = scanOutbox(tx, func(e models.QueueEntry) bool { return e.Scope == scope })
		return err
	})
	if err != nil {
		s.logger.Err(err).Str("func", "boltStore.Pending").Str("scope", scope).Msg("failed to read outbox")
		return nil, err
	}

	return entries, nil
}

func (s *boltStore) QueueScopes(ctx context.Context) ([]string, error) {
	var scopes []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		entries, err := scanOutbox(tx, nil)
		if err != nil {
			return err
		}
		for _, e := range entries {
			scopes = append(scopes, e.Scope)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sortedUnique(scopes), nil
}

func (s *boltStore) Scopes(ctx context.Context) ([]string, error) {
	var scopes []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		for _, t := range EntityTables {
			err := tx.Bucket([]byte(t)).ForEach(func(k, _ []byte) error {
				if scope, _, ok := bytes.Cut(k, []byte{keySep}); ok {
					scopes = append(scopes, string(scope))
				}
				return nil
			})
			if err != nil {
				return err
			}
		}

		entries, err := scanOutbox(tx, nil)
		if err != nil {
			return err
		}
		for _, e := range entries {
			scopes = append(scopes, e.Scope)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sortedUnique(scopes), nil
}

func (s *boltStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// boltTx is the [Tx] handed to RunTransaction callbacks.
type boltTx struct {
	tx    *bbolt.Tx
	scope txScope
}

func (t *boltTx) Get(scope string, table Table, id string) (models.LocalRecord, error) {
	if err := t.checkEntity(table); err != nil {
		return models.LocalRecord{}, err
	}
	return getRecord(t.tx, scope, table, id)
}

func (t *boltTx) ReadAll(scope string, table Table) ([]models.LocalRecord, error) {
	if err := t.checkEntity(table); err != nil {
		return nil, err
	}
	return readBucket(t.tx, scope, table)
}

func (t *boltTx) Put(rec models.LocalRecord) error {
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

	rec.Data = rawOrNull(rec.Data)
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingValue, err)
	}

	if err = t.tx.Bucket([]byte(table)).Put(recordKey(rec.Scope, rec.ID), data); err != nil {
		return fmt.Errorf("%w: %w", ErrBoltOperation, err)
	}

	return nil
}

func (t *boltTx) BulkPut(recs []models.LocalRecord) error {
	for _, rec := range recs {
		if err := t.Put(rec); err != nil {
			return err
		}
	}
	return nil
}

func (t *boltTx) DeleteWhere(scope string, table Table, pred RecordPredicate) (int, error) {
	recs, err := t.ReadAll(scope, table)
	if err != nil {
		return 0, err
	}

	bucket := t.tx.Bucket([]byte(table))
	n := 0
	for _, rec := range recs {
		if pred != nil && !pred(rec) {
			continue
		}
		if err = bucket.Delete(recordKey(scope, rec.ID)); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrBoltOperation, err)
		}
		n++
	}

	return n, nil
}

func (t *boltTx) Enqueue(entry models.QueueEntry) (models.QueueEntry, error) {
	if err := t.scope.check(TableOutbox); err != nil {
		return models.QueueEntry{}, err
	}

	bucket := t.tx.Bucket([]byte(TableOutbox))
	seq, err := bucket.NextSequence()
	if err != nil {
		return models.QueueEntry{}, fmt.Errorf("%w: %w", ErrBoltOperation, err)
	}
	entry.QueueID = int64(seq)
	entry.Payload = rawOrNull(entry.Payload)

	if err = putEntry(bucket, entry); err != nil {
		return models.QueueEntry{}, err
	}

	return entry, nil
}

func (t *boltTx) PendingEntries(scope string) ([]models.QueueEntry, error) {
	if err := t.scope.check(TableOutbox); err != nil {
		return nil, err
	}
	return scanOutbox(t.tx, func(e models.QueueEntry) bool { return e.Scope == scope })
}

func (t *boltTx) HasPending(scope, localID string) (bool, error) {
	entries, err := t.PendingEntries(scope)
	if err != nil {
		return false, err
	}
	return slices.ContainsFunc(entries, func(e models.QueueEntry) bool { return e.LocalID == localID }), nil
}

func (t *boltTx) UpdateEntry(entry models.QueueEntry) error {
	if err := t.scope.check(TableOutbox); err != nil {
		return err
	}

	bucket := t.tx.Bucket([]byte(TableOutbox))
	if bucket.Get(queueKey(entry.QueueID)) == nil {
		return fmt.Errorf("%w: %d", ErrEntryNotFound, entry.QueueID)
	}

	return putEntry(bucket, entry)
}

func (t *boltTx) RemoveEntry(queueID int64) error {
	if err := t.scope.check(TableOutbox); err != nil {
		return err
	}

	bucket := t.tx.Bucket([]byte(TableOutbox))
	key := queueKey(queueID)
	if bucket.Get(key) == nil {
		return fmt.Errorf("%w: %d", ErrEntryNotFound, queueID)
	}
	if err := bucket.Delete(key); err != nil {
		return fmt.Errorf("%w: %w", ErrBoltOperation, err)
	}

	return nil
}

func (t *boltTx) checkEntity(table Table) error {
	if !table.isEntity() {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return t.scope.check(table)
}

func recordKey(scope, id string) []byte {
	key := make([]byte, 0, len(scope)+1+len(id))
	key = append(key, scope...)
	key = append(key, keySep)
	return append(key, id...)
}

func queueKey(queueID int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(queueID))
	return key
}

func getRecord(tx *bbolt.Tx, scope string, table Table, id string) (models.LocalRecord, error) {
	data := tx.Bucket([]byte(table)).Get(recordKey(scope, id))
	if data == nil {
		return models.LocalRecord{}, ErrRecordNotFound
	}

	var rec models.LocalRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return models.LocalRecord{}, fmt.Errorf("%w: %w", ErrEncodingValue, err)
	}

	return rec, nil
}

func readBucket(tx *bbolt.Tx, scope string, table Table) ([]models.LocalRecord, error) {
	prefix := recordKey(scope, "")
	recs := make([]models.LocalRecord, 0)

	c := tx.Bucket([]byte(table)).Cursor()
	for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		var rec models.LocalRecord
		if err := json.Unmarshal(v, &rec); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodingValue, err)
		}
		recs = append(recs, rec)
	}

	return recs, nil
}

func putEntry(bucket *bbolt.Bucket, entry models.QueueEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingValue, err)
	}
	if err = bucket.Put(queueKey(entry.QueueID), data); err != nil {
		return fmt.Errorf("%w: %w", ErrBoltOperation, err)
	}
	return nil
}

// scanOutbox returns outbox entries in queue order, filtered by keep.
func scanOutbox(tx *bbolt.Tx, keep func(models.QueueEntry) bool) ([]models.QueueEntry, error) {
	entries := make([]models.QueueEntry, 0)
	err := tx.Bucket([]byte(TableOutbox)).ForEach(func(_, v []byte) error {
		var e models.QueueEntry
		if err := json.Unmarshal(v, &e); err != nil {
			return fmt.Errorf("%w: %w", ErrEncodingValue, err)
		}
		if keep == nil || keep(e) {
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func sortedUnique(in []string) []string {
	out := slices.Clone(in)
	slices.Sort(out)
	out = slices.Compact(out)
	if out == nil {
		out = make([]string, 0)
	}
	return out
}

