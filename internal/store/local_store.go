package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/models"
)

// NewLocalStore opens the local store selected by cfg.Driver.
func NewLocalStore(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (LocalStore, error) {
	log.Info().Str("driver", cfg.Driver).Str("path", cfg.Path).Msg("opening local store...")

	switch cfg.Driver {
	case config.DriverSQLite:
		return NewSQLiteStore(ctx, cfg.Path, log)
	case config.DriverBolt, "":
		return NewBoltStore(cfg.Path, log)
	}

	return nil, fmt.Errorf("%w: unsupported local driver %q", config.ErrInvalidStorageConfigs, cfg.Driver)
}

// putRecords upserts recs in a single transaction over their tables.
func putRecords(ctx context.Context, s LocalStore, recs []models.LocalRecord) error {
	if len(recs) == 0 {
		return nil
	}

	tables, err := tablesOf(recs)
	if err != nil {
		return err
	}

	return s.RunTransaction(ctx, tables, func(tx Tx) error {
		return tx.BulkPut(recs)
	})
}

func deleteWhere(ctx context.Context, s LocalStore, scope string, table Table, pred RecordPredicate) (int, error) {
	var n int
	err := s.RunTransaction(ctx, []Table{table}, func(tx Tx) error {
		var err error
		n, err = tx.DeleteWhere(scope, table, pred)
		return err
	})
	return n, err
}

func rawOrNull(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return []byte("null")
	}
	return raw
}
