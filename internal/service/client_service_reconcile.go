package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/adapter"
	"github.com/MKhiriev/go-ledger-sync/internal/events"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/models"
)

type reconcileService struct {
	store  store.LocalStore
	remote adapter.RemoteAPI
	bus    EventPublisher
	scopes []string
	now    func() time.Time

	logger *logger.Logger
}

// NewReconcileService returns a reconciler for the configured scopes. Scopes
// found in the local store are reconciled too.
func NewReconcileService(localStore store.LocalStore, remote adapter.RemoteAPI, bus EventPublisher, scopes []string, log *logger.Logger) ReconcileService {
	return &reconcileService{
		store:  localStore,
		remote: remote,
		bus:    bus,
		scopes: scopes,
		now:    time.Now,
		logger: log,
	}
}

// Reconcile implements [ReconcileService].
//
// The server snapshot is fetched before anything is written, so a failed
// fetch leaves the mirror as it was. The reseed runs in one transaction over
// every entity table: synced records are dropped, then server rows are
// written except those whose id carries a pending local write.
func (s *reconcileService) Reconcile(ctx context.Context, scope string) (ReconcileResult, error) {
	log := s.logger.WithScope(scope)

	snapshot := make(map[store.Table][]models.LocalRecord, len(models.MirroredEntities))
	result := ReconcileResult{Scope: scope, Fetched: make(map[models.EntityType]int, len(models.MirroredEntities))}

	for _, entityType := range models.MirroredEntities {
		table, err := store.TableFor(entityType)
		if err != nil {
			return ReconcileResult{}, err
		}

		recs, err := s.remote.FetchRecords(ctx, scope, entityType)
		if err != nil {
			log.Err(err).Str("func", "*reconcileService.Reconcile").
				Str("entity_type", string(entityType)).
				Msg("failed to fetch server snapshot, mirror left unchanged")
			return ReconcileResult{}, fmt.Errorf("fetch %s of %s: %w", entityType, scope, err)
		}
		snapshot[table] = recs
		result.Fetched[entityType] = len(recs)
	}

	err := s.store.RunTransaction(ctx, store.EntityTables, func(tx store.Tx) error {
		for _, table := range store.EntityTables {
			removed, err := tx.DeleteWhere(scope, table, func(rec models.LocalRecord) bool {
				return rec.SyncStatus.Reseedable()
			})
			if err != nil {
				return err
			}
			result.Removed += removed

			kept, err := tx.ReadAll(scope, table)
			if err != nil {
				return err
			}
			pending := make(map[string]struct{}, len(kept))
			for _, rec := range kept {
				pending[rec.ID] = struct{}{}
			}

			fresh := make([]models.LocalRecord, 0, len(snapshot[table]))
			for _, rec := range snapshot[table] {
				if _, ok := pending[rec.ID]; ok {
					result.Preserved++
					continue
				}
				rec.Scope = scope
				rec.SyncStatus = models.SyncStatusSynced
				fresh = append(fresh, rec)
			}

			if err = tx.BulkPut(fresh); err != nil {
				return err
			}
			result.Inserted += len(fresh)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*reconcileService.Reconcile").Msg("failed to reseed local mirror")
		return ReconcileResult{}, err
	}

	result.At = s.now().UTC()
	log.Debug().Str("func", "*reconcileService.Reconcile").
		Int("removed", result.Removed).
		Int("inserted", result.Inserted).
		Int("preserved", result.Preserved).
		Msg("scope reconciled")

	s.bus.Publish(ctx, events.KindSyncComplete, scope, result)
	return result, nil
}

// ReconcileAll implements [ReconcileService]. A failing scope does not stop
// the others; every failure is returned joined.
func (s *reconcileService) ReconcileAll(ctx context.Context) ([]ReconcileResult, error) {
	scopes, err := s.allScopes(ctx)
	if err != nil {
		return nil, err
	}

	var (
		results []ReconcileResult
		errs    []error
	)
	for _, scope := range scopes {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		res, err := s.Reconcile(ctx, scope)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results = append(results, res)
	}

	return results, errors.Join(errs...)
}

func (s *reconcileService) allScopes(ctx context.Context) ([]string, error) {
	known, err := s.store.Scopes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list local scopes: %w", err)
	}

	scopes := slices.Clone(s.scopes)
	for _, scope := range known {
		if !slices.Contains(scopes, scope) {
			scopes = append(scopes, scope)
		}
	}
	return scopes, nil
}
