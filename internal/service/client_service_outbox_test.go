// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-ledger-sync/internal/events"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/mock"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/models"
)

// ── Drain ────────────────────────────────────────────────────────────────────

func TestOutboxService_Drain_OfflineIsNoop(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	_, err := h.write.AddCustomer(ctx, "shop-1", models.Customer{Name: "Karim"})
	require.NoError(t, err)

	res, err := h.outbox.Drain(ctx)
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Zero(t, h.server.submitCount())
	assert.Len(t, h.pending(t, "shop-1"), 1)
}

// Сценарий: продавец без сети заводит клиента и продажу в долг,
// сеть появляется, всё уходит на сервер и зеркало совпадает с сервером.
func TestOutboxService_Drain_OfflineCustomerAndSaleReachServer(t *testing.T) {
	h := newHarness(t, false, "shop-1")
	ctx := context.Background()

	karim, err := h.write.AddCustomer(ctx, "shop-1", models.Customer{Name: "Karim", Phone: "+8801700000000"})
	require.NoError(t, err)
	sale, err := h.write.AddEntry(ctx, "shop-1", models.LedgerEntry{
		CustomerID: karim.ID,
		Kind:       models.EntryKindSale,
		Amount:     500,
		Note:       "rice",
	})
	require.NoError(t, err)

	assert.Equal(t, models.SyncStatusNew, h.record(t, "shop-1", store.TableCustomers, karim.ID).SyncStatus)
	assert.Equal(t, models.SyncStatusNew, h.record(t, "shop-1", store.TableLedgerEntries, sale.ID).SyncStatus)

	h.monitor.SetOnline(true)

	res, err := h.outbox.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Acked())
	assert.Equal(t, []string{karim.ID, sale.ID}, h.server.appliedIDs())
	assert.Empty(t, h.pending(t, "shop-1"))

	assert.Equal(t, models.SyncStatusSynced, h.record(t, "shop-1", store.TableCustomers, karim.ID).SyncStatus)
	assert.Equal(t, models.SyncStatusSynced, h.record(t, "shop-1", store.TableLedgerEntries, sale.ID).SyncStatus)

	_, err = h.reconcile.Reconcile(ctx, "shop-1")
	require.NoError(t, err)

	mirrored, err := models.DecodeRecord[models.Customer](h.record(t, "shop-1", store.TableCustomers, karim.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(500), mirrored.Value.TotalDue)
	assert.Equal(t, models.SyncStatusSynced, mirrored.SyncStatus)
}

func TestOutboxService_Drain_InterruptedDrainKeepsOrder(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"A", "B", "C"} {
		c, err := h.write.AddCustomer(ctx, "shop-1", models.Customer{ID: name, Name: name})
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}
	h.server.failNext("B")
	h.monitor.SetOnline(true)

	res, err := h.outbox.Drain(ctx)
	require.NoError(t, err)

	scope := res.Scopes["shop-1"]
	assert.Equal(t, 1, scope.Acked)
	assert.True(t, scope.Halted)
	assert.Equal(t, 1, scope.Attempts)
	assert.Equal(t, 1, res.MaxAttempts())

	left := h.pending(t, "shop-1")
	assert.Equal(t, []string{"B", "C"}, localIDs(left))
	assert.Equal(t, 1, left[0].Attempts)
	assert.NotEmpty(t, left[0].LastError)
	require.NotNil(t, left[0].LastAttemptAt)
	assert.Zero(t, left[1].Attempts)

	res, err = h.outbox.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Acked())
	assert.Zero(t, res.MaxAttempts())

	assert.Equal(t, ids, h.server.appliedIDs())
	assert.Empty(t, h.pending(t, "shop-1"))
}

func TestOutboxService_Drain_LostAckIsNotAppliedTwice(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	c, err := h.write.AddCustomer(ctx, "shop-1", models.Customer{Name: "Karim"})
	require.NoError(t, err)
	h.server.loseAck[c.ID] = true
	h.monitor.SetOnline(true)

	res, err := h.outbox.Drain(ctx)
	require.NoError(t, err)
	assert.True(t, res.Scopes["shop-1"].Halted)
	require.Len(t, h.pending(t, "shop-1"), 1)
	assert.Equal(t, models.SyncStatusNew, h.record(t, "shop-1", store.TableCustomers, c.ID).SyncStatus)

	res, err = h.outbox.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Acked())

	assert.Equal(t, []string{c.ID}, h.server.appliedIDs())
	assert.Equal(t, 2, h.server.submitCount())
	assert.Empty(t, h.pending(t, "shop-1"))
	assert.Equal(t, models.SyncStatusSynced, h.record(t, "shop-1", store.TableCustomers, c.ID).SyncStatus)
}

func TestOutboxService_Drain_RejectedEntryIsDroppedAndReported(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	_, err := h.write.AddCustomer(ctx, "shop-1", models.Customer{ID: "A", Name: "A"})
	require.NoError(t, err)
	bad, err := h.write.AddEntry(ctx, "shop-1", models.LedgerEntry{Kind: models.EntryKindSale, Amount: 10, CustomerID: "ghost"})
	require.NoError(t, err)
	_, err = h.write.AddCustomer(ctx, "shop-1", models.Customer{ID: "C", Name: "C"})
	require.NoError(t, err)

	h.server.reject[bad.ID] = true
	h.monitor.SetOnline(true)

	res, err := h.outbox.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Scopes["shop-1"].Acked)
	assert.Equal(t, 1, res.Scopes["shop-1"].Rejected)
	assert.False(t, res.Scopes["shop-1"].Halted)
	assert.Equal(t, []string{"A", "C"}, h.server.appliedIDs())
	assert.Empty(t, h.pending(t, "shop-1"))

	rejected := h.bus.ofKind(events.KindMutationRejected)
	require.Len(t, rejected, 1)
	payload, ok := rejected[0].Payload.(models.RejectedMutation)
	require.True(t, ok)
	assert.Equal(t, bad.ID, payload.Entry.LocalID)
	assert.Contains(t, payload.Reason, "customer does not exist")

	// the optimistic record stays for the user to fix
	assert.Equal(t, models.SyncStatusNew, h.record(t, "shop-1", store.TableLedgerEntries, bad.ID).SyncStatus)
}

// Сценарий: сервер отклонил создание клиента, а за ним в очереди стоят
// правка этого клиента и продажа на него. Очередь не должна застрять.
func TestOutboxService_Drain_RejectedCreateDropsDependentsAndKeepsDraining(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	karim, err := h.write.AddCustomer(ctx, "shop-1", models.Customer{Name: "Karim"})
	require.NoError(t, err)
	karim.Name = "Karim B."
	_, err = h.write.UpdateCustomer(ctx, "shop-1", karim)
	require.NoError(t, err)
	sale, err := h.write.AddEntry(ctx, "shop-1", models.LedgerEntry{Kind: models.EntryKindSale, Amount: 300, CustomerID: karim.ID})
	require.NoError(t, err)
	ann, err := h.write.AddCustomer(ctx, "shop-1", models.Customer{Name: "Ann"})
	require.NoError(t, err)

	queued := h.pending(t, "shop-1")
	require.Len(t, queued, 4)
	h.server.reject[queued[0].MutationID] = true
	h.monitor.SetOnline(true)

	res, err := h.outbox.Drain(ctx)
	require.NoError(t, err)

	scope := res.Scopes["shop-1"]
	assert.False(t, scope.Halted)
	assert.Zero(t, scope.Attempts)
	assert.Equal(t, 3, scope.Rejected)
	assert.Equal(t, 1, scope.Acked)
	assert.Empty(t, h.pending(t, "shop-1"))
	assert.Equal(t, []string{ann.ID}, h.server.appliedIDs())
	assert.Equal(t, 4, h.server.submitCount())

	rejected := h.bus.ofKind(events.KindMutationRejected)
	require.Len(t, rejected, 3)
	var rejectedIDs []string
	for _, ev := range rejected {
		payload, ok := ev.Payload.(models.RejectedMutation)
		require.True(t, ok)
		rejectedIDs = append(rejectedIDs, payload.Entry.LocalID)
	}
	assert.Equal(t, []string{karim.ID, karim.ID, sale.ID}, rejectedIDs)

	// a second pass has nothing left to retry
	res, err = h.outbox.Drain(ctx)
	require.NoError(t, err)
	assert.Zero(t, res.Acked())
	assert.Equal(t, 4, h.server.submitCount())
}

func TestOutboxService_Drain_LaterEditKeepsRecordPending(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	c, err := h.write.AddCustomer(ctx, "shop-1", models.Customer{Name: "Karim"})
	require.NoError(t, err)
	c.Name = "Karim B."
	_, err = h.write.UpdateCustomer(ctx, "shop-1", c)
	require.NoError(t, err)

	queued := h.pending(t, "shop-1")
	require.Len(t, queued, 2)
	h.server.failNext(queued[1].MutationID)
	h.monitor.SetOnline(true)

	_, err = h.outbox.Drain(ctx)
	require.NoError(t, err)

	// create acked, update still queued: the record must not flip to synced
	assert.Equal(t, models.SyncStatusNew, h.record(t, "shop-1", store.TableCustomers, c.ID).SyncStatus)

	_, err = h.outbox.Drain(ctx)
	require.NoError(t, err)

	rec, err := models.DecodeRecord[models.Customer](h.record(t, "shop-1", store.TableCustomers, c.ID))
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusSynced, rec.SyncStatus)
	assert.Equal(t, "Karim B.", rec.Value.Name)
}

func TestOutboxService_Drain_HaltedScopeDoesNotBlockOthers(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	_, err := h.write.AddCustomer(ctx, "shop-1", models.Customer{ID: "A", Name: "A"})
	require.NoError(t, err)
	_, err = h.write.AddCustomer(ctx, "shop-2", models.Customer{ID: "X", Name: "X"})
	require.NoError(t, err)

	h.server.failNext("A")
	h.monitor.SetOnline(true)

	res, err := h.outbox.Drain(ctx)
	require.NoError(t, err)
	assert.True(t, res.Scopes["shop-1"].Halted)
	assert.Equal(t, 1, res.Scopes["shop-2"].Acked)
	assert.Equal(t, []string{"X"}, h.server.appliedIDs())
}

func TestOutboxService_Drain_ConcurrentCallIsCoalesced(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, false)
	ctx := context.Background()

	_, err := h.write.AddCustomer(ctx, "shop-1", models.Customer{ID: "A", Name: "A"})
	require.NoError(t, err)
	h.monitor.SetOnline(true)

	remote := mock.NewMockRemoteAPI(ctrl)
	outbox := NewOutboxService(h.store, remote, h.monitor, h.bus, logger.Nop())

	started := make(chan struct{})
	release := make(chan struct{})
	remote.EXPECT().Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sub models.Submission) (models.SubmitAck, error) {
			close(started)
			<-release
			return models.SubmitAck{LocalID: sub.LocalID, MutationID: sub.MutationID}, nil
		}).
		Times(1)

	var (
		wg    sync.WaitGroup
		first DrainResult
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		first, _ = outbox.Drain(ctx)
	}()

	<-started
	second, err := outbox.Drain(ctx)
	require.NoError(t, err)
	assert.True(t, second.Coalesced)

	close(release)
	wg.Wait()

	assert.Equal(t, 2, first.Passes)
	assert.Equal(t, 1, first.Acked())
}

func TestOutboxService_Drain_StopsWhenGoingOffline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, false)
	ctx := context.Background()

	for _, id := range []string{"A", "B"} {
		_, err := h.write.AddCustomer(ctx, "shop-1", models.Customer{ID: id, Name: id})
		require.NoError(t, err)
	}
	_, err := h.write.AddCustomer(ctx, "shop-2", models.Customer{ID: "X", Name: "X"})
	require.NoError(t, err)
	h.monitor.SetOnline(true)

	remote := mock.NewMockRemoteAPI(ctrl)
	outbox := NewOutboxService(h.store, remote, h.monitor, h.bus, logger.Nop())

	// shop-1 drains fully, then the network drops before shop-2
	remote.EXPECT().Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sub models.Submission) (models.SubmitAck, error) {
			if sub.LocalID == "B" {
				h.monitor.SetOnline(false)
			}
			return models.SubmitAck{LocalID: sub.LocalID, MutationID: sub.MutationID}, nil
		}).
		Times(2)

	res, err := outbox.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Acked())
	assert.Len(t, h.pending(t, "shop-2"), 1)
}

// ── Enqueue / Pending ────────────────────────────────────────────────────────

func TestOutboxService_Enqueue_AssignsIDs(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()
	h.outbox.now = func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) }

	var got models.QueueEntry
	err := h.store.RunTransaction(ctx, []store.Table{store.TableOutbox}, func(tx store.Tx) error {
		var err error
		got, err = h.outbox.Enqueue(ctx, tx, "shop-1", models.EntityCustomer, models.OperationCreate, "", json.RawMessage(`{}`))
		return err
	})
	require.NoError(t, err)

	assert.NotEmpty(t, got.LocalID)
	assert.NotEmpty(t, got.MutationID)
	assert.NotZero(t, got.QueueID)
	assert.Equal(t, time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC), got.CreatedAt)

	count, err := h.outbox.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestOutboxService_PendingCount_AcrossScopes(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	for _, scope := range []string{"shop-1", "shop-1", "shop-2"} {
		_, err := h.write.AddCustomer(ctx, scope, models.Customer{Name: "n"})
		require.NoError(t, err)
	}

	count, err := h.outbox.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	pending, err := h.outbox.Pending(ctx, "shop-1")
	require.NoError(t, err)
	assert.Len(t, pending, 2)
	assert.Less(t, pending[0].QueueID, pending[1].QueueID)
}
