// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/models"
)

func newTestJob(h *harness, cfg config.ClientWorkers) *SyncJob {
	return NewSyncJob(h.outbox, h.reconcile, h.monitor, cfg, logger.Nop())
}

func TestSyncJob_Backoff(t *testing.T) {
	job := newTestJob(newHarness(t, false), config.ClientWorkers{
		SyncInterval: time.Minute,
		RetryMin:     time.Second,
		RetryMax:     10 * time.Second,
	})

	tests := []struct {
		attempts int
		want     time.Duration
	}{
		{attempts: 1, want: time.Second},
		{attempts: 2, want: 2 * time.Second},
		{attempts: 3, want: 4 * time.Second},
		{attempts: 4, want: 8 * time.Second},
		{attempts: 5, want: 10 * time.Second},
		{attempts: 50, want: 10 * time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, job.backoff(tt.attempts), "attempts=%d", tt.attempts)
	}
}

func TestNewSyncJob_Defaults(t *testing.T) {
	job := newTestJob(newHarness(t, false), config.ClientWorkers{RetryMin: time.Minute, RetryMax: time.Second})

	assert.Equal(t, time.Minute, job.cfg.SyncInterval)
	assert.Equal(t, time.Minute, job.cfg.RetryMax)
}

func TestSyncJob_Trigger_NeverBlocks(t *testing.T) {
	job := newTestJob(newHarness(t, false), config.ClientWorkers{})

	done := make(chan struct{})
	go func() {
		for range 10 {
			job.Trigger()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Trigger blocked")
	}
	assert.Len(t, job.trigger, 1)
}

func TestSyncJob_Run_DrainsWhenConnectivityReturns(t *testing.T) {
	h := newHarness(t, false, "shop-1")
	job := newTestJob(h, config.ClientWorkers{SyncInterval: time.Hour, RetryMin: 10 * time.Millisecond, RetryMax: 50 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c, err := h.write.AddCustomer(ctx, "shop-1", models.Customer{Name: "Karim"})
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- job.Run(ctx) }()

	h.monitor.SetOnline(true)

	require.Eventually(t, func() bool {
		entries, err := h.store.Pending(ctx, "shop-1")
		return err == nil && len(entries) == 0
	}, 2*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		rec, err := h.store.Get(ctx, "shop-1", store.TableCustomers, c.ID)
		return err == nil && rec.SyncStatus == models.SyncStatusSynced
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestSyncJob_Run_RetriesWithBackoff(t *testing.T) {
	h := newHarness(t, false, "shop-1")
	job := newTestJob(h, config.ClientWorkers{SyncInterval: time.Hour, RetryMin: 10 * time.Millisecond, RetryMax: 20 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := h.write.AddCustomer(ctx, "shop-1", models.Customer{ID: "A", Name: "A"})
	require.NoError(t, err)
	h.server.setDown(true)
	h.monitor.SetOnline(true)

	go func() { _ = job.Run(ctx) }()

	// the job keeps retrying on its own, well before SyncInterval
	require.Eventually(t, func() bool { return h.server.submitCount() >= 3 }, 2*time.Second, 5*time.Millisecond)

	h.server.setDown(false)
	require.Eventually(t, func() bool {
		return len(h.server.appliedIDs()) == 1
	}, 2*time.Second, 5*time.Millisecond)
}

func TestSyncJob_Run_NoFullReconcileWhileRetrying(t *testing.T) {
	h := newHarness(t, false, "shop-1")
	job := newTestJob(h, config.ClientWorkers{SyncInterval: time.Hour, RetryMin: 5 * time.Millisecond, RetryMax: 5 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := h.write.AddCustomer(ctx, "shop-1", models.Customer{ID: "A", Name: "A"})
	require.NoError(t, err)
	h.server.setDown(true)
	h.monitor.SetOnline(true)

	go func() { _ = job.Run(ctx) }()

	// сервер лежит: только повторы отправки, без полного забора данных
	require.Eventually(t, func() bool { return h.server.submitCount() >= 5 }, 2*time.Second, 5*time.Millisecond)
	assert.Zero(t, h.server.fetchCount())

	// the deferred reconciliation runs once the drain succeeds
	h.server.setDown(false)
	require.Eventually(t, func() bool {
		return len(h.server.appliedIDs()) == 1 && h.server.fetchCount() > 0
	}, 2*time.Second, 5*time.Millisecond)
}

func TestSyncJob_SyncOnce(t *testing.T) {
	h := newHarness(t, true, "shop-1")
	job := newTestJob(h, config.ClientWorkers{})
	ctx := context.Background()

	_, err := h.write.AddCustomer(ctx, "shop-1", models.Customer{ID: "A", Name: "A"})
	require.NoError(t, err)
	h.server.putCustomer("shop-1", models.Customer{ID: "B", Name: "B"})

	drained, reconciled, err := job.SyncOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, drained.Acked())
	require.Len(t, reconciled, 1)
	assert.Equal(t, map[string]string{"A": "A/synced", "B": "B/synced"}, customerNames(t, h, "shop-1"))
}

func TestSyncJob_SyncOnce_Offline(t *testing.T) {
	h := newHarness(t, false, "shop-1")
	job := newTestJob(h, config.ClientWorkers{})

	drained, reconciled, err := job.SyncOnce(context.Background())
	require.NoError(t, err)
	assert.True(t, drained.Skipped)
	assert.Nil(t, reconciled)
}
