package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/connectivity"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
)

// SyncJob drives the outbox and the reconciler. It drains on a ticker, on
// every Trigger and whenever the client comes back online; each drain that
// acknowledged entries is followed by a reconciliation of the affected
// scopes. A full reconciliation of every scope runs on the regular ticker
// and after coming back online, but never while a retry is pending. While a
// scope is halted by transient failures the ticker backs off exponentially
// between RetryMin and RetryMax.
type SyncJob struct {
	outbox    OutboxService
	reconcile ReconcileService
	monitor   Connectivity
	cfg       config.ClientWorkers

	trigger       chan struct{}
	needReconcile atomic.Bool

	logger *logger.Logger
}

// NewSyncJob creates an idle job. Call Run to start it.
func NewSyncJob(outbox OutboxService, reconcile ReconcileService, monitor Connectivity, cfg config.ClientWorkers, log *logger.Logger) *SyncJob {
	if cfg.SyncInterval <= 0 {
		cfg.SyncInterval = time.Minute
	}
	if cfg.RetryMin <= 0 {
		cfg.RetryMin = time.Second
	}
	if cfg.RetryMax < cfg.RetryMin {
		cfg.RetryMax = cfg.RetryMin
	}

	return &SyncJob{
		outbox:    outbox,
		reconcile: reconcile,
		monitor:   monitor,
		cfg:       cfg,
		trigger:   make(chan struct{}, 1),
		logger:    log,
	}
}

// Trigger implements [Nudger]. It never blocks; triggers that arrive while
// one is already waiting are merged.
func (j *SyncJob) Trigger() {
	select {
	case j.trigger <- struct{}{}:
	default:
	}
}

// Run implements workers.Worker. It returns nil when ctx is canceled.
func (j *SyncJob) Run(ctx context.Context) error {
	unsubscribe := j.monitor.Subscribe(func(t connectivity.Transition) {
		if t.WentOnline() {
			j.needReconcile.Store(true)
			j.Trigger()
		}
	})
	defer unsubscribe()

	delay, retrying := j.cfg.SyncInterval, false
	if j.monitor.IsOnline() {
		j.needReconcile.Store(true)
		delay, retrying = j.pass(ctx)
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-j.trigger:
		case <-timer.C:
			// a backoff tick only retries the drain
			if !retrying {
				j.needReconcile.Store(true)
			}
		}

		delay, retrying = j.pass(ctx)
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(delay)
	}
}

// SyncOnce drains the outbox and reconciles every scope once.
func (j *SyncJob) SyncOnce(ctx context.Context) (DrainResult, []ReconcileResult, error) {
	drained, err := j.outbox.Drain(ctx)
	if err != nil {
		return drained, nil, err
	}
	if drained.Skipped {
		return drained, nil, nil
	}

	reconciled, err := j.reconcile.ReconcileAll(ctx)
	return drained, reconciled, err
}

// pass runs one drain and the reconciliations that follow it. It returns the
// delay until the next scheduled pass and whether that pass is a retry.
func (j *SyncJob) pass(ctx context.Context) (time.Duration, bool) {
	log := j.logger.GetChildLogger()

	drained, err := j.outbox.Drain(ctx)
	if err != nil {
		log.Err(err).Str("func", "*SyncJob.pass").Msg("outbox drain failed")
		return j.cfg.RetryMin, true
	}
	if drained.Skipped || drained.Coalesced {
		return j.cfg.SyncInterval, false
	}

	attempts := drained.MaxAttempts()
	// a pending full reconciliation waits until the drain stops failing
	if attempts == 0 && j.needReconcile.Swap(false) {
		if _, err = j.reconcile.ReconcileAll(ctx); err != nil {
			log.Err(err).Str("func", "*SyncJob.pass").Msg("reconciliation failed")
			j.needReconcile.Store(true)
		}
	} else {
		for scope, res := range drained.Scopes {
			if res.Acked == 0 {
				continue
			}
			if _, err = j.reconcile.Reconcile(ctx, scope); err != nil {
				log.Err(err).Str("func", "*SyncJob.pass").Str("scope", scope).Msg("reconciliation failed")
			}
		}
	}

	if attempts > 0 {
		return j.backoff(attempts), true
	}
	return j.cfg.SyncInterval, false
}

// backoff returns RetryMin doubled for every failed attempt after the first,
// capped at RetryMax.
func (j *SyncJob) backoff(attempts int) time.Duration {
	delay := j.cfg.RetryMin
	for i := 1; i < attempts; i++ {
		delay *= 2
		if delay >= j.cfg.RetryMax {
			return j.cfg.RetryMax
		}
	}
	return delay
}
