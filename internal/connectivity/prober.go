package connectivity

import (
	"context"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
)

// Pinger checks that the server of record answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Prober periodically pings the server and feeds the result into a Monitor.
type Prober struct {
	pinger   Pinger
	monitor  *Monitor
	interval time.Duration
	timeout  time.Duration
	logger   *logger.Logger
}

// NewProber returns a prober pinging every interval. Each ping is bounded by
// half the interval.
func NewProber(pinger Pinger, monitor *Monitor, interval time.Duration, log *logger.Logger) *Prober {
	return &Prober{
		pinger:   pinger,
		monitor:  monitor,
		interval: interval,
		timeout:  interval / 2,
		logger:   log,
	}
}

// Run probes once immediately and then on every tick until ctx is done.
func (p *Prober) Run(ctx context.Context) error {
	p.Probe(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.Probe(ctx)
		}
	}
}

// Probe pings once, records the outcome and returns it.
func (p *Prober) Probe(ctx context.Context) bool {
	pingCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	err := p.pinger.Ping(pingCtx)
	if ctx.Err() != nil {
		// shutting down, the failure says nothing about the server
		return p.monitor.IsOnline()
	}

	online := err == nil
	if !online && p.monitor.IsOnline() {
		p.logger.Warn().Err(err).Str("func", "Prober.Probe").Msg("server unreachable, switching to offline mode")
	}
	if online && !p.monitor.IsOnline() {
		p.logger.Info().Str("func", "Prober.Probe").Msg("server reachable again")
	}
	p.monitor.SetOnline(online)

	return online
}
