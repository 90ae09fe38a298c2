package cache

import (
	"context"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/connectivity"
)

// Poller revalidates the watched keys in the background. It polls often
// while the realtime channel is down and rarely while it is up, and does
// nothing while the view is hidden or the client is offline.
type Poller struct {
	cache *Cache
	rearm chan connectivity.Transition
}

func NewPoller(c *Cache) *Poller {
	return &Poller{cache: c, rearm: make(chan connectivity.Transition, 1)}
}

// Interval returns the current polling period.
func (p *Poller) Interval() time.Duration {
	if p.cache.monitor.IsRealtimeConnected() {
		return p.cache.cfg.PollSlow
	}
	return p.cache.cfg.PollFast
}

// Run polls until ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	unsubscribe := p.cache.monitor.Subscribe(func(t connectivity.Transition) {
		select {
		case p.rearm <- t:
		default:
		}
	})
	defer unsubscribe()

	timer := time.NewTimer(p.Interval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-p.rearm:
			if t.WentOnline() {
				p.Poll()
			}
		case <-timer.C:
			p.Poll()
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(p.Interval())
	}
}

// Poll refreshes every watched key once and returns how many were
// refreshed.
func (p *Poller) Poll() int {
	if !p.cache.isVisible() || !p.cache.monitor.IsOnline() {
		return 0
	}
	return p.cache.refreshWatched(QueryPattern{})
}
