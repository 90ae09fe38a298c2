package cache

import (
	"context"
	"time"
)

// Prefetcher warms likely next queries while the user is idle: the
// neighbouring date ranges of every watched key.
type Prefetcher struct {
	cache *Cache
	// period is the idle period already served, identified by the last touch.
	period time.Time
	served bool
}

func NewPrefetcher(c *Cache) *Prefetcher {
	return &Prefetcher{cache: c}
}

// Run checks for idleness every IdleAfter until ctx is done.
func (p *Prefetcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.cache.cfg.IdleAfter)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.Prefetch(ctx)
		}
	}
}

// Prefetch warms up to PrefetchLimit keys once per idle period and returns
// the number of keys fetched.
func (p *Prefetcher) Prefetch(ctx context.Context) int {
	c := p.cache
	touched := c.idleSince()
	if c.now().Sub(touched) < c.cfg.IdleAfter {
		return 0
	}
	if p.served && p.period.Equal(touched) {
		return 0
	}
	if !c.monitor.IsOnline() {
		return 0
	}
	p.period, p.served = touched, true

	warmed := 0
	for _, key := range c.candidates() {
		if warmed >= c.cfg.PrefetchLimit || ctx.Err() != nil {
			break
		}
		fetch, err := c.fetcherFor(key, nil)
		if err != nil {
			continue
		}
		if _, err = c.fetch(ctx, key, fetch); err != nil {
			c.logger.Debug().Err(err).Str("func", "*Prefetcher.Prefetch").Str("key", key.String()).Msg("prefetch failed")
			continue
		}
		warmed++
	}

	if warmed > 0 {
		c.logger.Debug().Str("func", "*Prefetcher.Prefetch").Int("warmed", warmed).Msg("idle prefetch done")
	}
	return warmed
}

// candidates lists the adjacent-range keys of the watched keys that are not
// fresh in the cache, without duplicates.
func (c *Cache) candidates() []QueryKey {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	seen := make(map[QueryKey]struct{})
	var keys []QueryKey
	for watched := range c.watched {
		if watched.Range.IsZero() {
			continue
		}
		for _, r := range watched.Range.Adjacent() {
			key := watched.WithRange(r)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if _, isWatched := c.watched[key]; isWatched {
				continue
			}
			if e, ok := c.entries.Peek(key); ok && e.Fresh(now) {
				continue
			}
			keys = append(keys, key)
		}
	}
	return keys
}
