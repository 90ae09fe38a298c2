// Package cache is the read side of the ledger client: a keyed,
// stale-while-revalidate cache of report queries.
//
// Reads never block on the network once a value is present. Stale or
// invalidated entries keep being served while a background fetch replaces
// them. Fetches of one key are deduplicated with singleflight, rate limited
// per key by a minimum refresh interval and ordered newer-wins by their start
// time. Invalidation is driven by the event bus ([Cache.BindEvents]), by the
// [Poller] and by the [Prefetcher].
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/connectivity"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
)

// Fetcher loads the current value of one key.
type Fetcher func(ctx context.Context) (any, error)

// FetcherFactory builds the fetcher of a key of a registered resource.
type FetcherFactory func(key QueryKey) (Fetcher, error)

// Connectivity is the part of the connectivity monitor the cache reads.
type Connectivity interface {
	IsOnline() bool
	IsRealtimeConnected() bool
	Subscribe(fn func(connectivity.Transition)) (unsubscribe func())
}

// Cache is safe for concurrent use.
type Cache struct {
	mu sync.Mutex

	entries     *lru.Cache[QueryKey, *Entry]
	lastRefresh map[QueryKey]time.Time
	trailing    map[QueryKey]*time.Timer
	watched     map[QueryKey]Fetcher
	resources   map[string]FetcherFactory

	visible   bool
	lastTouch time.Time

	group   singleflight.Group
	monitor Connectivity
	cfg     config.ClientCache

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed bool

	now    func() time.Time
	logger *logger.Logger
}

// New returns a cache sized and timed by cfg. Unset durations and capacity
// take the client defaults. A zero MinRefreshInterval disables the refresh
// guard and a zero PrefetchLimit disables prefetching.
func New(cfg config.ClientCache, monitor Connectivity, log *logger.Logger) (*Cache, error) {
	cfg = withDefaults(cfg)

	c := &Cache{
		lastRefresh: make(map[QueryKey]time.Time),
		trailing:    make(map[QueryKey]*time.Timer),
		watched:     make(map[QueryKey]Fetcher),
		resources:   make(map[string]FetcherFactory),
		visible:     true,
		monitor:     monitor,
		cfg:         cfg,
		now:         time.Now,
		logger:      log,
	}

	entries, err := lru.NewWithEvict(cfg.Capacity, c.onEvict)
	if err != nil {
		return nil, fmt.Errorf("create lru: %w", err)
	}
	c.entries = entries
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.lastTouch = c.now()

	return c, nil
}

func withDefaults(cfg config.ClientCache) config.ClientCache {
	def := config.ClientDefaults().Cache
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = def.StaleAfter
	}
	if cfg.EventDebounce <= 0 {
		cfg.EventDebounce = def.EventDebounce
	}
	if cfg.MinRefreshInterval < 0 {
		cfg.MinRefreshInterval = 0
	}
	if cfg.PollFast <= 0 {
		cfg.PollFast = def.PollFast
	}
	if cfg.PollSlow <= 0 {
		cfg.PollSlow = def.PollSlow
	}
	if cfg.IdleAfter <= 0 {
		cfg.IdleAfter = def.IdleAfter
	}
	if cfg.PrefetchLimit < 0 {
		cfg.PrefetchLimit = 0
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = def.Capacity
	}
	return cfg
}

// onEvict runs inside entries.Add, which is only called with c.mu held.
func (c *Cache) onEvict(key QueryKey, _ *Entry) {
	if _, watched := c.watched[key]; watched {
		return
	}
	delete(c.lastRefresh, key)
}

// Get returns the cached value of key, stale or not, and whether one was
// present. A stale or missing value is refreshed in the background while
// online.
func (c *Cache) Get(ctx context.Context, key QueryKey, fetch Fetcher) (any, bool) {
	c.mu.Lock()
	e, ok := c.entries.Get(key)
	var (
		value any
		stale = true
	)
	if ok {
		value, stale = e.Value, !e.Fresh(c.now())
	}
	c.mu.Unlock()

	if stale && c.monitor.IsOnline() {
		c.refresh(key, fetch)
	}
	return value, ok
}

// Load is the blocking form of Get. A present value is returned at once;
// a missing one is fetched synchronously, online or not, so that offline
// fetchers can answer from the local mirror.
func (c *Cache) Load(ctx context.Context, key QueryKey, fetch Fetcher) (any, error) {
	if value, ok := c.Get(ctx, key, fetch); ok {
		return value, nil
	}

	fetch, err := c.fetcherFor(key, fetch)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	c.lastRefresh[key] = c.now()
	c.mu.Unlock()

	return c.fetch(ctx, key, fetch)
}

// Peek returns the entry of key without touching recency or fetching.
func (c *Cache) Peek(key QueryKey) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries.Peek(key)
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Invalidate marks every entry matching pattern stale and forgets in-flight
// fetches of those keys, so the next fetch starts fresh. It returns the
// number of entries marked.
func (c *Cache) Invalidate(pattern QueryPattern) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for _, key := range c.entries.Keys() {
		if !pattern.Matches(key) {
			continue
		}
		e, ok := c.entries.Peek(key)
		if !ok {
			continue
		}
		e.Invalidated = true
		e.invalidatedAt = now
		c.group.Forget(key.String())
		n++
	}
	return n
}

// RegisterResource sets the factory used to build fetchers for keys of
// resource when none is given.
func (c *Cache) RegisterResource(resource string, factory FetcherFactory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resources[resource] = factory
}

// Watch marks key as actively displayed. Watched keys are revalidated by
// the poller and refreshed on matching events. fetch may be nil when the
// key's resource is registered.
func (c *Cache) Watch(key QueryKey, fetch Fetcher) error {
	fetch, err := c.fetcherFor(key, fetch)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.watched[key] = fetch
	return nil
}

func (c *Cache) Unwatch(key QueryKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.watched, key)
}

// Watched returns the watched keys.
func (c *Cache) Watched() []QueryKey {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]QueryKey, 0, len(c.watched))
	for k := range c.watched {
		keys = append(keys, k)
	}
	return keys
}

// SetVisible records whether the view is on screen. Polling pauses while
// it is not.
func (c *Cache) SetVisible(visible bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = visible
}

// Touch records foreground interaction and ends the current idle period.
func (c *Cache) Touch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastTouch = c.now()
}

// Close stops pending refreshes and waits for running fetches.
func (c *Cache) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	for key, t := range c.trailing {
		t.Stop()
		delete(c.trailing, key)
	}
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
}

// refreshWatched refreshes every watched key matching pattern.
func (c *Cache) refreshWatched(pattern QueryPattern) int {
	c.mu.Lock()
	due := make(map[QueryKey]Fetcher)
	for key, fetch := range c.watched {
		if pattern.Matches(key) {
			due[key] = fetch
		}
	}
	c.mu.Unlock()

	if !c.monitor.IsOnline() {
		return 0
	}
	for key, fetch := range due {
		c.refresh(key, fetch)
	}
	return len(due)
}

// refresh starts a background fetch of key. Within MinRefreshInterval of
// the previous refresh the call is folded into one trailing refresh at the
// end of the interval.
func (c *Cache) refresh(key QueryKey, fetch Fetcher) {
	fetch, err := c.fetcherFor(key, fetch)
	if err != nil {
		c.logger.Warn().Err(err).Str("func", "*Cache.refresh").Str("key", key.String()).Msg("refresh skipped")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	now := c.now()
	if last, ok := c.lastRefresh[key]; ok {
		if wait := last.Add(c.cfg.MinRefreshInterval).Sub(now); wait > 0 {
			if _, pending := c.trailing[key]; !pending {
				c.trailing[key] = time.AfterFunc(wait, func() {
					c.mu.Lock()
					delete(c.trailing, key)
					c.mu.Unlock()
					c.refresh(key, fetch)
				})
			}
			return
		}
	}
	c.lastRefresh[key] = now

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if _, err := c.fetch(c.ctx, key, fetch); err != nil && c.ctx.Err() == nil {
			c.logger.Warn().Err(err).Str("func", "*Cache.refresh").Str("key", key.String()).Msg("background fetch failed")
		}
	}()
}

// fetch runs fetch through singleflight and stores the result.
func (c *Cache) fetch(ctx context.Context, key QueryKey, fetch Fetcher) (any, error) {
	value, err, _ := c.group.Do(key.String(), func() (any, error) {
		started := c.now()
		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.store(key, value, started)
		return value, nil
	})
	return value, err
}

// store keeps value unless a fetch that started later already landed.
func (c *Cache) store(key QueryKey, value any, started time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	prev, ok := c.entries.Peek(key)
	if ok && started.Before(prev.FetchedAt) {
		return
	}

	e := &Entry{Key: key, Value: value, FetchedAt: started, StaleAfter: c.cfg.StaleAfter}
	if ok && started.Before(prev.invalidatedAt) {
		e.Invalidated = true
		e.invalidatedAt = prev.invalidatedAt
	}
	c.entries.Add(key, e)
}

func (c *Cache) fetcherFor(key QueryKey, fetch Fetcher) (Fetcher, error) {
	if fetch != nil {
		return fetch, nil
	}

	c.mu.Lock()
	factory, ok := c.resources[key.Resource]
	c.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoFetcher, key.Resource)
	}
	return factory(key)
}

func (c *Cache) isVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

func (c *Cache) idleSince() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastTouch
}
