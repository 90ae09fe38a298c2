package cache

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/events"
	"github.com/MKhiriev/go-ledger-sync/models"
)

// Subscriber is the part of the event bus the cache listens on.
type Subscriber interface {
	AddListener(kind models.EventKind, handler events.Handler, opts events.Options) events.Handle
	RemoveListener(h events.Handle) bool
}

// Rule maps an event kind to the resources it makes stale.
type Rule struct {
	Kind      models.EventKind
	Resources []string
}

// DefaultRules invalidate the reports touched by each kind of change.
var DefaultRules = []Rule{
	{Kind: events.KindSaleUpdate, Resources: []string{ResourceSummary, ResourceEntries}},
	{Kind: events.KindExpenseUpdate, Resources: []string{ResourceSummary, ResourceEntries}},
	{Kind: events.KindCashUpdate, Resources: []string{ResourceSummary, ResourceEntries}},
	{Kind: events.KindCustomerUpdate, Resources: []string{ResourceCustomers, ResourceSummary}},
	{Kind: events.KindSyncComplete, Resources: []string{ResourceSummary, ResourceEntries, ResourceCustomers}},
}

// listenerPriority runs cache invalidation ahead of UI listeners, so that
// they read refreshed entries.
const listenerPriority = 100

type debounceKey struct {
	kind  models.EventKind
	scope string
}

// BindEvents subscribes the cache to bus. Events of one kind and scope are
// accepted at most once per EventDebounce; an accepted event invalidates the
// rule's resources for its scope and refreshes the matching watched keys.
// The returned func removes the listeners.
func (c *Cache) BindEvents(bus Subscriber, rules []Rule) (unbind func()) {
	var (
		mu       sync.Mutex
		accepted = make(map[debounceKey]time.Time)
	)

	accept := func(kind models.EventKind, scope string) bool {
		mu.Lock()
		defer mu.Unlock()

		now := c.now()
		k := debounceKey{kind: kind, scope: scope}
		if last, ok := accepted[k]; ok && now.Sub(last) < c.cfg.EventDebounce {
			return false
		}
		accepted[k] = now
		return true
	}

	handles := make([]events.Handle, 0, len(rules))
	for _, rule := range rules {
		handles = append(handles, bus.AddListener(rule.Kind, func(_ context.Context, ev models.SyncEvent) error {
			if !accept(ev.Kind, ev.Scope) {
				return nil
			}

			marked, refreshed := 0, 0
			for _, resource := range rule.Resources {
				pattern := QueryPattern{Resource: resource, Scope: ev.Scope}
				marked += c.Invalidate(pattern)
				refreshed += c.refreshWatched(pattern)
			}

			c.logger.Debug().
				Str("func", "*Cache.BindEvents").
				Str("kind", string(ev.Kind)).
				Str("scope", ev.Scope).
				Int("invalidated", marked).
				Int("refreshed", refreshed).
				Msg("event accepted")
			return nil
		}, events.Options{Priority: listenerPriority}))
	}

	return func() {
		for _, h := range handles {
			bus.RemoveListener(h)
		}
	}
}
