// Package events is the in-process publish/subscribe hub that links writes,
// sync and realtime pushes to the query cache and the CLI.
//
// Delivery is synchronous: Emit returns after every matching listener ran.
// Listeners run in descending priority; equal priorities keep registration
// order.
package events

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/models"
)

// Handler reacts to one event. A returned error is logged and does not stop
// delivery to the remaining listeners.
type Handler func(ctx context.Context, ev models.SyncEvent) error

// Options tune a listener. An empty Scope receives events of every scope.
type Options struct {
	Scope    string
	Priority int
}

// Handle identifies a registered listener.
type Handle uint64

type listener struct {
	handle  Handle
	kind    models.EventKind
	handler Handler
	opts    Options
}

// Bus is a typed, goroutine-safe event bus.
type Bus struct {
	mu        sync.RWMutex
	next      Handle
	listeners map[models.EventKind][]listener

	logger *logger.Logger
	now    func() time.Time
}

// NewBus returns an empty bus that logs listener failures to log.
func NewBus(log *logger.Logger) *Bus {
	return &Bus{
		listeners: make(map[models.EventKind][]listener),
		logger:    log,
		now:       time.Now,
	}
}

// AddListener registers handler for kind and returns its handle.
func (b *Bus) AddListener(kind models.EventKind, handler Handler, opts Options) Handle {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	l := listener{handle: b.next, kind: kind, handler: handler, opts: opts}

	list := b.listeners[kind]
	// insert after every listener with priority >= opts.Priority
	i := len(list)
	for i > 0 && list[i-1].opts.Priority < opts.Priority {
		i--
	}
	b.listeners[kind] = slices.Insert(list, i, l)

	return l.handle
}

// RemoveListener unregisters h. It reports whether h was registered.
func (b *Bus) RemoveListener(h Handle) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for kind, list := range b.listeners {
		for i, l := range list {
			if l.handle != h {
				continue
			}
			// copy so snapshots taken by a running Emit stay intact
			b.listeners[kind] = slices.Delete(slices.Clone(list), i, i+1)
			if len(b.listeners[kind]) == 0 {
				delete(b.listeners, kind)
			}
			return true
		}
	}
	return false
}

// ListenerCount returns how many listeners are registered for kind.
func (b *Bus) ListenerCount(kind models.EventKind) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[kind])
}

// Emit delivers ev to the listeners of ev.Kind whose scope matches and
// returns how many ran without failing. A zero Timestamp is set to now.
func (b *Bus) Emit(ctx context.Context, ev models.SyncEvent) int {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = b.now()
	}

	b.mu.RLock()
	snapshot := slices.Clone(b.listeners[ev.Kind])
	b.mu.RUnlock()

	delivered := 0
	for _, l := range snapshot {
		if l.opts.Scope != "" && l.opts.Scope != ev.Scope {
			continue
		}
		if err := b.call(ctx, l, ev); err != nil {
			b.logger.Err(err).
				Str("func", "Bus.Emit").
				Str("kind", string(ev.Kind)).
				Str("scope", ev.Scope).
				Uint64("listener", uint64(l.handle)).
				Msg("event listener failed")
			continue
		}
		delivered++
	}

	return delivered
}

// Publish is a shorthand for Emit with a freshly built event.
func (b *Bus) Publish(ctx context.Context, kind models.EventKind, scope string, payload any) int {
	return b.Emit(ctx, models.SyncEvent{Kind: kind, Scope: scope, Payload: payload})
}

func (b *Bus) call(ctx context.Context, l listener, ev models.SyncEvent) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrListenerPanic, p)
		}
	}()
	return l.handler(ctx, ev)
}
