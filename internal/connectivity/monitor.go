// Package connectivity tracks whether the server of record is reachable and
// whether the realtime channel is up.
//
// A Monitor only records state and notifies subscribers of real changes.
// The Prober worker and the realtime client feed it; it never retries on its
// own.
package connectivity

import (
	"slices"
	"sync"
	"time"
)

// Quality summarises the link to the server.
type Quality string

const (
	QualityOffline  Quality = "offline"
	QualityDegraded Quality = "degraded" // online, realtime channel down
	QualityRealtime Quality = "realtime"
)

// State is a snapshot of the monitor.
type State struct {
	Online   bool `json:"online"`
	Realtime bool `json:"realtime"`
}

// Quality derives the link quality of s.
func (s State) Quality() Quality {
	switch {
	case !s.Online:
		return QualityOffline
	case !s.Realtime:
		return QualityDegraded
	}
	return QualityRealtime
}

// Transition describes a state change.
type Transition struct {
	From State     `json:"from"`
	To   State     `json:"to"`
	At   time.Time `json:"at"`
}

// WentOnline reports an offline to online move.
func (t Transition) WentOnline() bool { return !t.From.Online && t.To.Online }

// WentOffline reports an online to offline move.
func (t Transition) WentOffline() bool { return t.From.Online && !t.To.Online }

// Monitor is the goroutine-safe connectivity state holder.
type Monitor struct {
	mu sync.Mutex
	// delivering is taken before mu is released, so subscribers see
	// transitions in the order the state changed.
	delivering sync.Mutex
	state      State
	subs       map[int]func(Transition)
	next       int
	now        func() time.Time
}

// NewMonitor returns a monitor starting at initial.
func NewMonitor(initial State) *Monitor {
	if initial.Realtime {
		initial.Online = true
	}
	return &Monitor{
		state: initial,
		subs:  make(map[int]func(Transition)),
		now:   time.Now,
	}
}

func (m *Monitor) IsOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Online
}

func (m *Monitor) IsRealtimeConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Realtime
}

func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Monitor) Quality() Quality {
	return m.State().Quality()
}

// SetOnline records reachability. Going offline also marks the realtime
// channel down.
func (m *Monitor) SetOnline(online bool) {
	m.update(func(s State) State {
		s.Online = online
		if !online {
			s.Realtime = false
		}
		return s
	})
}

// SetRealtimeConnected records the realtime channel state. A live channel
// implies the server is reachable.
func (m *Monitor) SetRealtimeConnected(connected bool) {
	m.update(func(s State) State {
		s.Realtime = connected
		if connected {
			s.Online = true
		}
		return s
	})
}

// Subscribe registers fn for every future transition and returns a func
// that removes it. fn runs synchronously on the goroutine that changed the
// state and must not block or change the monitor state itself. Deliveries
// never overlap and follow the order of the changes.
func (m *Monitor) Subscribe(fn func(Transition)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.next
	m.next++
	m.subs[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}

func (m *Monitor) update(change func(State) State) {
	m.mu.Lock()
	from := m.state
	to := change(from)
	if to == from {
		m.mu.Unlock()
		return
	}
	m.state = to

	ids := make([]int, 0, len(m.subs))
	for id := range m.subs {
		ids = append(ids, id)
	}
	subs := make([]func(Transition), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		subs = append(subs, m.subs[id])
	}
	tr := Transition{From: from, To: to, At: m.now()}

	m.delivering.Lock()
	defer m.delivering.Unlock()
	m.mu.Unlock()

	for _, fn := range subs {
		fn(tr)
	}
}
