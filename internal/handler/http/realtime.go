package http

import (
	"context"
	"net/http"
	"slices"
	"sync"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
	"github.com/MKhiriev/go-ledger-sync/models"
)

const (
	subscriberBuffer = 64
	writeTimeout     = 5 * time.Second
)

// Hub fans realtime envelopes out to the websocket subscribers of their
// scope. It implements service.Notifier.
type Hub struct {
	mu   sync.Mutex
	subs map[*subscriber]struct{}

	logger *logger.Logger
}

type subscriber struct {
	scopes []string
	msgs   chan models.RealtimeEnvelope
	// dropped is closed when the hub gives up on a slow subscriber.
	dropped chan struct{}
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{subs: make(map[*subscriber]struct{}), logger: log}
}

// Notify queues env for every subscriber of its scope. A subscriber whose
// buffer is full is disconnected; it resynchronizes on reconnect.
func (h *Hub) Notify(env models.RealtimeEnvelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		if !slices.Contains(sub.scopes, env.Scope) {
			continue
		}
		select {
		case sub.msgs <- env:
		default:
			h.logger.Warn().Str("func", "*Hub.Notify").Strs("scopes", sub.scopes).Msg("dropping slow realtime subscriber")
			delete(h.subs, sub)
			close(sub.dropped)
		}
	}
}

// Subscribers returns the number of connected subscribers.
func (h *Hub) Subscribers() int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) subscribe(scopes []string) *subscriber {
	sub := &subscriber{
		scopes:  scopes,
		msgs:    make(chan models.RealtimeEnvelope, subscriberBuffer),
		dropped: make(chan struct{}),
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *Hub) unsubscribe(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, sub)
}

// realtime upgrades GET /ws?scope=a&scope=b to a websocket and streams the
// envelopes of those scopes. With token checks on, the token must grant
// every requested scope.
func (h *Handler) realtime(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	scopes := r.URL.Query()["scope"]
	if len(scopes) == 0 {
		utils.WriteError(w, ErrNoScopes.Error(), http.StatusBadRequest)
		return
	}

	if h.tokenSignKey != "" {
		granted, status, err := h.grantedScope(r)
		if err != nil {
			log.Err(err).Str("func", "*Handler.realtime").Int("status", status).Send()
			utils.WriteError(w, err.Error(), status)
			return
		}
		for _, s := range scopes {
			if s != granted {
				utils.WriteError(w, ErrScopeMismatch.Error(), http.StatusForbidden)
				return
			}
		}
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Err(err).Str("func", "*Handler.realtime").Msg("websocket upgrade failed")
		return
	}
	defer conn.CloseNow()

	sub := h.hub.subscribe(scopes)
	defer h.hub.unsubscribe(sub)

	log.Info().Str("func", "*Handler.realtime").Strs("scopes", scopes).Msg("realtime subscriber connected")

	// the client never sends; CloseRead handles its close frame
	ctx := conn.CloseRead(r.Context())
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.dropped:
			conn.Close(websocket.StatusPolicyViolation, "subscriber too slow")
			return
		case env := <-sub.msgs:
			if err = write(ctx, conn, env); err != nil {
				log.Debug().Err(err).Str("func", "*Handler.realtime").Msg("realtime write failed")
				return
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, env models.RealtimeEnvelope) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, env)
}
