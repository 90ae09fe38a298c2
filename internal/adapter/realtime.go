package adapter

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/MKhiriev/go-ledger-sync/internal/config"
	"github.com/MKhiriev/go-ledger-sync/internal/events"
	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/models"
)

const (
	realtimeBaseDelay = time.Second
	realtimeMaxDelay  = 30 * time.Second
	// a connection that stayed up this long resets the backoff
	realtimeStableAfter = time.Minute
)

// RealtimeClient keeps a websocket to the server's /ws endpoint open and
// re-emits every received envelope on the event bus. It reports the
// connection state to a [RealtimeSink] and reconnects with exponential
// backoff plus jitter.
type RealtimeClient struct {
	url       string
	token     string
	publisher Publisher
	sink      RealtimeSink

	baseDelay time.Duration
	maxDelay  time.Duration

	logger *logger.Logger
}

// NewRealtimeClient returns a client subscribed to scopes.
func NewRealtimeClient(adapterCfg config.ClientAdapter, scopes []string, publisher Publisher, sink RealtimeSink, log *logger.Logger) (*RealtimeClient, error) {
	if len(scopes) == 0 {
		return nil, ErrNoRealtimeScope
	}

	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, errors.Join(ErrInvalidAddress, err)
	}

	return &RealtimeClient{
		url:       realtimeURL(baseURL, scopes),
		token:     strings.TrimSpace(adapterCfg.Token),
		publisher: publisher,
		sink:      sink,
		baseDelay: realtimeBaseDelay,
		maxDelay:  realtimeMaxDelay,
		logger:    log,
	}, nil
}

func realtimeURL(baseURL string, scopes []string) string {
	wsURL := strings.Replace(baseURL, "https://", "wss://", 1)
	wsURL = strings.Replace(wsURL, "http://", "ws://", 1)

	q := url.Values{}
	for _, s := range scopes {
		q.Add("scope", s)
	}
	return wsURL + "/ws?" + q.Encode()
}

// Run connects and reconnects until ctx is done. It always returns nil on
// cancellation.
func (c *RealtimeClient) Run(ctx context.Context) error {
	attempt := 0
	for {
		connectedFor, err := c.session(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if connectedFor >= realtimeStableAfter {
			attempt = 0
		}

		delay := c.backoff(attempt)
		attempt++
		c.logger.Debug().Str("func", "*RealtimeClient.Run").
			Err(err).
			Int("attempt", attempt).
			Dur("delay", delay).
			Msg("realtime channel down, reconnecting")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

// session runs one connection and returns how long it stayed up.
func (c *RealtimeClient) session(ctx context.Context) (time.Duration, error) {
	opts := &websocket.DialOptions{}
	if c.token != "" {
		opts.HTTPHeader = http.Header{"Authorization": []string{"Bearer " + c.token}}
	}

	conn, _, err := websocket.Dial(ctx, c.url, opts)
	if err != nil {
		return 0, err
	}
	defer conn.Close(websocket.StatusGoingAway, "client shutting down")

	started := time.Now()
	c.sink.SetRealtimeConnected(true)
	defer c.sink.SetRealtimeConnected(false)

	c.logger.Info().Str("func", "*RealtimeClient.session").Msg("realtime channel connected")

	for {
		var env models.RealtimeEnvelope
		if err = wsjson.Read(ctx, conn, &env); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				err = ErrRealtimeClosed
			}
			return time.Since(started), err
		}
		c.dispatch(ctx, env)
	}
}

func (c *RealtimeClient) dispatch(ctx context.Context, env models.RealtimeEnvelope) {
	kind := models.EventKind(env.Kind)
	if !events.KnownKind(kind) || env.Scope == "" {
		c.logger.Warn().Str("func", "*RealtimeClient.dispatch").
			Str("kind", env.Kind).
			Str("scope", env.Scope).
			Msg("dropping unknown realtime envelope")
		return
	}
	c.publisher.Publish(ctx, kind, env.Scope, env.Payload)
}

func (c *RealtimeClient) backoff(attempt int) time.Duration {
	jitter := rand.Float64() * float64(c.baseDelay) * 0.5
	delay := math.Min(float64(c.baseDelay)*math.Pow(2, float64(attempt))+jitter, float64(c.maxDelay))
	return time.Duration(delay)
}
