package push

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Event kinds the backend pushes. Anything else is ignored so old clients
// survive new server releases.
const (
	EventRentalCreated  = "RENTAL_CREATED"
	EventRentalReturned = "RENTAL_RETURNED"
)

// Envelope is the JSON frame format on the push channel.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// EventData is the payload carried by the recognized event kinds.
type EventData struct {
	ItemName   string `json:"itemName"`
	RenterName string `json:"renterName"`
}

// Event is a recognized, decoded push notification.
type Event struct {
	Type       string
	ItemName   string
	RenterName string
}

// Conn is the subset of a websocket connection the listener reads from.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

// Dialer opens a push-channel connection. The default implementation wraps
// gorilla/websocket; tests substitute their own.
type Dialer func(ctx context.Context, url string) (Conn, error)

func gorillaDialer(ctx context.Context, url string) (Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Invalidator receives cache invalidations for recognized events.
type Invalidator interface {
	InvalidateRentals()
	InvalidateItems()
}

const (
	reconnectDelay = 5 * time.Second
	// placeholder text for events missing their payload fields
	unknownItem   = "an item"
	unknownRenter = "someone"
)

// Listener maintains a reconnecting subscription to the backend's push
// channel. Connection lifecycle:
//
//	connecting -> open -> closed -> (fixed delay) -> connecting ...
//
// looping until the owning context is cancelled. Recognized events
// invalidate the rentals and items caches and are handed to OnEvent for a
// user-visible notification.
type Listener struct {
	url     string
	dial    Dialer
	caches  Invalidator
	onEvent func(Event)
	logger  *slog.Logger

	// sleep waits for the reconnect delay; it reports false when the
	// context died during the wait. Swapped out in tests for virtual time.
	sleep func(ctx context.Context, d time.Duration) bool

	connected atomic.Bool
}

// New builds a Listener. onEvent may be nil when no notification surface
// exists (for example in tests that only care about invalidation).
func New(url string, caches Invalidator, onEvent func(Event)) *Listener {
	return &Listener{
		url:     url,
		dial:    gorillaDialer,
		caches:  caches,
		onEvent: onEvent,
		logger:  slog.Default().With("component", "push"),
		sleep:   sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// Connected reports whether the push channel is currently open.
func (l *Listener) Connected() bool {
	return l.connected.Load()
}

// Run drives the connect/read/reconnect loop until ctx is cancelled. There
// is at most one pending reconnect wait at any time, and no callbacks fire
// once ctx is done.
func (l *Listener) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		conn, err := l.dial(ctx, l.url)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			l.logger.Warn("push connect failed", "err", err)
			if !l.sleep(ctx, reconnectDelay) {
				return
			}
			continue
		}

		l.connected.Store(true)
		l.logger.Info("push channel open", "url", l.url)
		l.readLoop(ctx, conn)
		l.connected.Store(false)

		if ctx.Err() != nil {
			return
		}
		l.logger.Info("push channel closed, reconnecting", "delay", reconnectDelay)
		if !l.sleep(ctx, reconnectDelay) {
			return
		}
	}
}

// readLoop consumes frames until the connection fails or ctx is cancelled.
// A malformed frame is logged and dropped; it does not tear the connection
// down.
func (l *Listener) readLoop(ctx context.Context, conn Conn) {
	defer func() { _ = conn.Close() }()

	// Unblock ReadMessage when the owning context dies.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
		l.handleFrame(payload)
	}
}

func (l *Listener) handleFrame(payload []byte) {
	var envelope Envelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		l.logger.Warn("dropping malformed push frame", "err", err)
		return
	}

	switch envelope.Type {
	case EventRentalCreated, EventRentalReturned:
	default:
		l.logger.Debug("ignoring unknown push event", "type", envelope.Type)
		return
	}

	var data EventData
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &data); err != nil {
			l.logger.Warn("dropping push frame with malformed data", "type", envelope.Type, "err", err)
			return
		}
	}
	if data.ItemName == "" {
		data.ItemName = unknownItem
	}
	if data.RenterName == "" {
		data.RenterName = unknownRenter
	}

	// A rental changed server-side stock, so both collections are stale.
	l.caches.InvalidateRentals()
	l.caches.InvalidateItems()

	if l.onEvent != nil {
		l.onEvent(Event{Type: envelope.Type, ItemName: data.ItemName, RenterName: data.RenterName})
	}
}
