// Package signal is the websocket client to the conferencing backend.
package signal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dkeye/roomclient/internal/core"
	"github.com/dkeye/roomclient/internal/domain"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
)

var (
	ErrBackpressure     = errors.New("backpressure")
	ErrNotConnected     = errors.New("signal not connected")
	ErrAlreadyConnected = errors.New("signal already connected")
	ErrClosed           = errors.New("signal client closed")
	ErrConnect          = errors.New("signal connect failed")
	ErrUnauthorized     = errors.New("signal credential rejected")
	ErrRejected         = errors.New("signal request rejected")
	ErrTimeout          = errors.New("signal request timed out")
	ErrMalformed        = errors.New("signal reply malformed")
)

const (
	eventBuffer = 64
	sendBuffer  = 32
)

type Options struct {
	URL            string
	Token          domain.Token
	PeerName       string
	ReadLimit      int64
	PingPeriod     time.Duration
	WriteTimeout   time.Duration
	RequestTimeout time.Duration
	Dialer         *websocket.Dialer
}

type reply struct {
	sdp *answerSDP
	err error
}

// Client is a single signaling connection. Not reusable after Disconnect.
type Client struct {
	opts   Options
	peerID domain.PeerID

	conn *websocket.Conn
	send chan core.Frame

	mu        sync.RWMutex
	connected bool
	closed    bool
	room      domain.RoomID

	stop      chan struct{}
	closeOnce sync.Once
	lost      chan struct{}
	lostOnce  sync.Once
	// set after a server-initiated teardown so transport loss is not reported twice
	terminated atomic.Bool

	pendingMu sync.Mutex
	pending   map[string]chan reply

	events     chan core.Event
	subDone    chan struct{}
	subOnce    sync.Once
	subscribed atomic.Bool

	wg conc.WaitGroup
}

var _ core.SignalClient = (*Client)(nil)

func NewClient(opts Options) *Client {
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 5 * time.Second
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if opts.Dialer == nil {
		opts.Dialer = websocket.DefaultDialer
	}
	return &Client{
		opts:    opts,
		peerID:  domain.PeerID(uuid.NewString()),
		send:    make(chan core.Frame, sendBuffer),
		stop:    make(chan struct{}),
		lost:    make(chan struct{}),
		pending: make(map[string]chan reply),
		events:  make(chan core.Event, eventBuffer),
		subDone: make(chan struct{}),
	}
}

// Factory adapts NewClient to core.ClientFactory with shared options.
func Factory(base Options) core.ClientFactory {
	return func(url string, token domain.Token, peerName string) core.SignalClient {
		opts := base
		opts.URL = url
		opts.Token = token
		opts.PeerName = peerName
		return NewClient(opts)
	}
}

func (c *Client) PeerID() domain.PeerID { return c.peerID }

func (c *Client) Connect(ctx context.Context) error {
	c.mu.RLock()
	closed, conn := c.closed, c.conn
	c.mu.RUnlock()
	if closed {
		return ErrClosed
	}
	if conn != nil {
		return ErrAlreadyConnected
	}

	target, err := url.Parse(c.opts.URL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnect, err)
	}
	q := target.Query()
	q.Set("peer", string(c.peerID))
	q.Set("name", c.opts.PeerName)
	target.RawQuery = q.Encode()

	header := http.Header{}
	header.Set("Authorization", "Bearer "+string(c.opts.Token))

	ws, resp, err := c.opts.Dialer.DialContext(ctx, target.String(), header)
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return fmt.Errorf("%w: %d", ErrUnauthorized, resp.StatusCode)
		}
		return fmt.Errorf("%w: %v", ErrConnect, err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		_ = ws.Close()
		return ErrClosed
	}
	c.conn = ws
	c.connected = true
	c.mu.Unlock()

	log.Info().Str("module", "signal").Str("peer", string(c.peerID)).Str("url", c.opts.URL).Msg("connected")

	c.wg.Go(c.writePump)
	// connect goes out before anything the read pump may emit
	c.emit(core.Event{Kind: core.EventConnect})
	c.wg.Go(c.readPump)
	return nil
}

// Subscribe hands out the event stream once.
func (c *Client) Subscribe() (<-chan core.Event, func()) {
	if !c.subscribed.CompareAndSwap(false, true) {
		log.Warn().Str("module", "signal").Msg("second subscription refused")
		ch := make(chan core.Event)
		close(ch)
		return ch, func() {}
	}
	return c.events, func() {
		c.subOnce.Do(func() { close(c.subDone) })
	}
}

func (c *Client) Disconnect() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		room := c.room
		wasConnected := c.connected
		c.mu.Unlock()

		if wasConnected && room != "" {
			_ = c.sendJSON(leaveMsg{Type: "leave", Room: room})
		}

		c.mu.Lock()
		c.closed = true
		c.connected = false
		c.mu.Unlock()

		close(c.stop)
		c.wg.Wait()
		c.failPending(ErrClosed)
		log.Info().Str("module", "signal").Str("peer", string(c.peerID)).Msg("disconnected")
	})
}

func (c *Client) isConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected && !c.closed
}

func (c *Client) stopped() bool {
	select {
	case <-c.stop:
		return true
	default:
		return false
	}
}

// TrySend enqueues a frame for the write pump.
func (c *Client) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.conn == nil || !c.connected {
		return ErrNotConnected
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *Client) sendJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return err
	}
	return c.TrySend(b)
}

// emit blocks until the subscriber takes the event or the client is stopped.
func (c *Client) emit(ev core.Event) {
	select {
	case c.events <- ev:
	case <-c.subDone:
	case <-c.stop:
	}
}
