package signal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dkeye/roomclient/internal/core"
	"github.com/dkeye/roomclient/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "tok1"

type sfuConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *sfuConn) writeJSON(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

// fakeSFU answers join/offer/constraints and records every inbound frame.
type fakeSFU struct {
	srv        *httptest.Server
	conns      chan *sfuConn
	received   chan map[string]any
	rejectJoin bool
	query      chan string
}

func createTestSFU(t *testing.T) *fakeSFU {
	t.Helper()
	f := &fakeSFU{
		conns:    make(chan *sfuConn, 4),
		received: make(chan map[string]any, 64),
		query:    make(chan string, 4),
	}
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		f.query <- r.URL.RawQuery
		sc := &sfuConn{conn: ws}
		f.conns <- sc
		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				return
			}
			var msg map[string]any
			if err := json.Unmarshal(data, &msg); err != nil {
				continue
			}
			f.received <- msg
			id, _ := msg["id"].(string)
			switch msg["type"] {
			case "join":
				ack := map[string]any{"type": "ack", "id": id}
				if f.rejectJoin {
					ack["error"] = "room full"
				}
				_ = sc.writeJSON(ack)
			case "offer":
				_ = sc.writeJSON(map[string]any{
					"type": "answer",
					"id":   id,
					"sdp":  map[string]any{"type": "answer", "sdp": "v=0\r\n"},
				})
			case "constraints":
				_ = sc.writeJSON(map[string]any{"type": "ack", "id": id})
			}
		}
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeSFU) url() string {
	return "ws" + strings.TrimPrefix(f.srv.URL, "http")
}

func (f *fakeSFU) nextConn(t *testing.T) *sfuConn {
	t.Helper()
	select {
	case c := <-f.conns:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("no connection")
		return nil
	}
}

func (f *fakeSFU) nextMessage(t *testing.T, typ string) map[string]any {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case m := <-f.received:
			if m["type"] == typ {
				return m
			}
		case <-deadline:
			t.Fatalf("no %s message", typ)
			return nil
		}
	}
}

func nextEvent(t *testing.T, events <-chan core.Event) core.Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no event")
		return core.Event{}
	}
}

func connectedClient(t *testing.T, f *fakeSFU) (*Client, <-chan core.Event) {
	t.Helper()
	c := NewClient(Options{URL: f.url(), Token: testToken, PeerName: "Alice", RequestTimeout: time.Second})
	events, unsub := c.Subscribe()
	t.Cleanup(func() {
		unsub()
		c.Disconnect()
	})
	require.NoError(t, c.Connect(context.Background()))
	assert.Equal(t, core.EventConnect, nextEvent(t, events).Kind)
	return c, events
}

func TestConnectAndJoin(t *testing.T) {
	f := createTestSFU(t)
	c, _ := connectedClient(t, f)
	f.nextConn(t)

	q := <-f.query
	assert.Contains(t, q, "name=Alice")
	assert.Contains(t, q, "peer="+string(c.PeerID()))

	require.NoError(t, c.Join(context.Background(), "abc-123"))
	msg := f.nextMessage(t, "join")
	assert.Equal(t, "abc-123", msg["room"])
	assert.Equal(t, "Alice", msg["name"])
}

func TestJoinRejected(t *testing.T) {
	f := createTestSFU(t)
	f.rejectJoin = true
	c, _ := connectedClient(t, f)

	err := c.Join(context.Background(), "abc-123")
	assert.ErrorIs(t, err, ErrRejected)
	// The connection survives a rejected join.
	assert.True(t, c.isConnected())
}

func TestConnectUnauthorized(t *testing.T) {
	f := createTestSFU(t)
	c := NewClient(Options{URL: f.url(), Token: "wrong"})
	err := c.Connect(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestConnectUnreachable(t *testing.T) {
	f := createTestSFU(t)
	url := f.url()
	f.srv.Close()

	c := NewClient(Options{URL: url, Token: testToken})
	err := c.Connect(context.Background())
	assert.ErrorIs(t, err, ErrConnect)
}

func TestInboundEventsInOrder(t *testing.T) {
	assert := assert.New(t)
	f := createTestSFU(t)
	_, events := connectedClient(t, f)
	sc := f.nextConn(t)

	require.NoError(t, sc.writeJSON(map[string]any{"type": "peer-join", "room": "abc", "peer": map[string]any{"id": "P1", "name": "Bob"}}))
	require.NoError(t, sc.writeJSON(map[string]any{"type": "stream-add", "room": "abc", "stream": map[string]any{"mid": "0", "peer_id": "P1"}}))
	require.NoError(t, sc.writeJSON(map[string]any{"type": "broadcast", "room": "abc", "peer": map[string]any{"id": "P1", "name": "Bob"}, "payload": map[string]any{"senderName": "Bob", "msg": "hi"}}))
	require.NoError(t, sc.writeJSON(map[string]any{"type": "peer-leave", "room": "abc", "peer": map[string]any{"id": "P1", "name": "Bob"}}))
	require.NoError(t, sc.writeJSON(map[string]any{"type": "disconnected", "reason": "room closed"}))

	ev := nextEvent(t, events)
	assert.Equal(core.EventPeerJoin, ev.Kind)
	assert.Equal(domain.PeerID("P1"), ev.Peer.ID)
	assert.Equal("Bob", ev.Peer.Name)

	ev = nextEvent(t, events)
	assert.Equal(core.EventStreamAdd, ev.Kind)
	assert.Equal("0", ev.Stream.MID)

	ev = nextEvent(t, events)
	assert.Equal(core.EventBroadcast, ev.Kind)
	assert.Equal("hi", ev.Message.Msg)
	assert.Equal("Bob", ev.Peer.Name)

	assert.Equal(core.EventPeerLeave, nextEvent(t, events).Kind)

	ev = nextEvent(t, events)
	assert.Equal(core.EventDisconnected, ev.Kind)
	assert.Equal("room closed", ev.Reason)
}

func TestBroadcast(t *testing.T) {
	f := createTestSFU(t)
	c, _ := connectedClient(t, f)

	require.NoError(t, c.Broadcast(core.BroadcastPayload{SenderName: "Alice", Msg: "hello"}, "abc"))
	msg := f.nextMessage(t, "broadcast")
	assert.Equal(t, "abc", msg["room"])
	payload, _ := msg["payload"].(map[string]any)
	assert.Equal(t, "hello", payload["msg"])
	assert.Equal(t, "Alice", payload["senderName"])
}

func TestNegotiateAndConstraints(t *testing.T) {
	f := createTestSFU(t)
	c, _ := connectedClient(t, f)

	answer, err := c.Negotiate(context.Background(), webrtc.SessionDescription{Type: webrtc.SDPTypeOffer, SDP: "v=0\r\n"})
	require.NoError(t, err)
	assert.Equal(t, webrtc.SDPTypeAnswer, answer.Type)

	cons := domain.DefaultMediaSettings().Constraints()
	require.NoError(t, c.ApplyConstraints(context.Background(), cons, "stream-1"))
	msg := f.nextMessage(t, "constraints")
	assert.Equal(t, "stream-1", msg["target"])
}

func TestTransportLoss(t *testing.T) {
	f := createTestSFU(t)
	_, events := connectedClient(t, f)
	sc := f.nextConn(t)

	_ = sc.conn.Close()
	ev := nextEvent(t, events)
	assert.Equal(t, core.EventDisconnect, ev.Kind)
	assert.Error(t, ev.Err)
}

func TestDisconnectIdempotent(t *testing.T) {
	f := createTestSFU(t)
	c, _ := connectedClient(t, f)
	require.NoError(t, c.Join(context.Background(), "abc"))

	c.Disconnect()
	c.Disconnect()

	assert.ErrorIs(t, c.Join(context.Background(), "abc"), ErrNotConnected)
	assert.ErrorIs(t, c.Broadcast(core.BroadcastPayload{Msg: "x"}, "abc"), ErrNotConnected)
	assert.ErrorIs(t, c.Connect(context.Background()), ErrClosed)

	// leave is flushed before the socket closes
	msg := f.nextMessage(t, "leave")
	assert.Equal(t, "abc", msg["room"])
}

func TestSecondSubscriptionRefused(t *testing.T) {
	c := NewClient(Options{URL: "ws://127.0.0.1:1"})
	_, unsub := c.Subscribe()
	defer unsub()

	ch, _ := c.Subscribe()
	_, open := <-ch
	assert.False(t, open)
}
