package signal

import (
	"encoding/json"
	"time"

	"github.com/dkeye/roomclient/internal/core"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func (c *Client) readWait() time.Duration {
	if c.opts.PingPeriod <= 0 {
		return 0
	}
	return 2 * c.opts.PingPeriod
}

func (c *Client) extendRead() {
	if wait := c.readWait(); wait > 0 {
		_ = c.conn.SetReadDeadline(time.Now().Add(wait))
	}
}

func (c *Client) writePump() {
	var tick <-chan time.Time
	if c.opts.PingPeriod > 0 {
		ticker := time.NewTicker(c.opts.PingPeriod)
		defer ticker.Stop()
		tick = ticker.C
	}
	defer func() { _ = c.conn.Close() }()

	for {
		select {
		case <-c.stop:
			c.flush()
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(c.opts.WriteTimeout))
			log.Info().Str("module", "signal").Msg("writePump stopped")
			return
		case <-c.lost:
			log.Info().Str("module", "signal").Msg("writePump connection lost")
			return
		case data := <-c.send:
			if err := c.write(data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		case <-tick:
			if err := c.write(pingFrame); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump ping error")
				return
			}
		}
	}
}

func (c *Client) write(data core.Frame) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.opts.WriteTimeout)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// flush writes whatever is queued, such as a final leave.
func (c *Client) flush() {
	for {
		select {
		case data := <-c.send:
			if err := c.write(data); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		c.lostOnce.Do(func() { close(c.lost) })
		_ = c.conn.Close()
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
		c.failPending(ErrNotConnected)
		log.Info().Str("module", "signal").Str("peer", string(c.peerID)).Msg("readPump closing")
	}()

	if c.opts.ReadLimit > 0 {
		c.conn.SetReadLimit(c.opts.ReadLimit)
	}
	c.extendRead()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if c.stopped() {
				return
			}
			log.Warn().Err(err).Str("module", "signal").Msg("readPump read error")
			if !c.terminated.Load() {
				c.emit(core.Event{Kind: core.EventDisconnect, Err: err})
			}
			return
		}
		c.extendRead()
		c.handleSignal(data)
	}
}

func (c *Client) handleSignal(data []byte) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		return
	}

	switch env.Type {
	case "ack":
		c.handleAck(data)
	case "answer":
		c.handleAnswer(data)
	case "ping":
		c.handlePing()
	case "pong":
		c.handlePong()
	case "peer-join", "peer-leave":
		c.handlePeer(env.Type, data)
	case "stream-add", "stream-remove":
		c.handleStream(env.Type, data)
	case "broadcast":
		c.handleBroadcast(data)
	case "disconnected":
		c.handleDisconnected(data)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown signal")
	}
}
