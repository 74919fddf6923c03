package signal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

func (c *Client) handlePing() {
	resp := struct {
		Type string `json:"type"`
	}{
		Type: "pong",
	}
	_ = c.sendJSON(resp)
}

func (c *Client) handlePong() {
	log.Debug().Str("module", "signal").Msg("pong")
}

func (c *Client) handleAck(data []byte) {
	var msg ackMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad ack")
		return
	}
	r := reply{}
	if msg.Error != "" {
		r.err = fmt.Errorf("%w: %s", ErrRejected, msg.Error)
	}
	c.resolve(msg.ID, r)
}

// request sends a message carrying id and waits for the matching reply.
func (c *Client) request(ctx context.Context, id string, msg any) (reply, error) {
	ch := make(chan reply, 1)
	c.pendingMu.Lock()
	c.pending[id] = ch
	c.pendingMu.Unlock()
	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
	}()

	if err := c.sendJSON(msg); err != nil {
		return reply{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.RequestTimeout)
	defer cancel()

	select {
	case r := <-ch:
		return r, r.err
	case <-ctx.Done():
		return reply{}, fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())
	case <-c.stop:
		return reply{}, ErrClosed
	}
}

func (c *Client) resolve(id string, r reply) {
	c.pendingMu.Lock()
	ch, ok := c.pending[id]
	c.pendingMu.Unlock()
	if !ok {
		log.Warn().Str("module", "signal").Str("id", id).Msg("reply without request")
		return
	}
	select {
	case ch <- r:
	default:
	}
}

func (c *Client) failPending(err error) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	for _, ch := range c.pending {
		select {
		case ch <- reply{err: err}:
		default:
		}
	}
}
