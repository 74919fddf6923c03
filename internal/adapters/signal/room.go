package signal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dkeye/roomclient/internal/core"
	"github.com/dkeye/roomclient/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func (c *Client) Join(ctx context.Context, room domain.RoomID) error {
	if !c.isConnected() {
		return ErrNotConnected
	}
	id := uuid.NewString()
	log.Info().Str("module", "signal").Str("room", string(room)).Str("peer", string(c.peerID)).Msg("join requested")

	if _, err := c.request(ctx, id, joinMsg{
		Type:   "join",
		ID:     id,
		Room:   room,
		PeerID: c.peerID,
		Name:   c.opts.PeerName,
	}); err != nil {
		return fmt.Errorf("join %s: %w", room, err)
	}

	c.mu.Lock()
	c.room = room
	c.mu.Unlock()
	log.Info().Str("module", "signal").Str("room", string(room)).Msg("joined")
	return nil
}

func (c *Client) Broadcast(payload core.BroadcastPayload, room domain.RoomID) error {
	if !c.isConnected() {
		return ErrNotConnected
	}
	return c.sendJSON(broadcastMsg{Type: "broadcast", Room: room, Payload: payload})
}

func (c *Client) handlePeer(kind string, data []byte) {
	var msg peerMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("type", kind).Msg("bad peer event")
		return
	}
	ev := core.Event{Kind: core.EventPeerJoin, Room: msg.Room, Peer: msg.Peer}
	if kind == "peer-leave" {
		ev.Kind = core.EventPeerLeave
	}
	c.emit(ev)
}

func (c *Client) handleBroadcast(data []byte) {
	var msg broadcastMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad broadcast")
		return
	}
	ev := core.Event{Kind: core.EventBroadcast, Room: msg.Room, Message: msg.Payload}
	if msg.Peer != nil {
		ev.Peer = *msg.Peer
	}
	c.emit(ev)
}

func (c *Client) handleDisconnected(data []byte) {
	var msg disconnectedMsg
	_ = json.Unmarshal(data, &msg)
	c.terminated.Store(true)
	log.Warn().Str("module", "signal").Str("reason", msg.Reason).Msg("server ended session")
	c.emit(core.Event{Kind: core.EventDisconnected, Reason: msg.Reason})
}
