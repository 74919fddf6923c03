package signal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dkeye/roomclient/internal/core"
	"github.com/dkeye/roomclient/internal/domain"
	"github.com/google/uuid"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

func (c *Client) Negotiate(ctx context.Context, offer webrtc.SessionDescription) (webrtc.SessionDescription, error) {
	if !c.isConnected() {
		return webrtc.SessionDescription{}, ErrNotConnected
	}
	id := uuid.NewString()
	r, err := c.request(ctx, id, offerMsg{Type: "offer", ID: id, SDP: offer})
	if err != nil {
		return webrtc.SessionDescription{}, fmt.Errorf("negotiate: %w", err)
	}
	if r.sdp == nil {
		return webrtc.SessionDescription{}, ErrMalformed
	}
	return *r.sdp, nil
}

func (c *Client) ApplyConstraints(ctx context.Context, cons domain.Constraints, target string) error {
	if !c.isConnected() {
		return ErrNotConnected
	}
	id := uuid.NewString()
	if _, err := c.request(ctx, id, constraintsMsg{Type: "constraints", ID: id, Target: target, Constraints: cons}); err != nil {
		return fmt.Errorf("apply constraints: %w", err)
	}
	return nil
}

func (c *Client) handleAnswer(data []byte) {
	var msg answerMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad answer")
		return
	}
	r := reply{sdp: msg.SDP}
	if msg.Error != "" {
		r.err = fmt.Errorf("%w: %s", ErrRejected, msg.Error)
	}
	c.resolve(msg.ID, r)
}

func (c *Client) handleStream(kind string, data []byte) {
	var msg streamMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("type", kind).Msg("bad stream event")
		return
	}
	ev := core.Event{Kind: core.EventStreamAdd, Room: msg.Room, Stream: msg.Stream}
	if kind == "stream-remove" {
		ev.Kind = core.EventStreamRemove
	}
	c.emit(ev)
}
