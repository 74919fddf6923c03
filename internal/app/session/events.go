package session

import (
	"fmt"

	"github.com/dkeye/roomclient/internal/core"
	"github.com/dkeye/roomclient/internal/domain"
	"github.com/rs/zerolog/log"
)

func (c *Controller) handleEvent(gen uint64, ev core.Event) {
	if gen != c.gen {
		log.Debug().Str("module", "session").Str("event", ev.Kind.String()).Msg("stale event dropped")
		return
	}
	eventsTotal.WithLabelValues(ev.Kind.String()).Inc()

	switch ev.Kind {
	case core.EventConnect:
		c.onConnect()
	case core.EventDisconnect:
		c.onTransportLost(ev)
	case core.EventDisconnected:
		c.onServerDisconnected(ev)
	case core.EventPeerJoin:
		c.onPeerJoin(ev)
	case core.EventPeerLeave:
		c.onPeerLeave(ev)
	case core.EventStreamAdd, core.EventStreamRemove:
		c.onStream(ev)
	case core.EventBroadcast:
		c.onBroadcast(ev)
	default:
		log.Warn().Str("module", "session").Int("kind", int(ev.Kind)).Msg("unknown event")
	}
}

// inRoom is true once the join sequence started; room events before the ack are kept.
func (c *Controller) inRoom() bool {
	return c.state == domain.StateJoining || c.state == domain.StateJoined
}

func (c *Controller) onTransportLost(ev core.Event) {
	switch c.state {
	case domain.StateConnecting, domain.StateJoining, domain.StateJoined:
	default:
		return
	}
	log.Warn().Err(ev.Err).Str("module", "session").Str("state", c.state.String()).Msg("transport lost")
	wasJoined := c.state == domain.StateJoined
	c.teardown("transport lost")
	if wasJoined && c.tryReconnect() {
		return
	}
	c.reset("transport lost")
	c.setState(domain.StateDisconnected)
}

func (c *Controller) onServerDisconnected(ev core.Event) {
	log.Warn().Str("module", "session").Str("reason", ev.Reason).Str("state", c.state.String()).Msg("server ended session")
	wasJoined := c.state == domain.StateJoined
	c.teardown("disconnected")
	body := ev.Reason
	if body == "" {
		body = "The session has ended."
	}
	c.notice(LevelWarn, "Disconnected", body)
	if wasJoined && c.tryReconnect() {
		return
	}
	c.reset("disconnected")
	c.setState(domain.StateDisconnected)
}

func (c *Controller) onPeerJoin(ev core.Event) {
	if !c.inRoom() {
		return
	}
	p := domain.NewRemoteParticipant(ev.Peer.ID, ev.Peer.Name)
	c.roster.Add(p)
	c.publishSnapshot()
	c.notice(LevelInfo, "Peer Join", fmt.Sprintf("peer => %s joined %s!", p.Name, c.eventRoom(ev)))
}

func (c *Controller) onPeerLeave(ev core.Event) {
	if !c.inRoom() {
		return
	}
	p, ok := c.roster.Remove(ev.Peer.ID)
	if !ok {
		log.Debug().Str("module", "session").Str("peer", string(ev.Peer.ID)).Msg("leave for unknown peer")
		return
	}
	c.publishSnapshot()
	c.notice(LevelInfo, "Peer Leave", fmt.Sprintf("peer => %s left %s!", p.Name, c.eventRoom(ev)))
}

func (c *Controller) eventRoom(ev core.Event) domain.RoomID {
	if ev.Room != "" {
		return ev.Room
	}
	return c.info.RoomID
}

func (c *Controller) onStream(ev core.Event) {
	active := ev.Kind == core.EventStreamAdd
	log.Info().Str("module", "session").Str("event", ev.Kind.String()).Str("peer", string(ev.Stream.PeerID)).
		Str("mid", ev.Stream.MID).Msg("remote stream")
	if !c.inRoom() {
		return
	}
	c.roster.SetActive(ev.Stream.PeerID, active)
	c.publishSnapshot()
}
