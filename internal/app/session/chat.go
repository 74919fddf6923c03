package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/dkeye/roomclient/internal/core"
	"github.com/dkeye/roomclient/internal/domain"
)

// SendMessage broadcasts to the room and appends the local copy.
func (c *Controller) SendMessage(ctx context.Context, body string) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return ErrEmptyMessage
	}
	var err error
	if doErr := c.do(ctx, func() {
		if c.state != domain.StateJoined {
			err = ErrNotJoined
			return
		}
		if !c.deps.Limiter.Allow(c.info.DisplayName) {
			err = ErrRateLimited
			return
		}
		payload := core.BroadcastPayload{SenderName: c.info.DisplayName, Msg: body}
		if berr := c.client.Broadcast(payload, c.info.RoomID); berr != nil {
			err = fmt.Errorf("broadcast: %w", berr)
			return
		}
		c.chat.Append(domain.LocalSenderName, body, domain.OriginLocal)
		chatMessagesTotal.WithLabelValues(string(domain.OriginLocal)).Inc()
		c.publishSnapshot()
	}); doErr != nil {
		return doErr
	}
	return err
}

// SetChatOpen tracks whether the chat panel is visible. Opening it clears the unread flag.
func (c *Controller) SetChatOpen(ctx context.Context, open bool) error {
	return c.do(ctx, func() {
		c.chatOpen = open
		if open {
			c.unread = false
		}
		c.publishSnapshot()
	})
}

func (c *Controller) onBroadcast(ev core.Event) {
	if !c.inRoom() {
		return
	}
	sender := ev.Peer.Name
	if sender == "" && ev.Peer.ID != "" {
		if p, ok := c.roster.Get(ev.Peer.ID); ok && p.Name != string(p.ID) {
			sender = p.Name
		}
	}
	if sender == "" {
		sender = ev.Message.SenderName
	}
	c.chat.Append(sender, ev.Message.Msg, domain.OriginRemote)
	chatMessagesTotal.WithLabelValues(string(domain.OriginRemote)).Inc()
	if !c.chatOpen {
		c.unread = true
	}
	c.publishSnapshot()
}
