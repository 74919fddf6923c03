package session

import (
	"context"

	"github.com/dkeye/roomclient/internal/domain"
	"github.com/rs/zerolog/log"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Notice is a transient user-facing message.
type Notice struct {
	Level Level  `json:"level"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Snapshot is the full observable state of the controller.
type Snapshot struct {
	State     domain.ConnectionState     `json:"state"`
	Loading   bool                       `json:"loading"`
	RoomID    domain.RoomID              `json:"room_id,omitempty"`
	RoomName  string                     `json:"room_name,omitempty"`
	Role      domain.Role                `json:"role,omitempty"`
	Env       domain.Env                 `json:"env,omitempty"`
	ShareURL  string                     `json:"share_url,omitempty"`
	Local     domain.LocalParticipant    `json:"local"`
	Remote    []domain.RemoteParticipant `json:"remote"`
	Chat      []domain.ChatMessage       `json:"chat"`
	ChatOpen  bool                       `json:"chat_open"`
	HasUnread bool                       `json:"has_unread"`
	Media     domain.MediaSettings       `json:"media"`
}

// Update carries either a snapshot or a notice.
type Update struct {
	Snapshot *Snapshot `json:"snapshot,omitempty"`
	Notice   *Notice   `json:"notice,omitempty"`
}

type observer struct {
	ch chan Update
}

// Subscribe registers an observer. The current snapshot is delivered first.
// Updates that do not fit in the buffer are dropped.
func (c *Controller) Subscribe(buffer int) (<-chan Update, func()) {
	if buffer < 1 {
		buffer = 1
	}
	o := &observer{ch: make(chan Update, buffer)}
	if err := c.do(context.Background(), func() {
		c.observers[o] = struct{}{}
		snap := c.snapshot()
		o.ch <- Update{Snapshot: &snap}
	}); err != nil {
		close(o.ch)
		return o.ch, func() {}
	}
	return o.ch, func() {
		_ = c.do(context.Background(), func() {
			if _, ok := c.observers[o]; ok {
				delete(c.observers, o)
				close(o.ch)
			}
		})
	}
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	var snap Snapshot
	if err := c.do(context.Background(), func() { snap = c.snapshot() }); err != nil {
		return Snapshot{State: domain.StateDisconnected, Media: c.deps.Media.Current()}
	}
	return snap
}

func (c *Controller) snapshot() Snapshot {
	return Snapshot{
		State:     c.state,
		Loading:   c.state.Loading(),
		RoomID:    c.info.RoomID,
		RoomName:  c.info.RoomName,
		Role:      c.info.Role,
		Env:       c.info.Env,
		ShareURL:  c.shareURL,
		Local:     c.local,
		Remote:    c.roster.List(),
		Chat:      c.chat.All(),
		ChatOpen:  c.chatOpen,
		HasUnread: c.unread,
		Media:     c.deps.Media.Current(),
	}
}

func (c *Controller) publishSnapshot() {
	if len(c.observers) == 0 {
		return
	}
	snap := c.snapshot()
	c.broadcast(Update{Snapshot: &snap})
}

func (c *Controller) notice(level Level, title, body string) {
	log.Info().Str("module", "session").Str("level", string(level)).Str("title", title).Msg(body)
	c.broadcast(Update{Notice: &Notice{Level: level, Title: title, Body: body}})
}

func (c *Controller) broadcast(u Update) {
	for o := range c.observers {
		select {
		case o.ch <- u:
		default:
			log.Warn().Str("module", "session").Msg("observer backpressure, update dropped")
		}
	}
}
