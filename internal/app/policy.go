package app

import "time"

type TeardownAction int

const (
	EndSession TeardownAction = iota
	Reconnect
)

// Policy decides what happens after the connection of a joined session is lost.
// attempt counts reconnects since the last successful join, starting at 1.
type Policy interface {
	OnDisconnected(attempt int) (TeardownAction, time.Duration)
}

// NoReconnect ends the session on any loss.
type NoReconnect struct{}

func (NoReconnect) OnDisconnected(int) (TeardownAction, time.Duration) {
	return EndSession, 0
}

// Backoff reconnects up to MaxAttempts times with exponential delay capped at Max.
type Backoff struct {
	MaxAttempts int
	Base        time.Duration
	Max         time.Duration
}

func (b Backoff) OnDisconnected(attempt int) (TeardownAction, time.Duration) {
	if attempt < 1 || attempt > b.MaxAttempts {
		return EndSession, 0
	}
	delay := b.Base << min(attempt-1, 6)
	if b.Max > 0 && delay > b.Max {
		delay = b.Max
	}
	return Reconnect, delay
}

// NewPolicy returns NoReconnect when attempts is zero.
func NewPolicy(attempts int, base, max time.Duration) Policy {
	if attempts <= 0 {
		return NoReconnect{}
	}
	return Backoff{MaxAttempts: attempts, Base: base, Max: max}
}
