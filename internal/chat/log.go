// Package chat keeps the append-only transcript of one room membership.
package chat

import (
	"sync"
	"time"

	"github.com/dkeye/roomclient/internal/domain"
)

type Log struct {
	mu       sync.RWMutex
	messages []domain.ChatMessage
	nextID   uint64
	now      func() time.Time
}

func NewLog() *Log {
	return &Log{nextID: 1, now: time.Now}
}

// Append is the only mutation. IDs are unique and increasing across both origins.
func (l *Log) Append(sender, body string, origin domain.Origin) domain.ChatMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := domain.ChatMessage{
		ID:         l.nextID,
		SenderName: sender,
		Body:       body,
		Origin:     origin,
		At:         l.now(),
	}
	l.nextID++
	l.messages = append(l.messages, msg)
	return msg
}

// All returns a copy in arrival order.
func (l *Log) All() []domain.ChatMessage {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.ChatMessage, len(l.messages))
	copy(out, l.messages)
	return out
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}
