package domain

import "time"

type Origin string

const (
	OriginLocal  Origin = "local"
	OriginRemote Origin = "remote"
)

type ChatMessage struct {
	ID         uint64    `json:"id"`
	SenderName string    `json:"sender_name"`
	Body       string    `json:"body"`
	Origin     Origin    `json:"origin"`
	At         time.Time `json:"at"`
}
