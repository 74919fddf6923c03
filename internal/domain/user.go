// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
)

const (
	MaxDisplayNameLen = 36
)

var (
	ErrDisplayNameTooLong = errors.New("display name too long")
	ErrDisplayNameEmpty   = errors.New("display name empty")
)

// LocalSenderName marks chat messages sent from this client.
const LocalSenderName = "me"

// LocalParticipant is the user of this client inside the room.
type LocalParticipant struct {
	Name          string `json:"name"`
	Role          Role   `json:"role"`
	AudioEnabled  bool   `json:"audio_enabled"`
	VideoEnabled  bool   `json:"video_enabled"`
	ScreenSharing bool   `json:"screen_sharing"`

	AudioPending  bool `json:"audio_pending"`
	VideoPending  bool `json:"video_pending"`
	ScreenPending bool `json:"screen_pending"`
}

// NewLocalParticipant checks the display name before a session adopts it.
func NewLocalParticipant(name string, role Role) (*LocalParticipant, error) {
	if err := CheckDisplayName(name); err != nil {
		return nil, err
	}
	return &LocalParticipant{Name: name, Role: role}, nil
}

func CheckDisplayName(name string) error {
	if len(name) == 0 {
		return ErrDisplayNameEmpty
	}
	if len(name) > MaxDisplayNameLen {
		return ErrDisplayNameTooLong
	}
	return nil
}
