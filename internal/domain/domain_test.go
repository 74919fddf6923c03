package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionStateString(t *testing.T) {
	assert.Equal(t, "disconnected", StateDisconnected.String())
	assert.Equal(t, "joined", StateJoined.String())
	assert.Equal(t, "reconnecting", StateReconnecting.String())
	assert.True(t, StateJoining.Loading())
	assert.False(t, StateJoined.Loading())
	assert.False(t, StateDisconnected.Loading())
}

func TestRolePassive(t *testing.T) {
	assert.True(t, RoleViewer.IsPassive())
	assert.True(t, RoleLiveRecord.IsPassive())
	assert.False(t, RoleGuest.IsPassive())
	assert.False(t, RoleHost.IsPassive())

	r, ok := ParseRole("LIVE-RECORD")
	assert.True(t, ok)
	assert.Equal(t, RoleLiveRecord, r)
	_, ok = ParseEnv("moon")
	assert.False(t, ok)
}

func TestNewLocalParticipant(t *testing.T) {
	_, err := NewLocalParticipant("", RoleGuest)
	assert.ErrorIs(t, err, ErrDisplayNameEmpty)

	_, err = NewLocalParticipant(strings.Repeat("x", MaxDisplayNameLen+1), RoleGuest)
	assert.ErrorIs(t, err, ErrDisplayNameTooLong)

	p, err := NewLocalParticipant("Alice", RoleHost)
	assert.NoError(t, err)
	assert.Equal(t, "Alice", p.Name)
	assert.False(t, p.AudioEnabled)
}

func TestMediaSettingsConstraints(t *testing.T) {
	s := DefaultMediaSettings().WithDevices("mic-1", "cam-2")
	c := s.Constraints()
	assert.Equal(t, 20, c.FrameRate)
	assert.Equal(t, 256, c.Bitrate)
	assert.Equal(t, "qvga", c.Resolution)
	assert.Equal(t, "mic-1", c.Advanced.Audio.DeviceID)
	assert.Equal(t, "cam-2", c.Advanced.Video.DeviceID)

	// WithDevices copies.
	assert.Empty(t, DefaultMediaSettings().SelectedAudioDevice)
}

func TestDisplayRoomName(t *testing.T) {
	assert.Equal(t, DefaultRoomName, LoginInfo{}.DisplayRoomName())
	assert.Equal(t, "Standup", LoginInfo{RoomName: "Standup"}.DisplayRoomName())
}
