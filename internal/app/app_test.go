package app

import (
	"testing"
	"time"

	"github.com/dkeye/roomclient/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRoster(t *testing.T) {
	assert := assert.New(t)
	r := NewRoster()

	r.Add(domain.NewRemoteParticipant("p2", "Zed"))
	r.Add(domain.NewRemoteParticipant("p1", "Ann"))
	assert.Equal(2, r.Len())
	assert.Equal(domain.PeerID("p1"), r.List()[0].ID)

	_, ok := r.Remove("unknown")
	assert.False(ok)
	assert.Equal(2, r.Len())

	p, ok := r.Remove("p2")
	assert.True(ok)
	assert.Equal("Zed", p.Name)

	r.SetActive("p1", true)
	got, _ := r.Get("p1")
	assert.True(got.Active)
	r.SetActive("missing", true)
	_, ok = r.Get("missing")
	assert.False(ok)

	r.Clear()
	assert.Equal(0, r.Len())
}

func TestNoReconnect(t *testing.T) {
	action, _ := NewPolicy(0, time.Second, time.Minute).OnDisconnected(1)
	assert.Equal(t, EndSession, action)
}

func TestBackoff(t *testing.T) {
	assert := assert.New(t)
	p := NewPolicy(3, time.Second, 3*time.Second)

	action, d := p.OnDisconnected(1)
	assert.Equal(Reconnect, action)
	assert.Equal(time.Second, d)

	_, d = p.OnDisconnected(2)
	assert.Equal(2*time.Second, d)

	_, d = p.OnDisconnected(3)
	assert.Equal(3*time.Second, d)

	action, _ = p.OnDisconnected(4)
	assert.Equal(EndSession, action)
}

func TestRateLimiter(t *testing.T) {
	assert := assert.New(t)
	now := time.Unix(1000, 0)
	rl := NewRateLimiter(2, time.Second)
	rl.now = func() time.Time { return now }

	assert.True(rl.Allow("me"))
	assert.True(rl.Allow("me"))
	assert.False(rl.Allow("me"))
	assert.True(rl.Allow("other"))

	now = now.Add(1500 * time.Millisecond)
	assert.True(rl.Allow("me"))

	var disabled *RateLimiter
	assert.True(disabled.Allow("me"))
}
