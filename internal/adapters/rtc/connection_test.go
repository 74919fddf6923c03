package rtc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dkeye/roomclient/internal/core"
	"github.com/dkeye/roomclient/internal/domain"
	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loopbackNegotiator answers offers with a second local peer connection.
type loopbackNegotiator struct {
	remote *webrtc.PeerConnection

	mu          sync.Mutex
	offers      int
	constraints []domain.Constraints
	targets     []string
	fail        error
}

func (n *loopbackNegotiator) Negotiate(ctx context.Context, offer webrtc.SessionDescription) (webrtc.SessionDescription, error) {
	n.mu.Lock()
	n.offers++
	fail := n.fail
	n.mu.Unlock()
	if fail != nil {
		return webrtc.SessionDescription{}, fail
	}
	if err := n.remote.SetRemoteDescription(offer); err != nil {
		return webrtc.SessionDescription{}, err
	}
	answer, err := n.remote.CreateAnswer(nil)
	if err != nil {
		return webrtc.SessionDescription{}, err
	}
	gather := webrtc.GatheringCompletePromise(n.remote)
	if err := n.remote.SetLocalDescription(answer); err != nil {
		return webrtc.SessionDescription{}, err
	}
	<-gather
	return *n.remote.LocalDescription(), nil
}

func (n *loopbackNegotiator) ApplyConstraints(_ context.Context, c domain.Constraints, target string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.constraints = append(n.constraints, c)
	n.targets = append(n.targets, target)
	return nil
}

type stubSource struct {
	mu      sync.Mutex
	applied []domain.Constraints
}

func (s *stubSource) Run(ctx context.Context, _ func(*rtp.Packet) error) error {
	<-ctx.Done()
	return nil
}

func (s *stubSource) Apply(c domain.Constraints) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied = append(s.applied, c)
}

func createTestPublisher(t *testing.T, initial core.InitialMedia) (*Publisher, *loopbackNegotiator, map[core.TrackKind]*stubSource) {
	t.Helper()
	remote, err := webrtc.NewPeerConnection(webrtc.Configuration{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = remote.Close() })

	neg := &loopbackNegotiator{remote: remote}
	var mu sync.Mutex
	sources := make(map[core.TrackKind]*stubSource)
	factory := func(kind core.TrackKind, _ domain.MediaSettings) Source {
		mu.Lock()
		defer mu.Unlock()
		s := &stubSource{}
		sources[kind] = s
		return s
	}

	p, err := NewPublisher(webrtc.Configuration{}, neg, domain.DefaultMediaSettings(), initial, factory)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p, neg, sources
}

func TestPublish(t *testing.T) {
	assert := assert.New(t)
	p, neg, _ := createTestPublisher(t, core.InitialMedia{Audio: true, Video: false})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, p.Publish(ctx))
	assert.ElementsMatch([]core.TrackKind{core.TrackAudio, core.TrackVideo}, p.Tracks())
	assert.Equal(1, neg.offers)
	assert.Equal(TrackStateOk, p.track(core.TrackAudio).GetState())
	assert.Equal(TrackStateMuted, p.track(core.TrackVideo).GetState())

	assert.ErrorIs(p.Publish(ctx), ErrAlreadyPublished)
}

func TestSetTrackEnabled(t *testing.T) {
	p, _, _ := createTestPublisher(t, core.InitialMedia{Audio: true, Video: true})
	ctx := context.Background()

	assert.ErrorIs(t, p.SetTrackEnabled(ctx, core.TrackAudio, false), ErrNoTrack)

	require.NoError(t, p.Publish(ctx))
	require.NoError(t, p.SetTrackEnabled(ctx, core.TrackAudio, false))
	assert.Equal(t, TrackStateMuted, p.track(core.TrackAudio).GetState())
	require.NoError(t, p.SetTrackEnabled(ctx, core.TrackAudio, true))
	assert.Equal(t, TrackStateOk, p.track(core.TrackAudio).GetState())
}

func TestScreenShare(t *testing.T) {
	assert := assert.New(t)
	p, neg, _ := createTestPublisher(t, core.InitialMedia{Audio: true, Video: true})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.ErrorIs(p.SetScreenShare(ctx, true), ErrNotPublished)

	require.NoError(t, p.Publish(ctx))
	require.NoError(t, p.SetScreenShare(ctx, true))
	assert.Len(p.Tracks(), 3)
	assert.Equal(2, neg.offers)

	// No-op when already in the requested state.
	require.NoError(t, p.SetScreenShare(ctx, true))
	assert.Equal(2, neg.offers)

	require.NoError(t, p.SetScreenShare(ctx, false))
	assert.Len(p.Tracks(), 2)
	assert.Equal(3, neg.offers)
}

func TestScreenShareRollback(t *testing.T) {
	p, neg, _ := createTestPublisher(t, core.InitialMedia{Audio: true, Video: true})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, p.Publish(ctx))

	neg.mu.Lock()
	neg.fail = errors.New("sfu refused")
	neg.mu.Unlock()

	assert.Error(t, p.SetScreenShare(ctx, true))
	assert.Len(t, p.Tracks(), 2)
}

func TestApplyConstraints(t *testing.T) {
	p, neg, sources := createTestPublisher(t, core.InitialMedia{Audio: true, Video: true})
	ctx := context.Background()
	require.NoError(t, p.Publish(ctx))

	c := domain.MediaSettings{FrameRate: 15, Bandwidth: 512, Resolution: "vga"}.Constraints()
	require.NoError(t, p.ApplyConstraints(ctx, c))

	assert.Equal(t, []string{p.StreamID()}, neg.targets)
	assert.Equal(t, []domain.Constraints{c}, sources[core.TrackVideo].applied)
}

func TestCloseIdempotent(t *testing.T) {
	p, _, _ := createTestPublisher(t, core.InitialMedia{})
	require.NoError(t, p.Publish(context.Background()))
	assert.NoError(t, p.Close())
	assert.NoError(t, p.Close())
	assert.ErrorIs(t, p.SetTrackEnabled(context.Background(), core.TrackAudio, true), ErrClosed)
}

func TestSyntheticSource(t *testing.T) {
	src := NewSyntheticSource(core.TrackVideo, domain.MediaSettings{FrameRate: 100})
	ctx, cancel := context.WithCancel(context.Background())
	var got []*rtp.Packet
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = src.Run(ctx, func(p *rtp.Packet) error {
			got = append(got, p)
			if len(got) == 3 {
				cancel()
			}
			return nil
		})
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		cancel()
		t.Fatal("source did not stop")
	}

	require.Len(t, got, 3)
	assert.Equal(t, got[0].SequenceNumber+1, got[1].SequenceNumber)
	assert.Equal(t, got[0].Timestamp+900, got[1].Timestamp)
	assert.True(t, got[0].Marker)
}
