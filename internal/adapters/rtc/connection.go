// Package rtc publishes the local media of the client over pion/webrtc.
package rtc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dkeye/roomclient/internal/core"
	"github.com/dkeye/roomclient/internal/domain"
	"github.com/google/uuid"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
)

var (
	ErrClosed           = errors.New("publisher closed")
	ErrAlreadyPublished = errors.New("already published")
	ErrNotPublished     = errors.New("not published")
	ErrNoTrack          = errors.New("no such track")
)

// Negotiator carries SDP and constraint requests to the backend.
type Negotiator interface {
	Negotiate(ctx context.Context, offer webrtc.SessionDescription) (webrtc.SessionDescription, error)
	ApplyConstraints(ctx context.Context, c domain.Constraints, target string) error
}

type Publisher struct {
	pc       *webrtc.PeerConnection
	neg      Negotiator
	streamID string
	settings domain.MediaSettings
	initial  core.InitialMedia
	sources  SourceFactory

	mu        sync.Mutex
	tracks    map[core.TrackKind]*LocalTrack
	published bool
	closed    bool
	closeOnce sync.Once

	ctx    context.Context
	cancel context.CancelFunc
	wg     conc.WaitGroup
}

var _ core.MediaPublisher = (*Publisher)(nil)

func DefaultWebRTCConfig() webrtc.Configuration {
	return webrtc.Configuration{
		ICEServers: []webrtc.ICEServer{
			{
				URLs: []string{"stun:stun.l.google.com:19302"},
			},
		},
	}
}

func NewPublisher(cfg webrtc.Configuration, neg Negotiator, settings domain.MediaSettings, initial core.InitialMedia, sources SourceFactory) (*Publisher, error) {
	pc, err := webrtc.NewPeerConnection(cfg)
	if err != nil {
		return nil, err
	}
	if sources == nil {
		sources = NewSyntheticSource
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Publisher{
		pc:       pc,
		neg:      neg,
		streamID: uuid.NewString(),
		settings: settings,
		initial:  initial,
		sources:  sources,
		tracks:   make(map[core.TrackKind]*LocalTrack),
		ctx:      ctx,
		cancel:   cancel,
	}

	pc.OnICEConnectionStateChange(func(s webrtc.ICEConnectionState) {
		log.Info().Str("module", "webrtc").Str("stream", p.streamID).Str("ice_state", s.String()).Msg("ICE state")
	})
	pc.OnConnectionStateChange(func(s webrtc.PeerConnectionState) {
		log.Info().Str("module", "webrtc").Str("stream", p.streamID).Str("peer_connection_state", s.String()).Msg("Peer state")
	})
	return p, nil
}

// Factory adapts NewPublisher to core.PublisherFactory.
func Factory(cfg webrtc.Configuration, sources SourceFactory) core.PublisherFactory {
	return func(client core.SignalClient, settings domain.MediaSettings, initial core.InitialMedia) (core.MediaPublisher, error) {
		p, err := NewPublisher(cfg, client, settings, initial, sources)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

func (p *Publisher) StreamID() string { return p.streamID }

func (p *Publisher) Publish(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if p.published {
		return ErrAlreadyPublished
	}

	for _, kind := range []core.TrackKind{core.TrackAudio, core.TrackVideo} {
		lt, err := p.addTrack(kind)
		if err != nil {
			return err
		}
		if (kind == core.TrackAudio && !p.initial.Audio) || (kind == core.TrackVideo && !p.initial.Video) {
			lt.MarkMuted()
		}
	}

	if err := p.negotiate(ctx); err != nil {
		return err
	}
	p.published = true
	log.Info().Str("module", "webrtc").Str("stream", p.streamID).Str("codec", p.settings.Codec).Msg("published")
	return nil
}

func (p *Publisher) SetTrackEnabled(_ context.Context, kind core.TrackKind, enabled bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	lt, ok := p.tracks[kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoTrack, kind)
	}
	if enabled {
		lt.MarkOk()
	} else {
		lt.MarkMuted()
	}
	log.Info().Str("module", "webrtc").Str("kind", string(kind)).Bool("enabled", enabled).Msg("track toggled")
	return nil
}

func (p *Publisher) SetScreenShare(ctx context.Context, enabled bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if !p.published {
		return ErrNotPublished
	}
	if _, has := p.tracks[core.TrackScreen]; has == enabled {
		return nil
	}

	if enabled {
		if _, err := p.addTrack(core.TrackScreen); err != nil {
			return err
		}
		if err := p.negotiate(ctx); err != nil {
			_ = p.removeTrack(core.TrackScreen)
			return err
		}
		return nil
	}

	if err := p.removeTrack(core.TrackScreen); err != nil {
		return err
	}
	return p.negotiate(ctx)
}

func (p *Publisher) ApplyConstraints(ctx context.Context, c domain.Constraints) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	p.settings.FrameRate = c.FrameRate
	p.settings.Bandwidth = c.Bitrate
	p.settings.Resolution = c.Resolution
	for _, lt := range p.tracks {
		lt.Source.Apply(c)
	}
	p.mu.Unlock()

	return p.neg.ApplyConstraints(ctx, c, p.streamID)
}

func (p *Publisher) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.cancel()
		p.mu.Lock()
		p.closed = true
		for _, lt := range p.tracks {
			lt.MarkDelete()
		}
		p.mu.Unlock()

		if err = p.pc.Close(); err != nil {
			log.Error().Err(err).Str("module", "webrtc").Str("stream", p.streamID).Msg("close error")
		} else {
			log.Info().Str("module", "webrtc").Str("stream", p.streamID).Msg("closed")
		}
		p.wg.Wait()
	})
	return err
}

// Tracks lists the live track kinds.
func (p *Publisher) Tracks() []core.TrackKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]core.TrackKind, 0, len(p.tracks))
	for k := range p.tracks {
		out = append(out, k)
	}
	return out
}

func (p *Publisher) track(kind core.TrackKind) *LocalTrack {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tracks[kind]
}

// addTrack expects p.mu held.
func (p *Publisher) addTrack(kind core.TrackKind) (*LocalTrack, error) {
	track, err := webrtc.NewTrackLocalStaticRTP(codecFor(kind, p.settings.Codec), string(kind), p.streamID)
	if err != nil {
		return nil, err
	}
	sender, err := p.pc.AddTrack(track)
	if err != nil {
		return nil, err
	}

	lt := NewLocalTrack(kind, track, p.sources(kind, p.settings))
	lt.Sender = sender
	ctx, cancel := context.WithCancel(p.ctx)
	lt.cancel = cancel

	// RTCP has to be read for interceptors to work.
	p.wg.Go(func() {
		buf := make([]byte, 1500)
		for {
			if _, _, err := sender.Read(buf); err != nil {
				return
			}
		}
	})
	p.wg.Go(func() {
		if err := lt.Source.Run(ctx, lt.WriteRTP); err != nil {
			log.Warn().Err(err).Str("module", "webrtc").Str("kind", string(kind)).Msg("source stopped")
		}
	})

	p.tracks[kind] = lt
	log.Info().Str("module", "webrtc").Str("kind", string(kind)).Str("track_id", track.ID()).Str("stream_id", track.StreamID()).Msg("local track added")
	return lt, nil
}

// removeTrack expects p.mu held.
func (p *Publisher) removeTrack(kind core.TrackKind) error {
	lt, ok := p.tracks[kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoTrack, kind)
	}
	lt.MarkDelete()
	lt.cancel()
	delete(p.tracks, kind)
	return p.pc.RemoveTrack(lt.Sender)
}

func (p *Publisher) negotiate(ctx context.Context) error {
	offer, err := p.pc.CreateOffer(nil)
	if err != nil {
		return err
	}
	gatherComplete := webrtc.GatheringCompletePromise(p.pc)
	if err := p.pc.SetLocalDescription(offer); err != nil {
		return err
	}
	select {
	case <-gatherComplete:
	case <-ctx.Done():
		return ctx.Err()
	}

	answer, err := p.neg.Negotiate(ctx, *p.pc.LocalDescription())
	if err != nil {
		_ = p.pc.SetLocalDescription(webrtc.SessionDescription{Type: webrtc.SDPTypeRollback})
		return err
	}
	return p.pc.SetRemoteDescription(answer)
}

func codecFor(kind core.TrackKind, codec string) webrtc.RTPCodecCapability {
	if kind == core.TrackAudio {
		return webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeOpus, ClockRate: audioClockRate, Channels: 2}
	}
	mime := webrtc.MimeTypeVP8
	switch strings.ToLower(codec) {
	case "vp9":
		mime = webrtc.MimeTypeVP9
	case "h264":
		mime = webrtc.MimeTypeH264
	}
	return webrtc.RTPCodecCapability{MimeType: mime, ClockRate: videoClockRate}
}
