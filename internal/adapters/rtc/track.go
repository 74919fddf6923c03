package rtc

import (
	"sync/atomic"

	"github.com/dkeye/roomclient/internal/core"
	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4"
)

type TrackState int32

const (
	TrackStateOk TrackState = iota
	TrackStateMuted
	TrackStateDelete
)

// LocalTrack is one outgoing track of the local publish.
type LocalTrack struct {
	Kind   core.TrackKind
	Track  *webrtc.TrackLocalStaticRTP
	Sender *webrtc.RTPSender
	Source Source

	state  atomic.Int32 // Zero by default (TrackStateOk)
	cancel func()
}

func NewLocalTrack(kind core.TrackKind, track *webrtc.TrackLocalStaticRTP, src Source) *LocalTrack {
	return &LocalTrack{Kind: kind, Track: track, Source: src}
}

func (lt *LocalTrack) GetState() TrackState {
	return TrackState(lt.state.Load())
}

func (lt *LocalTrack) MarkOk() {
	lt.state.Store(int32(TrackStateOk))
}

func (lt *LocalTrack) MarkMuted() {
	lt.state.Store(int32(TrackStateMuted))
}

func (lt *LocalTrack) MarkDelete() {
	lt.state.Store(int32(TrackStateDelete))
}

// WriteRTP drops packets unless the track is live.
func (lt *LocalTrack) WriteRTP(pkt *rtp.Packet) error {
	if lt.GetState() != TrackStateOk {
		return nil
	}
	return lt.Track.WriteRTP(pkt)
}
