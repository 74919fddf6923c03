package rtc

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dkeye/roomclient/internal/core"
	"github.com/dkeye/roomclient/internal/domain"
	"github.com/pion/rtp"
)

// Source produces RTP packets for one local track until ctx is done.
type Source interface {
	Run(ctx context.Context, write func(*rtp.Packet) error) error
	Apply(c domain.Constraints)
}

type SourceFactory func(kind core.TrackKind, s domain.MediaSettings) Source

const (
	audioClockRate = 48000
	videoClockRate = 90000
	audioFrame     = 20 * time.Millisecond
)

// SyntheticSource emits paced placeholder packets. Used when no capture device is wired.
type SyntheticSource struct {
	kind      core.TrackKind
	frameRate atomic.Int32
	ssrc      uint32
	payload   []byte
}

func NewSyntheticSource(kind core.TrackKind, s domain.MediaSettings) Source {
	src := &SyntheticSource{kind: kind, ssrc: randomSSRC(), payload: make([]byte, 160)}
	src.frameRate.Store(int32(s.FrameRate))
	return src
}

func (s *SyntheticSource) Apply(c domain.Constraints) {
	if c.FrameRate > 0 {
		s.frameRate.Store(int32(c.FrameRate))
	}
}

func (s *SyntheticSource) interval() time.Duration {
	if s.kind == core.TrackAudio {
		return audioFrame
	}
	fps := s.frameRate.Load()
	if fps <= 0 {
		fps = 1
	}
	return time.Second / time.Duration(fps)
}

func (s *SyntheticSource) step() uint32 {
	if s.kind == core.TrackAudio {
		return audioClockRate / uint32(time.Second/audioFrame)
	}
	return videoClockRate / uint32(max(s.frameRate.Load(), 1))
}

func (s *SyntheticSource) Run(ctx context.Context, write func(*rtp.Packet) error) error {
	var seq uint16
	var ts uint32
	current := s.interval()
	ticker := time.NewTicker(current)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			pkt := &rtp.Packet{
				Header: rtp.Header{
					Version:        2,
					Marker:         s.kind != core.TrackAudio,
					SequenceNumber: seq,
					Timestamp:      ts,
					SSRC:           s.ssrc,
				},
				Payload: s.payload,
			}
			if err := write(pkt); err != nil {
				return err
			}
			seq++
			ts += s.step()
			if next := s.interval(); next != current {
				current = next
				ticker.Reset(next)
			}
		}
	}
}

var ssrcCounter atomic.Uint32

func randomSSRC() uint32 {
	return uint32(time.Now().UnixNano()) ^ ssrcCounter.Add(0x9E3779B9)
}
