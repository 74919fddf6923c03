package core

import (
	"context"

	"github.com/dkeye/roomclient/internal/domain"
)

type TrackKind string

const (
	TrackAudio  TrackKind = "audio"
	TrackVideo  TrackKind = "video"
	TrackScreen TrackKind = "screen"
)

// MediaPublisher owns the local publish of one room membership.
type MediaPublisher interface {
	// Publish attaches the local tracks and negotiates them with the backend.
	Publish(ctx context.Context) error
	// SetTrackEnabled mutes or unmutes a local track.
	SetTrackEnabled(ctx context.Context, kind TrackKind, enabled bool) error
	// SetScreenShare adds or removes the screen track and renegotiates.
	SetScreenShare(ctx context.Context, enabled bool) error
	// ApplyConstraints re-applies capture and encoding parameters.
	ApplyConstraints(ctx context.Context, c domain.Constraints) error
	// Close should stop all underlying media resources.
	Close() error
}

// InitialMedia is the local toggle state a publish starts with.
type InitialMedia struct {
	Audio bool
	Video bool
}

// PublisherFactory creates the publisher once the room is joined.
type PublisherFactory func(client SignalClient, settings domain.MediaSettings, initial InitialMedia) (MediaPublisher, error)
