package core

import (
	"context"

	"github.com/dkeye/roomclient/internal/domain"
	"github.com/pion/webrtc/v4"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks . SignalClient,MediaPublisher,TokenSource,Navigator,Confirmer

// Frame is a raw text payload.
type Frame []byte

// BroadcastPayload is the chat envelope relayed to every peer of a room.
type BroadcastPayload struct {
	SenderName string `json:"senderName"`
	Msg        string `json:"msg"`
}

// SignalClient abstracts the signaling connection to the conferencing backend.
// One instance per connection attempt; the owner must Disconnect() it.
type SignalClient interface {
	// Connect dials the backend. A connect event follows on success.
	Connect(ctx context.Context) error
	// Join asks the backend to add the peer to the room and waits for the ack.
	Join(ctx context.Context, room domain.RoomID) error
	// Broadcast enqueues a room-wide message without waiting for delivery.
	Broadcast(payload BroadcastPayload, room domain.RoomID) error
	// ApplyConstraints asks the backend to renegotiate the publish identified by target.
	ApplyConstraints(ctx context.Context, c domain.Constraints, target string) error
	// Negotiate exchanges a local offer for the backend's answer.
	Negotiate(ctx context.Context, offer webrtc.SessionDescription) (webrtc.SessionDescription, error)
	// Subscribe returns the event stream and its unsubscribe func. One subscription per client.
	Subscribe() (<-chan Event, func())
	// Disconnect is idempotent.
	Disconnect()
}

// ClientFactory builds a fresh client for one connection attempt.
type ClientFactory func(url string, token domain.Token, peerName string) SignalClient
