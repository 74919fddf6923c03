package signal

import (
	"github.com/dkeye/roomclient/internal/core"
	"github.com/dkeye/roomclient/internal/domain"
	"github.com/pion/webrtc/v4"
)

type envelope struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
}

type joinMsg struct {
	Type   string        `json:"type"`
	ID     string        `json:"id"`
	Room   domain.RoomID `json:"room"`
	PeerID domain.PeerID `json:"peer_id"`
	Name   string        `json:"name"`
}

type leaveMsg struct {
	Type string        `json:"type"`
	Room domain.RoomID `json:"room"`
}

type broadcastMsg struct {
	Type    string                `json:"type"`
	Room    domain.RoomID         `json:"room"`
	Peer    *core.Peer            `json:"peer,omitempty"`
	Payload core.BroadcastPayload `json:"payload"`
}

type offerMsg struct {
	Type string                    `json:"type"`
	ID   string                    `json:"id"`
	SDP  webrtc.SessionDescription `json:"sdp"`
}

type constraintsMsg struct {
	Type        string             `json:"type"`
	ID          string             `json:"id"`
	Target      string             `json:"target"`
	Constraints domain.Constraints `json:"constraints"`
}

type ackMsg struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	Error string `json:"error,omitempty"`
}

type answerSDP = webrtc.SessionDescription

type answerMsg struct {
	Type  string     `json:"type"`
	ID    string     `json:"id"`
	SDP   *answerSDP `json:"sdp"`
	Error string     `json:"error,omitempty"`
}

type peerMsg struct {
	Type string        `json:"type"`
	Room domain.RoomID `json:"room"`
	Peer core.Peer     `json:"peer"`
}

type streamMsg struct {
	Type   string        `json:"type"`
	Room   domain.RoomID `json:"room"`
	Stream core.Stream   `json:"stream"`
}

type disconnectedMsg struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

var pingFrame = []byte(`{"type":"ping"}`)
