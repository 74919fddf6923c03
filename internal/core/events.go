package core

import "github.com/dkeye/roomclient/internal/domain"

type EventKind int

const (
	EventConnect EventKind = iota
	EventDisconnect
	EventDisconnected
	EventPeerJoin
	EventPeerLeave
	EventStreamAdd
	EventStreamRemove
	EventBroadcast
)

func (k EventKind) String() string {
	switch k {
	case EventConnect:
		return "connect"
	case EventDisconnect:
		return "disconnect"
	case EventDisconnected:
		return "disconnected"
	case EventPeerJoin:
		return "peer-join"
	case EventPeerLeave:
		return "peer-leave"
	case EventStreamAdd:
		return "stream-add"
	case EventStreamRemove:
		return "stream-remove"
	case EventBroadcast:
		return "broadcast"
	default:
		return "unknown"
	}
}

type Peer struct {
	ID   domain.PeerID `json:"id"`
	Name string        `json:"name"`
}

type Stream struct {
	MID    string        `json:"mid"`
	PeerID domain.PeerID `json:"peer_id"`
}

// Event is one notification from the signaling connection.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind    EventKind
	Room    domain.RoomID
	Peer    Peer
	Stream  Stream
	Message BroadcastPayload
	Reason  string
	Err     error
}
