package domain

type PeerID string

// RemoteParticipant is another peer in the room as reported by the backend.
// Active is set while the peer has a published stream.
type RemoteParticipant struct {
	ID     PeerID `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// NewRemoteParticipant keeps construction obvious for event handlers.
func NewRemoteParticipant(id PeerID, name string) RemoteParticipant {
	if name == "" {
		name = string(id)
	}
	return RemoteParticipant{ID: id, Name: name}
}
