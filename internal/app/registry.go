package app

import (
	"sort"
	"sync"

	"github.com/dkeye/roomclient/internal/domain"
	"github.com/rs/zerolog/log"
)

// Roster tracks the remote participants of the current room.
type Roster struct {
	mu    sync.RWMutex
	peers map[domain.PeerID]domain.RemoteParticipant
}

func NewRoster() *Roster {
	return &Roster{peers: make(map[domain.PeerID]domain.RemoteParticipant)}
}

func (r *Roster) Add(p domain.RemoteParticipant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.peers[p.ID] = p
	log.Info().Str("module", "app.roster").Str("peer", string(p.ID)).Str("name", p.Name).Msg("peer added")
}

// Remove reports whether the peer was known. Unknown peers are a no-op.
func (r *Roster) Remove(id domain.PeerID) (domain.RemoteParticipant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.peers[id]
	if !ok {
		return domain.RemoteParticipant{}, false
	}
	delete(r.peers, id)
	log.Info().Str("module", "app.roster").Str("peer", string(id)).Msg("peer removed")
	return p, true
}

func (r *Roster) Get(id domain.PeerID) (domain.RemoteParticipant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.peers[id]
	return p, ok
}

// SetActive flips the publishing flag of a known peer.
func (r *Roster) SetActive(id domain.PeerID, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.peers[id]; ok {
		p.Active = active
		r.peers[id] = p
	}
}

func (r *Roster) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.peers = make(map[domain.PeerID]domain.RemoteParticipant)
}

func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.peers)
}

// List returns the peers sorted by name, then id.
func (r *Roster) List() []domain.RemoteParticipant {
	r.mu.RLock()
	out := make([]domain.RemoteParticipant, 0, len(r.peers))
	for _, p := range r.peers {
		out = append(out, p)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}
