// Package media holds the active media settings of the client.
package media

import (
	"context"
	"sync"

	"github.com/dkeye/roomclient/internal/domain"
	"github.com/rs/zerolog/log"
)

// Reapplier pushes new settings to an active publish.
type Reapplier interface {
	ApplyConstraints(ctx context.Context, c domain.Constraints) error
}

type Store struct {
	mu        sync.RWMutex
	current   domain.MediaSettings
	reapplier Reapplier
}

// NewStore starts from defaults. External settings replace them wholesale
// when they name a codec.
func NewStore(external *domain.MediaSettings) *Store {
	s := &Store{current: domain.DefaultMediaSettings()}
	if external != nil && external.Codec != "" {
		s.current = *external
	}
	return s
}

func (s *Store) Current() domain.MediaSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update replaces the settings. With reapply the attached publish is renegotiated.
func (s *Store) Update(ctx context.Context, next domain.MediaSettings, reapply bool) error {
	s.mu.Lock()
	s.current = next
	r := s.reapplier
	s.mu.Unlock()

	log.Info().Str("module", "media").Str("resolution", next.Resolution).Int("bandwidth", next.Bandwidth).
		Str("codec", next.Codec).Int("frame_rate", next.FrameRate).Bool("reapply", reapply).Msg("settings updated")

	if !reapply || r == nil {
		return nil
	}
	return r.ApplyConstraints(ctx, next.Constraints())
}

func (s *Store) Attach(r Reapplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reapplier = r
}

func (s *Store) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reapplier = nil
}
