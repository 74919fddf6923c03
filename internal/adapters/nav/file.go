// Package nav persists the canonical client URL between runs.
package nav

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

var ErrNoHistory = errors.New("no saved url")

// FileNavigator keeps the last pushed URL in a file.
type FileNavigator struct {
	mu      sync.Mutex
	path    string
	current string
}

func NewFileNavigator(path string) *FileNavigator {
	return &FileNavigator{path: path}
}

func (n *FileNavigator) Push(url string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = url
	if n.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(n.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(n.path, []byte(url+"\n"), 0o644); err != nil {
		log.Error().Err(err).Str("module", "nav").Str("path", n.path).Msg("save url")
		return err
	}
	log.Info().Str("module", "nav").Str("url", url).Msg("location updated")
	return nil
}

func (n *FileNavigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Last reads the URL saved by a previous run.
func (n *FileNavigator) Last() (string, error) {
	if n.path == "" {
		return "", ErrNoHistory
	}
	b, err := os.ReadFile(n.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoHistory
	}
	if err != nil {
		return "", err
	}
	url := strings.TrimSpace(string(b))
	if url == "" {
		return "", ErrNoHistory
	}
	return url, nil
}
