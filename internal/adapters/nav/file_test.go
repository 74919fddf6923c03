package nav

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileNavigator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "last_url")
	n := NewFileNavigator(path)

	_, err := n.Last()
	assert.ErrorIs(t, err, ErrNoHistory)

	require.NoError(t, n.Push("https://meet.example.com/?room=abc-123&env=prod&role=guest"))
	assert.Equal(t, "https://meet.example.com/?room=abc-123&env=prod&role=guest", n.Current())

	last, err := NewFileNavigator(path).Last()
	require.NoError(t, err)
	assert.Equal(t, "https://meet.example.com/?room=abc-123&env=prod&role=guest", last)

	require.NoError(t, n.Push("https://meet.example.com"))
	last, _ = n.Last()
	assert.Equal(t, "https://meet.example.com", last)
}

func TestMemoryOnly(t *testing.T) {
	n := NewFileNavigator("")
	require.NoError(t, n.Push("https://x"))
	assert.Equal(t, "https://x", n.Current())
	_, err := n.Last()
	assert.ErrorIs(t, err, ErrNoHistory)
}
