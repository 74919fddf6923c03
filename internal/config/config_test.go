package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dkeye/roomclient/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_ENV", "test")
	t.Setenv("TOKEN_ENDPOINT", "https://tokens.example.com/api/token")
	t.Setenv("SFU_HOST", "sfu.example.com")

	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "https://tokens.example.com/api/token", cfg.TokenEndpoint)
	assert.Equal(t, "wss://prod.sfu.example.com", cfg.SignalURL(domain.EnvProd))
	assert.Equal(t, 0, cfg.Reconnect.MaxAttempts)
	assert.Nil(t, cfg.ExternalMedia())
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CONFIG_ENV", "test")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	yaml := `
mode: debug
log_level: debug
page_host: meet.example.com
signal:
  scheme: ws
  ping_period: 10s
reconnect:
  max_attempts: 3
media:
  codec: h264
  bandwidth: 512
  resolution: hd
  frame_rate: 30
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.test.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Mode)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
	assert.Equal(t, "ws://qa.meet.example.com", cfg.SignalURL(domain.EnvQA))
	assert.Equal(t, "https://meet.example.com", cfg.BaseURL())
	assert.Equal(t, 3, cfg.Reconnect.MaxAttempts)
	assert.Equal(t, int64(32768), cfg.Signal.ReadLimit)

	media := cfg.ExternalMedia()
	require.NotNil(t, media)
	assert.Equal(t, "h264", media.Codec)
	assert.Equal(t, 512, media.Bandwidth)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
