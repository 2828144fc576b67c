package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://localhost:9222", cfg.BrowserEndpoint)
	assert.Equal(t, "https://www.perplexity.ai/", cfg.InitialURL)
	assert.Equal(t, "group/notification-list-item", cfg.LinkMarker)
	assert.Equal(t, "#markdown-content-0 > div > div > div", cfg.ContentSelector)
	assert.NotEmpty(t, cfg.ClickSelector)
	assert.Equal(t, "content.wav", cfg.Output)
	assert.Equal(t, 5*time.Second, cfg.SettleWait())
	assert.Equal(t, "http://localhost:5002", cfg.TTS.Endpoint)
	assert.Equal(t, 360*time.Second, cfg.TTS.Timeout())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
initial_url: https://news.example/
content_selector: "article > div"
settle_wait_ms: 1500
output: out.wav
tts:
  endpoint: http://tts.example:5002
  speaker_id: p226
  timeout_sec: 60
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://news.example/", cfg.InitialURL)
	assert.Equal(t, "article > div", cfg.ContentSelector)
	assert.Equal(t, 1500*time.Millisecond, cfg.SettleWait())
	assert.Equal(t, "out.wav", cfg.Output)
	assert.Equal(t, "http://tts.example:5002", cfg.TTS.Endpoint)
	assert.Equal(t, "p226", cfg.TTS.SpeakerID)
	assert.Equal(t, 60*time.Second, cfg.TTS.Timeout())

	// Untouched keys keep their defaults.
	assert.Equal(t, "http://localhost:9222", cfg.BrowserEndpoint)
	assert.Equal(t, "group/notification-list-item", cfg.LinkMarker)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("initial_url: [unclosed"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}
