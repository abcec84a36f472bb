package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 32000, cfg.Budget.Default)
	assert.Equal(t, 4000, cfg.Budget.Headroom)
	assert.Equal(t, ":8466", cfg.Server.HTTPAddr)
	assert.False(t, cfg.Watch.Enabled)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero default budget", func(c *Config) { c.Budget.Default = 0 }},
		{"negative headroom", func(c *Config) { c.Budget.Headroom = -1 }},
		{"zero model size", func(c *Config) { c.Budget.Models = map[string]int{"m": 0} }},
		{"empty http addr", func(c *Config) { c.Server.HTTPAddr = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steering.yaml")
	content := `docs:
  dir: ./standards
budget:
  default: 64000
  models:
    big-model: 400000
watch:
  enabled: true
  debounce_delay: 1s
server:
  nats_url: nats://localhost:4222
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	fileCfg, err := LoadFromFile(path)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Merge(fileCfg)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "./standards", cfg.Docs.Dir)
	assert.Equal(t, 64000, cfg.Budget.Default)
	assert.Equal(t, 4000, cfg.Budget.Headroom) // default preserved
	assert.Equal(t, 400000, cfg.MaxForModel("big-model"))
	assert.Equal(t, 0, cfg.MaxForModel("unknown"))
	assert.True(t, cfg.Watch.Enabled)
	assert.Equal(t, "1s", cfg.Watch.DebounceDelay)
	assert.Equal(t, "nats://localhost:4222", cfg.Server.NATSURL)
	assert.Equal(t, ":8466", cfg.Server.HTTPAddr) // default preserved
}

func TestLoadFromFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steering.yaml")
	require.NoError(t, os.WriteFile(path, []byte("docs: [not: a: mapping"), 0644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestConfig_Merge_EmptyOverlayKeepsBase(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Docs.Dir = "/docs"

	cfg.Merge(&Config{})
	cfg.Merge(nil)

	assert.Equal(t, "/docs", cfg.Docs.Dir)
	assert.Equal(t, 32000, cfg.Budget.Default)
}
