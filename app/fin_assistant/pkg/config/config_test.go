package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_KeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
search:
  provider: searxng
  searxng:
    base_url: http://127.0.0.1:8888
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "searxng", cfg.Search.Provider)
	assert.Equal(t, "http://127.0.0.1:8888", cfg.Search.SearXNG.BaseURL)
	assert.Equal(t, 30, cfg.Search.SearXNG.Timeout)

	assert.Equal(t, "./charts", cfg.Chart.OutputDir)
	assert.Equal(t, 300.0, cfg.Chart.SaveDPI)
	assert.Equal(t, 8, cfg.Search.MaxResults)
	assert.Equal(t, "https://www.baidu.com/s", cfg.Search.Baidu.BaseURL)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := writeConfig(t, "chart:\n  save_dpi: -1\n")
	_, err := LoadConfig(path)
	assert.Error(t, err)

	path = writeConfig(t, "server:\n  timeout: soon\n")
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestBaiduTimeout(t *testing.T) {
	c := Default().Search
	assert.Equal(t, 15*time.Second, c.BaiduTimeout())

	c.Baidu.Timeout = 0
	assert.Equal(t, 15*time.Second, c.BaiduTimeout())

	c.Baidu.Timeout = 3
	assert.Equal(t, 3*time.Second, c.BaiduTimeout())
}
