package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/baidu"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/config"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/searxng"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/tavily"
)

func TestNewSearcher(t *testing.T) {
	cfg := config.Default()
	s, err := NewSearcher(cfg)
	require.NoError(t, err)
	assert.IsType(t, &baidu.Client{}, s)

	cfg.Search.Provider = ""
	s, err = NewSearcher(cfg)
	require.NoError(t, err)
	assert.IsType(t, &baidu.Client{}, s)

	cfg.Search.Provider = "tavily"
	_, err = NewSearcher(cfg)
	assert.ErrorContains(t, err, "api key")
	cfg.Search.Tavily.APIKey = "k"
	s, err = NewSearcher(cfg)
	require.NoError(t, err)
	assert.IsType(t, &tavily.Client{}, s)

	cfg.Search.Provider = "searxng"
	_, err = NewSearcher(cfg)
	assert.ErrorContains(t, err, "base url")
	cfg.Search.SearXNG.BaseURL = "http://localhost:8080"
	s, err = NewSearcher(cfg)
	require.NoError(t, err)
	assert.IsType(t, &searxng.Client{}, s)

	cfg.Search.Provider = "bing"
	_, err = NewSearcher(cfg)
	assert.ErrorContains(t, err, "unknown search provider")
}
