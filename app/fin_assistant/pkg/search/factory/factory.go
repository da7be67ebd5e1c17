package factory

import (
	"fmt"

	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/baidu"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/config"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/search"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/searxng"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/tavily"
)

// NewSearcher 根据配置创建搜索实例，未配置 provider 时使用百度
func NewSearcher(cfg *config.Config) (search.Searcher, error) {
	provider := cfg.Search.Provider
	if provider == "" {
		provider = "baidu"
	}

	switch provider {
	case "baidu":
		c := cfg.Search.Baidu
		return baidu.NewClient(c.BaseURL, c.UserAgent, cfg.Search.BaiduTimeout())

	case "tavily":
		apiKey := cfg.Search.Tavily.APIKey
		if apiKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		return tavily.NewClient(apiKey, cfg.Search.Tavily.BaseURL), nil

	case "searxng":
		baseURL := cfg.Search.SearXNG.BaseURL
		if baseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return searxng.NewClient(baseURL, cfg.Search.SearXNG.Timeout), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", provider)
	}
}
