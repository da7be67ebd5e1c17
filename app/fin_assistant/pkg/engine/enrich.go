package engine

import (
	"context"
	"fmt"
	"net/http"
	nurl "net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/logger"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/search"
)

const enrichAbstractLen = 200

// enrich 为缺少摘要的结果抓取原文补全摘要，失败时保持原样
func (e *Engine) enrich(ctx context.Context, results []search.Result) {
	cfg := e.cfg.Search.Enrich
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	fetched := 0
	for i := range results {
		if cfg.MaxArticles > 0 && fetched >= cfg.MaxArticles {
			break
		}
		if ctx.Err() != nil {
			return
		}
		r := &results[i]
		if r.Abstract != search.NoAbstract || r.Link == "" {
			continue
		}
		fetched++

		text, err := e.fetch(ctx, r.Link, timeout)
		if err != nil {
			logger.Log.Debugf("抓取原文失败 [%s]: %v", r.Link, err)
			continue
		}
		text = strings.Join(strings.Fields(text), " ")
		if text == "" {
			continue
		}
		if runes := []rune(text); len(runes) > enrichAbstractLen {
			text = string(runes[:enrichAbstractLen])
		}
		r.Abstract = text
	}
}

// fetchArticleText 抓取网页并提取正文，随 ctx 取消
func fetchArticleText(ctx context.Context, pageURL string, timeout time.Duration) (string, error) {
	u, err := nurl.ParseRequestURI(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create request failed: %w", err)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", pageURL, res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		return "", fmt.Errorf("fetch %s: unsupported content type %q", pageURL, ct)
	}

	article, err := readability.FromReader(res.Body, u)
	if err != nil {
		return "", fmt.Errorf("parse article failed: %w", err)
	}
	return article.TextContent, nil
}
