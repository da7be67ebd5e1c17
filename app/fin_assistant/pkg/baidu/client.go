package baidu

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/logger"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/search"
)

// Client 百度网页搜索客户端，抓取结果页并解析
type Client struct {
	baseURL   string
	userAgent string
	parser    *Parser
	client    *http.Client
}

// NewClient 创建百度搜索客户端
func NewClient(baseURL, userAgent string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid baidu base URL %q", baseURL)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		parser:    &Parser{Origin: u.Scheme + "://" + u.Host},
		client:    &http.Client{Timeout: timeout},
	}, nil
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// Search 执行搜索。网络错误和非 200 状态码作为 error 返回，由调用方决定兜底。
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	n := req.MaxResults
	if n <= 0 {
		n = maxResults
	}
	q := u.Query()
	q.Set("wd", req.Query)
	q.Set("rn", strconv.Itoa(n))
	q.Set("ie", "utf-8")
	q.Set("cl", "3") // 网页类型
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	// 模拟浏览器请求头，降低被拦截的概率。压缩由 Transport 协商。
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7")
	httpReq.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")
	httpReq.Header.Set("Connection", "keep-alive")

	logger.Log.Infof("搜索百度: %s", req.Query)
	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("baidu search error (status %d): %s", res.StatusCode, string(body))
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html failed: %w", err)
	}

	return &search.Response{Results: c.parser.Parse(doc)}, nil
}
