package server

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/config"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/engine"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/search"
)

type stubSearcher struct{}

func (stubSearcher) Search(_ context.Context, req *search.Request) (*search.Response, error) {
	return &search.Response{Results: []search.Result{
		{Title: req.Query + " 结果", Link: "https://example.com", Abstract: "摘要", Source: "百度搜索"},
	}}, nil
}

func newTestServer(t *testing.T) nethttp.Handler {
	t.Helper()
	cfg := config.Default()
	cfg.Chart.OutputDir = t.TempDir()
	cfg.Chart.SaveDPI = 20
	cfg.Chart.PreviewDPI = 10
	cfg.Concurrency.RPM = 0

	e, err := engine.NewEngine(cfg)
	require.NoError(t, err)
	return NewHTTPServer(cfg.Server, e.WithSearcher(stubSearcher{}), log.DefaultLogger)
}

func post(t *testing.T, h nethttp.Handler, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Code == nethttp.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestChartRoute(t *testing.T) {
	h := newTestServer(t)

	rec, out := post(t, h, "/v1/charts", `{"data_summary":"营业收入：8900 净利润:800","chart_type":"bar"}`)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "success", out["status"])
	assert.Equal(t, "bar", out["chart_type"])
	assert.Contains(t, out["text"], "Type: bar")
	assert.NotEmpty(t, out["image_base64"])

	path, _ := out["filepath"].(string)
	require.True(t, strings.HasSuffix(path, ".png"), path)

	get := httptest.NewRequest(nethttp.MethodGet, "/charts/"+filepath.Base(path), nil)
	fileRec := httptest.NewRecorder()
	h.ServeHTTP(fileRec, get)
	assert.Equal(t, nethttp.StatusOK, fileRec.Code)
	assert.Equal(t, "image/png", fileRec.Header().Get("Content-Type"))
}

func TestChartRoute_Insufficient(t *testing.T) {
	h := newTestServer(t)

	rec, out := post(t, h, "/v1/charts", `{"data_summary":"营业收入 100","chart_type":"bar"}`)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, "error", out["status"])
	assert.Contains(t, out["text"], "Cannot extract sufficient financial information")
}

func TestChartRoute_EmptySummary(t *testing.T) {
	rec, _ := post(t, newTestServer(t), "/v1/charts", `{"chart_type":"bar"}`)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
}

func TestSearchRoute(t *testing.T) {
	rec, out := post(t, newTestServer(t), "/v1/search", `{"query":"光伏"}`)
	require.Equal(t, nethttp.StatusOK, rec.Code)

	results, ok := out["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 1)
	assert.Equal(t, "光伏 结果", results[0].(map[string]any)["title"])
	assert.True(t, strings.HasPrefix(out["text"].(string), "【百度搜索: 光伏】"))
}

func TestFinancialRoute(t *testing.T) {
	rec, out := post(t, newTestServer(t), "/v1/financial", `{"company":"比亚迪","year":"2023"}`)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, out["text"], "比亚迪 2023年 财务报告 年报")

	rec, _ = post(t, newTestServer(t), "/v1/financial", `{"year":"2023"}`)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
}

func TestWorkbookRoute(t *testing.T) {
	rec, out := post(t, newTestServer(t), "/v1/workbooks", `{"data_summary":"营业收入 100 净利润 10"}`)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, out["text"], ".xlsx")
}

func TestInvalidBody(t *testing.T) {
	rec, _ := post(t, newTestServer(t), "/v1/search", `{not json`)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
}
