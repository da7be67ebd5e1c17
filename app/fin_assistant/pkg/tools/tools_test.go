package tools

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/components/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/config"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/engine"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/search"
)

type stubSearcher struct{ query string }

func (s *stubSearcher) Search(_ context.Context, req *search.Request) (*search.Response, error) {
	s.query = req.Query
	return &search.Response{Results: []search.Result{{Title: "标题", Abstract: "摘要", Source: "百度搜索"}}}, nil
}

func newTools(t *testing.T) (map[string]tool.InvokableTool, *stubSearcher) {
	t.Helper()
	cfg := config.Default()
	cfg.Chart.OutputDir = t.TempDir()
	cfg.Chart.SaveDPI = 20
	cfg.Chart.PreviewDPI = 10
	cfg.Concurrency.RPM = 0

	e, err := engine.NewEngine(cfg)
	require.NoError(t, err)
	stub := &stubSearcher{}

	ts, err := New(e.WithSearcher(stub))
	require.NoError(t, err)

	out := make(map[string]tool.InvokableTool, len(ts))
	for _, bt := range ts {
		info, err := bt.Info(context.Background())
		require.NoError(t, err)
		it, ok := bt.(tool.InvokableTool)
		require.True(t, ok, info.Name)
		out[info.Name] = it
	}
	return out, stub
}

func TestNew_Names(t *testing.T) {
	ts, _ := newTools(t)
	assert.Len(t, ts, 4)
	for _, name := range []string{NameGenerateChart, NameSearchMarketInfo, NameSearchFinancialInfo, NameExportWorkbook} {
		assert.Contains(t, ts, name)
	}
}

func TestGenerateChartTool(t *testing.T) {
	ts, _ := newTools(t)

	out, err := ts[NameGenerateChart].InvokableRun(context.Background(), `{"data_summary":"营业收入：8900 净利润:800","chart_type":"bar"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "Type: bar")
	assert.Contains(t, out, ".png")
}

func TestSearchFinancialInfoTool(t *testing.T) {
	ts, stub := newTools(t)

	out, err := ts[NameSearchFinancialInfo].InvokableRun(context.Background(), `{"company":"比亚迪","year":"2023"}`)
	require.NoError(t, err)
	assert.Equal(t, "比亚迪 2023年 财务报告 年报", stub.query)
	assert.Contains(t, out, "标题")
}

func TestSearchMarketInfoTool(t *testing.T) {
	ts, stub := newTools(t)

	_, err := ts[NameSearchMarketInfo].InvokableRun(context.Background(), `{"query":"新能源汽车 销量"}`)
	require.NoError(t, err)
	assert.Equal(t, "新能源汽车 销量", stub.query)
}

func TestExportWorkbookTool(t *testing.T) {
	ts, _ := newTools(t)

	out, err := ts[NameExportWorkbook].InvokableRun(context.Background(), `{"data_summary":"营业收入 100 净利润 10"}`)
	require.NoError(t, err)
	assert.Contains(t, out, ".xlsx")
}

func TestInvalidArguments(t *testing.T) {
	ts, _ := newTools(t)

	_, err := ts[NameSearchMarketInfo].InvokableRun(context.Background(), `not json`)
	assert.Error(t, err)
}
