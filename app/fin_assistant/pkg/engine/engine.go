package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/chart"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/config"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/exporter"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/extractor"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/logger"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/model"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/search"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/search/factory"
)

// 生成图表所需的最少指标数
const minMetrics = 2

// Engine 核心处理引擎，持有进程内共享的渲染器、搜索客户端与导出器
type Engine struct {
	cfg      *config.Config
	renderer *chart.Renderer
	searcher search.Searcher
	exporter *exporter.Exporter
	limiter  *rate.Limiter
	fetch    func(ctx context.Context, url string, timeout time.Duration) (string, error)
}

// NewEngine 创建引擎实例
func NewEngine(cfg *config.Config) (*Engine, error) {
	renderer, err := chart.NewRenderer(cfg.Chart)
	if err != nil {
		return nil, fmt.Errorf("图表渲染器初始化失败: %w", err)
	}

	searcher, err := factory.NewSearcher(cfg)
	if err != nil {
		return nil, fmt.Errorf("搜索客户端初始化失败: %w", err)
	}

	exp, err := exporter.New(cfg.Chart.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("导出器初始化失败: %w", err)
	}

	return &Engine{
		cfg:      cfg,
		renderer: renderer,
		searcher: searcher,
		exporter: exp,
		limiter:  newLimiter(cfg.Concurrency),
		fetch:    fetchArticleText,
	}, nil
}

// newLimiter 每分钟 RPM 次，突发 QPS 次；RPM 不大于 0 时不限速
func newLimiter(c config.ConcurrencyConfig) *rate.Limiter {
	burst := c.QPS
	if burst <= 0 {
		burst = 1
	}
	if c.RPM <= 0 {
		return rate.NewLimiter(rate.Inf, burst)
	}
	return rate.NewLimiter(rate.Limit(float64(c.RPM)/60.0), burst)
}

// WithSearcher 替换搜索客户端
func (e *Engine) WithSearcher(s search.Searcher) *Engine {
	cp := *e
	cp.searcher = s
	return &cp
}

// Renderer 图表渲染器
func (e *Engine) Renderer() *chart.Renderer { return e.renderer }

// RenderChart 提取指标并渲染图表，返回结构化结果
func (e *Engine) RenderChart(ctx context.Context, summary, chartType string) (*model.ChartResult, extractor.Result) {
	extracted := extractor.Extract(summary)
	logger.Log.Infof("开始生成 %s 图表: %s", chartType, extracted.Describe())

	if extracted.Metrics.Len() < minMetrics {
		return model.Failure(fmt.Errorf("insufficient metrics: %d", extracted.Metrics.Len())), extracted
	}
	if err := ctx.Err(); err != nil {
		return model.Failure(err), extracted
	}

	company := extractor.Company(summary, e.cfg.Chart.DefaultCompany)
	year := extractor.Year(summary, e.cfg.Chart.DefaultYear)

	res := e.renderer.Render(extracted.Metrics, chartType, company, year)
	if !res.OK() {
		logger.Log.Errorf("图表生成失败: %s", res.Message)
	}
	return res, extracted
}

// GenerateChart 生成图表并返回可读的结果说明
func (e *Engine) GenerateChart(ctx context.Context, summary, chartType string) string {
	return ChartMessage(e.RenderChart(ctx, summary, chartType))
}

// ChartMessage 把渲染结果整理为可读文本
func ChartMessage(res *model.ChartResult, extracted extractor.Result) string {
	if extracted.Metrics.Len() < minMetrics {
		return "❌ Cannot extract sufficient financial information from provided data for chart generation."
	}
	if !res.OK() {
		msg := res.Message
		if msg == "" {
			msg = "Unknown error"
		}
		return fmt.Sprintf("❌ Chart generation failed: %s", msg)
	}

	dataPoints := "N/A"
	if res.ChartType != model.ChartDashboard {
		dataPoints = fmt.Sprint(res.DataPoints)
	}

	var sb strings.Builder
	sb.WriteString("\n✅✅✅ Chart generation successful!\n\n")
	sb.WriteString("【Chart Information】\n")
	fmt.Fprintf(&sb, "• Type: %s\n", res.ChartType)
	fmt.Fprintf(&sb, "• Title: %s\n", res.Title)
	fmt.Fprintf(&sb, "• Data Points: %s\n", dataPoints)
	fmt.Fprintf(&sb, "• File Path: %s\n", res.FilePath)
	if extracted.Source == model.SourcePlaceholder {
		sb.WriteString("• Data Source: placeholder sample data\n")
	}
	sb.WriteString("\n💡 Chart saved locally, ready for report embedding or further analysis.\n")
	return sb.String()
}

// Search 执行一次搜索。任何失败都转成兜底结果，不向调用方返回错误。
func (e *Engine) Search(ctx context.Context, query string) []search.Result {
	if err := e.limiter.Wait(ctx); err != nil {
		logger.Log.Errorf("搜索限流等待失败 [%s]: %v", query, err)
		return search.Fallback(query)
	}

	resp, err := e.searcher.Search(ctx, &search.Request{Query: query, MaxResults: e.cfg.Search.MaxResults})
	if err != nil {
		logger.Log.Errorf("搜索失败 [%s]: %v", query, err)
		return search.Fallback(query)
	}
	results := search.Dedupe(resp.Results, e.cfg.Search.MaxResults)
	logger.Log.Infof("搜索 [%s] 返回 %d 条结果", query, len(results))

	if e.cfg.Search.Enrich.Enabled {
		e.enrich(ctx, results)
	}
	return results
}

// Format 按配置的展示条数格式化结果
func (e *Engine) Format(results []search.Result, query string) string {
	return search.Format(results, query, e.cfg.Search.DisplayLimit)
}

// SearchMarketInfo 搜索并格式化结果
func (e *Engine) SearchMarketInfo(ctx context.Context, query string) string {
	return e.Format(e.Search(ctx, query), query)
}

// FinancialQuery 公司财报查询语句，year 为空时查最新数据
func FinancialQuery(company, year string) string {
	if year != "" {
		return fmt.Sprintf("%s %s年 财务报告 年报", company, year)
	}
	return fmt.Sprintf("%s 最新财务数据", company)
}

// SearchFinancialInfo 搜索公司财务信息
func (e *Engine) SearchFinancialInfo(ctx context.Context, company, year string) string {
	return e.SearchMarketInfo(ctx, FinancialQuery(company, year))
}

// SearchAsync 在独立 goroutine 中执行搜索，通道恰好产出一个值后关闭
func (e *Engine) SearchAsync(ctx context.Context, query string) <-chan string {
	out := make(chan string, 1)
	go func() {
		defer close(out)
		out <- e.SearchMarketInfo(ctx, query)
	}()
	return out
}

// ExportWorkbook 提取指标并导出 Excel 工作簿
func (e *Engine) ExportWorkbook(ctx context.Context, summary string) string {
	extracted := extractor.Extract(summary)
	if extracted.Metrics.Len() < minMetrics {
		return "❌ Cannot extract sufficient financial information from provided data for workbook export."
	}
	if err := ctx.Err(); err != nil {
		return fmt.Sprintf("❌ Workbook export failed: %v", err)
	}

	company := extractor.Company(summary, e.cfg.Chart.DefaultCompany)
	year := extractor.Year(summary, e.cfg.Chart.DefaultYear)

	path, err := e.exporter.Export(extracted.Metrics, company, year)
	if err != nil {
		logger.Log.Errorf("导出工作簿失败: %v", err)
		return fmt.Sprintf("❌ Workbook export failed: %v", err)
	}

	var sb strings.Builder
	sb.WriteString("✅ Workbook export successful!\n")
	fmt.Fprintf(&sb, "• Metrics: %d\n", extracted.Metrics.Len())
	fmt.Fprintf(&sb, "• File Path: %s\n", path)
	if extracted.Source == model.SourcePlaceholder {
		sb.WriteString("• Data Source: placeholder sample data\n")
	}
	return sb.String()
}
