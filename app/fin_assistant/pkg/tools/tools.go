// Package tools 把引擎入口包装成 agent 可调用的函数工具。
package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"

	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/engine"
)

const (
	NameGenerateChart       = "generate_chart"
	NameSearchMarketInfo    = "search_market_info"
	NameSearchFinancialInfo = "search_financial_info"
	NameExportWorkbook      = "export_metrics_workbook"
)

// ChartInput generate_chart 参数
type ChartInput struct {
	DataSummary string `json:"data_summary" jsonschema:"description=包含财务指标的文本，例如 营业收入：8900 净利润：800"`
	ChartType   string `json:"chart_type" jsonschema:"description=图表类型：bar / line / pie / dashboard"`
}

// SearchInput search_market_info 参数
type SearchInput struct {
	Query string `json:"query" jsonschema:"description=搜索关键词"`
}

// FinancialInput search_financial_info 参数
type FinancialInput struct {
	Company string `json:"company" jsonschema:"description=公司名称"`
	Year    string `json:"year,omitempty" jsonschema:"description=年份，例如 2023，可为空"`
}

// WorkbookInput export_metrics_workbook 参数
type WorkbookInput struct {
	DataSummary string `json:"data_summary" jsonschema:"description=包含财务指标的文本"`
}

// New 创建全部工具
func New(e *engine.Engine) ([]tool.BaseTool, error) {
	chartTool, err := utils.InferTool(NameGenerateChart,
		"根据财务数据文本生成图表（柱状图、折线图、饼图或仪表盘），返回图表信息和文件路径",
		func(ctx context.Context, in *ChartInput) (string, error) {
			return e.GenerateChart(ctx, in.DataSummary, in.ChartType), nil
		})
	if err != nil {
		return nil, fmt.Errorf("create %s tool: %w", NameGenerateChart, err)
	}

	searchTool, err := utils.InferTool(NameSearchMarketInfo,
		"使用网页搜索查询市场、行业或公司相关信息",
		func(ctx context.Context, in *SearchInput) (string, error) {
			return e.SearchMarketInfo(ctx, in.Query), nil
		})
	if err != nil {
		return nil, fmt.Errorf("create %s tool: %w", NameSearchMarketInfo, err)
	}

	financialTool, err := utils.InferTool(NameSearchFinancialInfo,
		"搜索指定公司某一年度的财务报告信息",
		func(ctx context.Context, in *FinancialInput) (string, error) {
			return e.SearchFinancialInfo(ctx, in.Company, in.Year), nil
		})
	if err != nil {
		return nil, fmt.Errorf("create %s tool: %w", NameSearchFinancialInfo, err)
	}

	workbookTool, err := utils.InferTool(NameExportWorkbook,
		"把财务数据文本中的指标导出为 Excel 工作簿",
		func(ctx context.Context, in *WorkbookInput) (string, error) {
			return e.ExportWorkbook(ctx, in.DataSummary), nil
		})
	if err != nil {
		return nil, fmt.Errorf("create %s tool: %w", NameExportWorkbook, err)
	}

	return []tool.BaseTool{chartTool, searchTool, financialTool, workbookTool}, nil
}
