// Package extractor 从自由文本中提取财务指标。
//
// 提取按优先级分三层：中英文指标名匹配、数字+单位宽松匹配、固定示例数据。
// 本阶段从不返回错误。
package extractor

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/logger"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/model"
)

type labelPattern struct {
	re  *regexp.Regexp
	key string
}

// 顺序即输出顺序
var labelPatterns = []labelPattern{
	{regexp.MustCompile(`(?i)(营业收入|Revenue)[：:\s]*([\d.]+)`), "Revenue"},
	{regexp.MustCompile(`(?i)(净利润|Net Profit)[：:\s]*([\d.]+)`), "Net Profit"},
	{regexp.MustCompile(`(?i)(毛利率|Gross Margin)[：:\s]*([\d.]+)`), "Gross Margin"},
	{regexp.MustCompile(`(?i)(ROE|净资产收益率)[：:\s]*([\d.]+)`), "ROE"},
	{regexp.MustCompile(`(?i)(资产负债率|Debt Ratio)[：:\s]*([\d.]+)`), "Debt Ratio"},
	{regexp.MustCompile(`(?i)(总资产|Total Assets)[：:\s]*([\d.]+)`), "Total Assets"},
	{regexp.MustCompile(`(?i)(总负债|Total Liabilities)[：:\s]*([\d.]+)`), "Total Liabilities"},
}

var looseNumber = regexp.MustCompile(`(?i)([\d.]+)\s*(?:亿元|亿|%|percent|million|billion)`)

// 宽松匹配时按位置分配的名称
var looseKeys = []string{"Revenue", "Net Profit", "Gross Margin", "ROE", "Other Metric 1", "Other Metric 2"}

var (
	companyPattern = regexp.MustCompile(`(?i)(公司|Company)[：:\s]*([^\s，]+)`)
	yearPattern    = regexp.MustCompile(`(\d{4})年`)
)

// Result 提取结果
type Result struct {
	Metrics model.Metrics
	Source  model.ExtractSource
}

// Placeholder 未识别到任何数据时使用的示例指标。
// 这些数值是虚构的，调用方应通过 Result.Source 区分。
func Placeholder() model.Metrics {
	return model.Metrics{
		{Name: "Revenue", Value: 8900},
		{Name: "Net Profit", Value: 800},
		{Name: "Gross Margin", Value: 45},
		{Name: "ROE", Value: 15},
		{Name: "Total Assets", Value: 15000},
		{Name: "Total Liabilities", Value: 7000},
	}
}

// Extract 提取财务指标，永不失败
func Extract(text string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Errorf("指标解析异常: %v", r)
			res = Result{Metrics: Placeholder(), Source: model.SourcePlaceholder}
		}
	}()

	if m := matchLabels(text); len(m) > 0 {
		logger.Log.Debugf("指标名匹配结果: %v", m)
		return Result{Metrics: m, Source: model.SourceLabels}
	}

	logger.Log.Debug("未命中指标名，尝试宽松匹配")
	if m := matchLoose(text); len(m) > 0 {
		return Result{Metrics: m, Source: model.SourceLoose}
	}

	logger.Log.Warn("未能从文本中解析出任何指标，使用示例数据，图表内容并非真实披露")
	return Result{Metrics: Placeholder(), Source: model.SourcePlaceholder}
}

func matchLabels(text string) model.Metrics {
	var m model.Metrics
	for _, p := range labelPatterns {
		match := p.re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		value, err := strconv.ParseFloat(match[2], 64)
		if err != nil {
			logger.Log.Debugf("解析 %s 失败: %v", p.key, err)
			continue
		}
		m = m.Set(p.key, value)
	}
	return m
}

func matchLoose(text string) model.Metrics {
	var m model.Metrics
	for i, match := range looseNumber.FindAllStringSubmatch(text, -1) {
		if i >= len(looseKeys) {
			break
		}
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		m = m.Set(looseKeys[i], value)
	}
	return m
}

// Company 从文本中提取公司名，未找到时返回 fallback
func Company(text, fallback string) string {
	if match := companyPattern.FindStringSubmatch(text); len(match) >= 3 && match[2] != "" {
		return match[2]
	}
	return fallback
}

// Year 提取形如 "2023年" 的年份，未找到时返回 fallback
func Year(text, fallback string) string {
	if match := yearPattern.FindStringSubmatch(text); match != nil {
		return match[1]
	}
	return fallback
}

// Describe 用于日志的简短描述
func (r Result) Describe() string {
	return fmt.Sprintf("%d metrics (%s)", r.Metrics.Len(), r.Source)
}
