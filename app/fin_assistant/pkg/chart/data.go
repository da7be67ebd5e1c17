package chart

import (
	"fmt"
	"strings"

	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/model"
)

// DetectKind 按关键词识别图表类型，未识别时为柱状图，ok 为 false
func DetectKind(request string) (kind model.ChartKind, ok bool) {
	r := strings.ToLower(request)
	switch {
	case strings.Contains(r, "bar") || strings.Contains(r, "柱"):
		return model.ChartBar, true
	case strings.Contains(r, "line") || strings.Contains(r, "折线"):
		return model.ChartLine, true
	case strings.Contains(r, "pie") || strings.Contains(r, "饼"):
		return model.ChartPie, true
	case strings.Contains(r, "dashboard") || strings.Contains(r, "仪表"):
		return model.ChartDashboard, true
	default:
		return model.ChartBar, false
	}
}

// QuarterlySeries 把指标当作季度序列：不少于 4 个时取前 4 个并标记为 "Q<i> <名称>"，
// 否则按现有数量标记为 "Q<i>"。
func QuarterlySeries(m model.Metrics) model.Metrics {
	var out model.Metrics
	if m.Len() >= 4 {
		for i, it := range m.Head(4) {
			out = append(out, model.Metric{Name: fmt.Sprintf("Q%d %s", i+1, it.Name), Value: it.Value})
		}
		return out
	}
	for i, it := range m {
		out = append(out, model.Metric{Name: fmt.Sprintf("Q%d", i+1), Value: it.Value})
	}
	return out
}

var ratioKeywords = []string{"margin", "ratio", "roe", "rate"}

// PieSlices 只保留比率类指标；没有比率类指标时把全部数值归一化为百分比
func PieSlices(m model.Metrics) (model.Metrics, error) {
	if slices := m.Filter(ratioKeywords...); len(slices) > 0 {
		return slices, nil
	}

	total := m.Sum()
	if total == 0 {
		return nil, fmt.Errorf("pie chart: values sum to zero")
	}
	out := make(model.Metrics, 0, m.Len())
	for _, it := range m {
		out = append(out, model.Metric{Name: it.Name, Value: it.Value / total * 100})
	}
	return out, nil
}

// Quadrant 仪表盘中的一个象限
type Quadrant struct {
	Title   string
	Metrics model.Metrics
}

// DashboardQuadrants 按关键词族划分四个象限，顺序为左上、右上、左下、右下
func DashboardQuadrants(m model.Metrics) [4]Quadrant {
	growth := m.Filter("growth", "increase")
	if len(growth) == 0 {
		growth = append(model.Metrics(nil), m...)
	}
	structure := m.Filter("debt", "asset", "equity")
	if len(structure) == 0 {
		structure = m.Head(4)
	}
	efficiency := m.Filter("roe", "roa", "efficiency")
	if len(efficiency) == 0 {
		efficiency = m.Tail(4)
	}

	return [4]Quadrant{
		{Title: "Profitability Metrics", Metrics: m.Filter("revenue", "profit", "margin")},
		{Title: "Key Metrics Comparison", Metrics: growth},
		{Title: "Financial Structure", Metrics: structure},
		{Title: "Efficiency Metrics", Metrics: efficiency},
	}
}
