package model

import "strings"

// Metric 单个财务指标
type Metric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Metrics 有序的指标映射，顺序即插入顺序
type Metrics []Metric

// Len 指标数量
func (m Metrics) Len() int { return len(m) }

// Get 按名称取值
func (m Metrics) Get(name string) (float64, bool) {
	for _, it := range m {
		if it.Name == name {
			return it.Value, true
		}
	}
	return 0, false
}

// Set 已存在则覆盖，否则追加到末尾
func (m Metrics) Set(name string, value float64) Metrics {
	for i := range m {
		if m[i].Name == name {
			m[i].Value = value
			return m
		}
	}
	return append(m, Metric{Name: name, Value: value})
}

// Keys 按顺序返回名称
func (m Metrics) Keys() []string {
	keys := make([]string, len(m))
	for i, it := range m {
		keys[i] = it.Name
	}
	return keys
}

// Values 按顺序返回数值
func (m Metrics) Values() []float64 {
	values := make([]float64, len(m))
	for i, it := range m {
		values[i] = it.Value
	}
	return values
}

// Filter 返回名称(小写)包含任一关键词的指标
func (m Metrics) Filter(keywords ...string) Metrics {
	var out Metrics
	for _, it := range m {
		name := strings.ToLower(it.Name)
		for _, kw := range keywords {
			if strings.Contains(name, kw) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// Head 前 n 个
func (m Metrics) Head(n int) Metrics {
	if n > len(m) {
		n = len(m)
	}
	return append(Metrics(nil), m[:n]...)
}

// Tail 后 n 个
func (m Metrics) Tail(n int) Metrics {
	if n > len(m) {
		n = len(m)
	}
	return append(Metrics(nil), m[len(m)-n:]...)
}

// Sum 数值之和
func (m Metrics) Sum() float64 {
	var total float64
	for _, it := range m {
		total += it.Value
	}
	return total
}

// ExtractSource 指标来源
type ExtractSource string

const (
	SourceLabels      ExtractSource = "labels"      // 命中中英文指标名
	SourceLoose       ExtractSource = "loose"       // 数字+单位宽松匹配
	SourcePlaceholder ExtractSource = "placeholder" // 未识别到任何数据时的示例数据
)

// ChartKind 图表类型
type ChartKind string

const (
	ChartBar       ChartKind = "bar"
	ChartLine      ChartKind = "line"
	ChartPie       ChartKind = "pie"
	ChartDashboard ChartKind = "dashboard"
)

// ChartStatus 渲染结果状态
type ChartStatus string

const (
	StatusSuccess ChartStatus = "success"
	StatusError   ChartStatus = "error"
)

// ChartResult 单次渲染的结果记录
type ChartResult struct {
	ChartType    ChartKind   `json:"chart_type,omitempty"`
	Title        string      `json:"title,omitempty"`
	FilePath     string      `json:"filepath,omitempty"`
	ImageBase64  string      `json:"image_base64,omitempty"`
	DataPoints   int         `json:"data_points,omitempty"`
	MetricsCount int         `json:"metrics_count,omitempty"`
	Status       ChartStatus `json:"status"`
	Message      string      `json:"message,omitempty"`
}

// OK 是否渲染成功
func (r *ChartResult) OK() bool { return r != nil && r.Status == StatusSuccess }

// Failure 构造失败记录
func Failure(err error) *ChartResult {
	return &ChartResult{Status: StatusError, Message: err.Error()}
}
