package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/logger"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/model"
)

var errNoData = errors.New("no data to plot")

func newPlot(title string, style Style) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Title.Padding = vg.Points(20)
	p.BackgroundColor = style.Background
	return p
}

func addGrid(p *plot.Plot, style Style) {
	g := plotter.NewGrid()
	g.Vertical.Color = style.GridColor
	g.Horizontal.Color = style.GridColor
	g.Vertical.Width = vg.Points(0.5)
	g.Horizontal.Width = vg.Points(0.5)
	p.Add(g)
}

// rotateXTicks 横轴类别标签旋转 45°
func rotateXTicks(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
}

// addBars 每个指标一根柱子，位置为 0..n-1
func addBars(p *plot.Plot, m model.Metrics, width vg.Length, colorAt func(i int) color.Color) error {
	for i, it := range m {
		bars, err := plotter.NewBarChart(plotter.Values{it.Value}, width)
		if err != nil {
			return fmt.Errorf("bar %q: %w", it.Name, err)
		}
		bars.XMin = float64(i)
		bars.Color = colorAt(i)
		bars.LineStyle.Width = 0
		p.Add(bars)
	}
	p.NominalX(m.Keys()...)
	return nil
}

func barWidth(figWidth vg.Length, n int) vg.Length {
	w := figWidth * 0.55 / vg.Length(n)
	if limit := vg.Points(60); w > limit {
		return limit
	}
	return w
}

// valueLabels 在柱顶标注数值
func valueLabels(m model.Metrics) (*plotter.Labels, error) {
	xys := make(plotter.XYs, m.Len())
	labels := make([]string, m.Len())
	for i, it := range m {
		xys[i].X = float64(i)
		xys[i].Y = it.Value
		labels[i] = fmt.Sprintf("%.2f", it.Value)
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, err
	}
	for i := range l.TextStyle {
		l.TextStyle[i].XAlign = text.XCenter
		l.TextStyle[i].YAlign = text.YBottom
		l.TextStyle[i].Font.Size = vg.Points(10)
	}
	l.Offset = vg.Point{Y: vg.Points(2)}
	return l, nil
}

// headroom 为柱顶标注留出空间
func headroom(p *plot.Plot, m model.Metrics) {
	top := math.Inf(-1)
	for _, v := range m.Values() {
		top = math.Max(top, v)
	}
	if top > 0 {
		p.Y.Max = math.Max(p.Y.Max, top*1.12)
	}
}

// Bar 生成柱状图
func (r *Renderer) Bar(m model.Metrics, title, styleName string) *model.ChartResult {
	logger.Log.Infof("生成柱状图: %s", title)
	style := StyleByName(styleName)

	if m.Len() == 0 {
		logger.Log.Errorf("柱状图生成失败: %v", errNoData)
		return model.Failure(errNoData)
	}

	width, height := 10*vg.Inch, 6*vg.Inch
	p := newPlot(title, style)
	p.Y.Label.Text = "Value"
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	addGrid(p, style)

	err := addBars(p, m, barWidth(width, m.Len()), func(i int) color.Color {
		return withAlpha(style.Color(i), 0.8)
	})
	if err == nil {
		var labels *plotter.Labels
		if labels, err = valueLabels(m); err == nil {
			p.Add(labels)
		}
	}
	if err != nil {
		logger.Log.Errorf("柱状图生成失败: %v", err)
		return model.Failure(err)
	}
	headroom(p, m)
	rotateXTicks(p)

	path, b64, err := r.output(figure{width: width, height: height, draw: p.Draw}, r.filename(model.ChartBar))
	if err != nil {
		logger.Log.Errorf("柱状图生成失败: %v", err)
		return model.Failure(err)
	}

	return &model.ChartResult{
		ChartType:   model.ChartBar,
		Title:       title,
		FilePath:    path,
		ImageBase64: b64,
		DataPoints:  m.Len(),
		Status:      model.StatusSuccess,
	}
}
