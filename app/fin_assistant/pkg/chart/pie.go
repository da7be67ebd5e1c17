package chart

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/logger"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/model"
)

// pieChart 实现 plot.Plotter，从 90° 开始逆时针绘制扇区
type pieChart struct {
	slices     model.Metrics
	style      Style
	labelStyle text.Style
	pctStyle   text.Style
}

func newPieChart(slices model.Metrics, style Style, base text.Style) (*pieChart, error) {
	if slices.Len() == 0 {
		return nil, errNoData
	}
	for _, it := range slices {
		if it.Value < 0 || math.IsNaN(it.Value) || math.IsInf(it.Value, 0) {
			return nil, fmt.Errorf("pie chart: invalid slice %q = %v", it.Name, it.Value)
		}
	}
	if slices.Sum() <= 0 {
		return nil, fmt.Errorf("pie chart: values sum to zero")
	}

	labelStyle := base
	labelStyle.Font.Size = vg.Points(11)
	labelStyle.XAlign = text.XCenter
	labelStyle.YAlign = text.YCenter

	pctStyle := labelStyle
	pctStyle.Color = color.White
	pctStyle.Font.Size = vg.Points(10)

	return &pieChart{slices: slices, style: style, labelStyle: labelStyle, pctStyle: pctStyle}, nil
}

func (pc *pieChart) Plot(c draw.Canvas, _ *plot.Plot) {
	center := vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: (c.Min.Y + c.Max.Y) / 2}
	radius := c.Max.X - c.Min.X
	if h := c.Max.Y - c.Min.Y; h < radius {
		radius = h
	}
	radius *= 0.38

	total := pc.slices.Sum()
	angle := math.Pi / 2
	for i, it := range pc.slices {
		sweep := 2 * math.Pi * it.Value / total

		var wedge vg.Path
		wedge.Move(center)
		wedge.Arc(center, radius, angle, sweep)
		wedge.Close()
		c.SetColor(pc.style.Color(i))
		c.Fill(wedge)

		mid := angle + sweep/2
		c.FillText(pc.pctStyle, polar(center, radius*0.6, mid), fmt.Sprintf("%.1f%%", it.Value/total*100))
		c.FillText(pc.labelStyle, polar(center, radius*1.15, mid), it.Name)

		angle += sweep
	}
}

func polar(center vg.Point, r vg.Length, theta float64) vg.Point {
	return vg.Point{
		X: center.X + r*vg.Length(math.Cos(theta)),
		Y: center.Y + r*vg.Length(math.Sin(theta)),
	}
}

// Pie 生成饼图
func (r *Renderer) Pie(m model.Metrics, title, styleName string) *model.ChartResult {
	logger.Log.Infof("生成饼图: %s", title)
	style := StyleByName(styleName)

	slices, err := PieSlices(m)
	if err != nil {
		logger.Log.Errorf("饼图生成失败: %v", err)
		return model.Failure(err)
	}

	p := newPlot(title, style)
	p.HideAxes()
	pie, err := newPieChart(slices, style, p.Title.TextStyle)
	if err != nil {
		logger.Log.Errorf("饼图生成失败: %v", err)
		return model.Failure(err)
	}
	p.Add(pie)

	path, b64, err := r.output(figure{width: 8 * vg.Inch, height: 8 * vg.Inch, draw: p.Draw}, r.filename(model.ChartPie))
	if err != nil {
		logger.Log.Errorf("饼图生成失败: %v", err)
		return model.Failure(err)
	}

	return &model.ChartResult{
		ChartType:   model.ChartPie,
		Title:       title,
		FilePath:    path,
		ImageBase64: b64,
		DataPoints:  slices.Len(),
		Status:      model.StatusSuccess,
	}
}
