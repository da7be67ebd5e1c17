package chart

import (
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/logger"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/model"
)

// Line 生成折线图，横轴按指标顺序排列
func (r *Renderer) Line(m model.Metrics, title, xlabel, styleName string) *model.ChartResult {
	logger.Log.Infof("生成折线图: %s", title)
	style := StyleByName(styleName)

	if m.Len() == 0 {
		logger.Log.Errorf("折线图生成失败: %v", errNoData)
		return model.Failure(errNoData)
	}

	p := newPlot(title, style)
	p.X.Label.Text = xlabel
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.Text = "Value"
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	addGrid(p, style)

	xys := make(plotter.XYs, m.Len())
	for i, v := range m.Values() {
		xys[i].X = float64(i)
		xys[i].Y = v
	}
	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		logger.Log.Errorf("折线图生成失败: %v", err)
		return model.Failure(err)
	}
	c := style.Color(0)
	line.Color = c
	line.Width = vg.Points(2.5)
	line.FillColor = withAlpha(c, 0.2)
	points.Color = c
	points.Shape = draw.CircleGlyph{}
	points.Radius = vg.Points(4)

	p.Add(line, points)
	p.NominalX(m.Keys()...)
	rotateXTicks(p)

	path, b64, err := r.output(figure{width: 12 * vg.Inch, height: 6 * vg.Inch, draw: p.Draw}, r.filename(model.ChartLine))
	if err != nil {
		logger.Log.Errorf("折线图生成失败: %v", err)
		return model.Failure(err)
	}

	return &model.ChartResult{
		ChartType:   model.ChartLine,
		Title:       title,
		FilePath:    path,
		ImageBase64: b64,
		DataPoints:  m.Len(),
		Status:      model.StatusSuccess,
	}
}
