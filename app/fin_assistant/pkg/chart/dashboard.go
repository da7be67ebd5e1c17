package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/logger"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/model"
)

// quadrantPlots 构建 2x2 子图。子集为空的象限保留空白坐标系。
func quadrantPlots(m model.Metrics, cellWidth vg.Length) ([][]*plot.Plot, int, error) {
	quadrants := DashboardQuadrants(m)
	style := StyleByName("corporate")

	plots := [][]*plot.Plot{make([]*plot.Plot, 2), make([]*plot.Plot, 2)}
	drawn := 0
	for i, q := range quadrants {
		p := plot.New()
		p.BackgroundColor = style.Background
		plots[i/2][i%2] = p
		if q.Metrics.Len() == 0 {
			p.X.Min, p.X.Max = 0, 1
			p.Y.Min, p.Y.Max = 0, 1
			continue
		}

		p.Title.Text = q.Title
		addGrid(p, style)
		qc := quadrantColors[i]
		if err := addBars(p, q.Metrics, barWidth(cellWidth, q.Metrics.Len()), func(int) color.Color { return qc }); err != nil {
			return nil, 0, fmt.Errorf("quadrant %q: %w", q.Title, err)
		}
		rotateXTicks(p)
		drawn++
	}
	return plots, drawn, nil
}

// Dashboard 生成 2x2 财务指标仪表盘
func (r *Renderer) Dashboard(m model.Metrics, company, year string) *model.ChartResult {
	suptitle := fmt.Sprintf("%s %s Financial Metrics Dashboard", company, year)
	logger.Log.Infof("生成仪表盘: %s", suptitle)

	width, height := 15*vg.Inch, 10*vg.Inch
	plots, drawn, err := quadrantPlots(m, width/2)
	if err != nil {
		logger.Log.Errorf("仪表盘生成失败: %v", err)
		return model.Failure(err)
	}
	logger.Log.WithField("quadrants", drawn).Debug("仪表盘象限")

	titleStyle := plots[0][0].Title.TextStyle
	titleStyle.Font.Size = vg.Points(16)
	titleStyle.XAlign = text.XCenter
	titleStyle.YAlign = text.YTop

	fig := figure{width: width, height: height, draw: func(dc draw.Canvas) {
		titleHeight := vg.Points(40)
		dc.FillText(titleStyle, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - vg.Points(8)}, suptitle)

		body := draw.Crop(dc, 0, 0, 0, -titleHeight)
		tiles := draw.Tiles{
			Rows:      2,
			Cols:      2,
			PadX:      vg.Points(24),
			PadY:      vg.Points(24),
			PadTop:    vg.Points(4),
			PadBottom: vg.Points(8),
			PadLeft:   vg.Points(8),
			PadRight:  vg.Points(8),
		}
		canvases := plot.Align(plots, tiles, body)
		for row := range plots {
			for col := range plots[row] {
				plots[row][col].Draw(canvases[row][col])
			}
		}
	}}

	path, b64, err := r.output(fig, r.dashboardFilename(company, year))
	if err != nil {
		logger.Log.Errorf("仪表盘生成失败: %v", err)
		return model.Failure(err)
	}

	return &model.ChartResult{
		ChartType:    model.ChartDashboard,
		Title:        fmt.Sprintf("%s %s Financial Dashboard", company, year),
		FilePath:     path,
		ImageBase64:  b64,
		MetricsCount: m.Len(),
		Status:       model.StatusSuccess,
	}
}
