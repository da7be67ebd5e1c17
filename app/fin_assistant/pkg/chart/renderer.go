// Package chart 使用 gonum/plot 把财务指标渲染为 PNG 图表。
package chart

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/config"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/logger"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/model"
)

const timestampLayout = "20060102_150405"

// Renderer 图表渲染器。构造后不再持有可变状态，可在进程内共享。
type Renderer struct {
	outputDir  string
	saveDPI    float64
	previewDPI float64
	now        func() time.Time
}

// NewRenderer 创建渲染器，输出目录不存在时自动创建
func NewRenderer(cfg config.ChartConfig) (*Renderer, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart output dir: %w", err)
	}
	logger.Log.Infof("图表输出目录: %s", cfg.OutputDir)

	return &Renderer{
		outputDir:  cfg.OutputDir,
		saveDPI:    cfg.SaveDPI,
		previewDPI: cfg.PreviewDPI,
		now:        time.Now,
	}, nil
}

// WithClock 替换文件名使用的时钟
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	cp := *r
	cp.now = now
	return &cp
}

// OutputDir 图表输出目录
func (r *Renderer) OutputDir() string { return r.outputDir }

// Render 按图表类型分派。未识别的类型按柱状图处理。
func (r *Renderer) Render(m model.Metrics, chartType, company, year string) *model.ChartResult {
	kind, ok := DetectKind(chartType)
	switch kind {
	case model.ChartLine:
		return r.Line(QuarterlySeries(m), fmt.Sprintf("%s %s Quarterly Performance", company, year), "Quarter", "modern")
	case model.ChartPie:
		return r.Pie(m, fmt.Sprintf("%s %s Financial Structure", company, year), "classic")
	case model.ChartDashboard:
		return r.Dashboard(m, company, year)
	default:
		title := fmt.Sprintf("%s %s Key Financial Indicators", company, year)
		if !ok {
			title = fmt.Sprintf("%s %s Financial Metrics", company, year)
		}
		return r.Bar(m, title, "corporate")
	}
}

// figure 一次可绘制的图
type figure struct {
	width, height vg.Length
	draw          func(dc draw.Canvas)
}

// output 落盘并生成 base64 副本
func (r *Renderer) output(fig figure, filename string) (path, b64 string, err error) {
	path, err = model.JoinUnder(r.outputDir, filename)
	if err != nil {
		return "", "", fmt.Errorf("save chart: %w", err)
	}
	full, err := encodePNG(fig, r.saveDPI)
	if err != nil {
		return "", "", err
	}
	if err := os.WriteFile(path, full, 0o644); err != nil {
		return "", "", fmt.Errorf("save chart: %w", err)
	}
	logger.Log.Infof("图表已保存: %s", path)

	preview, err := encodePNG(fig, r.previewDPI)
	if err != nil {
		return "", "", err
	}
	return path, base64.StdEncoding.EncodeToString(preview), nil
}

func encodePNG(fig figure, dpi float64) (out []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("draw chart: %v", rec)
		}
	}()

	img := vgimg.NewWith(vgimg.UseWH(fig.width, fig.height), vgimg.UseDPI(int(dpi)))
	fig.draw(draw.New(img))

	var buf bytes.Buffer
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) filename(kind model.ChartKind) string {
	return fmt.Sprintf("%s_chart_%s.png", kind, r.now().Format(timestampLayout))
}

func (r *Renderer) dashboardFilename(company, year string) string {
	return fmt.Sprintf("dashboard_%s_%s_%s.png", model.FileNamePart(company), model.FileNamePart(year), r.now().Format(timestampLayout))
}
