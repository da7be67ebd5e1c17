// Package exporter 把提取出的财务指标导出为带柱状图的 Excel 工作簿。
package exporter

import (
	"fmt"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/logger"
	"github.com/iWorld-y/fin_assistant/app/fin_assistant/pkg/model"
)

// SheetName 指标所在的工作表
const SheetName = "财务指标"

// Exporter 工作簿导出器
type Exporter struct {
	outputDir string
	now       func() time.Time
}

// New 创建导出器，输出目录不存在时自动创建
func New(outputDir string) (*Exporter, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create workbook output dir: %w", err)
	}
	return &Exporter{outputDir: outputDir, now: time.Now}, nil
}

// WithClock 替换文件名使用的时钟
func (e *Exporter) WithClock(now func() time.Time) *Exporter {
	cp := *e
	cp.now = now
	return &cp
}

// Export 写出工作簿并返回文件路径
func (e *Exporter) Export(m model.Metrics, company, year string) (string, error) {
	if m.Len() == 0 {
		return "", fmt.Errorf("no metrics to export")
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Log.Warnf("关闭工作簿失败: %v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}
	if err := fillSheet(f, m); err != nil {
		return "", err
	}
	if err := addChart(f, m.Len(), fmt.Sprintf("%s %s Key Financial Indicators", company, year)); err != nil {
		return "", err
	}

	name := fmt.Sprintf("metrics_%s_%s_%s.xlsx", model.FileNamePart(company), model.FileNamePart(year), e.now().Format("20060102_150405"))
	path, err := model.JoinUnder(e.outputDir, name)
	if err != nil {
		return "", err
	}
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("保存工作簿失败: %w", err)
	}
	logger.Log.Infof("工作簿已导出: %s", path)
	return path, nil
}

func fillSheet(f *excelize.File, m model.Metrics) error {
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &[]any{"指标", "数值"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "B1", header); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, metric := range m {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &[]any{metric.Name, metric.Value}); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 22); err != nil {
		return err
	}
	return f.SetColWidth(SheetName, "B", "B", 14)
}

func addChart(f *excelize.File, rows int, title string) error {
	last := rows + 1
	err := f.AddChart(SheetName, "D2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$1", SheetName),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", SheetName, last),
			Values:     fmt.Sprintf("'%s'!$B$2:$B$%d", SheetName, last),
		}},
		Title:  []excelize.RichTextRun{{Text: title}},
		Legend: excelize.ChartLegend{Position: "none"},
		Format: excelize.GraphicOptions{OffsetX: 10, OffsetY: 10},
	})
	if err != nil {
		return fmt.Errorf("add chart: %w", err)
	}
	return nil
}
