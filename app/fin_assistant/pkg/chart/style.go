package chart

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Style 图表配色方案
type Style struct {
	Name       string
	Background color.Color
	GridColor  color.Color
	Colors     []color.Color
}

// Color 按序号取色，超出时循环
func (s Style) Color(i int) color.Color {
	return s.Colors[i%len(s.Colors)]
}

var styles = map[string]Style{
	"corporate": {
		Name:       "corporate",
		Background: color.White,
		GridColor:  mustHex("#DDDDDD"),
		Colors:     hexColors("#2E86AB", "#A23B72", "#F18F01", "#C73E1D"),
	},
	"modern": {
		Name:       "modern",
		Background: mustHex("#EAEAF2"),
		GridColor:  color.White,
		Colors:     hexColors("#00A8E8", "#007EA7", "#003459", "#00171F"),
	},
	"classic": {
		Name:       "classic",
		Background: color.White,
		GridColor:  mustHex("#B0B0B0"),
		Colors:     hexColors("#1f77b4", "#ff7f0e", "#2ca02c", "#d62728"),
	},
}

// StyleByName 未知名称回落到 corporate
func StyleByName(name string) Style {
	if s, ok := styles[name]; ok {
		return s
	}
	return styles["corporate"]
}

// 仪表盘四个象限的颜色
var quadrantColors = hexColors("#2E86AB", "#A23B72", "#F18F01", "#C73E1D")

func hexColors(hex ...string) []color.Color {
	out := make([]color.Color, len(hex))
	for i, h := range hex {
		out[i] = mustHex(h)
	}
	return out
}

func mustHex(s string) color.Color {
	c, err := parseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// withAlpha 设置透明度，alpha 取值 [0, 1]
func withAlpha(c color.Color, alpha float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(alpha * 255)
	return n
}
