package services

import (
	"bytes"
	"fmt"
	"strings"

	"smartwaste/dashboard/models"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	chartHeight    = 300
	chartFillAlpha = 96
	chartHeadroom  = 1.1
)

// ChartRenderer draws the weekly trend as an area chart.
type ChartRenderer struct {
	width  int
	height int
}

// NewChartRenderer creates a renderer producing charts of the given size.
func NewChartRenderer(width, height int) *ChartRenderer {
	if height <= 0 {
		height = chartHeight
	}
	return &ChartRenderer{width: width, height: height}
}

// RenderSVG draws the trend chart, filled down to a zero baseline, on the
// dark dashboard theme.
func (r *ChartRenderer) RenderSVG(tc models.TrendChart) ([]byte, error) {
	if len(tc.Values) < 2 {
		return nil, fmt.Errorf("trend chart needs at least 2 points, got %d", len(tc.Values))
	}

	xs := make([]float64, len(tc.Values))
	ys := make([]float64, len(tc.Values))
	ticks := make([]chart.Tick, len(tc.Values))
	maxY := 0.0
	for i, v := range tc.Values {
		xs[i] = float64(i)
		ys[i] = v.InexactFloat64()
		if ys[i] > maxY {
			maxY = ys[i]
		}
		label := ""
		if i < len(tc.Labels) {
			label = tc.Labels[i]
		}
		ticks[i] = chart.Tick{Value: float64(i), Label: label}
	}
	if maxY <= 0 {
		maxY = 1
	}

	line := hexColor(tc.LineColor)
	font := hexColor(tc.FontColor)
	axisStyle := chart.Style{
		FontColor:   font,
		StrokeColor: font,
	}

	graph := chart.Chart{
		Width:  r.width,
		Height: r.height,
		Background: chart.Style{
			FillColor: hexColor(tc.PaperColor),
			Padding: chart.Box{
				Top:    tc.MarginTop,
				Left:   tc.MarginLeft,
				Right:  tc.MarginRight,
				Bottom: tc.MarginBottom,
			},
		},
		Canvas: chart.Style{
			FillColor: hexColor(tc.PlotColor),
		},
		XAxis: chart.XAxis{
			Style: axisStyle,
			Range: &chart.ContinuousRange{Min: 0, Max: float64(len(tc.Values) - 1)},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Style: axisStyle,
			Range: &chart.ContinuousRange{Min: 0, Max: maxY * chartHeadroom},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    tc.SeriesName,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: line,
					StrokeWidth: 2,
					FillColor:   line.WithAlpha(chartFillAlpha),
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render trend chart: %w", err)
	}
	return buf.Bytes(), nil
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
