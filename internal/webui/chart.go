package webui

import (
	"math"

	"mvpf.ccj.org/internal/dataset"
)

const (
	chartWidth      = 760.0
	chartLabelWidth = 220.0
	chartValueWidth = 70.0
	chartBarHeight  = 16.0
	chartBarGap     = 6.0
	chartTopPadding = 10.0
)

type chartBar struct {
	Name     string
	Value    float64
	X        float64
	Y        float64
	Width    float64
	Height   float64
	TextY    float64
	Selected bool
	Negative bool
}

type chartData struct {
	Width       float64
	Height      float64
	LabelX      float64
	ValueX      float64
	ZeroX       float64
	AxisBottom  float64
	Bars        []chartBar
	HasSelected bool
}

// buildChart lays out a horizontal bar per row in dataset order.
// Bars grow left or right from the zero line so negative values read as costs.
func buildChart(rows []dataset.Row, selected func(name string) bool) chartData {
	area := chartWidth - chartLabelWidth - chartValueWidth
	chart := chartData{
		Width:  chartWidth,
		LabelX: chartLabelWidth - 8,
		ValueX: chartWidth - chartValueWidth + 6,
	}

	lo, hi := 0.0, 0.0
	for _, row := range rows {
		lo = math.Min(lo, row.Value)
		hi = math.Max(hi, row.Value)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	scale := func(v float64) float64 {
		return chartLabelWidth + (v-lo)/span*area
	}
	chart.ZeroX = scale(0)

	y := chartTopPadding
	for _, row := range rows {
		start, end := scale(math.Min(0, row.Value)), scale(math.Max(0, row.Value))
		bar := chartBar{
			Name:     row.Name,
			Value:    row.Value,
			X:        start,
			Y:        y,
			Width:    math.Max(end-start, 1),
			Height:   chartBarHeight,
			TextY:    y + chartBarHeight - 4,
			Negative: row.Value < 0,
		}
		if selected != nil && selected(row.Name) {
			bar.Selected = true
			chart.HasSelected = true
		}
		chart.Bars = append(chart.Bars, bar)
		y += chartBarHeight + chartBarGap
	}

	chart.AxisBottom = y
	chart.Height = y + chartTopPadding
	return chart
}
