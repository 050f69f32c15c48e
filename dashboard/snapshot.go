// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dashboard

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	snapshotWidth  = 1024
	snapshotHeight = 512
)

// WriteSnapshot renders a flat projection of the points as PNG: one column
// per region in order of first appearance, students on the y axis, colored
// like the 3D figure. With no points it renders an empty titled frame.
func WriteSnapshot(w io.Writer, title string, points []Point) error {
	var (
		regions []string
		index   = map[string]int{}
		xs      = make([]float64, len(points))
		ys      = make([]float64, len(points))
		top     float64
	)
	for i, p := range points {
		idx, ok := index[p.Region]
		if !ok {
			idx = len(regions)
			index[p.Region] = idx
			regions = append(regions, p.Region)
		}
		xs[i] = float64(idx)
		ys[i] = p.Students
		top = max(top, p.Students)
	}
	colors := Normalize(ys)

	style := chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColorProvider: func(_, _ chart.Range, i int, _, _ float64) drawing.Color {
			return chart.Viridis(colors[i], 0, 1)
		},
	}
	if len(points) == 0 {
		// go-chart needs one series; this one draws nothing
		xs, ys = []float64{0}, []float64{0}
		style = chart.Style{StrokeWidth: chart.Disabled}
	}

	ch := chart.Chart{
		Title:      title,
		Width:      snapshotWidth,
		Height:     snapshotHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "Region",
			Ticks: regionTicks(regions),
		},
		YAxis: chart.YAxis{
			Name:  "Students",
			Range: &chart.ContinuousRange{Min: 0, Max: max(top, 1) * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return humanize.Commaf(float64(int64(f)))
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    title,
				XValues: xs,
				YValues: ys,
				Style:   style,
			},
		},
	}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render snapshot: %w", err)
	}
	return nil
}

// regionTicks labels one tick per region. go-chart takes the x range from
// the outermost ticks, so unlabeled ticks half a column outside the first
// and last region keep the range non-empty even for a single region.
func regionTicks(regions []string) []chart.Tick {
	n := max(len(regions), 1)
	ticks := make([]chart.Tick, 0, len(regions)+2)
	ticks = append(ticks, chart.Tick{Value: -0.5})
	for i, name := range regions {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: name})
	}
	return append(ticks, chart.Tick{Value: float64(n) - 0.5})
}
