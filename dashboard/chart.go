// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/dropout-cube/models"
)

var errRowFormat = errors.New("unexpected data format")

// Point is one plotted row after labels have been resolved.
type Point struct {
	Region   string
	Time     string
	Standard string
	Students float64
}

// Figure is a Plotly figure document.
type Figure struct {
	Data   []Scatter3D `json:"data"`
	Layout Layout      `json:"layout"`
}

type Layout struct {
	Title string `json:"title,omitempty"`
	Scene *Scene `json:"scene,omitempty"`
}

type Scene struct {
	XAxis Axis `json:"xaxis"`
	YAxis Axis `json:"yaxis"`
	ZAxis Axis `json:"zaxis"`
}

type Axis struct {
	Title string `json:"title"`
}

// Scatter3D is a Plotly scatter3d trace.
type Scatter3D struct {
	Type      string   `json:"type"`
	Mode      string   `json:"mode"`
	Name      string   `json:"name"`
	X         []string `json:"x"`
	Y         []string `json:"y"`
	Z         []string `json:"z"`
	Text      []string `json:"text"`
	HoverInfo string   `json:"hoverinfo"`
	Marker    Marker   `json:"marker"`
}

type Marker struct {
	Size       int       `json:"size"`
	Color      []float64 `json:"color"`
	ColorScale string    `json:"colorscale"`
	Opacity    float64   `json:"opacity"`
}

// EmptyFigure is rendered when there is nothing to plot.
func EmptyFigure() Figure {
	return Figure{Data: []Scatter3D{}}
}

// Empty reports whether the figure has no traces.
func (f Figure) Empty() bool {
	return len(f.Data) == 0
}

// NewScatter3D plots rows as a single 3D scatter trace with regions on x,
// standards on y and time labels on z. Rows that cannot be plotted produce
// an empty figure.
func NewScatter3D(rows [][]any, title string, collective bool) Figure {
	points, err := Points(rows)
	if err != nil {
		slog.Warn("cannot plot rows", "title", title, "rows", len(rows), "error", err)
		return EmptyFigure()
	}
	if len(points) == 0 {
		return EmptyFigure()
	}

	hover := hoverTime
	if collective {
		points = Collapse(points)
		hover = hoverYear
	}

	trace := Scatter3D{
		Type:      "scatter3d",
		Mode:      "markers",
		Name:      title,
		HoverInfo: "text",
		Marker: Marker{
			Size:       5,
			ColorScale: "Viridis",
			Opacity:    0.8,
		},
	}
	students := make([]float64, len(points))
	for i, p := range points {
		trace.X = append(trace.X, p.Region)
		trace.Y = append(trace.Y, p.Standard)
		trace.Z = append(trace.Z, p.Time)
		trace.Text = append(trace.Text, hover(p))
		students[i] = p.Students
	}
	trace.Marker.Color = Normalize(students)

	return Figure{
		Data: []Scatter3D{trace},
		Layout: Layout{
			Title: title,
			Scene: &Scene{
				XAxis: Axis{Title: "Region"},
				YAxis: Axis{Title: "Standard"},
				ZAxis: Axis{Title: "Time"},
			},
		},
	}
}

// Points resolves rows of width 6 (region, year, month, day, standard,
// students) or width 4 (region, time, standard, students). Every row must
// have the width of the first.
func Points(rows [][]any) ([]Point, error) {
	if len(rows) == 0 {
		return []Point{}, nil
	}

	width := len(rows[0])
	if width != 4 && width != 6 {
		return nil, fmt.Errorf("%w: rows of width %d", errRowFormat, width)
	}

	points := make([]Point, 0, len(rows))
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has width %d, expected %d", errRowFormat, i, len(row), width)
		}

		var p Point
		var measure any
		if width == 6 {
			p = Point{
				Region:   label(row[0], models.AllRegions),
				Time:     dateLabel(row[1], row[2], row[3]),
				Standard: label(row[4], models.AllStandards),
			}
			measure = row[5]
		} else {
			p = Point{
				Region:   label(row[0], models.AllRegions),
				Time:     label(row[1], models.AllTime),
				Standard: label(row[2], models.AllStandards),
			}
			measure = row[3]
		}

		students, err := toFloat(measure)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		p.Students = students
		points = append(points, p)
	}
	return points, nil
}

// Normalize scales values into [0, 1] by min and max. If every value is the
// same, each maps to 0.5.
func Normalize(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	for i, v := range values {
		if lo == hi {
			out[i] = 0.5
			continue
		}
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}

func hoverTime(p Point) string {
	return fmt.Sprintf("Region: %s, Time: %s, Standard: %s, Students: %s",
		p.Region, p.Time, p.Standard, humanize.Commaf(p.Students))
}

func hoverYear(p Point) string {
	return fmt.Sprintf("Region: %s, Year: %s, Standard: %s, Students: %s",
		p.Region, p.Time, p.Standard, humanize.Commaf(p.Students))
}

func label(v any, sentinel string) string {
	switch x := v.(type) {
	case nil:
		return sentinel
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func dateLabel(year, month, day any) string {
	if year == nil || month == nil || day == nil {
		return models.AllTime
	}
	return label(year, "") + "-" + label(month, "") + "-" + label(day, "")
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case json.Number:
		return x.Float64()
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case string:
		return strconv.ParseFloat(x, 64)
	}
	return 0, fmt.Errorf("measure %v is not numeric", v)
}
