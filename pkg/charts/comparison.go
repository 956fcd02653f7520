package charts

import (
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"pitwallbot/pkg/helper"
	"pitwallbot/pkg/model"
)

// AlignLaps lines two lap sequences up on a shared lap-number domain
// 1..max(len(a), len(b)). A lap number with no matching record yields NaN,
// the missing marker: rendered as a gap, never interpolated, never zero.
// This view is intentionally raw, so no anomaly or sentinel filtering.
func AlignLaps(a, b []model.Lap) (xs, ya, yb []float64) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	byNumber := func(laps []model.Lap, k int) float64 {
		for _, l := range laps {
			if l.LapNumber == k {
				return l.LapDuration
			}
		}
		return math.NaN()
	}
	for k := 1; k <= n; k++ {
		xs = append(xs, float64(k))
		ya = append(ya, byNumber(a, k))
		yb = append(yb, byNumber(b, k))
	}
	return
}

// BuildComparison builds the two-driver comparison surface. Runs of present
// values become line segments; NaN gaps split them, so missing laps show as
// real holes in the line.
func BuildComparison(d1, d2 model.Driver) chart.Chart {
	xs, ya, yb := AlignLaps(d1.Laps, d2.Laps)

	var series []chart.Series
	series = append(series, segmentSeries(xs, ya, driverLabel(d1), TeamColor(d1.TeamColor))...)
	series = append(series, segmentSeries(xs, yb, driverLabel(d2), TeamColor(d2.TeamColor))...)

	yr := comparisonRange(ya, yb)
	graph := chart.Chart{
		Title:  fmt.Sprintf("%s vs %s", driverLabel(d1), driverLabel(d2)),
		Width:  1200,
		Height: 500,
		XAxis: chart.XAxis{
			Name: "Lap",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name:  "Lap time",
			Range: &chart.ContinuousRange{Min: yr[0], Max: yr[1]},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return helper.FormatLapTime(f)
				}
				return ""
			},
		},
		Series: series,
	}
	if len(series) > 0 {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}
	return graph
}

func driverLabel(d model.Driver) string {
	if d.NameAcronym != "" {
		return d.NameAcronym
	}
	return helper.DriverCode(d.FullName)
}

// segmentSeries splits an aligned series on NaN gaps. Only the first
// segment carries the name so the legend lists each driver once.
func segmentSeries(xs, ys []float64, name string, color drawing.Color) []chart.Series {
	var out []chart.Series
	var sx, sy []float64
	flush := func() {
		if len(sx) == 0 {
			return
		}
		n := ""
		if len(out) == 0 {
			n = name
		}
		px, py := padSingle(sx, sy)
		out = append(out, chart.ContinuousSeries{
			Name:    n,
			XValues: px,
			YValues: py,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2.0,
				DotColor:    color,
				DotWidth:    3.0,
			},
		})
		sx, sy = nil, nil
	}
	for i := range xs {
		if math.IsNaN(ys[i]) {
			flush()
			continue
		}
		sx = append(sx, xs[i])
		sy = append(sy, ys[i])
	}
	flush()
	return out
}

func comparisonRange(ya, yb []float64) [2]float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, ys := range [][]float64{ya, yb} {
		for _, y := range ys {
			if math.IsNaN(y) {
				continue
			}
			if y < lo {
				lo = y
			}
			if y > hi {
				hi = y
			}
		}
	}
	if math.IsInf(lo, 1) {
		return [2]float64{0, 1}
	}
	if lo == hi {
		hi = lo + 1
	}
	return [2]float64{lo - 2, hi + 2}
}
