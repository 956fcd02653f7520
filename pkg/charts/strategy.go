package charts

import (
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"pitwallbot/pkg/helper"
	"pitwallbot/pkg/model"
)

// Point is one plotted lap on the strategy surface, carrying the payload a
// selection event needs to start a drill-down.
type Point struct {
	DriverNumber int
	DriverName   string
	LapNumber    int
	LapDuration  float64
	Compound     model.Compound
	IsAnomaly    bool
}

// Label is the tooltip/caption content for a selected point.
func (p Point) Label() string {
	s := fmt.Sprintf("%s — lap %d — %s (%s)",
		p.DriverName, p.LapNumber, helper.FormatLapTime(p.LapDuration), p.Compound)
	if p.IsAnomaly {
		s += " ⚠ anomaly"
	}
	return s
}

// StrategySurface is a built strategy chart plus everything interaction
// needs: the plotted points and the fixed data ranges used to map clicks
// back into data space.
type StrategySurface struct {
	Chart  chart.Chart
	Points []Point
	XRange [2]float64
	YRange [2]float64
}

// StrategyPoints collects the plotted points for the visible drivers: clean
// laps always, plus anomalous laps with a sane duration (drawn distinctly).
func StrategyPoints(summary *model.Summary, active map[int]bool) []Point {
	var points []Point
	for _, d := range summary.Drivers {
		if !active[d.DriverNumber] {
			continue
		}
		for _, l := range d.Laps {
			if !l.SaneDuration() {
				continue
			}
			points = append(points, Point{
				DriverNumber: d.DriverNumber,
				DriverName:   d.FullName,
				LapNumber:    l.LapNumber,
				LapDuration:  l.LapDuration,
				Compound:     l.TireCompound(),
				IsAnomaly:    l.IsAnomaly,
			})
		}
	}
	return points
}

// BuildStrategy builds the per-lap tire strategy surface: one line per
// visible driver (team color) over clean laps, compound-colored point
// overlays, and a gray overlay for flagged laps. Hidden drivers are skipped
// at render time only; the summary data is untouched.
func BuildStrategy(summary *model.Summary, active map[int]bool) *StrategySurface {
	surface := &StrategySurface{
		Points: StrategyPoints(summary, active),
	}

	var series []chart.Series
	for _, d := range summary.Drivers {
		if !active[d.DriverNumber] {
			continue
		}

		var xs, ys []float64
		byCompound := make(map[model.Compound][][2]float64)
		var anomalies [][2]float64
		for _, l := range d.Laps {
			if l.Clean() {
				xs = append(xs, float64(l.LapNumber))
				ys = append(ys, l.LapDuration)
				c := l.TireCompound()
				byCompound[c] = append(byCompound[c], [2]float64{float64(l.LapNumber), l.LapDuration})
			} else if l.IsAnomaly && l.SaneDuration() {
				anomalies = append(anomalies, [2]float64{float64(l.LapNumber), l.LapDuration})
			}
		}
		if len(xs) == 0 && len(anomalies) == 0 {
			continue
		}

		if len(xs) > 0 {
			name := d.NameAcronym
			if name == "" {
				name = helper.DriverCode(d.FullName)
			}
			xs, ys = padSingle(xs, ys)
			series = append(series, chart.ContinuousSeries{
				Name:    name,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: TeamColor(d.TeamColor),
					StrokeWidth: 2.0,
				},
			})
		}
		for compound, pts := range byCompound {
			series = append(series, dotSeries(pts, CompoundColor(compound), 4.5))
		}
		if len(anomalies) > 0 {
			series = append(series, dotSeries(anomalies, anomalyGray, 6.0))
		}
	}

	surface.XRange, surface.YRange = strategyRanges(surface.Points)

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s — tire strategy", summary.Event),
		Width:  1200,
		Height: 600,
		XAxis: chart.XAxis{
			Name:  "Lap",
			Range: &chart.ContinuousRange{Min: surface.XRange[0], Max: surface.XRange[1]},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name:  "Lap time",
			Range: &chart.ContinuousRange{Min: surface.YRange[0], Max: surface.YRange[1]},
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
	surface.Chart = graph
	return surface
}

// dotSeries renders markers only, no connecting stroke. Unnamed series stay
// out of the legend.
func dotSeries(pts [][2]float64, color drawing.Color, width float64) chart.Series {
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p[0]
		ys[i] = p[1]
	}
	xs, ys = padSingle(xs, ys)
	return chart.ContinuousSeries{
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    width,
			DotColor:    color,
		},
	}
}

// padSingle duplicates a lone point; go-chart needs at least two x values
// per series. An empty series becomes a flat zero line.
func padSingle(xs, ys []float64) ([]float64, []float64) {
	switch len(xs) {
	case 0:
		return []float64{0, 1}, []float64{0, 0}
	case 1:
		return []float64{xs[0], xs[0]}, []float64{ys[0], ys[0]}
	}
	return xs, ys
}

func strategyRanges(points []Point) (xr, yr [2]float64) {
	xr = [2]float64{1, 2}
	yr = [2]float64{0, 1}
	if len(points) == 0 {
		return
	}
	first := true
	for _, p := range points {
		x, y := float64(p.LapNumber), p.LapDuration
		if first {
			xr = [2]float64{x, x}
			yr = [2]float64{y, y}
			first = false
			continue
		}
		if x < xr[0] {
			xr[0] = x
		}
		if x > xr[1] {
			xr[1] = x
		}
		if y < yr[0] {
			yr[0] = y
		}
		if y > yr[1] {
			yr[1] = y
		}
	}
	// padding keeps edge points selectable and off the chart border
	yr[0] -= 1
	yr[1] += 1
	if xr[1] == xr[0] {
		xr[1] = xr[0] + 1
	}
	return
}
