package charts

import (
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"pitwallbot/pkg/model"
)

var (
	speedColor = drawing.Color{R: 0x22, G: 0xC5, B: 0x5E, A: 255}
	rpmColor   = drawing.Color{R: 0xEF, G: 0x44, B: 0x44, A: 255}
	gearColor  = drawing.Color{R: 0x60, G: 0xA5, B: 0xFA, A: 255}
)

// BuildSpeedChart builds the drill-down speed surface: one smoothed line
// over sample index, fixed vertical range, suppressed x axis.
func BuildSpeedChart(title string, samples []model.TelemetrySample) chart.Chart {
	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = float64(i)
		ys[i] = s.Speed
	}
	xs, ys = padSingle(xs, ys)

	return chart.Chart{
		Title:  title + " — speed",
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			Style: chart.Style{Hidden: true},
		},
		YAxis: chart.YAxis{
			Name:  "km/h",
			Range: &chart.ContinuousRange{Min: 0, Max: 350},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: speedColor,
					StrokeWidth: 2.0,
				},
			},
		},
	}
}

// BuildEngineChart builds the dual-axis drill-down surface: engine speed on
// the left axis, gear as a step line on an independent right axis with
// integer ticks.
func BuildEngineChart(title string, samples []model.TelemetrySample) chart.Chart {
	xs := make([]float64, len(samples))
	rpm := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = float64(i)
		rpm[i] = s.RPM
	}
	xs, rpm = padSingle(xs, rpm)
	gearXs, gearYs := stepValues(samples)

	return chart.Chart{
		Title:  title + " — engine",
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			Style: chart.Style{Hidden: true},
		},
		YAxis: chart.YAxis{
			Name:  "RPM",
			Range: &chart.ContinuousRange{Min: 5000, Max: 13000},
		},
		// No explicit ticks here: go-chart derives the secondary range from
		// the primary axis ticks when these are set, which leaves it with an
		// infinite range delta. The fixed [0,9] range is enough.
		YAxisSecondary: chart.YAxis{
			Name:  "Gear",
			Range: &chart.ContinuousRange{Min: 0, Max: 9},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "RPM",
				XValues: xs,
				YValues: rpm,
				Style: chart.Style{
					StrokeColor: rpmColor,
					StrokeWidth: 2.0,
				},
			},
			chart.ContinuousSeries{
				Name:    "Gear",
				YAxis:   chart.YAxisSecondary,
				XValues: gearXs,
				YValues: gearYs,
				Style: chart.Style{
					StrokeColor: gearColor,
					StrokeWidth: 1.5,
				},
			},
		},
	}
}

// stepValues expands the gear channel into a step function: each shift
// holds the previous gear until the sample where it changes.
func stepValues(samples []model.TelemetrySample) ([]float64, []float64) {
	var xs, ys []float64
	for i, s := range samples {
		if i > 0 && samples[i-1].Gear != s.Gear {
			xs = append(xs, float64(i))
			ys = append(ys, samples[i-1].Gear)
		}
		xs = append(xs, float64(i))
		ys = append(ys, s.Gear)
	}
	return padSingle(xs, ys)
}
