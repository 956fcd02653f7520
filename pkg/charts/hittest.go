package charts

import "math"

// captureRadius is the selection distance in normalized chart space; a
// click further than this from every plotted point is a no-op.
const captureRadius = 0.06

// NearestPoint resolves the plotted point closest to a position in data
// coordinates, without requiring exact intersection. Distances are measured
// in the chart's normalized space so the x and y scales weigh equally.
func NearestPoint(points []Point, x, y float64, xr, yr [2]float64) (Point, bool) {
	xSpan := xr[1] - xr[0]
	ySpan := yr[1] - yr[0]
	if xSpan <= 0 || ySpan <= 0 {
		return Point{}, false
	}

	best := Point{}
	bestDist := math.Inf(1)
	for _, p := range points {
		dx := (float64(p.LapNumber) - x) / xSpan
		dy := (p.LapDuration - y) / ySpan
		d := math.Hypot(dx, dy)
		if d < bestDist {
			bestDist = d
			best = p
		}
	}
	if bestDist > captureRadius {
		return Point{}, false
	}
	return best, true
}

// Share of the rendered image taken by the title band and axis gutters
// around the plot box, for the fixed-size surfaces built here. Clicks
// arrive as fractions of the whole image and go through these insets
// before the data-space mapping.
const (
	PlotInsetLeft   = 0.075
	PlotInsetRight  = 0.02
	PlotInsetTop    = 0.07
	PlotInsetBottom = 0.09
)

// NearestPointNorm is NearestPoint for a click expressed as fractions of
// the whole rendered image ([0,1] from the left / from the top). The
// fractions are first rescaled into the plot box so the axis gutters do
// not skew the resolved position.
func NearestPointNorm(points []Point, fx, fy float64, xr, yr [2]float64) (Point, bool) {
	px := (fx - PlotInsetLeft) / (1 - PlotInsetLeft - PlotInsetRight)
	py := (fy - PlotInsetTop) / (1 - PlotInsetTop - PlotInsetBottom)
	x := xr[0] + px*(xr[1]-xr[0])
	// screen y grows downward, data y upward
	y := yr[1] - py*(yr[1]-yr[0])
	return NearestPoint(points, x, y, xr, yr)
}

// ImageFractions is the inverse mapping: where a data point sits as
// fractions of the whole rendered image. It keeps the two directions of
// the click contract in one place.
func ImageFractions(x, y float64, xr, yr [2]float64) (fx, fy float64) {
	px := (x - xr[0]) / (xr[1] - xr[0])
	py := (yr[1] - y) / (yr[1] - yr[0])
	fx = PlotInsetLeft + px*(1-PlotInsetLeft-PlotInsetRight)
	fy = PlotInsetTop + py*(1-PlotInsetTop-PlotInsetBottom)
	return
}
