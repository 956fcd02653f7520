package charts

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	chart "github.com/wcharczuk/go-chart/v2"

	"pitwallbot/pkg/model"
)

func TestAlignLapsDomainIsMaxLength(t *testing.T) {
	a := []model.Lap{
		{LapNumber: 1, LapDuration: 95.0},
		{LapNumber: 2, LapDuration: 94.5},
		{LapNumber: 3, LapDuration: 96.1},
	}
	b := []model.Lap{
		{LapNumber: 1, LapDuration: 94.0},
		{LapNumber: 3, LapDuration: 95.5}, // lap 2 missing
		{LapNumber: 4, LapDuration: 93.9},
		{LapNumber: 5, LapDuration: 94.2},
	}

	xs, ya, yb := AlignLaps(a, b)
	require.Len(t, xs, 4)
	require.Len(t, ya, 4)
	require.Len(t, yb, 4)

	assert.Equal(t, 95.0, ya[0])
	assert.Equal(t, 94.5, ya[1])
	assert.True(t, math.IsNaN(ya[3]), "driver A has no lap 4")

	assert.True(t, math.IsNaN(yb[1]), "driver B skipped lap 2")
	assert.Equal(t, 95.5, yb[2])
}

func TestAlignLapsKeepsRawValues(t *testing.T) {
	// anomalies and sentinel durations pass through untouched here
	a := []model.Lap{
		{LapNumber: 1, LapDuration: 131.9, IsAnomaly: true},
		{LapNumber: 2, LapDuration: 180.0},
	}
	b := []model.Lap{
		{LapNumber: 1, LapDuration: 94.0},
	}

	_, ya, _ := AlignLaps(a, b)
	assert.Equal(t, 131.9, ya[0])
	assert.Equal(t, 180.0, ya[1])
}

func TestAlignLapsEmptySequences(t *testing.T) {
	xs, ya, yb := AlignLaps(nil, nil)
	assert.Empty(t, xs)
	assert.Empty(t, ya)
	assert.Empty(t, yb)
}

func TestSegmentSeriesSplitsOnGaps(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{94, math.NaN(), 95, 96, math.NaN()}

	segs := segmentSeries(xs, ys, "HAM", TeamColor("#27F4D2"))
	require.Len(t, segs, 2)

	first := segs[0].(chart.ContinuousSeries)
	assert.Equal(t, "HAM", first.Name)
	// a lone point gets padded, not dropped
	assert.Equal(t, []float64{1, 1}, first.XValues)

	second := segs[1].(chart.ContinuousSeries)
	assert.Empty(t, second.Name, "only the first segment feeds the legend")
	assert.Equal(t, []float64{3, 4}, second.XValues)
	assert.Equal(t, []float64{95, 96}, second.YValues)
}

func TestBuildComparisonRenders(t *testing.T) {
	d1 := model.Driver{
		DriverNumber: 44, NameAcronym: "HAM", FullName: "Lewis Hamilton", TeamColor: "#27F4D2",
		Laps: []model.Lap{
			{LapNumber: 1, LapDuration: 95.0},
			{LapNumber: 2, LapDuration: 94.5},
		},
	}
	d2 := model.Driver{
		DriverNumber: 1, NameAcronym: "VER", FullName: "Max Verstappen", TeamColor: "#3671C6",
		Laps: []model.Lap{
			{LapNumber: 1, LapDuration: 94.2},
			{LapNumber: 3, LapDuration: 94.9},
		},
	}

	graph := BuildComparison(d1, d2)
	png, err := RenderPNG(graph)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
