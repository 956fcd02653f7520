package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitwallbot/pkg/helper"
	"pitwallbot/pkg/model"
)

func statsSummary() *model.Summary {
	return &model.Summary{
		Drivers: []model.Driver{
			{
				DriverNumber: 44, FullName: "Lewis Hamilton", TeamColor: "#27F4D2",
				Stats: model.DriverStats{FastestLap: 92.3},
				Laps: []model.Lap{
					{LapNumber: 1, LapDuration: 95.0},
					{LapNumber: 2, LapDuration: 131.2, IsAnomaly: true},
				},
			},
			{
				DriverNumber: 1, FullName: "Max Verstappen", TeamColor: "#3671C6",
				Stats: model.DriverStats{FastestLap: 91.1},
				Laps: []model.Lap{
					{LapNumber: 1, LapDuration: 94.0},
				},
			},
			{
				DriverNumber: 4, FullName: "Lando Norris", TeamColor: "#FF8000",
				Stats: model.DriverStats{FastestLap: 93.0},
				Laps: []model.Lap{
					{LapNumber: 1, LapDuration: 128.8, IsAnomaly: true},
					{LapNumber: 2, LapDuration: 141.0, IsAnomaly: true},
				},
			},
		},
	}
}

func TestFastestLapPicksMinimumAndOwner(t *testing.T) {
	owner, seconds, ok := FastestLap(statsSummary())
	require.True(t, ok)
	assert.Equal(t, 91.1, seconds)
	assert.Equal(t, 1, owner.DriverNumber)
	assert.Equal(t, "1:31.100", helper.FormatLapTime(seconds))
}

func TestFastestLapIgnoresZeroValues(t *testing.T) {
	s := statsSummary()
	s.Drivers[1].Stats.FastestLap = 0 // no valid lap

	owner, seconds, ok := FastestLap(s)
	require.True(t, ok)
	assert.Equal(t, 92.3, seconds)
	assert.Equal(t, 44, owner.DriverNumber)
}

func TestFastestLapAbsentEverywhere(t *testing.T) {
	s := statsSummary()
	for i := range s.Drivers {
		s.Drivers[i].Stats.FastestLap = 0
	}
	_, _, ok := FastestLap(s)
	assert.False(t, ok, "callout hides when nobody set a positive time")
}

func TestAnomalyCountOverUnfilteredLaps(t *testing.T) {
	assert.Equal(t, 3, AnomalyCount(statsSummary()))
}

func TestTotalLaps(t *testing.T) {
	assert.Equal(t, 5, TotalLaps(statsSummary()))
}
