package stats

import (
	"pitwallbot/pkg/model"
)

// FastestLap resolves the minimum positive fastest-lap time across drivers
// and its owner. ok is false when no driver has a positive fastest lap, in
// which case the callout is hidden entirely.
func FastestLap(summary *model.Summary) (owner model.Driver, seconds float64, ok bool) {
	for _, d := range summary.Drivers {
		fl := d.Stats.FastestLap
		if fl <= 0 {
			continue
		}
		if !ok || fl < seconds {
			owner = d
			seconds = fl
			ok = true
		}
	}
	return
}

// AnomalyCount counts flagged laps over the full unfiltered lap set across
// all drivers.
func AnomalyCount(summary *model.Summary) int {
	count := 0
	for _, d := range summary.Drivers {
		for _, l := range d.Laps {
			if l.IsAnomaly {
				count++
			}
		}
	}
	return count
}

// TotalLaps counts every lap record in the summary, sentinels included.
func TotalLaps(summary *model.Summary) int {
	total := 0
	for _, d := range summary.Drivers {
		total += len(d.Laps)
	}
	return total
}
