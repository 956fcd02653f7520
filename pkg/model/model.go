package model

import "strings"

// Compound is the tire rubber type reported by the analysis service.
type Compound string

const (
	CompoundSoft         Compound = "SOFT"
	CompoundMedium       Compound = "MEDIUM"
	CompoundHard         Compound = "HARD"
	CompoundIntermediate Compound = "INTERMEDIATE"
	CompoundWet          Compound = "WET"
	CompoundUnknown      Compound = "UNKNOWN"
)

// ParseCompound normalizes the feed value; anything unrecognized is UNKNOWN.
func ParseCompound(s string) Compound {
	switch Compound(strings.ToUpper(strings.TrimSpace(s))) {
	case CompoundSoft:
		return CompoundSoft
	case CompoundMedium:
		return CompoundMedium
	case CompoundHard:
		return CompoundHard
	case CompoundIntermediate:
		return CompoundIntermediate
	case CompoundWet:
		return CompoundWet
	}
	return CompoundUnknown
}

// MaxSaneLapDuration is the sentinel threshold: durations at or above it
// (or non-positive ones) are garbage values that never reach the strategy view.
const MaxSaneLapDuration = 120.0

type Summary struct {
	SessionKey int      `json:"session_key"`
	Event      string   `json:"event"`
	Location   string   `json:"location"`
	Drivers    []Driver `json:"drivers"`
}

type Driver struct {
	DriverNumber int         `json:"driver_number"`
	NameAcronym  string      `json:"name_acronym"`
	FullName     string      `json:"full_name"`
	TeamName     string      `json:"team_name"`
	TeamColor    string      `json:"team_color"`
	Laps         []Lap       `json:"laps"`
	Stats        DriverStats `json:"stats"`
}

type DriverStats struct {
	TotalLaps   int     `json:"total_laps"`
	MeanLapTime float64 `json:"mean_lap_time"`
	StdDev      float64 `json:"std_dev"`
	FastestLap  float64 `json:"fastest_lap"`
	SlowestLap  float64 `json:"slowest_lap"`
}

type Lap struct {
	LapNumber   int     `json:"lap_number"`
	LapDuration float64 `json:"lap_duration"`
	Compound    string  `json:"compound"`
	IsAnomaly   bool    `json:"is_anomaly"`
	ZScore      float64 `json:"z_score,omitempty"`
}

// Clean reports whether the lap belongs in a strategy line: not flagged and
// with a plausible duration.
func (l Lap) Clean() bool {
	return !l.IsAnomaly && l.SaneDuration()
}

// SaneDuration checks the duration alone, ignoring the anomaly flag.
func (l Lap) SaneDuration() bool {
	return l.LapDuration > 0 && l.LapDuration < MaxSaneLapDuration
}

func (l Lap) TireCompound() Compound {
	return ParseCompound(l.Compound)
}

// TelemetrySample is one high-frequency channel reading; its position in the
// returned sequence is the implicit x-coordinate.
type TelemetrySample struct {
	Date     string  `json:"date,omitempty"`
	Speed    float64 `json:"speed"`
	RPM      float64 `json:"rpm"`
	Gear     float64 `json:"gear"`
	Throttle float64 `json:"throttle,omitempty"`
	Brake    float64 `json:"brake,omitempty"`
	DRS      float64 `json:"drs,omitempty"`
}

type TelemetryData struct {
	DriverNumber int               `json:"driver_number"`
	LapNumber    int               `json:"lap_number"`
	Telemetry    []TelemetrySample `json:"telemetry"`
	TotalPoints  int               `json:"total_points"`
	Error        string            `json:"error,omitempty"`
}

// DriverByNumber returns the driver with the given racing number, if present.
func (s *Summary) DriverByNumber(number int) (Driver, bool) {
	for _, d := range s.Drivers {
		if d.DriverNumber == number {
			return d, true
		}
	}
	return Driver{}, false
}

// LapByNumber returns the lap with the given lap number, if present. Lap
// numbers are unique per driver but not necessarily contiguous.
func (d Driver) LapByNumber(number int) (Lap, bool) {
	for _, l := range d.Laps {
		if l.LapNumber == number {
			return l, true
		}
	}
	return Lap{}, false
}
