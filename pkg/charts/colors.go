package charts

import (
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"pitwallbot/pkg/model"
)

// Point fill colors are keyed by tire compound, matching the official tire
// wall colors; the line color is always the driver's team color.
var compoundColors = map[model.Compound]drawing.Color{
	model.CompoundSoft:         {R: 0xDC, G: 0x26, B: 0x26, A: 255},
	model.CompoundMedium:       {R: 0xF5, G: 0x9E, B: 0x0B, A: 255},
	model.CompoundHard:         {R: 0x4B, G: 0x55, B: 0x63, A: 255},
	model.CompoundIntermediate: {R: 0x05, G: 0x96, B: 0x69, A: 255},
	model.CompoundWet:          {R: 0x25, G: 0x63, B: 0xEB, A: 255},
}

// neutralGray covers UNKNOWN and unrecognized compounds.
var neutralGray = drawing.Color{R: 0x9C, G: 0xA3, B: 0xAF, A: 255}

// anomalyGray marks flagged laps on the strategy surface.
var anomalyGray = drawing.Color{R: 0x6B, G: 0x72, B: 0x80, A: 255}

// CompoundColor resolves the fill color for a lap's compound.
func CompoundColor(c model.Compound) drawing.Color {
	if col, ok := compoundColors[c]; ok {
		return col
	}
	return neutralGray
}

// TeamColor parses a "#RRGGBB" team color; a value the parser cannot make
// sense of falls back to the feed's own default gray.
func TeamColor(hex string) drawing.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return drawing.Color{R: 0x88, G: 0x88, B: 0x88, A: 255}
	}
	c := drawing.ColorFromHex(hex)
	c.A = 255
	return c
}
