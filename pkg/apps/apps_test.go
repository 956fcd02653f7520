package apps

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"

	"pitwallbot/pkg/model"
	"pitwallbot/pkg/pubsub"
	"pitwallbot/pkg/session"
)

func newMainApp() *MainApp {
	return NewMainApp(nil, nil, session.NewManager(), pubsub.NewPubSub[string]())
}

func TestMainAppCommandRouting(t *testing.T) {
	m := newMainApp()

	for _, command := range []string{"/start", "/menu", "/reload", "/strategy", "/comparison", "/stats", "/lap_44_10"} {
		accept, handler := m.AcceptCommand(command)
		assert.True(t, accept, command)
		assert.NotNil(t, handler, command)
	}

	for _, command := range []string{"/unknown", "/lap_44", "/lap_a_b", "strategy"} {
		accept, _ := m.AcceptCommand(command)
		assert.False(t, accept, command)
	}
}

func TestMainAppButtonRouting(t *testing.T) {
	m := newMainApp()

	for _, button := range []string{buttonStrategy, buttonComparison, buttonStats} {
		accept, handler := m.AcceptButton(button)
		assert.True(t, accept, button)
		assert.NotNil(t, handler, button)
	}

	accept, _ := m.AcceptButton("Weather")
	assert.False(t, accept)
}

func TestMainAppCallbackRouting(t *testing.T) {
	m := newMainApp()

	for _, data := range []string{
		"strategy_toggle:44",
		"compare:0:1",
		"compare:1:81",
		"drill_pick:44",
		"drill_load:44:3",
		"drill_close",
	} {
		accept, handler := m.AcceptCallback(&tgbotapi.CallbackQuery{Data: data})
		assert.True(t, accept, data)
		assert.NotNil(t, handler, data)
	}

	for _, data := range []string{
		"strategy_toggle",
		"strategy_toggle:ham",
		"compare:0",
		"compare:x:y",
		"drill_load:44",
		"drill_pick:44:3",
		"unknown:1",
	} {
		accept, _ := m.AcceptCallback(&tgbotapi.CallbackQuery{Data: data})
		assert.False(t, accept, data)
	}
}

func TestSummaryFooterAlwaysReportsAnomalies(t *testing.T) {
	summary := &model.Summary{
		Drivers: []model.Driver{
			{
				DriverNumber: 1, FullName: "Max Verstappen", TeamName: "Red Bull Racing",
				Laps:  []model.Lap{{LapNumber: 1, LapDuration: 94.1}},
				Stats: model.DriverStats{TotalLaps: 1, FastestLap: 94.1},
			},
		},
	}

	footer := summaryFooter(summary)
	assert.Contains(t, footer, "Total laps: 1")
	assert.Contains(t, footer, "Fastest lap: 1:34.100 by Max Verstappen")
	assert.Contains(t, footer, "Anomalous laps flagged: 0")

	summary.Drivers[0].Laps[0].IsAnomaly = true
	summary.Drivers[0].Stats.FastestLap = 0
	footer = summaryFooter(summary)
	assert.NotContains(t, footer, "Fastest lap")
	assert.Contains(t, footer, "Anomalous laps flagged: 1")
}
