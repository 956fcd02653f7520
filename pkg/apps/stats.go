package apps

import (
	"bytes"
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jedib0t/go-pretty/v6/table"

	"pitwallbot/pkg/helper"
	"pitwallbot/pkg/model"
	"pitwallbot/pkg/session"
	"pitwallbot/pkg/stats"
)

// StatsApp prints the race summary table and the session callouts.
type StatsApp struct {
	bot      *tgbotapi.BotAPI
	sessions *session.Manager
}

func NewStatsApp(bot *tgbotapi.BotAPI, sessions *session.Manager) *StatsApp {
	return &StatsApp{bot: bot, sessions: sessions}
}

func (sa *StatsApp) AcceptCommand(command string) (bool, func(ctx context.Context, chatId int64) error) {
	if command != "/stats" {
		return false, nil
	}
	return true, func(ctx context.Context, chatId int64) error {
		return sa.render(chatId)
	}
}

func (sa *StatsApp) AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error) {
	if button != buttonStats {
		return false, nil
	}
	return true, func(ctx context.Context, chatId int64) error {
		return sa.render(chatId)
	}
}

func (sa *StatsApp) AcceptCallback(query *tgbotapi.CallbackQuery) (bool, func(ctx context.Context, query *tgbotapi.CallbackQuery) error) {
	return false, nil
}

func (sa *StatsApp) render(chatId int64) error {
	sess := sa.sessions.Get(chatId)
	summary := sess.Summary()
	if summary == nil {
		return sendText(sa.bot, chatId, "No race data loaded")
	}

	var b bytes.Buffer
	t := table.NewWriter()
	t.SetOutputMirror(&b)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Driver", "Laps", "Mean", "StdDev", "Fastest", "Slowest"})
	for _, d := range summary.Drivers {
		t.AppendRow([]interface{}{
			d.NameAcronym,
			d.Stats.TotalLaps,
			helper.FormatLapTime(d.Stats.MeanLapTime),
			fmt.Sprintf("%.3fs", d.Stats.StdDev),
			helper.FormatLapTime(d.Stats.FastestLap),
			helper.FormatLapTime(d.Stats.SlowestLap),
		})
	}
	t.Render()

	msg := tgbotapi.NewMessage(chatId, fmt.Sprintf("```\n%s — %s\n\n%s\n%s```",
		summary.Event, summary.Location, b.String(), summaryFooter(summary)))
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	_, err := sa.bot.Send(msg)
	return err
}

// summaryFooter builds the callout lines under the table. The anomaly
// count is always shown, zero included; the fastest-lap callout is hidden
// when no driver has a positive fastest lap.
func summaryFooter(summary *model.Summary) string {
	footer := fmt.Sprintf("Total laps: %d", stats.TotalLaps(summary))
	if owner, seconds, ok := stats.FastestLap(summary); ok {
		footer += fmt.Sprintf("\nFastest lap: %s by %s (%s)",
			helper.FormatLapTime(seconds), owner.FullName, owner.TeamName)
	}
	footer += fmt.Sprintf("\nAnomalous laps flagged: %d", stats.AnomalyCount(summary))
	return footer
}
