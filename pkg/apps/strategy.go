package apps

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"pitwallbot/pkg/charts"
	"pitwallbot/pkg/helper"
	"pitwallbot/pkg/session"
)

const SubcommandStrategyToggle = "strategy_toggle"

// StrategyApp renders the tire strategy surface and owns the per-driver
// visibility chips. Toggling only re-renders; it never refetches.
type StrategyApp struct {
	bot      *tgbotapi.BotAPI
	sessions *session.Manager
}

func NewStrategyApp(bot *tgbotapi.BotAPI, sessions *session.Manager) *StrategyApp {
	return &StrategyApp{bot: bot, sessions: sessions}
}

func (sa *StrategyApp) AcceptCommand(command string) (bool, func(ctx context.Context, chatId int64) error) {
	if command == "/strategy" {
		return true, sa.render
	}
	return false, nil
}

func (sa *StrategyApp) AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error) {
	if button == buttonStrategy {
		return true, sa.render
	}
	return false, nil
}

func (sa *StrategyApp) AcceptCallback(query *tgbotapi.CallbackQuery) (bool, func(ctx context.Context, query *tgbotapi.CallbackQuery) error) {
	data := strings.Split(query.Data, ":")
	if data[0] != SubcommandStrategyToggle || len(data) != 2 {
		return false, nil
	}
	driverNumber, err := strconv.Atoi(data[1])
	if err != nil {
		return false, nil
	}
	return true, func(ctx context.Context, query *tgbotapi.CallbackQuery) error {
		sess := sa.sessions.Get(query.Message.Chat.ID)
		nowVisible := sess.Toggle(driverNumber)
		if nowVisible {
			answerCallback(sa.bot, query, "shown")
		} else {
			answerCallback(sa.bot, query, "hidden")
		}
		return sa.render(ctx, query.Message.Chat.ID)
	}
}

func (sa *StrategyApp) render(_ context.Context, chatId int64) error {
	sess := sa.sessions.Get(chatId)
	summary := sess.Summary()
	if summary == nil {
		return sendText(sa.bot, chatId, "No race data loaded")
	}

	surface := charts.BuildStrategy(summary, sess.ActiveSet())
	png, err := charts.RenderPNG(surface.Chart)
	if err != nil {
		return err
	}

	caption := fmt.Sprintf("%s (%s) — lap times by compound. Tap a driver to toggle, %s to inspect a lap.",
		summary.Event, summary.Location, symbolDrill)
	keyboard := sa.keyboard(sess)
	return replaceChart(sa.bot, sess, session.SurfaceStrategy, chatId, png, caption, &keyboard)
}

// keyboard lays out one visibility chip and one drill-down entry per driver.
func (sa *StrategyApp) keyboard(sess *session.Session) tgbotapi.InlineKeyboardMarkup {
	summary := sess.Summary()
	active := sess.ActiveSet()

	var rows [][]tgbotapi.InlineKeyboardButton
	for idx, d := range summary.Drivers {
		if idx%3 == 0 {
			rows = append(rows, []tgbotapi.InlineKeyboardButton{})
		}
		code := d.NameAcronym
		if code == "" {
			code = helper.DriverCode(d.FullName)
		}
		symbol := symbolHidden
		if active[d.DriverNumber] {
			symbol = symbolVisible
		}
		rows[len(rows)-1] = append(rows[len(rows)-1],
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s %s", symbol, code),
				fmt.Sprintf("%s:%d", SubcommandStrategyToggle, d.DriverNumber)))
	}
	for idx, d := range summary.Drivers {
		if idx%3 == 0 {
			rows = append(rows, []tgbotapi.InlineKeyboardButton{})
		}
		code := d.NameAcronym
		if code == "" {
			code = helper.DriverCode(d.FullName)
		}
		rows[len(rows)-1] = append(rows[len(rows)-1],
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s %s", symbolDrill, code),
				fmt.Sprintf("%s:%d", SubcommandDrillPick, d.DriverNumber)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
