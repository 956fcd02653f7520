package apps

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"pitwallbot/log"
	"pitwallbot/pkg/api"
	"pitwallbot/pkg/pubsub"
	"pitwallbot/pkg/session"
)

const (
	menuStart  = "/start"
	menuMenu   = "/menu"
	menuReload = "/reload"

	// TopicRefresh tells the web board a new summary replaced the old one.
	TopicRefresh = "board-refresh"
)

var menuKeyboard = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(buttonStrategy),
		tgbotapi.NewKeyboardButton(buttonComparison),
		tgbotapi.NewKeyboardButton(buttonStats),
	),
)

// MainApp routes bot updates to whichever sub-app claims them and owns the
// commands that touch every session at once.
type MainApp struct {
	bot       *tgbotapi.BotAPI
	client    *api.Client
	sessions  *session.Manager
	pubsubMgr *pubsub.PubSub[string]
	accepters []Accepter
}

func NewMainApp(bot *tgbotapi.BotAPI, client *api.Client, sessions *session.Manager, pubsubMgr *pubsub.PubSub[string]) *MainApp {
	accepters := []Accepter{
		NewStrategyApp(bot, sessions),
		NewDrillDownApp(bot, client, sessions),
		NewComparisonApp(bot, sessions),
		NewStatsApp(bot, sessions),
	}
	return &MainApp{
		bot:       bot,
		client:    client,
		sessions:  sessions,
		pubsubMgr: pubsubMgr,
		accepters: accepters,
	}
}

func (m *MainApp) AcceptCommand(command string) (bool, func(ctx context.Context, chatId int64) error) {
	switch command {
	case menuStart:
		return true, m.renderStart()
	case menuMenu:
		return true, m.renderMenu()
	case menuReload:
		return true, m.reload()
	}
	for _, accepter := range m.accepters {
		accept, handler := accepter.AcceptCommand(command)
		if accept {
			return true, handler
		}
	}
	return false, nil
}

func (m *MainApp) AcceptCallback(query *tgbotapi.CallbackQuery) (bool, func(ctx context.Context, query *tgbotapi.CallbackQuery) error) {
	for _, accepter := range m.accepters {
		accept, handler := accepter.AcceptCallback(query)
		if accept {
			return true, handler
		}
	}
	return false, nil
}

func (m *MainApp) AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error) {
	for _, accepter := range m.accepters {
		accept, handler := accepter.AcceptButton(button)
		if accept {
			return true, handler
		}
	}
	return false, nil
}

func (m *MainApp) renderStart() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		message := "Hi, this is the pit wall bot. Race strategy, lap telemetry and driver comparison straight from the timing feed.\n\n"
		message += "Commands:\n\n"
		message += fmt.Sprintf("%s - show the menu\n", menuMenu)
		message += fmt.Sprintf("%s - re-fetch the race data\n", menuReload)
		msg := tgbotapi.NewMessage(chatId, message)
		msg.ReplyMarkup = menuKeyboard
		_, err := m.bot.Send(msg)
		return err
	}
}

func (m *MainApp) renderMenu() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		msg := tgbotapi.NewMessage(chatId, "Pick a view.\n")
		msg.ReplyMarkup = menuKeyboard
		_, err := m.bot.Send(msg)
		return err
	}
}

// reload re-fetches the summary and resets every session to it. Selections
// made against the previous data set do not survive the swap.
func (m *MainApp) reload() func(ctx context.Context, chatId int64) error {
	return func(ctx context.Context, chatId int64) error {
		summary, err := m.client.FetchSummary(ctx)
		if err != nil {
			log.Logger.Error("reloading race summary", zap.Error(err))
			return sendText(m.bot, chatId, "⚠️ Could not reload race data, keeping the current set.")
		}
		m.sessions.SetSummary(summary)
		m.pubsubMgr.Publish(TopicRefresh, "refresh")
		log.Logger.Info("race summary reloaded",
			zap.Int("sessionKey", summary.SessionKey),
			zap.Int("drivers", len(summary.Drivers)))
		return sendText(m.bot, chatId, fmt.Sprintf("Reloaded %s — %s, %d drivers.",
			summary.Event, summary.Location, len(summary.Drivers)))
	}
}
