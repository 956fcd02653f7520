package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"pitwallbot/log"
	"pitwallbot/pkg/api"
	"pitwallbot/pkg/apps"
	"pitwallbot/pkg/board"
	"pitwallbot/pkg/pubsub"
	"pitwallbot/pkg/session"
)

// runBot boots the whole stack: race data first, then the Telegram loop
// and the pit wall board. Without a summary there is nothing to draw, so
// a failed first fetch aborts startup instead of serving empty surfaces.
func runBot(ctx context.Context) error {
	log.InitLogger(logLevel)

	if botToken == "" {
		return errors.New("no Telegram token configured")
	}
	if apiURL == "" {
		return errors.New("no race data endpoint configured")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	client := api.NewClient(apiURL, fetchTimeout)
	summary, err := client.FetchSummary(ctx)
	if err != nil {
		return errors.Wrap(err, "fetching initial race summary")
	}
	log.Logger.Info("race summary loaded",
		zap.Int("sessionKey", summary.SessionKey),
		zap.String("event", summary.Event),
		zap.Int("drivers", len(summary.Drivers)))

	sessions := session.NewManager()
	sessions.SetSummary(summary)

	pubsubMgr := pubsub.NewPubSub[string]()

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return errors.Wrap(err, "connecting to Telegram")
	}
	bot.Debug = false
	log.Logger.Info("authorized", zap.String("account", bot.Self.UserName))

	mainApp := apps.NewMainApp(bot, client, sessions, pubsubMgr)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)
	go receiveUpdates(ctx, mainApp, updates)

	boardMgr := board.NewManager(client, sessions, pubsubMgr, apps.TopicRefresh)
	boardErr := make(chan error, 1)
	go func() {
		boardErr <- boardMgr.Serve(ctx, httpAddr)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigs:
		log.Logger.Info("shutting down")
		cancel()
		return <-boardErr
	case err := <-boardErr:
		cancel()
		return err
	}
}

func receiveUpdates(ctx context.Context, mainApp *apps.MainApp, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			handleUpdate(ctx, mainApp, update)
		}
	}
}

func handleUpdate(ctx context.Context, mainApp *apps.MainApp, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		handleMessage(ctx, mainApp, update.Message)
	case update.CallbackQuery != nil:
		accept, handler := mainApp.AcceptCallback(update.CallbackQuery)
		if !accept {
			log.Logger.Debug("unhandled callback", zap.String("data", update.CallbackQuery.Data))
			return
		}
		if err := handler(ctx, update.CallbackQuery); err != nil {
			log.Logger.Error("handling callback", zap.Error(err))
		}
	}
}

func handleMessage(ctx context.Context, mainApp *apps.MainApp, message *tgbotapi.Message) {
	if message.From == nil {
		return
	}
	text := message.Text
	log.Logger.Debug("message received",
		zap.String("from", message.From.FirstName), zap.String("text", text))

	var accept bool
	var handler func(ctx context.Context, chatId int64) error
	if message.IsCommand() {
		accept, handler = mainApp.AcceptCommand(text)
	} else {
		accept, handler = mainApp.AcceptButton(text)
	}
	if !accept {
		return
	}
	if err := handler(ctx, message.Chat.ID); err != nil {
		log.Logger.Error("handling message", zap.Error(err))
	}
}
