package apps

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"pitwallbot/log"
	"pitwallbot/pkg/session"
)

const (
	buttonStrategy   = "Strategy"
	buttonComparison = "Comparison"
	buttonStats      = "Stats"

	symbolVisible = "🟢"
	symbolHidden  = "⚪️"
	symbolDrill   = "🔎"
	symbolClose   = "✖️"
	symbolRetry   = "🔁"
)

// replaceChart posts a new chart photo for a surface, destroying the
// previously posted instance first. The old message is removed on every
// path before the replacement appears.
func replaceChart(bot *tgbotapi.BotAPI, sess *session.Session, surface string,
	chatId int64, png []byte, caption string, keyboard *tgbotapi.InlineKeyboardMarkup,
) error {
	deleteChart(bot, sess, surface, chatId)

	photo := tgbotapi.NewPhoto(chatId, tgbotapi.FileBytes{Name: surface + ".png", Bytes: png})
	photo.Caption = caption
	if keyboard != nil {
		photo.ReplyMarkup = *keyboard
	}
	sent, err := bot.Send(photo)
	if err != nil {
		return err
	}
	sess.SetHandle(surface, sent.MessageID)
	return nil
}

// deleteChart destroys the current instance of a surface, if any.
func deleteChart(bot *tgbotapi.BotAPI, sess *session.Session, surface string, chatId int64) {
	if id, ok := sess.TakeHandle(surface); ok {
		if _, err := bot.Request(tgbotapi.NewDeleteMessage(chatId, id)); err != nil {
			log.Logger.Debug("deleting stale chart message", zap.String("surface", surface), zap.Error(err))
		}
	}
}

func sendText(bot *tgbotapi.BotAPI, chatId int64, text string) error {
	msg := tgbotapi.NewMessage(chatId, text)
	_, err := bot.Send(msg)
	return err
}

func answerCallback(bot *tgbotapi.BotAPI, query *tgbotapi.CallbackQuery, text string) {
	if _, err := bot.Request(tgbotapi.NewCallback(query.ID, text)); err != nil {
		log.Logger.Debug("answering callback", zap.Error(err))
	}
}
