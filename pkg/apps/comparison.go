package apps

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"pitwallbot/pkg/charts"
	"pitwallbot/pkg/session"
)

const SubcommandComparePick = "compare"

// ComparisonApp renders the two-driver lap time comparison and owns the
// slot selectors. Changing either slot re-renders the whole surface.
type ComparisonApp struct {
	bot      *tgbotapi.BotAPI
	sessions *session.Manager
}

func NewComparisonApp(bot *tgbotapi.BotAPI, sessions *session.Manager) *ComparisonApp {
	return &ComparisonApp{bot: bot, sessions: sessions}
}

func (ca *ComparisonApp) AcceptCommand(command string) (bool, func(ctx context.Context, chatId int64) error) {
	if command != "/comparison" {
		return false, nil
	}
	return true, func(ctx context.Context, chatId int64) error {
		return ca.render(chatId)
	}
}

func (ca *ComparisonApp) AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error) {
	if button != buttonComparison {
		return false, nil
	}
	return true, func(ctx context.Context, chatId int64) error {
		return ca.render(chatId)
	}
}

func (ca *ComparisonApp) AcceptCallback(query *tgbotapi.CallbackQuery) (bool, func(ctx context.Context, query *tgbotapi.CallbackQuery) error) {
	data := strings.Split(query.Data, ":")
	if data[0] != SubcommandComparePick || len(data) != 3 {
		return false, nil
	}
	slot, err1 := strconv.Atoi(data[1])
	driverNumber, err2 := strconv.Atoi(data[2])
	if err1 != nil || err2 != nil {
		return false, nil
	}
	return true, func(ctx context.Context, query *tgbotapi.CallbackQuery) error {
		sess := ca.sessions.Get(query.Message.Chat.ID)
		sess.SetComparison(slot, driverNumber)
		answerCallback(ca.bot, query, "updated")
		return ca.render(query.Message.Chat.ID)
	}
}

func (ca *ComparisonApp) render(chatId int64) error {
	sess := ca.sessions.Get(chatId)
	summary := sess.Summary()
	if summary == nil {
		return sendText(ca.bot, chatId, "No race data loaded")
	}
	if len(summary.Drivers) < 2 {
		return sendText(ca.bot, chatId, "Need at least two drivers to compare")
	}

	n1, n2 := sess.Comparison()
	d1, ok1 := summary.DriverByNumber(n1)
	d2, ok2 := summary.DriverByNumber(n2)
	if !ok1 || !ok2 {
		return sendText(ca.bot, chatId, "Comparison selection is out of date, pick drivers again")
	}

	png, err := charts.RenderPNG(charts.BuildComparison(d1, d2))
	if err != nil {
		return err
	}

	caption := fmt.Sprintf("%s vs %s — %s", d1.FullName, d2.FullName, summary.Event)
	keyboard := ca.keyboard(sess)
	return replaceChart(ca.bot, sess, session.SurfaceComparison, chatId, png, caption, &keyboard)
}

// keyboard lays out one selector row per slot. The currently selected
// driver of each slot is marked so the pair is readable at a glance.
func (ca *ComparisonApp) keyboard(sess *session.Session) tgbotapi.InlineKeyboardMarkup {
	summary := sess.Summary()
	n1, n2 := sess.Comparison()

	var rows [][]tgbotapi.InlineKeyboardButton
	for slot, selected := range [2]int{n1, n2} {
		var row []tgbotapi.InlineKeyboardButton
		for _, d := range summary.Drivers {
			label := d.NameAcronym
			if d.DriverNumber == selected {
				label = "• " + label
			}
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(label,
				fmt.Sprintf("%s:%d:%d", SubcommandComparePick, slot, d.DriverNumber)))
			if len(row) == 5 {
				rows = append(rows, row)
				row = nil
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
