package apps

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"pitwallbot/log"
	"pitwallbot/pkg/api"
	"pitwallbot/pkg/charts"
	"pitwallbot/pkg/model"
	"pitwallbot/pkg/session"
)

const (
	SubcommandDrillPick  = "drill_pick"
	SubcommandDrillLoad  = "drill_load"
	SubcommandDrillClose = "drill_close"
)

var commandLap = regexp.MustCompile(`^/lap_(\d+)_(\d+)$`)

// DrillDownApp drives the per-lap channel drill-down: pick a plotted lap,
// fetch its telemetry asynchronously and render the speed and engine
// surfaces. Responses are ticket-stamped; whichever request is no longer
// current gets discarded instead of racing the newer one.
type DrillDownApp struct {
	bot      *tgbotapi.BotAPI
	client   *api.Client
	sessions *session.Manager
}

func NewDrillDownApp(bot *tgbotapi.BotAPI, client *api.Client, sessions *session.Manager) *DrillDownApp {
	return &DrillDownApp{bot: bot, client: client, sessions: sessions}
}

func (da *DrillDownApp) AcceptCommand(command string) (bool, func(ctx context.Context, chatId int64) error) {
	if !commandLap.MatchString(command) {
		return false, nil
	}
	m := commandLap.FindStringSubmatch(command)
	driverNumber, _ := strconv.Atoi(m[1])
	lapNumber, _ := strconv.Atoi(m[2])
	return true, func(ctx context.Context, chatId int64) error {
		return da.StartDrill(ctx, chatId, driverNumber, lapNumber)
	}
}

func (da *DrillDownApp) AcceptButton(button string) (bool, func(ctx context.Context, chatId int64) error) {
	return false, nil
}

func (da *DrillDownApp) AcceptCallback(query *tgbotapi.CallbackQuery) (bool, func(ctx context.Context, query *tgbotapi.CallbackQuery) error) {
	data := strings.Split(query.Data, ":")
	switch data[0] {
	case SubcommandDrillPick:
		if len(data) != 2 {
			return false, nil
		}
		driverNumber, err := strconv.Atoi(data[1])
		if err != nil {
			return false, nil
		}
		return true, func(ctx context.Context, query *tgbotapi.CallbackQuery) error {
			answerCallback(da.bot, query, "")
			return da.sendLapPicker(query.Message.Chat.ID, driverNumber)
		}
	case SubcommandDrillLoad:
		if len(data) != 3 {
			return false, nil
		}
		driverNumber, err1 := strconv.Atoi(data[1])
		lapNumber, err2 := strconv.Atoi(data[2])
		if err1 != nil || err2 != nil {
			return false, nil
		}
		return true, func(ctx context.Context, query *tgbotapi.CallbackQuery) error {
			answerCallback(da.bot, query, "")
			return da.StartDrill(ctx, query.Message.Chat.ID, driverNumber, lapNumber)
		}
	case SubcommandDrillClose:
		return true, func(ctx context.Context, query *tgbotapi.CallbackQuery) error {
			answerCallback(da.bot, query, "closed")
			return da.close(query.Message.Chat.ID)
		}
	}
	return false, nil
}

// sendLapPicker lists the selectable laps for one driver, plotted laps only.
func (da *DrillDownApp) sendLapPicker(chatId int64, driverNumber int) error {
	sess := da.sessions.Get(chatId)
	summary := sess.Summary()
	if summary == nil {
		return sendText(da.bot, chatId, "No race data loaded")
	}
	driver, found := summary.DriverByNumber(driverNumber)
	if !found {
		return sendText(da.bot, chatId, fmt.Sprintf("No data for driver %d", driverNumber))
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	count := 0
	for _, l := range driver.Laps {
		if !l.SaneDuration() {
			continue
		}
		if count%6 == 0 {
			rows = append(rows, []tgbotapi.InlineKeyboardButton{})
		}
		count++
		label := fmt.Sprintf("L%d", l.LapNumber)
		if l.IsAnomaly {
			label += " ⚠"
		}
		rows[len(rows)-1] = append(rows[len(rows)-1],
			tgbotapi.NewInlineKeyboardButtonData(label,
				fmt.Sprintf("%s:%d:%d", SubcommandDrillLoad, driverNumber, l.LapNumber)))
	}
	if count == 0 {
		return sendText(da.bot, chatId, fmt.Sprintf("No laps with usable times for %s", driver.FullName))
	}

	msg := tgbotapi.NewMessage(chatId, fmt.Sprintf("Pick a lap for %s:", driver.FullName))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	_, err := da.bot.Send(msg)
	return err
}

// StartDrill is the Idle→Loading transition: the loading indicator appears
// before the fetch is issued, and the fetch resolves on a separate
// goroutine so further interaction is never blocked.
func (da *DrillDownApp) StartDrill(ctx context.Context, chatId int64, driverNumber, lapNumber int) error {
	sess := da.sessions.Get(chatId)
	summary := sess.Summary()
	if summary == nil {
		return sendText(da.bot, chatId, "No race data loaded")
	}
	driver, found := summary.DriverByNumber(driverNumber)
	if !found {
		return sendText(da.bot, chatId, fmt.Sprintf("No data for driver %d", driverNumber))
	}

	ticket := sess.BeginDrill(driverNumber, lapNumber, driver.FullName)

	deleteChart(da.bot, sess, session.SurfaceDrillStatus, chatId)
	loading := tgbotapi.NewMessage(chatId, fmt.Sprintf("⏳ Loading telemetry for %s, lap %d…", driver.FullName, lapNumber))
	sent, err := da.bot.Send(loading)
	if err != nil {
		return err
	}
	sess.SetHandle(session.SurfaceDrillStatus, sent.MessageID)

	go da.resolve(ctx, chatId, sess, driver, lapNumber, ticket)
	return nil
}

func (da *DrillDownApp) resolve(ctx context.Context, chatId int64, sess *session.Session,
	driver model.Driver, lapNumber, ticket int,
) {
	samples, err := da.client.FetchTelemetry(ctx, driver.DriverNumber, lapNumber)
	if err != nil {
		if !sess.FailDrill(ticket) {
			log.Logger.Debug("stale telemetry failure discarded",
				zap.Int("driver", driver.DriverNumber), zap.Int("lap", lapNumber))
			return
		}
		da.showError(chatId, sess, driver.DriverNumber, lapNumber)
		return
	}

	if !sess.CompleteDrill(ticket, samples) {
		log.Logger.Debug("stale telemetry response discarded",
			zap.Int("driver", driver.DriverNumber), zap.Int("lap", lapNumber))
		return
	}

	deleteChart(da.bot, sess, session.SurfaceDrillStatus, chatId)

	if len(samples) == 0 {
		if err := sendText(da.bot, chatId, fmt.Sprintf("No telemetry recorded for %s, lap %d", driver.FullName, lapNumber)); err != nil {
			log.Logger.Warn("sending empty-telemetry notice", zap.Error(err))
		}
		return
	}

	title := fmt.Sprintf("%s — lap %d", driver.FullName, lapNumber)
	caption := title
	if lap, ok := driver.LapByNumber(lapNumber); ok {
		caption = charts.Point{
			DriverNumber: driver.DriverNumber,
			DriverName:   driver.FullName,
			LapNumber:    lap.LapNumber,
			LapDuration:  lap.LapDuration,
			Compound:     lap.TireCompound(),
			IsAnomaly:    lap.IsAnomaly,
		}.Label()
	}

	speedPNG, err := charts.RenderPNG(charts.BuildSpeedChart(title, samples))
	if err != nil {
		log.Logger.Warn("rendering speed chart", zap.Error(err))
		da.showError(chatId, sess, driver.DriverNumber, lapNumber)
		return
	}
	enginePNG, err := charts.RenderPNG(charts.BuildEngineChart(title, samples))
	if err != nil {
		log.Logger.Warn("rendering engine chart", zap.Error(err))
		da.showError(chatId, sess, driver.DriverNumber, lapNumber)
		return
	}

	if err := replaceChart(da.bot, sess, session.SurfaceDrillSpeed, chatId, speedPNG, caption, nil); err != nil {
		log.Logger.Warn("sending speed chart", zap.Error(err))
		return
	}
	closeKb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(symbolClose+" Close", SubcommandDrillClose),
		),
	)
	if err := replaceChart(da.bot, sess, session.SurfaceDrillEngine, chatId, enginePNG, "", &closeKb); err != nil {
		log.Logger.Warn("sending engine chart", zap.Error(err))
	}
}

// showError is the Loading→Failed transition: the loading indicator becomes
// an explicit error with a retry affordance.
func (da *DrillDownApp) showError(chatId int64, sess *session.Session, driverNumber, lapNumber int) {
	retryKb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(symbolRetry+" Retry",
				fmt.Sprintf("%s:%d:%d", SubcommandDrillLoad, driverNumber, lapNumber)),
			tgbotapi.NewInlineKeyboardButtonData(symbolClose+" Close", SubcommandDrillClose),
		),
	)
	text := fmt.Sprintf("⚠️ Could not load telemetry for driver %d, lap %d.", driverNumber, lapNumber)
	if id, ok := sess.TakeHandle(session.SurfaceDrillStatus); ok {
		edit := tgbotapi.NewEditMessageText(chatId, id, text)
		edit.ReplyMarkup = &retryKb
		if _, err := da.bot.Send(edit); err == nil {
			sess.SetHandle(session.SurfaceDrillStatus, id)
			return
		}
	}
	msg := tgbotapi.NewMessage(chatId, text)
	msg.ReplyMarkup = retryKb
	if sent, err := da.bot.Send(msg); err == nil {
		sess.SetHandle(session.SurfaceDrillStatus, sent.MessageID)
	}
}

// close hides the drill-down panel; chart instances are destroyed here
// rather than left for the next replacement.
func (da *DrillDownApp) close(chatId int64) error {
	sess := da.sessions.Get(chatId)
	deleteChart(da.bot, sess, session.SurfaceDrillStatus, chatId)
	deleteChart(da.bot, sess, session.SurfaceDrillSpeed, chatId)
	deleteChart(da.bot, sess, session.SurfaceDrillEngine, chatId)
	sess.CloseDrill()
	return nil
}
