package board

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"pitwallbot/log"
	"pitwallbot/pkg/charts"
	"pitwallbot/pkg/session"
)

var upgrader = websocket.Upgrader{} // use default options

// clientMessage is what a board sends back: a click on the strategy
// canvas (fractional coordinates), a visibility toggle, a comparison slot
// change or a drill-down dismissal.
type clientMessage struct {
	Action       string  `json:"action"`
	Fx           float64 `json:"fx"`
	Fy           float64 `json:"fy"`
	DriverNumber int     `json:"driver_number"`
	Slot         int     `json:"slot"`
}

type serverEvent struct {
	Event string `json:"event"`
}

func (m *Manager) websocketHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Logger.Warn("websocket upgrade", zap.Error(err))
			return
		}
		defer c.Close()

		events := m.pubsubMgr.Subscribe(m.topic)
		defer m.pubsubMgr.Unsubscribe(m.topic, events)

		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				var msg clientMessage
				if err := c.ReadJSON(&msg); err != nil {
					return
				}
				m.dispatch(msg)
			}
		}()

		for {
			select {
			case event, ok := <-events:
				if !ok {
					return
				}
				if err := c.WriteJSON(serverEvent{Event: event}); err != nil {
					return
				}
			case <-done:
				return
			case <-r.Context().Done():
				return
			}
		}
	}
}

func (m *Manager) dispatch(msg clientMessage) {
	sess := m.sessions.Operator()
	switch msg.Action {
	case "click":
		m.handleClick(sess, msg.Fx, msg.Fy)
	case "toggle":
		sess.Toggle(msg.DriverNumber)
		m.pubsubMgr.Publish(m.topic, "refresh")
	case "compare":
		sess.SetComparison(msg.Slot, msg.DriverNumber)
		m.pubsubMgr.Publish(m.topic, "refresh")
	case "close":
		sess.CloseDrill()
		m.pubsubMgr.Publish(m.topic, "refresh")
	default:
		log.Logger.Debug("unknown board action", zap.String("action", msg.Action))
	}
}

// handleClick snaps the click to the nearest plotted lap and starts a
// telemetry fetch for it. A later click supersedes this one through the
// drill ticket, so a slow response never overwrites a newer selection.
func (m *Manager) handleClick(sess *session.Session, fx, fy float64) {
	summary := sess.Summary()
	if summary == nil {
		return
	}
	surface := charts.BuildStrategy(summary, sess.ActiveSet())
	point, found := charts.NearestPointNorm(surface.Points, fx, fy, surface.XRange, surface.YRange)
	if !found {
		return
	}

	ticket := sess.BeginDrill(point.DriverNumber, point.LapNumber, point.DriverName)
	m.pubsubMgr.Publish(m.topic, "refresh")

	// The drill state is shared by every connected board, so the fetch is
	// not tied to the clicking connection's lifetime.
	go func() {
		samples, err := m.client.FetchTelemetry(context.Background(), point.DriverNumber, point.LapNumber)
		if err != nil {
			if sess.FailDrill(ticket) {
				m.pubsubMgr.Publish(m.topic, "refresh")
			}
			return
		}
		if !sess.CompleteDrill(ticket, samples) {
			log.Logger.Debug("stale telemetry response discarded",
				zap.Int("driver", point.DriverNumber), zap.Int("lap", point.LapNumber))
			return
		}
		m.pubsubMgr.Publish(m.topic, "refresh")
	}()
}
