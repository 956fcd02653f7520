package board

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"pitwallbot/log"
	"pitwallbot/pkg/charts"
	"pitwallbot/pkg/helper"
	"pitwallbot/pkg/session"
	"pitwallbot/pkg/stats"
)

type drillSurface int

const (
	drillSpeed drillSurface = iota
	drillEngine
)

func writePNG(w http.ResponseWriter, png []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}

func (m *Manager) dashboardHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := m.sessions.Operator()
		summary := sess.Summary()
		if summary == nil {
			http.Error(w, "no race data loaded", http.StatusServiceUnavailable)
			return
		}

		active := sess.ActiveSet()
		data := dashboardData{
			Event:        summary.Event,
			Location:     summary.Location,
			WebSocketURL: "ws://" + r.Host + "/ws",
			TotalLaps:    stats.TotalLaps(summary),
			Anomalies:    stats.AnomalyCount(summary),
		}
		if owner, seconds, ok := stats.FastestLap(summary); ok {
			data.HasFastest = true
			data.FastestTime = helper.FormatLapTime(seconds)
			data.FastestBy = owner.FullName
			data.FastestColor = strings.TrimPrefix(owner.TeamColor, "#")
		}
		for _, d := range summary.Drivers {
			data.Drivers = append(data.Drivers, dashboardDriver{
				Number:  d.DriverNumber,
				Acronym: d.NameAcronym,
				Color:   strings.TrimPrefix(d.TeamColor, "#"),
				Active:  active[d.DriverNumber],
			})
		}
		if err := dashboardTemplate.Execute(w, data); err != nil {
			log.Logger.Warn("rendering dashboard", zap.Error(err))
		}
	}
}

func (m *Manager) strategyHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := m.sessions.Operator()
		summary := sess.Summary()
		if summary == nil {
			http.Error(w, "no race data loaded", http.StatusServiceUnavailable)
			return
		}
		surface := charts.BuildStrategy(summary, sess.ActiveSet())
		png, err := charts.RenderPNG(surface.Chart)
		if err != nil {
			log.Logger.Warn("rendering strategy chart", zap.Error(err))
			http.Error(w, "chart rendering failed", http.StatusInternalServerError)
			return
		}
		writePNG(w, png)
	}
}

func (m *Manager) comparisonHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := m.sessions.Operator()
		summary := sess.Summary()
		if summary == nil {
			http.Error(w, "no race data loaded", http.StatusServiceUnavailable)
			return
		}
		n1, n2 := sess.Comparison()
		d1, ok1 := summary.DriverByNumber(n1)
		d2, ok2 := summary.DriverByNumber(n2)
		if !ok1 || !ok2 {
			http.Error(w, "comparison pair not selected", http.StatusNotFound)
			return
		}
		png, err := charts.RenderPNG(charts.BuildComparison(d1, d2))
		if err != nil {
			log.Logger.Warn("rendering comparison chart", zap.Error(err))
			http.Error(w, "chart rendering failed", http.StatusInternalServerError)
			return
		}
		writePNG(w, png)
	}
}

func (m *Manager) drillHandler(which drillSurface) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := m.sessions.Operator()
		drill := sess.Drill()
		switch drill.Phase {
		case session.DrillReady:
		case session.DrillLoading:
			http.Error(w, "telemetry still loading", http.StatusServiceUnavailable)
			return
		case session.DrillFailed:
			http.Error(w, "telemetry fetch failed", http.StatusBadGateway)
			return
		default:
			http.Error(w, "no lap selected", http.StatusNotFound)
			return
		}

		title := drill.DriverName
		graph := charts.BuildSpeedChart(title, drill.Samples)
		if which == drillEngine {
			graph = charts.BuildEngineChart(title, drill.Samples)
		}
		png, err := charts.RenderPNG(graph)
		if err != nil {
			log.Logger.Warn("rendering telemetry chart", zap.Error(err))
			http.Error(w, "chart rendering failed", http.StatusInternalServerError)
			return
		}
		writePNG(w, png)
	}
}
