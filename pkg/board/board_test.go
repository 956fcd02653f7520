package board

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitwallbot/pkg/api"
	"pitwallbot/pkg/charts"
	"pitwallbot/pkg/model"
	"pitwallbot/pkg/pubsub"
	"pitwallbot/pkg/session"
)

func raceSummary() *model.Summary {
	return &model.Summary{
		SessionKey: 9222,
		Event:      "Bahrain Grand Prix",
		Location:   "Sakhir",
		Drivers: []model.Driver{
			{
				DriverNumber: 1, NameAcronym: "VER", FullName: "Max Verstappen",
				TeamName: "Red Bull Racing", TeamColor: "3671C6",
				Laps: []model.Lap{
					{LapNumber: 1, LapDuration: 95.2, Compound: "SOFT"},
					{LapNumber: 2, LapDuration: 94.8, Compound: "SOFT"},
				},
				Stats: model.DriverStats{TotalLaps: 2, FastestLap: 94.8, SlowestLap: 95.2},
			},
			{
				DriverNumber: 44, NameAcronym: "HAM", FullName: "Lewis Hamilton",
				TeamName: "Mercedes", TeamColor: "6CD3BF",
				Laps: []model.Lap{
					{LapNumber: 1, LapDuration: 95.9, Compound: "MEDIUM"},
					{LapNumber: 2, LapDuration: 96.4, Compound: "MEDIUM", IsAnomaly: true},
				},
				Stats: model.DriverStats{TotalLaps: 2, FastestLap: 95.9, SlowestLap: 96.4},
			},
		},
	}
}

func newTestManager(t *testing.T, withSummary bool) (*Manager, *session.Manager) {
	t.Helper()
	sessions := session.NewManager()
	if withSummary {
		sessions.SetSummary(raceSummary())
	}
	client := api.NewClient("http://127.0.0.1:1", time.Second)
	return NewManager(client, sessions, pubsub.NewPubSub[string](), "board-refresh"), sessions
}

func get(t *testing.T, m *Manager, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	m.Router().ServeHTTP(rec, req)
	return rec
}

func TestChartEndpointsWithoutData(t *testing.T) {
	m, _ := newTestManager(t, false)

	for _, path := range []string{"/", "/charts/strategy.png", "/charts/comparison.png"} {
		rec := get(t, m, path)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
	}
}

func TestStrategyEndpointRendersPNG(t *testing.T) {
	m, _ := newTestManager(t, true)

	rec := get(t, m, "/charts/strategy.png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	body := rec.Body.Bytes()
	require.True(t, len(body) > 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, body[:4])
}

func TestComparisonEndpointRendersPNG(t *testing.T) {
	m, _ := newTestManager(t, true)

	rec := get(t, m, "/charts/comparison.png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestDrillEndpointsFollowPhase(t *testing.T) {
	m, sessions := newTestManager(t, true)
	sess := sessions.Operator()

	rec := get(t, m, "/charts/drill/speed.png")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	ticket := sess.BeginDrill(1, 2, "Max Verstappen")
	rec = get(t, m, "/charts/drill/speed.png")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	require.True(t, sess.CompleteDrill(ticket, []model.TelemetrySample{
		{Speed: 280, RPM: 11200, Gear: 7, Throttle: 100},
		{Speed: 310, RPM: 11900, Gear: 8, Throttle: 100},
	}))
	for _, path := range []string{"/charts/drill/speed.png", "/charts/drill/engine.png"} {
		rec = get(t, m, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"), path)
	}

	ticket = sess.BeginDrill(44, 1, "Lewis Hamilton")
	require.True(t, sess.FailDrill(ticket))
	rec = get(t, m, "/charts/drill/engine.png")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestDashboardListsDrivers(t *testing.T) {
	m, _ := newTestManager(t, true)

	rec := get(t, m, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	html := rec.Body.String()
	assert.Contains(t, html, "Bahrain Grand Prix")
	assert.Contains(t, html, "VER")
	assert.Contains(t, html, "HAM")
	assert.Contains(t, html, "/charts/strategy.png")
	assert.Contains(t, html, "Fastest lap")
	assert.Contains(t, html, "1:34.800")
	assert.Contains(t, html, "Max Verstappen")
}

func TestClickSnapsAndStartsDrill(t *testing.T) {
	m, sessions := newTestManager(t, true)
	sess := sessions.Operator()

	surface := charts.BuildStrategy(sess.Summary(), sess.ActiveSet())
	require.NotEmpty(t, surface.Points)
	target := surface.Points[0]
	fx, fy := charts.ImageFractions(float64(target.LapNumber), target.LapDuration,
		surface.XRange, surface.YRange)

	m.dispatch(clientMessage{Action: "click", Fx: fx, Fy: fy})

	drill := sess.Drill()
	assert.NotEqual(t, session.DrillIdle, drill.Phase)
	assert.Equal(t, target.DriverNumber, drill.DriverNumber)
	assert.Equal(t, target.LapNumber, drill.LapNumber)
}

func TestToggleActionFlipsVisibility(t *testing.T) {
	m, sessions := newTestManager(t, true)
	sess := sessions.Operator()
	require.True(t, sess.IsActive(44))

	m.dispatch(clientMessage{Action: "toggle", DriverNumber: 44})
	assert.False(t, sess.IsActive(44))

	m.dispatch(clientMessage{Action: "toggle", DriverNumber: 44})
	assert.True(t, sess.IsActive(44))
}
