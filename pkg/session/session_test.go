package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitwallbot/pkg/model"
)

func sampleSummary() *model.Summary {
	return &model.Summary{
		Event: "British GP 2024",
		Drivers: []model.Driver{
			{DriverNumber: 44, FullName: "Lewis Hamilton"},
			{DriverNumber: 1, FullName: "Max Verstappen"},
			{DriverNumber: 4, FullName: "Lando Norris"},
		},
	}
}

func TestInitializeActivatesAllDrivers(t *testing.T) {
	s := New()
	s.Initialize(sampleSummary())

	active := s.ActiveSet()
	assert.Len(t, active, 3)
	for _, n := range []int{44, 1, 4} {
		assert.True(t, active[n], "driver %d should start visible", n)
	}

	a, b := s.Comparison()
	assert.Equal(t, 44, a)
	assert.Equal(t, 1, b)
}

func TestToggleIsIdempotentUnderDoubleToggle(t *testing.T) {
	s := New()
	s.Initialize(sampleSummary())

	before := s.ActiveSet()
	s.Toggle(44)
	assert.False(t, s.IsActive(44))
	s.Toggle(44)
	assert.Equal(t, before, s.ActiveSet())
}

func TestToggleUnknownDriverIsNoOp(t *testing.T) {
	s := New()
	s.Initialize(sampleSummary())

	s.Toggle(99)
	assert.False(t, s.IsActive(99))
	assert.Len(t, s.ActiveSet(), 3)
}

func TestInitializeResetsSelection(t *testing.T) {
	s := New()
	s.Initialize(sampleSummary())
	s.Toggle(44)
	s.SetComparison(1, 4)

	s.Initialize(sampleSummary())
	assert.True(t, s.IsActive(44), "selection must be reset, not merged")
	_, b := s.Comparison()
	assert.Equal(t, 1, b)
}

func TestSetComparisonRejectsUnknownDriver(t *testing.T) {
	s := New()
	s.Initialize(sampleSummary())
	s.SetComparison(0, 99)
	a, _ := s.Comparison()
	assert.Equal(t, 44, a)
}

func TestStaleDrillResponseIsDiscarded(t *testing.T) {
	s := New()
	s.Initialize(sampleSummary())

	first := s.BeginDrill(44, 10, "Lewis Hamilton")
	second := s.BeginDrill(1, 20, "Max Verstappen")

	// lap A resolves after lap B was requested: last request wins
	assert.False(t, s.CompleteDrill(first, []model.TelemetrySample{{Speed: 300}}))
	assert.Equal(t, DrillLoading, s.Drill().Phase)

	require.True(t, s.CompleteDrill(second, []model.TelemetrySample{{Speed: 280}}))
	d := s.Drill()
	assert.Equal(t, DrillReady, d.Phase)
	assert.Equal(t, 1, d.DriverNumber)
	assert.Equal(t, 280.0, d.Samples[0].Speed)
}

func TestFailDrillRespectsTicket(t *testing.T) {
	s := New()
	s.Initialize(sampleSummary())

	stale := s.BeginDrill(44, 10, "Lewis Hamilton")
	current := s.BeginDrill(44, 11, "Lewis Hamilton")

	assert.False(t, s.FailDrill(stale))
	assert.True(t, s.FailDrill(current))
	assert.Equal(t, DrillFailed, s.Drill().Phase)
}

func TestCloseDrillInvalidatesInFlightFetch(t *testing.T) {
	s := New()
	s.Initialize(sampleSummary())

	ticket := s.BeginDrill(44, 10, "Lewis Hamilton")
	s.CloseDrill()
	assert.False(t, s.CompleteDrill(ticket, nil))
	assert.Equal(t, DrillIdle, s.Drill().Phase)
}

func TestHandlesAreConsumedOnce(t *testing.T) {
	s := New()
	s.SetHandle(SurfaceStrategy, 123)

	id, ok := s.TakeHandle(SurfaceStrategy)
	assert.True(t, ok)
	assert.Equal(t, 123, id)

	_, ok = s.TakeHandle(SurfaceStrategy)
	assert.False(t, ok)
}

func TestManagerSeedsAndResetsSessions(t *testing.T) {
	m := NewManager()
	m.SetSummary(sampleSummary())

	chat := m.Get(42)
	assert.Len(t, chat.ActiveSet(), 3)
	chat.Toggle(44)

	// a reload resets every session
	m.SetSummary(sampleSummary())
	assert.True(t, chat.IsActive(44))

	assert.Same(t, m.Get(42), chat)
	assert.Same(t, m.Operator(), m.Get(OperatorChatID))
}
