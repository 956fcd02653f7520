package session

import (
	"sync"

	"pitwallbot/pkg/model"
)

// DrillPhase tracks the drill-down panel state machine.
type DrillPhase int

const (
	DrillIdle DrillPhase = iota
	DrillLoading
	DrillReady
	DrillFailed
)

// DrillState is the current drill-down target and its resolved telemetry.
type DrillState struct {
	Phase        DrillPhase
	DriverNumber int
	LapNumber    int
	DriverName   string
	Samples      []model.TelemetrySample
}

// Chart surface names used as handle keys. A handle is the id of the message
// (or rendered instance) currently showing that surface; replacing a surface
// must consume its previous handle first.
const (
	SurfaceStrategy    = "strategy"
	SurfaceComparison  = "comparison"
	SurfaceDrillSpeed  = "drill_speed"
	SurfaceDrillEngine = "drill_engine"
	SurfaceDrillStatus = "drill_status"
)

// Session owns all mutable state derived from one summary load: the summary
// itself, the active-driver set, the comparison pair, the drill-down state
// and the chart handles. All access goes through the one mutex; both the bot
// handlers and the web board touch sessions concurrently.
type Session struct {
	mu         sync.Mutex
	summary    *model.Summary
	active     map[int]bool
	comparison [2]int
	drillSeq   int
	drill      DrillState
	handles    map[string]int
}

func New() *Session {
	return &Session{
		active:  make(map[int]bool),
		handles: make(map[string]int),
	}
}

// Initialize resets the session from a freshly loaded summary: every driver
// becomes active and the comparison pair defaults to the first two drivers
// in summary order. Prior state is replaced, never merged.
func (s *Session) Initialize(summary *model.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.summary = summary
	s.active = make(map[int]bool, len(summary.Drivers))
	for _, d := range summary.Drivers {
		s.active[d.DriverNumber] = true
	}
	s.comparison = [2]int{}
	if len(summary.Drivers) > 0 {
		s.comparison[0] = summary.Drivers[0].DriverNumber
	}
	if len(summary.Drivers) > 1 {
		s.comparison[1] = summary.Drivers[1].DriverNumber
	}
	s.drillSeq++
	s.drill = DrillState{}
	s.handles = make(map[string]int)
}

func (s *Session) Summary() *model.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// Toggle flips the visibility of one driver and reports the new state.
// Unknown driver numbers never enter the set.
func (s *Session) Toggle(driverNumber int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active[driverNumber] {
		delete(s.active, driverNumber)
		return false
	}
	if s.summary != nil {
		if _, ok := s.summary.DriverByNumber(driverNumber); !ok {
			return false
		}
	}
	s.active[driverNumber] = true
	return true
}

func (s *Session) IsActive(driverNumber int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active[driverNumber]
}

// ActiveSet returns a copy of the active-driver set.
func (s *Session) ActiveSet() map[int]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int]bool, len(s.active))
	for n, v := range s.active {
		out[n] = v
	}
	return out
}

func (s *Session) Comparison() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.comparison[0], s.comparison[1]
}

// SetComparison updates one side of the comparison pair (slot 0 or 1).
func (s *Session) SetComparison(slot, driverNumber int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slot < 0 || slot > 1 {
		return
	}
	if s.summary != nil {
		if _, ok := s.summary.DriverByNumber(driverNumber); !ok {
			return
		}
	}
	s.comparison[slot] = driverNumber
}

// BeginDrill stamps a new drill-down request and returns its ticket. Any
// response carrying an older ticket is stale and must be discarded.
func (s *Session) BeginDrill(driverNumber, lapNumber int, driverName string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drillSeq++
	s.drill = DrillState{
		Phase:        DrillLoading,
		DriverNumber: driverNumber,
		LapNumber:    lapNumber,
		DriverName:   driverName,
	}
	return s.drillSeq
}

// CompleteDrill resolves a drill-down fetch. It reports false when the
// ticket is no longer current, in which case the samples are dropped.
func (s *Session) CompleteDrill(ticket int, samples []model.TelemetrySample) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket != s.drillSeq {
		return false
	}
	s.drill.Phase = DrillReady
	s.drill.Samples = samples
	return true
}

// FailDrill marks the current drill-down as failed, again only when the
// ticket is still current.
func (s *Session) FailDrill(ticket int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket != s.drillSeq {
		return false
	}
	s.drill.Phase = DrillFailed
	s.drill.Samples = nil
	return true
}

// CloseDrill returns the panel to idle. Chart handles are left for the next
// replacement to consume.
func (s *Session) CloseDrill() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drillSeq++
	s.drill = DrillState{}
}

func (s *Session) Drill() DrillState {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.drill
	d.Samples = append([]model.TelemetrySample(nil), s.drill.Samples...)
	return d
}

// SetHandle records the rendered instance currently showing a surface.
func (s *Session) SetHandle(surface string, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handles[surface] = id
}

// TakeHandle removes and returns the current instance for a surface, so the
// caller can destroy it before rendering a replacement.
func (s *Session) TakeHandle(surface string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.handles[surface]
	if ok {
		delete(s.handles, surface)
	}
	return id, ok
}

// Manager hands out one session per chat. The web board uses the reserved
// operator session (chat id 0).
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	summary  *model.Summary
}

const OperatorChatID int64 = 0

func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*Session)}
}

// SetSummary stores the summary used to seed new sessions and re-initializes
// every existing one (reset, not merge).
func (m *Manager) SetSummary(summary *model.Summary) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summary = summary
	for _, s := range m.sessions {
		s.Initialize(summary)
	}
}

// Get returns the session for a chat, creating and seeding it on first use.
func (m *Manager) Get(chatID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[chatID]; ok {
		return s
	}
	s := New()
	if m.summary != nil {
		s.Initialize(m.summary)
	}
	m.sessions[chatID] = s
	return s
}

// Operator returns the web board's session.
func (m *Manager) Operator() *Session {
	return m.Get(OperatorChatID)
}
