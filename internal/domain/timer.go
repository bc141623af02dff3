package domain

// Interval lengths in seconds
const (
	WorkSeconds       = 25 * 60
	ShortBreakSeconds = 5 * 60
	LongBreakSeconds  = 15 * 60

	// SessionsPerLongBreak is how many completed work intervals earn a long break
	SessionsPerLongBreak = 4
)

// TimerStatus is the state of the focus timer
type TimerStatus string

const (
	TimerIdle      TimerStatus = "idle"
	TimerWorking   TimerStatus = "working"
	TimerBreak     TimerStatus = "break"
	TimerCompleted TimerStatus = "completed"
)

// BreakKind distinguishes short and long breaks
type BreakKind string

const (
	BreakShort BreakKind = "short"
	BreakLong  BreakKind = "long"
)

// TimerState is the snapshot of the focus timer
type TimerState struct {
	Status        TimerStatus `json:"status"`
	TimeLeft      int         `json:"timeLeft"`
	ActiveNodeID  string      `json:"activeNodeId,omitempty"`
	Duration      int         `json:"duration"`
	TotalSessions int         `json:"totalSessions"`
	Paused        bool        `json:"paused"`
	BreakKind     BreakKind   `json:"breakKind,omitempty"`
}

// Running reports whether ticks should be scheduled
func (s TimerState) Running() bool {
	return s.Status == TimerWorking || s.Status == TimerBreak
}

// Progress returns the elapsed fraction of the current interval in [0, 1]
func (s TimerState) Progress() float64 {
	total := s.Duration
	if s.Status == TimerBreak {
		total = breakSeconds(s.BreakKind)
	}
	if total <= 0 {
		return 0
	}
	return float64(total-s.TimeLeft) / float64(total)
}

// TickResult reports what a tick did
type TickResult int

const (
	TickNone TickResult = iota
	TickCounted
	TickCompleted
	TickBreakOver
)

// Timer is the focus session state machine. Node accounting on completion is
// left to the caller, which receives TickCompleted exactly once per interval.
type Timer struct {
	state TimerState
}

// NewTimer creates an idle timer with the given work interval
func NewTimer(duration int) *Timer {
	if duration <= 0 {
		duration = WorkSeconds
	}
	return &Timer{state: TimerState{
		Status:   TimerIdle,
		TimeLeft: duration,
		Duration: duration,
	}}
}

// State returns a copy of the timer state
func (t *Timer) State() TimerState {
	return t.state
}

// StartFocus begins a work interval on nodeID, abandoning any prior session
func (t *Timer) StartFocus(nodeID string) {
	t.state.Status = TimerWorking
	t.state.ActiveNodeID = nodeID
	t.state.TimeLeft = t.state.Duration
	t.state.Paused = false
	t.state.BreakKind = ""
}

// Tick advances the timer by one second
func (t *Timer) Tick() TickResult {
	switch t.state.Status {
	case TimerWorking:
		if t.state.TimeLeft > 0 {
			t.state.TimeLeft--
		}
		if t.state.TimeLeft > 0 {
			return TickCounted
		}
		t.state.Status = TimerCompleted
		t.state.TotalSessions++
		return TickCompleted
	case TimerBreak:
		if t.state.TimeLeft > 0 {
			t.state.TimeLeft--
		}
		if t.state.TimeLeft > 0 {
			return TickCounted
		}
		t.reset()
		return TickBreakOver
	default:
		return TickNone
	}
}

// Toggle pauses a working session or resumes a paused one.
// Returns false when there is nothing to pause or resume.
func (t *Timer) Toggle() bool {
	switch {
	case t.state.Status == TimerWorking:
		t.state.Status = TimerIdle
		t.state.Paused = true
		return true
	case t.state.Status == TimerIdle && t.state.Paused:
		t.state.Status = TimerWorking
		t.state.Paused = false
		return true
	default:
		return false
	}
}

// Exit abandons the current session or break and returns to idle
func (t *Timer) Exit() {
	t.reset()
}

// StartBreak begins a rest interval after a completed session.
// Every SessionsPerLongBreak-th session earns a long break.
func (t *Timer) StartBreak() bool {
	if t.state.Status != TimerCompleted {
		return false
	}
	kind := BreakShort
	if t.state.TotalSessions > 0 && t.state.TotalSessions%SessionsPerLongBreak == 0 {
		kind = BreakLong
	}
	t.state.Status = TimerBreak
	t.state.BreakKind = kind
	t.state.TimeLeft = breakSeconds(kind)
	t.state.ActiveNodeID = ""
	t.state.Paused = false
	return true
}

func (t *Timer) reset() {
	t.state.Status = TimerIdle
	t.state.ActiveNodeID = ""
	t.state.TimeLeft = t.state.Duration
	t.state.Paused = false
	t.state.BreakKind = ""
}

func breakSeconds(kind BreakKind) int {
	if kind == BreakLong {
		return LongBreakSeconds
	}
	return ShortBreakSeconds
}
