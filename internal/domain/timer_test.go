package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimer_CompletesExactlyOnce(t *testing.T) {
	timer := NewTimer(WorkSeconds)
	timer.StartFocus("a")

	completions := 0
	for i := 0; i < WorkSeconds+50; i++ {
		if timer.Tick() == TickCompleted {
			completions++
		}
	}

	st := timer.State()
	assert.Equal(t, 1, completions)
	assert.Equal(t, TimerCompleted, st.Status)
	assert.Equal(t, "a", st.ActiveNodeID)
	assert.Equal(t, 0, st.TimeLeft)
	assert.Equal(t, 1, st.TotalSessions)
}

func TestTimer_CompletionOnLastTick(t *testing.T) {
	timer := NewTimer(3)
	timer.StartFocus("a")

	assert.Equal(t, TickCounted, timer.Tick())
	assert.Equal(t, TickCounted, timer.Tick())
	assert.Equal(t, TickCompleted, timer.Tick())
	assert.Equal(t, TickNone, timer.Tick())
}

func TestTimer_ToggleResumesWithoutReset(t *testing.T) {
	timer := NewTimer(10)
	timer.StartFocus("a")
	timer.Tick()
	timer.Tick()

	require.True(t, timer.Toggle())
	st := timer.State()
	assert.Equal(t, TimerIdle, st.Status)
	assert.True(t, st.Paused)
	assert.Equal(t, 8, st.TimeLeft)

	assert.Equal(t, TickNone, timer.Tick(), "paused timer does not count down")
	assert.Equal(t, 8, timer.State().TimeLeft)

	require.True(t, timer.Toggle())
	st = timer.State()
	assert.Equal(t, TimerWorking, st.Status)
	assert.False(t, st.Paused)
	assert.Equal(t, 8, st.TimeLeft)
	assert.Equal(t, "a", st.ActiveNodeID)
}

func TestTimer_ToggleWithoutSession(t *testing.T) {
	timer := NewTimer(10)
	assert.False(t, timer.Toggle())
	assert.Equal(t, TimerIdle, timer.State().Status)
}

func TestTimer_Exit(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Timer)
	}{
		{name: "from working", setup: func(tm *Timer) { tm.StartFocus("a"); tm.Tick() }},
		{name: "from completed", setup: func(tm *Timer) {
			tm.StartFocus("a")
			for tm.Tick() != TickCompleted {
			}
		}},
		{name: "from paused", setup: func(tm *Timer) { tm.StartFocus("a"); tm.Toggle() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timer := NewTimer(5)
			tt.setup(timer)
			timer.Exit()

			st := timer.State()
			assert.Equal(t, TimerIdle, st.Status)
			assert.Empty(t, st.ActiveNodeID)
			assert.Equal(t, 5, st.TimeLeft)
			assert.False(t, st.Paused)
		})
	}
}

func TestTimer_StartFocusAbandonsPrior(t *testing.T) {
	timer := NewTimer(5)
	timer.StartFocus("a")
	timer.Tick()
	timer.Tick()
	timer.StartFocus("b")

	st := timer.State()
	assert.Equal(t, "b", st.ActiveNodeID)
	assert.Equal(t, 5, st.TimeLeft)
	assert.Equal(t, 0, st.TotalSessions)
}

func TestTimer_Break(t *testing.T) {
	timer := NewTimer(2)
	assert.False(t, timer.StartBreak(), "break requires a completed session")

	for session := 1; session <= SessionsPerLongBreak; session++ {
		timer.StartFocus("a")
		timer.Tick()
		require.Equal(t, TickCompleted, timer.Tick())
		require.True(t, timer.StartBreak())

		st := timer.State()
		assert.Equal(t, TimerBreak, st.Status)
		assert.Empty(t, st.ActiveNodeID)
		if session == SessionsPerLongBreak {
			assert.Equal(t, BreakLong, st.BreakKind)
			assert.Equal(t, LongBreakSeconds, st.TimeLeft)
		} else {
			assert.Equal(t, BreakShort, st.BreakKind)
			assert.Equal(t, ShortBreakSeconds, st.TimeLeft)
		}
		timer.Exit()
	}
	assert.Equal(t, SessionsPerLongBreak, timer.State().TotalSessions)
}

func TestTimer_BreakRunsOut(t *testing.T) {
	timer := NewTimer(1)
	timer.StartFocus("a")
	require.Equal(t, TickCompleted, timer.Tick())
	require.True(t, timer.StartBreak())

	var last TickResult
	for i := 0; i < ShortBreakSeconds; i++ {
		last = timer.Tick()
	}
	assert.Equal(t, TickBreakOver, last)
	assert.Equal(t, TimerIdle, timer.State().Status)
	assert.Equal(t, 1, timer.State().TimeLeft)
	assert.Equal(t, 1, timer.State().TotalSessions, "breaks never add sessions")
}

func TestTimerState_Progress(t *testing.T) {
	timer := NewTimer(10)
	timer.StartFocus("a")
	for i := 0; i < 5; i++ {
		timer.Tick()
	}
	assert.InDelta(t, 0.5, timer.State().Progress(), 1e-9)
}
