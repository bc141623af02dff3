package tui

import (
	"context"
	"fmt"
	"testing"
	"time"

	"focusly/internal/adapters/tui/views"
	"focusly/internal/application"
	"focusly/internal/domain"
)

func newTestApp(t *testing.T, opts ...Option) (*App, *application.Engine) {
	t.Helper()
	n := 0
	e := application.NewEngine(nil, nil,
		application.WithIDGenerator(func() string { n++; return fmt.Sprintf("n%d", n) }),
		application.WithWorkSeconds(2),
	)
	if _, err := e.AddNode(context.Background(), "Channels", domain.NodeTypeSignal); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	a := NewApp(e, opts...)
	t.Cleanup(a.Close)
	return a, e
}

func TestApp_TicksUntilSessionCompletes(t *testing.T) {
	a, e := newTestApp(t)
	if _, err := e.StartFocus(context.Background(), "n1"); err != nil {
		t.Fatalf("StartFocus: %v", err)
	}

	if cmd := a.startTicking(); cmd == nil {
		t.Fatal("first start should schedule a tick")
	}
	if cmd := a.startTicking(); cmd != nil {
		t.Fatal("ticks must not be scheduled twice")
	}

	_, cmd := a.Update(views.TimerTickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("a running timer keeps ticking")
	}
	_, cmd = a.Update(views.TimerTickMsg(time.Now()))
	if cmd != nil || a.ticking {
		t.Fatal("ticking stops once the session completes")
	}

	select {
	case ev := <-a.events:
		if ev.Kind != domain.EventSessionCompleted || ev.NodeID != "n1" {
			t.Errorf("event = %+v", ev)
		}
	default:
		t.Fatal("completion event not delivered")
	}
	if got := e.Node("n1").PomodorosSpent; got != 1 {
		t.Errorf("pomodoros = %d, want 1", got)
	}
}

func TestApp_FocusOnlyQuitsOnBack(t *testing.T) {
	a, _ := newTestApp(t, WithFocus("n1"))
	a.Init()
	if a.state != ViewFocus {
		t.Fatalf("state = %v, want focus", a.state)
	}

	_, cmd := a.Update(views.SwitchToRoadmapMsg{})
	if cmd == nil {
		t.Fatal("expected quit")
	}
}

func TestApp_SwitchesViews(t *testing.T) {
	a, _ := newTestApp(t)

	a.Update(views.SwitchToStatsMsg{})
	if a.state != ViewStats {
		t.Errorf("state = %v, want stats", a.state)
	}
	a.Update(views.SwitchToRoadmapMsg{Message: "back"})
	if a.state != ViewRoadmap || a.roadmap.Message != "back" {
		t.Errorf("state = %v message = %q", a.state, a.roadmap.Message)
	}
}

func TestApp_OpenNoteWithoutEditor(t *testing.T) {
	a, _ := newTestApp(t)
	if cmd := a.openNote("n1"); cmd != nil {
		t.Fatal("no command without an editor")
	}
	if !a.roadmap.MessageErr {
		t.Error("expected an error message")
	}
}

func TestCelebration(t *testing.T) {
	tests := []struct {
		kind domain.EventKind
		want string
	}{
		{domain.EventNodeMastered, "🎉 Mastered Channels"},
		{domain.EventSessionCompleted, "🍅 Session complete: Channels. Take a break with b"},
		{domain.EventBreakFinished, "Break over. Ready for the next session"},
	}
	for _, tt := range tests {
		if got := celebration(domain.Event{Kind: tt.kind, Title: "Channels"}); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.kind, got, tt.want)
		}
	}
}
