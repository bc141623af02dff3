package views

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"focusly/internal/application"
	"focusly/internal/domain"
)

type stubProvider struct{}

func (stubProvider) GenerateRoadmap(ctx context.Context, topic string, depth int) ([]domain.NodeDescriptor, error) {
	return []domain.NodeDescriptor{
		{Title: topic + " basics", Type: domain.NodeTypeSignal, DifficultyLevel: 10, SearchQueries: []string{topic + " intro"}},
		{Title: topic + " trivia", Type: domain.NodeTypeNoise, DifficultyLevel: 5},
	}, nil
}

func (stubProvider) GenerateNodeContent(ctx context.Context, title, contextTopic string, complexity int) (*domain.DeepContent, error) {
	return &domain.DeepContent{ExecutiveSummary: title + " explained", TechnicalMechanics: []string{"step"}}, nil
}

func (stubProvider) Available() bool { return true }

func newEngine(t *testing.T) *application.Engine {
	t.Helper()
	n := 0
	return application.NewEngine(stubProvider{}, nil,
		application.WithClock(func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }),
		application.WithIDGenerator(func() string { n++; return fmt.Sprintf("n%d", n) }),
		application.WithWorkSeconds(3),
	)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs cmd and feeds its message back into update until no command is left
func drain(update func(tea.Msg) tea.Cmd, cmd tea.Cmd) {
	for i := 0; cmd != nil && i < 10; i++ {
		msg := cmd()
		if msg == nil {
			return
		}
		cmd = update(msg)
	}
}

func loadedRoadmap(t *testing.T, e *application.Engine) *RoadmapModel {
	t.Helper()
	m := NewRoadmapModel(e, nil)
	m.SetSize(100, 40)
	_, cmd := m.Update(m.Init()())
	if cmd != nil {
		t.Fatalf("loading the roadmap should not schedule more work")
	}
	return m
}

func TestRoadmapModel_RendersTree(t *testing.T) {
	e := newEngine(t)
	if _, err := e.CreateRoadmap(context.Background(), "Go"); err != nil {
		t.Fatalf("CreateRoadmap: %v", err)
	}

	m := loadedRoadmap(t, e)
	if len(m.entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(m.entries))
	}
	if got := m.SelectedNode().Title; got != "Go basics" {
		t.Errorf("selected = %q, want %q", got, "Go basics")
	}

	m.Update(keyRunes("j"))
	if got := m.SelectedNode().Title; got != "Go trivia" {
		t.Errorf("selected after j = %q, want %q", got, "Go trivia")
	}

	view := m.View()
	for _, want := range []string{"Go basics", "Go trivia", "noise"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestRoadmapModel_SignalOnlyHidesNoise(t *testing.T) {
	e := newEngine(t)
	if _, err := e.CreateRoadmap(context.Background(), "Go"); err != nil {
		t.Fatalf("CreateRoadmap: %v", err)
	}
	m := loadedRoadmap(t, e)

	_, cmd := m.Update(keyRunes("s"))
	drain(func(msg tea.Msg) tea.Cmd { _, c := m.Update(msg); return c }, cmd)

	if len(m.entries) != 1 || m.entries[0].Node.Type != domain.NodeTypeSignal {
		t.Errorf("signal-only entries = %+v", m.entries)
	}
}

func TestRoadmapModel_MasterReloads(t *testing.T) {
	e := newEngine(t)
	if _, err := e.AddNode(context.Background(), "Channels", domain.NodeTypeSignal); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	m := loadedRoadmap(t, e)

	_, cmd := m.Update(keyRunes("m"))
	drain(func(msg tea.Msg) tea.Cmd { _, c := m.Update(msg); return c }, cmd)

	if m.Message != "Mastered: Channels" || m.MessageErr {
		t.Errorf("message = %q (err %v)", m.Message, m.MessageErr)
	}
	if m.SelectedNode().Status != domain.StatusMastered {
		t.Errorf("status = %s, want mastered", m.SelectedNode().Status)
	}
}

func TestRoadmapModel_DrillAddsChildren(t *testing.T) {
	e := newEngine(t)
	if _, err := e.AddNode(context.Background(), "Channels", domain.NodeTypeSignal); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	m := loadedRoadmap(t, e)

	m.Update(keyRunes("d"))
	if m.working != 1 {
		t.Fatalf("working = %d, want 1", m.working)
	}
	_, cmd := m.Update(m.drill("n1")())
	drain(func(msg tea.Msg) tea.Cmd { _, c := m.Update(msg); return c }, cmd)

	if m.working != 0 {
		t.Errorf("working = %d after drill finished", m.working)
	}
	if len(m.entries) != 3 || m.entries[1].Level != 1 {
		t.Errorf("entries after drill = %d, want parent plus 2 children", len(m.entries))
	}
}

func TestRoadmapModel_KeysSwitchViews(t *testing.T) {
	e := newEngine(t)
	if _, err := e.AddNode(context.Background(), "Channels", domain.NodeTypeSignal); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	m := loadedRoadmap(t, e)

	tests := []struct {
		key  tea.KeyMsg
		want tea.Msg
	}{
		{tea.KeyMsg{Type: tea.KeyEnter}, SwitchToContentMsg{NodeID: "n1"}},
		{keyRunes("f"), SwitchToFocusMsg{NodeID: "n1"}},
		{keyRunes("o"), OpenNoteMsg{NodeID: "n1"}},
		{keyRunes("X"), SwitchToDeleteMsg{}},
		{keyRunes("/"), SwitchToSearchMsg{}},
		{keyRunes("c"), SwitchToCreateMsg{Mode: CreateModeTopic}},
		{keyRunes("n"), SwitchToCreateMsg{Mode: CreateModeNode}},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			_, cmd := m.Update(tt.key)
			if cmd == nil {
				t.Fatal("expected a command")
			}
			if got := cmd(); got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestRoadmapModel_CopyWithoutQueries(t *testing.T) {
	e := newEngine(t)
	if _, err := e.AddNode(context.Background(), "Channels", domain.NodeTypeSignal); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	m := loadedRoadmap(t, e)

	m.Update(keyRunes("y"))
	if !m.MessageErr || !strings.Contains(m.Message, "No search queries") {
		t.Errorf("message = %q (err %v)", m.Message, m.MessageErr)
	}
}

type recordingLauncher struct {
	queries []string
}

func (l *recordingLauncher) OpenQuery(q string) error {
	l.queries = append(l.queries, q)
	return nil
}

func TestRoadmapModel_BrowseOpensFirstQuery(t *testing.T) {
	e := newEngine(t)
	if _, err := e.CreateRoadmap(context.Background(), "Go"); err != nil {
		t.Fatalf("CreateRoadmap: %v", err)
	}
	launcher := &recordingLauncher{}
	m := NewRoadmapModel(e, launcher)
	m.Update(m.Init()())

	_, cmd := m.Update(keyRunes("g"))
	drain(func(msg tea.Msg) tea.Cmd { _, c := m.Update(msg); return c }, cmd)

	if len(launcher.queries) != 1 || launcher.queries[0] != "Go intro" {
		t.Errorf("queries = %v", launcher.queries)
	}
	if m.Message != "Searching for Go intro" {
		t.Errorf("message = %q", m.Message)
	}
}

func TestFocusModel_Lifecycle(t *testing.T) {
	e := newEngine(t)
	if _, err := e.AddNode(context.Background(), "Channels", domain.NodeTypeSignal); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	m := NewFocusModel(e)

	_, cmd := m.Update(m.Start("n1")())
	changedMsg, ok := cmd().(TimerChangedMsg)
	if !ok || !changedMsg.State.Running() {
		t.Fatalf("start should report a running timer, got %#v", changedMsg)
	}
	if !strings.Contains(m.View(), "00:03") {
		t.Error("view should show the clock")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if st := cmd().(TimerChangedMsg).State; !st.Paused {
		t.Errorf("space should pause, got %+v", st)
	}
	if m.Message != "Paused with 00:03 left" {
		t.Errorf("message = %q", m.Message)
	}

	m.Update(keyRunes("x"))
	if m.Message != "Focus session ended" {
		t.Errorf("message = %q", m.Message)
	}
	if e.Timer().Status != domain.TimerIdle {
		t.Errorf("status = %s, want idle", e.Timer().Status)
	}
}

func TestFocusModel_BreakOnlyAfterCompletion(t *testing.T) {
	e := newEngine(t)
	if _, err := e.AddNode(context.Background(), "Channels", domain.NodeTypeSignal); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	m := NewFocusModel(e)
	m.Update(m.Start("n1")())

	if _, cmd := m.Update(keyRunes("b")); cmd != nil {
		t.Error("break during work should do nothing")
	}

	for range 3 {
		if _, err := e.Tick(context.Background()); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
	_, cmd := m.Update(keyRunes("b"))
	if st := cmd().(TimerChangedMsg).State; st.Status != domain.TimerBreak {
		t.Errorf("status = %s, want break", st.Status)
	}
	if !strings.Contains(m.View(), "Short break") {
		t.Error("view should name the break")
	}
}

func TestCreateModel_AddsNoiseNode(t *testing.T) {
	e := newEngine(t)
	m := NewCreateModel(e)
	m.SetMode(CreateModeNode)

	m.Update(keyRunes("Graphs"))
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	msg, ok := cmd().(SwitchToRoadmapMsg)
	if !ok {
		t.Fatalf("expected SwitchToRoadmapMsg")
	}
	if msg.Message != "Added noise node: Graphs" || msg.FocusID != "n1" {
		t.Errorf("got %+v", msg)
	}
}

func TestCreateModel_EmptyTopicShowsError(t *testing.T) {
	e := newEngine(t)
	m := NewCreateModel(e)
	m.SetMode(CreateModeTopic)

	msg := m.create()()
	m.Update(msg)
	if !m.MessageErr || !strings.Contains(m.Message, "topic is required") {
		t.Errorf("message = %q (err %v)", m.Message, m.MessageErr)
	}
}

func TestDeleteModel_ClearAll(t *testing.T) {
	e := newEngine(t)
	if _, err := e.CreateRoadmap(context.Background(), "Go"); err != nil {
		t.Fatalf("CreateRoadmap: %v", err)
	}
	m := NewDeleteModel(e)
	m.SetTarget(nil)

	_, cmd := m.Update(keyRunes("y"))
	msg, ok := cmd().(SwitchToRoadmapMsg)
	if !ok || msg.Message != "Cleared roadmap (2 nodes removed)" {
		t.Errorf("got %#v", msg)
	}
	if n := len(e.Nodes(application.NodeFilter{})); n != 0 {
		t.Errorf("%d nodes left", n)
	}
}

func TestDeleteModel_DeletesTarget(t *testing.T) {
	e := newEngine(t)
	if _, err := e.CreateRoadmap(context.Background(), "Go"); err != nil {
		t.Fatalf("CreateRoadmap: %v", err)
	}
	m := NewDeleteModel(e)
	m.SetTarget(e.Node("n2"))
	if !strings.Contains(m.View(), "Delete noise node:") {
		t.Error("view should name the target type")
	}

	if _, cmd := m.Update(keyRunes("n")); cmd() != (SwitchToRoadmapMsg{}) {
		t.Error("n should return to the roadmap untouched")
	}
	_, cmd := m.Update(keyRunes("y"))
	msg, ok := cmd().(SwitchToRoadmapMsg)
	if !ok || msg.Message != "Deleted Go trivia" {
		t.Errorf("got %#v", msg)
	}
	if e.Node("n2") != nil {
		t.Error("n2 should be gone")
	}
}

func TestSearchModel_JumpsToResult(t *testing.T) {
	e := newEngine(t)
	if _, err := e.CreateRoadmap(context.Background(), "Go"); err != nil {
		t.Fatalf("CreateRoadmap: %v", err)
	}
	m := NewSearchModel(e)
	m.input.SetValue("trivia")
	m.Update(m.search("trivia")())

	if len(m.results) != 1 {
		t.Fatalf("results = %d, want 1", len(m.results))
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := cmd(); got != (SwitchToRoadmapMsg{FocusID: "n2"}) {
		t.Errorf("got %#v", got)
	}
}

func TestSearchModel_DropsStaleResults(t *testing.T) {
	e := newEngine(t)
	if _, err := e.CreateRoadmap(context.Background(), "Go"); err != nil {
		t.Fatalf("CreateRoadmap: %v", err)
	}
	m := NewSearchModel(e)
	m.input.SetValue("basics")
	m.Update(m.search("trivia")())

	if len(m.results) != 0 {
		t.Errorf("results for an old query should be dropped")
	}
}

func TestContentModel_FetchesOnce(t *testing.T) {
	e := newEngine(t)
	if _, err := e.AddNode(context.Background(), "Channels", domain.NodeTypeSignal); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	m := NewContentModel(e)
	m.SetSize(100, 40)
	m.SetNode("n1")

	m.Update(keyRunes("+"))
	if m.complexity != application.DefaultComplexity+complexityStep {
		t.Errorf("complexity = %d", m.complexity)
	}

	m.Update(m.fetch("n1", m.complexity)())
	if m.loading || m.node.DeepContent == nil {
		t.Fatal("content should be attached")
	}
	if !strings.Contains(m.View(), "Channels explained") {
		t.Error("view should render the executive summary")
	}

	m.Update(keyRunes("+"))
	if m.complexity != application.DefaultComplexity+complexityStep {
		t.Error("complexity is fixed once content exists")
	}
}

func TestRenderDeepContent(t *testing.T) {
	out := RenderDeepContent(&domain.DeepContent{
		ExecutiveSummary:   "summary",
		TechnicalMechanics: []string{"first", "second"},
		Playground:         &domain.Playground{Type: domain.PlaygroundCode, Prompt: "try it"},
	}, 60)

	for _, want := range []string{"Executive summary", "1. first", "2. second", "Playground (code)", "try it"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "Common pitfalls") {
		t.Error("empty sections should be skipped")
	}
}
