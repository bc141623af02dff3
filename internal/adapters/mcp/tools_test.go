package mcp

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"focusly/internal/application"
	"focusly/internal/domain"
)

type stubProvider struct {
	err error
}

func (p *stubProvider) GenerateRoadmap(ctx context.Context, topic string, depth int) ([]domain.NodeDescriptor, error) {
	if p.err != nil {
		return nil, p.err
	}
	return []domain.NodeDescriptor{
		{Title: topic + " basics", Type: domain.NodeTypeSignal, DifficultyLevel: 10},
		{Title: topic + " internals", Type: domain.NodeTypeSignal, DifficultyLevel: 60},
	}, nil
}

func (p *stubProvider) GenerateNodeContent(ctx context.Context, title, contextTopic string, complexity int) (*domain.DeepContent, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &domain.DeepContent{ExecutiveSummary: fmt.Sprintf("%s at %d", title, complexity)}, nil
}

func (p *stubProvider) Available() bool { return true }

func newEngine(p *stubProvider) *application.Engine {
	n := 0
	return application.NewEngine(p, nil,
		application.WithClock(func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }),
		application.WithIDGenerator(func() string { n++; return fmt.Sprintf("n%d", n) }),
	)
}

func call(t *testing.T, handler server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned transport error: %v", err)
	}
	var sb strings.Builder
	for _, c := range res.Content {
		switch tc := c.(type) {
		case mcp.TextContent:
			sb.WriteString(tc.Text)
		case *mcp.TextContent:
			sb.WriteString(tc.Text)
		}
	}
	return sb.String(), res.IsError
}

func TestTools_RoadmapFlow(t *testing.T) {
	engine := newEngine(&stubProvider{})

	out, isErr := call(t, createRoadmapHandler(engine), map[string]any{"topic": "Raft"})
	if isErr {
		t.Fatalf("create_roadmap failed: %s", out)
	}
	if !strings.Contains(out, "n1  [ ] Raft basics") || !strings.Contains(out, "n2  [#] Raft internals") {
		t.Errorf("unexpected create output:\n%s", out)
	}

	out, isErr = call(t, drillDownHandler(engine), map[string]any{"id": "n1"})
	if isErr {
		t.Fatalf("drill_down failed: %s", out)
	}

	out, _ = call(t, listNodesHandler(engine), nil)
	if !strings.Contains(out, "Topic: Raft") || !strings.Contains(out, "\n  n3  [ ] Raft basics basics") {
		t.Errorf("children should be indented under their parent:\n%s", out)
	}

	out, _ = call(t, toggleMasteryHandler(engine), map[string]any{"id": "n1"})
	if out != "Mastered: Raft basics" {
		t.Errorf("unexpected mastery output: %q", out)
	}

	out, _ = call(t, statsHandler(engine), nil)
	if !strings.Contains(out, "Nodes mastered: 1") || !strings.Contains(out, "2026-03-14  1") {
		t.Errorf("unexpected stats output:\n%s", out)
	}
}

func TestTools_FetchContent(t *testing.T) {
	engine := newEngine(&stubProvider{})
	call(t, addNodeHandler(engine), map[string]any{"title": "Ownership"})

	out, isErr := call(t, fetchContentHandler(engine), map[string]any{"id": "n1", "complexity": 80})
	if isErr {
		t.Fatalf("fetch_content failed: %s", out)
	}
	if !strings.Contains(out, "Ownership at 80") {
		t.Errorf("expected generated content, got:\n%s", out)
	}

	out, isErr = call(t, fetchContentHandler(engine), map[string]any{"id": "n1", "complexity": 150})
	if !isErr || !strings.Contains(out, "complexity") {
		t.Errorf("expected complexity validation error, got %q", out)
	}
}

func TestTools_Errors(t *testing.T) {
	engine := newEngine(&stubProvider{err: application.ErrRateLimited})

	out, isErr := call(t, createRoadmapHandler(engine), map[string]any{"topic": "Go"})
	if !isErr || !strings.HasSuffix(out, "(try again shortly)") {
		t.Errorf("expected retryable tool error, got %q", out)
	}

	out, isErr = call(t, showNodeHandler(engine), map[string]any{"id": "nope"})
	if !isErr || !strings.Contains(out, "node not found") {
		t.Errorf("expected not found error, got %q", out)
	}

	out, isErr = call(t, addNodeHandler(engine), map[string]any{"title": "x", "type": "static"})
	if !isErr {
		t.Errorf("expected type validation error, got %q", out)
	}
}

func TestTools_Focus(t *testing.T) {
	engine := newEngine(&stubProvider{})
	call(t, addNodeHandler(engine), map[string]any{"title": "Deep work", "type": "signal"})

	out, _ := call(t, timerHandler(engine), nil)
	if out != "Idle. 0 sessions completed." {
		t.Errorf("unexpected idle timer: %q", out)
	}

	out, isErr := call(t, startFocusHandler(engine), map[string]any{"id": "n1"})
	if isErr || out != "Focusing on Deep work for 25:00" {
		t.Errorf("unexpected start_focus output: %q", out)
	}

	out, _ = call(t, timerHandler(engine), nil)
	if out != "working on Deep work: 25:00 left (0 sessions completed)" {
		t.Errorf("unexpected timer output: %q", out)
	}

	out, _ = call(t, exitFocusHandler(engine), nil)
	if out != "Focus session ended" {
		t.Errorf("unexpected exit output: %q", out)
	}
}

func TestTools_PauseAndBreak(t *testing.T) {
	ctx := context.Background()
	engine := application.NewEngine(&stubProvider{}, nil, application.WithWorkSeconds(2))
	node, err := engine.AddNode(ctx, "Deep work", domain.NodeTypeSignal)
	if err != nil {
		t.Fatalf("add node failed: %v", err)
	}

	out, isErr := call(t, startBreakHandler(engine), nil)
	if !isErr {
		t.Errorf("expected start_break to fail before a completed session, got %q", out)
	}

	call(t, startFocusHandler(engine), map[string]any{"id": node.ID})
	out, _ = call(t, toggleTimerHandler(engine), nil)
	if out != "Paused with 00:02 left" {
		t.Errorf("unexpected pause output: %q", out)
	}
	if _, err := engine.Tick(ctx); err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	if left := engine.Timer().TimeLeft; left != 2 {
		t.Errorf("paused timer ticked down to %d", left)
	}

	out, _ = call(t, toggleTimerHandler(engine), nil)
	if out != "Resumed with 00:02 left" {
		t.Errorf("unexpected resume output: %q", out)
	}
	for i := 0; i < 2; i++ {
		if _, err := engine.Tick(ctx); err != nil {
			t.Fatalf("tick failed: %v", err)
		}
	}

	out, isErr = call(t, startBreakHandler(engine), nil)
	if isErr || out != "Taking a short break for 05:00" {
		t.Errorf("unexpected start_break output: %q", out)
	}
}

func TestTools_Search(t *testing.T) {
	engine := newEngine(&stubProvider{})
	call(t, createRoadmapHandler(engine), map[string]any{"topic": "Paxos"})

	out, _ := call(t, searchHandler(engine), map[string]any{"query": "internals"})
	if !strings.Contains(out, "Paxos internals") || strings.Contains(out, "Paxos basics") {
		t.Errorf("unexpected search output:\n%s", out)
	}

	out, _ = call(t, searchHandler(engine), map[string]any{"query": "zzz"})
	if out != "No results found." {
		t.Errorf("unexpected empty search output: %q", out)
	}
}
