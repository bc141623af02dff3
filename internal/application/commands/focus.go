package commands

import (
	"context"
	"fmt"

	"focusly/internal/application"
	"focusly/internal/domain"
)

// FocusResult contains the timer after a focus command
type FocusResult struct {
	Timer   domain.TimerState
	Node    *domain.LearningNode
	Message string
}

// StartFocusCommand starts a work interval on a node
type StartFocusCommand struct {
	engine *application.Engine
	NodeID string
}

// NewStartFocusCommand creates a new StartFocusCommand
func NewStartFocusCommand(engine *application.Engine, nodeID string) *StartFocusCommand {
	return &StartFocusCommand{
		engine: engine,
		NodeID: nodeID,
	}
}

// Validate checks the node ID is present
func (c *StartFocusCommand) Validate() error {
	return application.ValidateRequired("nodeID", c.NodeID)
}

// Execute runs the start focus command
func (c *StartFocusCommand) Execute(ctx context.Context) (*FocusResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	n := c.engine.Node(c.NodeID)
	if n == nil {
		return nil, fmt.Errorf("%w: %s", application.ErrNodeNotFound, c.NodeID)
	}

	state, err := c.engine.StartFocus(ctx, c.NodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to start focus: %w", err)
	}

	return &FocusResult{
		Timer:   state,
		Node:    c.engine.Node(c.NodeID),
		Message: fmt.Sprintf("Focusing on %s for %s", n.Title, FormatClock(state.TimeLeft)),
	}, nil
}

// ExitFocusCommand abandons the running session without credit
type ExitFocusCommand struct {
	engine *application.Engine
}

// NewExitFocusCommand creates a new ExitFocusCommand
func NewExitFocusCommand(engine *application.Engine) *ExitFocusCommand {
	return &ExitFocusCommand{engine: engine}
}

// Execute runs the exit focus command
func (c *ExitFocusCommand) Execute(ctx context.Context) (*FocusResult, error) {
	before := c.engine.Timer()
	state := c.engine.ExitFocus()

	msg := "No focus session running"
	if before.Status != domain.TimerIdle || before.ActiveNodeID != "" {
		msg = "Focus session ended"
	}
	return &FocusResult{Timer: state, Message: msg}, nil
}

// ToggleTimerCommand pauses a working session or resumes a paused one
type ToggleTimerCommand struct {
	engine *application.Engine
}

// NewToggleTimerCommand creates a new ToggleTimerCommand
func NewToggleTimerCommand(engine *application.Engine) *ToggleTimerCommand {
	return &ToggleTimerCommand{engine: engine}
}

// Execute runs the toggle timer command
func (c *ToggleTimerCommand) Execute(ctx context.Context) (*FocusResult, error) {
	before := c.engine.Timer()
	state := c.engine.ToggleTimer()

	var msg string
	switch {
	case before.Status == domain.TimerWorking:
		msg = fmt.Sprintf("Paused with %s left", FormatClock(state.TimeLeft))
	case before.Paused && state.Status == domain.TimerWorking:
		msg = fmt.Sprintf("Resumed with %s left", FormatClock(state.TimeLeft))
	default:
		msg = "No focus session to pause or resume"
	}
	return &FocusResult{Timer: state, Node: c.engine.Node(state.ActiveNodeID), Message: msg}, nil
}

// StartBreakCommand starts a rest interval after a completed session
type StartBreakCommand struct {
	engine *application.Engine
}

// NewStartBreakCommand creates a new StartBreakCommand
func NewStartBreakCommand(engine *application.Engine) *StartBreakCommand {
	return &StartBreakCommand{engine: engine}
}

// Execute runs the start break command
func (c *StartBreakCommand) Execute(ctx context.Context) (*FocusResult, error) {
	state := c.engine.StartBreak()
	if state.Status != domain.TimerBreak {
		return &FocusResult{Timer: state, Message: "Finish a focus session before taking a break"}, nil
	}
	return &FocusResult{
		Timer:   state,
		Message: fmt.Sprintf("Taking a %s break for %s", state.BreakKind, FormatClock(state.TimeLeft)),
	}, nil
}

// FormatClock renders seconds as MM:SS
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
