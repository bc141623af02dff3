package views

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"focusly/internal/adapters/tui/styles"
	"focusly/internal/application"
	"focusly/internal/application/commands"
	"focusly/internal/domain"
)

// FocusKeyMap defines key bindings for the focus timer view
type FocusKeyMap struct {
	Toggle  key.Binding
	Break   key.Binding
	Restart key.Binding
	Exit    key.Binding
	Back    key.Binding
}

var FocusKeys = FocusKeyMap{
	Toggle: key.NewBinding(
		key.WithKeys(" ", "p"),
		key.WithHelp("space", "pause/resume"),
	),
	Break: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "take a break"),
	),
	Restart: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "another session"),
	),
	Exit: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "end session"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "back"),
	),
}

// TimerTickMsg drives Engine.Tick once per second
type TimerTickMsg time.Time

// TimerChangedMsg is sent after a focus action so the host keeps ticks scheduled
type TimerChangedMsg struct {
	State domain.TimerState
}

// ScheduleTick returns the command delivering the next TimerTickMsg
func ScheduleTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TimerTickMsg(t)
	})
}

// FocusModel shows the Pomodoro timer for one node
type FocusModel struct {
	ViewState
	engine   *application.Engine
	node     *domain.LearningNode
	progress progress.Model
	banner   string
}

// NewFocusModel creates a new focus view model
func NewFocusModel(engine *application.Engine) *FocusModel {
	return &FocusModel{
		engine:   engine,
		progress: progress.New(progress.WithGradient(styles.ProgressStart, styles.ProgressEnd)),
	}
}

// Start begins a work interval on id, abandoning any running session
func (m *FocusModel) Start(id string) tea.Cmd {
	m.ClearMessage()
	m.banner = ""
	return func() tea.Msg {
		result, err := commands.NewStartFocusCommand(m.engine, id).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return focusStartedMsg{node: result.Node, state: result.Timer, message: result.Message}
	}
}

type focusStartedMsg struct {
	node    *domain.LearningNode
	state   domain.TimerState
	message string
}

// SetBanner shows a celebration line
func (m *FocusModel) SetBanner(text string) {
	m.banner = text
}

// Init initializes the focus view
func (m *FocusModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the view dimensions and the progress bar width
func (m *FocusModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.progress.Width = min(max(width-8, 20), 60)
}

// Update handles messages for the focus view
func (m *FocusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case focusStartedMsg:
		m.node = msg.node
		m.SetMessage(msg.message, false)
		return m, changed(msg.state)

	case errMsg:
		m.SetError(msg.err)
		return m, nil

	case tea.KeyMsg:
		timer := m.engine.Timer()
		switch {
		case key.Matches(msg, FocusKeys.Back):
			id := ""
			if m.node != nil {
				id = m.node.ID
			}
			return m, func() tea.Msg { return SwitchToRoadmapMsg{FocusID: id} }

		case key.Matches(msg, FocusKeys.Toggle):
			if !timer.Running() && !timer.Paused {
				return m, nil
			}
			result, _ := commands.NewToggleTimerCommand(m.engine).Execute(context.Background())
			m.banner = ""
			m.SetMessage(result.Message, false)
			return m, changed(result.Timer)

		case key.Matches(msg, FocusKeys.Break):
			if timer.Status != domain.TimerCompleted {
				return m, nil
			}
			result, _ := commands.NewStartBreakCommand(m.engine).Execute(context.Background())
			m.banner = ""
			m.SetMessage(result.Message, false)
			return m, changed(result.Timer)

		case key.Matches(msg, FocusKeys.Restart):
			if m.node == nil || timer.Running() {
				return m, nil
			}
			return m, m.Start(m.node.ID)

		case key.Matches(msg, FocusKeys.Exit):
			result, err := commands.NewExitFocusCommand(m.engine).Execute(context.Background())
			if err != nil {
				m.SetError(err)
				return m, nil
			}
			m.banner = ""
			m.SetMessage(result.Message, false)
			return m, changed(result.Timer)
		}
	}

	return m, nil
}

func changed(state domain.TimerState) tea.Cmd {
	return func() tea.Msg { return TimerChangedMsg{State: state} }
}

// View renders the focus view
func (m *FocusModel) View() string {
	timer := m.engine.Timer()
	v := NewViewBuilder()

	title := "Focus"
	if m.node != nil {
		title = m.node.Title
	}
	v.Title(title)

	clock := styles.Clock
	if timer.Status == domain.TimerBreak {
		clock = styles.ClockBreak
	}
	v.Line(clock.Render(commands.FormatClock(timer.TimeLeft)))
	v.BlankLine()
	v.Line(m.progress.ViewAs(timer.Progress()))
	v.BlankLine()
	v.Line(styles.Subtitle.Render(timerCaption(timer)))
	v.Muted(fmt.Sprintf("%d sessions completed", timer.TotalSessions))
	if m.node != nil {
		if n := m.engine.Node(m.node.ID); n != nil && n.PomodorosSpent > 0 {
			v.Muted(fmt.Sprintf("%d pomodoros on this node", n.PomodorosSpent))
		}
	}
	v.BlankLine()

	if m.banner != "" {
		v.Line(styles.Celebration.Render(m.banner))
		v.BlankLine()
	}
	v.Message(m.Message, m.MessageErr)

	switch timer.Status {
	case domain.TimerCompleted:
		v.Help(FocusKeys.Break, FocusKeys.Restart, FocusKeys.Exit, FocusKeys.Back)
	case domain.TimerBreak:
		v.Help(FocusKeys.Exit, FocusKeys.Back)
	default:
		v.Help(FocusKeys.Toggle, FocusKeys.Exit, FocusKeys.Back)
	}

	if m.Width > 0 {
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, v.Plain())
	}
	return v.String()
}

func timerCaption(s domain.TimerState) string {
	switch {
	case s.Status == domain.TimerWorking:
		return "Working"
	case s.Status == domain.TimerBreak && s.BreakKind == domain.BreakLong:
		return "Long break"
	case s.Status == domain.TimerBreak:
		return "Short break"
	case s.Status == domain.TimerCompleted:
		return "Session complete"
	case s.Paused:
		return "Paused"
	default:
		return "Idle"
	}
}
