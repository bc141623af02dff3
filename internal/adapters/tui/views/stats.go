package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"focusly/internal/application"
	"focusly/internal/application/commands"
)

var StatsKeys = struct {
	Back key.Binding
}{
	Back: key.NewBinding(
		key.WithKeys("esc", "q", "S"),
		key.WithHelp("esc", "back"),
	),
}

// historyDays is how many mastery history samples the chart shows
const historyDays = 14

// StatsModel shows progress counters and the mastery history chart
type StatsModel struct {
	ViewState
	engine *application.Engine
	result *commands.StatsResult
}

// NewStatsModel creates a new stats view model
func NewStatsModel(engine *application.Engine) *StatsModel {
	return &StatsModel{engine: engine}
}

// Init loads the stats
func (m *StatsModel) Init() tea.Cmd {
	return func() tea.Msg {
		result, err := commands.NewStatsCommand(m.engine).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return statsLoadedMsg{result}
	}
}

type statsLoadedMsg struct {
	result *commands.StatsResult
}

// Update handles messages for the stats view
func (m *StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case statsLoadedMsg:
		m.result = msg.result
	case errMsg:
		m.SetError(msg.err)
	case tea.KeyMsg:
		if key.Matches(msg, StatsKeys.Back) {
			return m, backToRoadmap("", false)
		}
	}
	return m, nil
}

// View renders the stats view
func (m *StatsModel) View() string {
	v := NewViewBuilder()
	v.Title("Stats")
	if m.result == nil {
		v.Message(m.Message, m.MessageErr)
		v.Muted("Loading...")
		return v.String()
	}

	s, sum := m.result.Stats, m.result.Summary
	if m.result.Topic != "" {
		v.Subtitle(m.result.Topic)
	}

	v.Line(labelValue("Daily streak", fmt.Sprintf("%d days", s.DailyStreak)))
	v.Line(labelValue("Nodes mastered", fmt.Sprintf("%d", s.TotalNodesMastered)))
	v.Line(labelValue("Focus hours", fmt.Sprintf("%.1f", s.TotalFocusHours)))
	v.Line(labelValue("Sessions this run", fmt.Sprintf("%d", m.result.Timer.TotalSessions)))

	v.Section("Roadmap")
	v.Line(fmt.Sprintf("  %d nodes: %d signal, %d noise", sum.Total, sum.Signal, sum.Noise))
	v.Line(fmt.Sprintf("  %d mastered, %d in progress, %d locked", sum.Mastered, sum.InProgress, sum.Locked))
	v.Line(fmt.Sprintf("  %d pomodoros spent", sum.PomodorosSpent))
	if sum.Total > 0 {
		v.Line("  " + renderBar(sum.Mastered, sum.Total, 30) + muted(fmt.Sprintf(" %d%%", sum.Mastered*100/sum.Total)))
	}

	v.Section("Mastery history")
	history := s.MasteryHistory
	if len(history) > historyDays {
		history = history[len(history)-historyDays:]
	}
	if len(history) == 0 {
		v.Muted("  Nothing mastered yet")
	}
	peak := 0
	for _, h := range history {
		peak = max(peak, h.Count)
	}
	for _, h := range history {
		v.Line(fmt.Sprintf("  %s %s %d", muted(h.Date), renderBar(h.Count, peak, 30), h.Count))
	}
	v.BlankLine()

	v.Message(m.Message, m.MessageErr)
	v.Help(StatsKeys.Back)
	return v.String()
}
