package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"focusly/internal/adapters/tui/styles"
	"focusly/internal/application"
	"focusly/internal/application/commands"
	"focusly/internal/domain"
	"focusly/internal/ports"
)

// RoadmapKeyMap defines key bindings for the roadmap view
type RoadmapKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	Content    key.Binding
	Drill      key.Binding
	Master     key.Binding
	ToggleType key.Binding
	Focus      key.Binding
	Add        key.Binding
	NewTopic   key.Binding
	Delete     key.Binding
	Clear      key.Binding
	SignalOnly key.Binding
	Search     key.Binding
	Copy       key.Binding
	Browse     key.Binding
	Note       key.Binding
	Stats      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var RoadmapKeys = RoadmapKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next page"),
	),
	Content: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "read"),
	),
	Drill: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "drill down"),
	),
	Master: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "master"),
	),
	ToggleType: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "signal/noise"),
	),
	Focus: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "focus"),
	),
	Add: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "add"),
	),
	NewTopic: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "new topic"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete"),
	),
	Clear: key.NewBinding(
		key.WithKeys("X"),
		key.WithHelp("X", "clear"),
	),
	SignalOnly: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "signal only"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy queries"),
	),
	Browse: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "web search"),
	),
	Note: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open note"),
	),
	Stats: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "stats"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// rows taken by the title, detail panel and help line
const roadmapChrome = 12

// RoadmapModel is the model for the roadmap tree view
type RoadmapModel struct {
	ViewState
	engine     *application.Engine
	launcher   ports.QueryLauncher
	entries    []commands.TreeEntry
	pager      *Pager
	signalOnly bool
	spinner    spinner.Model
	working    int
	banner     string
}

// NewRoadmapModel creates a new roadmap model. launcher may be nil.
func NewRoadmapModel(engine *application.Engine, launcher ports.QueryLauncher) *RoadmapModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &RoadmapModel{
		engine:    engine,
		launcher:  launcher,
		pager:     NewPager(20),
		spinner:   s,
	}
}

// Init initializes the roadmap
func (m *RoadmapModel) Init() tea.Cmd {
	return m.Reload("")
}

type roadmapLoadedMsg struct {
	entries []commands.TreeEntry
	focusID string
}

// drillDoneMsg ends one background provider call
type drillDoneMsg struct {
	message string
	err     error
}

// Reload rebuilds the tree from the engine, moving the cursor to focusID when set
func (m *RoadmapModel) Reload(focusID string) tea.Cmd {
	if focusID == "" {
		if n := m.SelectedNode(); n != nil {
			focusID = n.ID
		}
	}
	signalOnly := m.signalOnly
	return func() tea.Msg {
		entries, err := commands.NewListNodesCommand(m.engine, signalOnly).Tree(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return roadmapLoadedMsg{entries: entries, focusID: focusID}
	}
}

// SetBanner shows a celebration line until the next key press
func (m *RoadmapModel) SetBanner(text string) {
	m.banner = text
}

// SetSize updates the view dimensions and the page size
func (m *RoadmapModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.pager.Resize(max(height-roadmapChrome, 5))
}

// Update handles messages for the roadmap
func (m *RoadmapModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case roadmapLoadedMsg:
		m.entries = msg.entries
		m.pager.SetRows(len(m.entries))
		if msg.focusID != "" {
			m.moveTo(msg.focusID)
		}
		return m, nil

	case spinner.TickMsg:
		if m.working > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case drillDoneMsg:
		m.working = max(m.working-1, 0)
		if msg.err != nil {
			m.SetError(msg.err)
			return m, nil
		}
		m.SetMessage(msg.message, false)
		return m, m.Reload("")

	case errMsg:
		m.SetError(msg.err)
		return m, nil

	case successMsg:
		m.SetMessage(msg.message, false)
		return m, m.Reload("")

	case tea.KeyMsg:
		m.ClearMessage()
		m.banner = ""
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *RoadmapModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	node := m.SelectedNode()

	switch {
	case key.Matches(msg, RoadmapKeys.Quit):
		return tea.Quit

	case key.Matches(msg, RoadmapKeys.Up):
		m.pager.Move(-1)
	case key.Matches(msg, RoadmapKeys.Down):
		m.pager.Move(1)
	case key.Matches(msg, RoadmapKeys.PrevPage):
		m.pager.Flip(-1)
	case key.Matches(msg, RoadmapKeys.NextPage):
		m.pager.Flip(1)

	case key.Matches(msg, RoadmapKeys.NewTopic):
		return switchTo(SwitchToCreateMsg{Mode: CreateModeTopic})
	case key.Matches(msg, RoadmapKeys.Add):
		return switchTo(SwitchToCreateMsg{Mode: CreateModeNode})
	case key.Matches(msg, RoadmapKeys.Search):
		return switchTo(SwitchToSearchMsg{})
	case key.Matches(msg, RoadmapKeys.Stats):
		return switchTo(SwitchToStatsMsg{})
	case key.Matches(msg, RoadmapKeys.Help):
		return switchTo(SwitchToHelpMsg{})
	case key.Matches(msg, RoadmapKeys.Clear):
		if len(m.entries) > 0 {
			return switchTo(SwitchToDeleteMsg{})
		}

	case key.Matches(msg, RoadmapKeys.SignalOnly):
		m.signalOnly = !m.signalOnly
		return m.Reload("")
	}

	if node == nil {
		return nil
	}

	switch {
	case key.Matches(msg, RoadmapKeys.Content):
		return switchTo(SwitchToContentMsg{NodeID: node.ID})
	case key.Matches(msg, RoadmapKeys.Focus):
		return switchTo(SwitchToFocusMsg{NodeID: node.ID})
	case key.Matches(msg, RoadmapKeys.Delete):
		return switchTo(SwitchToDeleteMsg{Node: node})
	case key.Matches(msg, RoadmapKeys.Note):
		return switchTo(OpenNoteMsg{NodeID: node.ID})

	case key.Matches(msg, RoadmapKeys.Drill):
		if m.engine.Pending("drill:" + node.ID) {
			m.SetMessage("Already drilling into "+node.Title, false)
			return nil
		}
		m.working++
		return tea.Batch(m.spinner.Tick, m.drill(node.ID))

	case key.Matches(msg, RoadmapKeys.Master):
		return m.run(func(ctx context.Context) (string, error) {
			r, err := commands.NewToggleMasteryCommand(m.engine, node.ID).Execute(ctx)
			if err != nil {
				return "", err
			}
			return r.Message, nil
		})

	case key.Matches(msg, RoadmapKeys.ToggleType):
		return m.run(func(ctx context.Context) (string, error) {
			r, err := commands.NewToggleTypeCommand(m.engine, node.ID).Execute(ctx)
			if err != nil {
				return "", err
			}
			return r.Message, nil
		})

	case key.Matches(msg, RoadmapKeys.Copy):
		if len(node.SearchQueries) == 0 {
			m.SetMessage("No search queries for "+node.Title, true)
			return nil
		}
		if err := clipboard.WriteAll(strings.Join(node.SearchQueries, "\n")); err != nil {
			m.SetMessage(fmt.Sprintf("Failed to copy: %v", err), true)
			return nil
		}
		m.SetMessage(fmt.Sprintf("Copied %d search queries", len(node.SearchQueries)), false)

	case key.Matches(msg, RoadmapKeys.Browse):
		if m.launcher == nil || len(node.SearchQueries) == 0 {
			m.SetMessage("No search queries for "+node.Title, true)
			return nil
		}
		query := node.SearchQueries[0]
		return func() tea.Msg {
			if err := m.launcher.OpenQuery(query); err != nil {
				return errMsg{err}
			}
			return successMsg{"Searching for " + query}
		}
	}

	return nil
}

func switchTo(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m *RoadmapModel) run(fn func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		message, err := fn(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return successMsg{message}
	}
}

func (m *RoadmapModel) drill(id string) tea.Cmd {
	return func() tea.Msg {
		result, err := commands.NewDrillDownCommand(m.engine, id).Execute(context.Background())
		if err != nil {
			return drillDoneMsg{err: err}
		}
		return drillDoneMsg{message: result.Message}
	}
}

// SelectedNode returns the node under the cursor
func (m *RoadmapModel) SelectedNode() *domain.LearningNode {
	cursor := m.pager.Cursor()
	if cursor >= 0 && cursor < len(m.entries) {
		return m.entries[cursor].Node
	}
	return nil
}

func (m *RoadmapModel) moveTo(id string) {
	for i, e := range m.entries {
		if e.Node.ID == id {
			m.pager.Select(i)
			return
		}
	}
}

// View renders the roadmap
func (m *RoadmapModel) View() string {
	v := NewViewBuilder()

	topic := m.engine.Topic()
	if topic == "" {
		topic = "Focusly"
	}
	v.Title(topic)

	if m.engine.Pending("roadmap") {
		v.Line(m.spinner.View() + " Generating roadmap...")
	}

	if len(m.entries) == 0 {
		if m.signalOnly {
			v.Muted("No signal nodes. Press s to show everything.")
		} else {
			v.Muted("No roadmap yet. Press c to generate one for a topic or n to add a node.")
		}
	} else {
		start, end := m.pager.Window()
		for i := start; i < end; i++ {
			v.Line(m.renderEntry(m.entries[i], i == m.pager.Cursor()))
		}
		if m.pager.Pages() > 1 {
			v.Muted(fmt.Sprintf("page %d/%d", m.pager.Page(), m.pager.Pages()))
		}
	}
	v.BlankLine()

	if n := m.SelectedNode(); n != nil {
		v.Line(m.renderDetail(n))
		v.BlankLine()
	}

	if m.banner != "" {
		v.Line(styles.Celebration.Render(m.banner))
		v.BlankLine()
	}
	v.Message(m.Message, m.MessageErr)

	if timer := m.engine.Timer(); timer.Running() || timer.Paused {
		v.Muted(fmt.Sprintf("⏱ %s %s", timer.Status, commands.FormatClock(timer.TimeLeft)))
	}
	v.Help(RoadmapKeys.Content, RoadmapKeys.Drill, RoadmapKeys.Master, RoadmapKeys.Focus,
		RoadmapKeys.NewTopic, RoadmapKeys.Search, RoadmapKeys.Help, RoadmapKeys.Quit)
	return v.String()
}

func (m *RoadmapModel) renderEntry(e commands.TreeEntry, selected bool) string {
	n := e.Node
	indent := strings.Repeat("  ", e.Level)

	prefix := styles.TreeRoot
	if e.Level > 0 {
		prefix = styles.TreeChild
	}

	text := fmt.Sprintf("%s %s", styles.StatusIcon(n.Status), n.Title)
	if selected {
		text = styles.NodeSelected.Render(text)
	} else {
		text = styles.NodeStyle(n).Render(text)
	}

	var tags []string
	if n.Type == domain.NodeTypeNoise {
		tags = append(tags, "noise")
	}
	if n.PomodorosSpent > 0 {
		tags = append(tags, fmt.Sprintf("%d🍅", n.PomodorosSpent))
	}
	suffix := ""
	if len(tags) > 0 {
		suffix = " " + styles.MutedText.Render(strings.Join(tags, " "))
	}
	if m.engine.Pending("drill:"+n.ID) || m.engine.Pending("content:"+n.ID) {
		suffix += " " + m.spinner.View()
	}

	return indent + styles.TreeBranch.Render(prefix) + text + suffix
}

func (m *RoadmapModel) renderDetail(n *domain.LearningNode) string {
	width := max(m.Width-8, 20)

	var b strings.Builder
	b.WriteString(styles.Difficulty.Render(fmt.Sprintf("difficulty %d", n.DifficultyLevel)))
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("  %s  %s", n.Type, n.Status)))
	b.WriteString("\n")
	if n.Description != "" {
		b.WriteString(truncate(n.Description, width))
		b.WriteString("\n")
	}
	if n.LearningOutcome != "" {
		b.WriteString(styles.MutedText.Render(truncate("→ "+n.LearningOutcome, width)))
		b.WriteString("\n")
	}
	if len(n.SearchQueries) > 0 {
		b.WriteString(styles.MutedText.Render(truncate("🔎 "+n.SearchQueries[0], width)))
	}
	return styles.Panel.Render(strings.TrimRight(b.String(), "\n"))
}
