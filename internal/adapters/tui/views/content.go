package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"focusly/internal/adapters/tui/styles"
	"focusly/internal/application"
	"focusly/internal/application/commands"
	"focusly/internal/domain"
)

// ContentKeyMap defines key bindings for the deep content view
type ContentKeyMap struct {
	Fetch  key.Binding
	More   key.Binding
	Less   key.Binding
	Focus  key.Binding
	Note   key.Binding
	Back   key.Binding
	Scroll key.Binding
}

var ContentKeys = ContentKeyMap{
	Fetch: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "generate"),
	),
	More: key.NewBinding(
		key.WithKeys("+", "=", "right", "l"),
		key.WithHelp("+", "deeper"),
	),
	Less: key.NewBinding(
		key.WithKeys("-", "left", "h"),
		key.WithHelp("-", "simpler"),
	),
	Focus: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "focus"),
	),
	Note: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open note"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "back"),
	),
	Scroll: key.NewBinding(
		key.WithKeys("j", "k"),
		key.WithHelp("j/k", "scroll"),
	),
}

// complexityStep is how far +/- moves the complexity
const complexityStep = 10

// ContentModel shows a node's deep content, generating it on request
type ContentModel struct {
	ViewState
	engine     *application.Engine
	node       *domain.LearningNode
	complexity int
	spinner    spinner.Model
	viewport   viewport.Model
	loading    bool
}

// NewContentModel creates a new deep content view model
func NewContentModel(engine *application.Engine) *ContentModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &ContentModel{
		engine:     engine,
		complexity: application.DefaultComplexity,
		spinner:    s,
		viewport:   viewport.New(80, 20),
	}
}

// SetNode loads the node to show. Content already fetched is shown directly.
func (m *ContentModel) SetNode(id string) {
	m.node = m.engine.Node(id)
	m.loading = m.engine.Pending("content:" + id)
	m.ClearMessage()
	m.refresh()
	m.viewport.GotoTop()
}

// Init starts the spinner when a fetch is already pending
func (m *ContentModel) Init() tea.Cmd {
	if m.loading {
		return m.spinner.Tick
	}
	return nil
}

// SetSize updates the view dimensions and the viewport
func (m *ContentModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.viewport.Width = max(width-4, 20)
	m.viewport.Height = max(height-8, 5)
	m.refresh()
}

type contentLoadedMsg struct {
	node *domain.LearningNode
}

type contentErrMsg struct {
	nodeID string
	err    error
}

// Update handles messages for the content view
func (m *ContentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case contentLoadedMsg:
		if m.node != nil && msg.node.ID == m.node.ID {
			m.loading = false
			m.node = msg.node
			m.refresh()
		}
		return m, nil

	case contentErrMsg:
		if m.node != nil && msg.nodeID == m.node.ID {
			m.loading = false
			m.SetError(msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if m.node == nil {
			return m, backToRoadmap("", false)
		}
		switch {
		case key.Matches(msg, ContentKeys.Back):
			id := m.node.ID
			return m, func() tea.Msg { return SwitchToRoadmapMsg{FocusID: id} }

		case key.Matches(msg, ContentKeys.Focus):
			return m, switchTo(SwitchToFocusMsg{NodeID: m.node.ID})

		case key.Matches(msg, ContentKeys.Note):
			return m, switchTo(OpenNoteMsg{NodeID: m.node.ID})
		}

		if m.node.DeepContent == nil && !m.loading {
			switch {
			case key.Matches(msg, ContentKeys.More):
				m.complexity = min(m.complexity+complexityStep, 100)
				return m, nil
			case key.Matches(msg, ContentKeys.Less):
				m.complexity = max(m.complexity-complexityStep, 0)
				return m, nil
			case key.Matches(msg, ContentKeys.Fetch):
				m.loading = true
				m.ClearMessage()
				return m, tea.Batch(m.spinner.Tick, m.fetch(m.node.ID, m.complexity))
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *ContentModel) fetch(id string, complexity int) tea.Cmd {
	return func() tea.Msg {
		result, err := commands.NewFetchContentCommand(m.engine, id, complexity).Execute(context.Background())
		if err != nil {
			return contentErrMsg{nodeID: id, err: err}
		}
		return contentLoadedMsg{node: result.Node}
	}
}

func (m *ContentModel) refresh() {
	if m.node == nil || m.node.DeepContent == nil {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(RenderDeepContent(m.node.DeepContent, m.viewport.Width))
}

// View renders the content view
func (m *ContentModel) View() string {
	v := NewViewBuilder()
	if m.node == nil {
		v.Title("Deep Content")
		v.Muted("Node not found.")
		v.Help(ContentKeys.Back)
		return v.String()
	}

	v.Title(m.node.Title)

	switch {
	case m.loading:
		v.Line(m.spinner.View() + " Generating deep content...")
		v.BlankLine()

	case m.node.DeepContent == nil:
		v.Line(labelValue("Complexity", fmt.Sprintf("%d", m.complexity)))
		v.Line(renderBar(m.complexity, 100, 40))
		v.Muted(complexityHint(m.complexity))
		v.BlankLine()
		v.Message(m.Message, m.MessageErr)
		v.Help(ContentKeys.Less, ContentKeys.More, ContentKeys.Fetch, ContentKeys.Focus, ContentKeys.Back)
		return v.String()

	default:
		v.Line(m.viewport.View())
		v.Muted(fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100))
	}

	v.Message(m.Message, m.MessageErr)
	v.Help(ContentKeys.Scroll, ContentKeys.Focus, ContentKeys.Note, ContentKeys.Back)
	return v.String()
}

func complexityHint(c int) string {
	switch {
	case c < 30:
		return "Plain language, everyday analogies"
	case c < 70:
		return "Practitioner depth"
	default:
		return "Expert depth, full jargon"
	}
}

// RenderDeepContent lays out deep content as styled sections wrapped at width
func RenderDeepContent(c *domain.DeepContent, width int) string {
	wrap := lipgloss.NewStyle().Width(max(width, 20))
	var b strings.Builder

	section := func(heading, body string) {
		if strings.TrimSpace(body) == "" {
			return
		}
		b.WriteString(styles.Section.Render(heading))
		b.WriteString("\n")
		b.WriteString(wrap.Render(body))
		b.WriteString("\n")
	}
	list := func(items []string, numbered bool) string {
		var lb strings.Builder
		for i, item := range items {
			if numbered {
				fmt.Fprintf(&lb, "%d. %s\n", i+1, item)
			} else {
				fmt.Fprintf(&lb, "• %s\n", item)
			}
		}
		return strings.TrimRight(lb.String(), "\n")
	}

	section("Executive summary", c.ExecutiveSummary)
	section("Technical mechanics", list(c.TechnicalMechanics, true))
	section("Minute details", list(c.MinuteDetails, false))
	section("Expert mental model", c.ExpertMentalModel)
	section("Common pitfalls", list(c.CommonPitfalls, false))
	section("Explain like I'm 7", c.ELI7)

	if p := c.Playground; p != nil {
		body := p.Prompt
		if p.InitialData != "" {
			body += "\n\n" + styles.Panel.Render(p.InitialData)
		}
		section(fmt.Sprintf("Playground (%s)", p.Type), body)
	}
	return strings.TrimRight(b.String(), "\n")
}
