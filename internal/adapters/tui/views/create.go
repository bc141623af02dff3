package views

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"focusly/internal/adapters/tui/styles"
	"focusly/internal/application"
	"focusly/internal/application/commands"
)

// CreateKeyMap defines key bindings for the create view
type CreateKeyMap struct {
	Submit     key.Binding
	Cancel     key.Binding
	ToggleType key.Binding
}

var CreateKeys = CreateKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "create"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	ToggleType: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "signal/noise"),
	),
}

// CreateMode indicates what the create view makes
type CreateMode int

const (
	// CreateModeTopic generates a new roadmap, replacing the current one
	CreateModeTopic CreateMode = iota
	// CreateModeNode adds one hand-written node
	CreateModeNode
)

// CreateModel is the model for the create view
type CreateModel struct {
	ViewState
	engine  *application.Engine
	mode    CreateMode
	entry   *NodeEntry
	spinner spinner.Model
	working bool
}

// NewCreateModel creates a new create view model
func NewCreateModel(engine *application.Engine) *CreateModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &CreateModel{
		engine:  engine,
		entry:   NewNodeEntry(CreateModeTopic),
		spinner: s,
	}
}

// SetMode prepares the form for mode
func (m *CreateModel) SetMode(mode CreateMode) {
	m.mode = mode
	m.working = false
	m.ClearMessage()
	m.entry.Prepare(mode)
}

// Init initializes the create view
func (m *CreateModel) Init() tea.Cmd {
	return m.entry.Init()
}

// Update handles messages for the create view
func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.working {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case CreateErrMsg:
		m.working = false
		m.SetError(msg.Err)
		return m, nil

	case tea.KeyMsg:
		if m.working {
			return m, nil
		}
		switch {
		case key.Matches(msg, CreateKeys.Cancel):
			return m, backToRoadmap("", false)

		case m.mode == CreateModeNode && key.Matches(msg, CreateKeys.ToggleType):
			m.entry.FlipType()
			return m, nil

		case key.Matches(msg, CreateKeys.Submit):
			m.ClearMessage()
			if m.mode == CreateModeTopic {
				m.working = true
				return m, tea.Batch(m.spinner.Tick, m.create())
			}
			return m, m.create()
		}
	}

	return m, m.entry.Update(msg)
}

func (m *CreateModel) create() tea.Cmd {
	value := m.entry.Value()
	mode, nodeType := m.mode, m.entry.Type()

	return func() tea.Msg {
		ctx := context.Background()

		if mode == CreateModeTopic {
			result, err := commands.NewCreateRoadmapCommand(m.engine, value).Execute(ctx)
			if err != nil {
				return CreateErrMsg{Err: err}
			}
			return SwitchToRoadmapMsg{Message: result.Message}
		}

		result, err := commands.NewAddNodeCommand(m.engine, value, string(nodeType)).Execute(ctx)
		if err != nil {
			return CreateErrMsg{Err: err}
		}
		return SwitchToRoadmapMsg{Message: result.Message, FocusID: result.Node.ID}
	}
}

// CreateErrMsg indicates an error during creation
type CreateErrMsg struct {
	Err error
}

// View renders the create view
func (m *CreateModel) View() string {
	v := NewViewBuilder()

	if m.mode == CreateModeTopic {
		v.Title("New Roadmap")
		if topic := m.engine.Topic(); topic != "" {
			v.Subtitle("Replaces the roadmap for " + topic + ". Stats are kept.")
		} else {
			v.Subtitle("Generates the core concepts of a topic.")
		}
	} else {
		v.Title("Add Node")
		v.Subtitle("Added at the top of the roadmap, unlocked.")
	}

	v.Line(m.entry.View())
	v.BlankLine()

	if m.working {
		v.Line(m.spinner.View() + " Generating roadmap...")
		v.BlankLine()
	}

	v.Message(m.Message, m.MessageErr)

	if m.mode == CreateModeNode {
		v.Help(CreateKeys.ToggleType, CreateKeys.Submit, CreateKeys.Cancel)
	} else {
		v.Help(CreateKeys.Submit, CreateKeys.Cancel)
	}
	return v.String()
}
