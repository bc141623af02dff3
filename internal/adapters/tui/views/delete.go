package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"focusly/internal/adapters/tui/styles"
	"focusly/internal/application"
	"focusly/internal/application/commands"
	"focusly/internal/domain"
)

// DeleteKeyMap defines key bindings for the delete view
type DeleteKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DeleteKeys are the delete view bindings
var DeleteKeys = DeleteKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// DeleteModel confirms deleting one node, or clearing the roadmap when no
// target is set
type DeleteModel struct {
	ViewState
	engine *application.Engine
	target *domain.LearningNode
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(engine *application.Engine) *DeleteModel {
	return &DeleteModel{engine: engine}
}

// SetTarget selects the node to delete. nil means clear the whole roadmap.
func (m *DeleteModel) SetTarget(node *domain.LearningNode) {
	m.target = node
	m.ClearMessage()
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case DeleteErrMsg:
		m.SetMessage(msg.Err.Error(), true)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DeleteKeys.Cancel):
			return m, backToRoadmap("", false)
		case key.Matches(msg, DeleteKeys.Confirm):
			return m, m.doDelete
		}
	}
	return m, nil
}

func (m *DeleteModel) doDelete() tea.Msg {
	ctx := context.Background()

	if m.target == nil {
		result, err := commands.NewClearRoadmapCommand(m.engine).Execute(ctx)
		if err != nil {
			return DeleteErrMsg{Err: err}
		}
		return SwitchToRoadmapMsg{Message: result.Message}
	}

	result, err := commands.NewDeleteNodeCommand(m.engine, m.target.ID).Execute(ctx)
	if err != nil {
		return DeleteErrMsg{Err: err}
	}
	return SwitchToRoadmapMsg{Message: result.Message}
}

// DeleteErrMsg indicates an error during deletion
type DeleteErrMsg struct {
	Err error
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	v := NewViewBuilder()

	if m.target == nil {
		v.Title("Clear Roadmap")
		v.Line(styles.ErrorMsg.Render("This action cannot be undone!"))
		v.BlankLine()
		v.Muted(fmt.Sprintf("  Every node of %q will be removed.", m.engine.Topic()))
		v.Muted("  Streak, mastery history and focus hours are kept.")
		v.BlankLine()
	} else {
		n := m.target
		v.Title("Delete Confirmation")
		v.Line(styles.ErrorMsg.Render("This action cannot be undone!"))
		v.BlankLine()
		v.Line(styles.InputLabel.Render(fmt.Sprintf("Delete %s node:", n.Type)))
		v.Line("  " + styles.StatusIcon(n.Status) + " " + styles.NodeStyle(n).Render(n.Title))
		v.BlankLine()
		if len(n.ChildrenIDs) > 0 {
			v.Muted(fmt.Sprintf("  Its %d children stay on the roadmap.", len(n.ChildrenIDs)))
			v.BlankLine()
		}
	}

	v.Message(m.Message, m.MessageErr)
	v.Line("Are you sure? " + renderHelpLine(DeleteKeys.Confirm, DeleteKeys.Cancel))
	return v.String()
}
