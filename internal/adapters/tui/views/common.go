package views

import (
	tea "github.com/charmbracelet/bubbletea"

	"focusly/internal/application"
	"focusly/internal/domain"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// SetError shows err the way the presentation layer words provider failures
func (s *ViewState) SetError(err error) {
	s.SetMessage(application.UserMessage(err), true)
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages for view switching
type SwitchToRoadmapMsg struct {
	// Message is shown on the roadmap once it is visible again
	Message string
	IsErr   bool
	// FocusID moves the roadmap cursor to this node when set
	FocusID string
}

type SwitchToCreateMsg struct {
	Mode CreateMode
}

type SwitchToContentMsg struct {
	NodeID string
}

type SwitchToFocusMsg struct {
	NodeID string
}

type SwitchToDeleteMsg struct {
	// Node is nil when the whole roadmap is cleared
	Node *domain.LearningNode
}

type SwitchToSearchMsg struct{}

type SwitchToStatsMsg struct{}

type SwitchToHelpMsg struct{}

// OpenNoteMsg asks the app to export the roadmap and open a node's note
type OpenNoteMsg struct {
	NodeID string
}

// OpenEditorMsg requests opening a file in editor
type OpenEditorMsg struct {
	Path    string
	Message string
}

type errMsg struct {
	err error
}

type successMsg struct {
	message string
}

func backToRoadmap(message string, isErr bool) func() tea.Msg {
	return func() tea.Msg {
		return SwitchToRoadmapMsg{Message: message, IsErr: isErr}
	}
}
