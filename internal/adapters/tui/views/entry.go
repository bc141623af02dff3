package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"focusly/internal/adapters/tui/styles"
	"focusly/internal/domain"
)

const entryCharLimit = 200

// NodeEntry is the one-line input of the create view. When adding a node it
// also carries the signal/noise choice.
type NodeEntry struct {
	label    string
	input    textinput.Model
	withType bool
	nodeType domain.NodeType
}

// NewNodeEntry creates an entry prepared for mode
func NewNodeEntry(mode CreateMode) *NodeEntry {
	input := textinput.New()
	input.CharLimit = entryCharLimit
	e := &NodeEntry{input: input}
	e.Prepare(mode)
	return e
}

// Prepare clears the entry and relabels it for mode. New nodes default to signal.
func (e *NodeEntry) Prepare(mode CreateMode) {
	e.withType = mode == CreateModeNode
	e.nodeType = domain.NodeTypeSignal
	if e.withType {
		e.label, e.input.Placeholder = "Title:", "e.g. Vector clocks"
	} else {
		e.label, e.input.Placeholder = "Topic:", "e.g. Distributed systems"
	}
	e.input.SetValue("")
	e.input.Focus()
}

// Init starts the cursor blinking
func (e *NodeEntry) Init() tea.Cmd {
	return textinput.Blink
}

// Update feeds msg to the text input
func (e *NodeEntry) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return cmd
}

// FlipType switches between signal and noise. No-op for topics.
func (e *NodeEntry) FlipType() {
	if e.withType {
		e.nodeType = e.nodeType.Flip()
	}
}

// Type returns the chosen node type
func (e *NodeEntry) Type() domain.NodeType {
	return e.nodeType
}

// Value returns the trimmed text
func (e *NodeEntry) Value() string {
	return strings.TrimSpace(e.input.Value())
}

// View renders the label, the focused input and, for nodes, the type choice
func (e *NodeEntry) View() string {
	var b strings.Builder
	b.WriteString(styles.InputLabel.Render(e.label))
	b.WriteString("\n")
	b.WriteString(styles.InputFocused.Render(e.input.View()))
	if e.withType {
		b.WriteString("\n\n")
		b.WriteString(labelValue("Type", renderNodeType(e.nodeType)))
	}
	return b.String()
}

func renderNodeType(t domain.NodeType) string {
	if t == domain.NodeTypeNoise {
		return styles.NodeNoise.Render(string(t))
	}
	return styles.NodeSignal.Render(string(t))
}
