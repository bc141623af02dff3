package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"focusly/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	width  int
	height int
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, backToRoadmap("", false)
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Focusly Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Learn the signal, skip the noise"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("h / l / ← / →", "Previous/next page"))
	b.WriteString(helpLine("enter", "Read deep content"))
	b.WriteString(helpLine("s", "Show signal only"))
	b.WriteString(helpLine("/", "Search"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Roadmap"))
	b.WriteString("\n")
	b.WriteString(helpLine("c", "New roadmap for a topic"))
	b.WriteString(helpLine("d", "Drill down into sub-concepts"))
	b.WriteString(helpLine("n", "Add a node by hand"))
	b.WriteString(helpLine("m", "Toggle mastered"))
	b.WriteString(helpLine("t", "Toggle signal/noise"))
	b.WriteString(helpLine("x", "Delete node"))
	b.WriteString(helpLine("X", "Clear roadmap"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Study"))
	b.WriteString("\n")
	b.WriteString(helpLine("f", "Focus on node"))
	b.WriteString(helpLine("y", "Copy search queries"))
	b.WriteString(helpLine("g", "Search the web"))
	b.WriteString(helpLine("o", "Open note in editor"))
	b.WriteString(helpLine("S", "Stats"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Node status"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  ○ available   ◐ in progress   ✓ mastered   🔒 locked"))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// SetSize updates the view dimensions
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
