package styles

import (
	"github.com/charmbracelet/lipgloss"

	"focusly/internal/domain"
)

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	Info      = lipgloss.Color("#60A5FA") // Blue
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Progress bar gradient ends
	ProgressStart = "#7C3AED"
	ProgressEnd   = "#10B981"

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Node styles
	NodeSignal = lipgloss.NewStyle()

	NodeNoise = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	NodeMastered = lipgloss.NewStyle().
			Foreground(Secondary).
			Strikethrough(true)

	NodeInProgress = lipgloss.NewStyle().
			Foreground(Warning)

	NodeLocked = lipgloss.NewStyle().
			Foreground(Muted).
			Faint(true)

	NodeSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	Difficulty = lipgloss.NewStyle().
			Foreground(Info)

	// Tree indicators
	TreeBranch = lipgloss.NewStyle().Foreground(Muted)
	TreeChild  = "└ "
	TreeRoot   = "• "

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	StatusKey = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Padding(0, 1).
			MarginRight(1)

	StatusText = lipgloss.NewStyle().
			Foreground(Muted)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Celebration = lipgloss.NewStyle().
			Foreground(Black).
			Background(Warning).
			Bold(true).
			Padding(0, 1)

	Spinner = lipgloss.NewStyle().
		Foreground(Primary)

	// Focus timer
	Clock = lipgloss.NewStyle().
		Bold(true).
		Foreground(White).
		Background(Primary).
		Padding(1, 4)

	ClockBreak = Clock.
			Background(Secondary)

	// Content sections
	Section = lipgloss.NewStyle().
		Bold(true).
		Foreground(Info).
		MarginTop(1)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	// Stats
	Bar = lipgloss.NewStyle().
		Foreground(Secondary)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// NodeStyle returns the style for a node's status and type
func NodeStyle(n *domain.LearningNode) lipgloss.Style {
	switch n.Status {
	case domain.StatusMastered:
		return NodeMastered
	case domain.StatusInProgress:
		return NodeInProgress
	case domain.StatusLocked:
		return NodeLocked
	}
	if n.Type == domain.NodeTypeNoise {
		return NodeNoise
	}
	return NodeSignal
}

// StatusIcon returns the glyph shown before a node title
func StatusIcon(s domain.NodeStatus) string {
	switch s {
	case domain.StatusMastered:
		return "✓"
	case domain.StatusInProgress:
		return "◐"
	case domain.StatusLocked:
		return "🔒"
	default:
		return "○"
	}
}
