package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"focusly/internal/adapters/tui/styles"
)

// renderHelpLine joins key bindings into one bullet separated help line
func renderHelpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

func renderMessage(message string, isError bool) string {
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

func muted(text string) string {
	return styles.MutedText.Render(text)
}

// renderBar draws value as a bar of up to width cells, scaled against maxValue.
// Any positive value gets at least one cell.
func renderBar(value, maxValue, width int) string {
	if maxValue <= 0 || value <= 0 || width <= 0 {
		return ""
	}
	return styles.Bar.Render(strings.Repeat("█", max(1, value*width/maxValue)))
}

// truncate shortens s to width runes, marking the cut with an ellipsis
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

func labelValue(label, value string) string {
	return styles.InputLabel.Render(label+":") + " " + value
}

// ViewBuilder assembles a view line by line
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates an empty builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds the view heading
func (v *ViewBuilder) Title(title string) {
	v.b.WriteString(styles.Title.Render(title) + "\n\n")
}

// Subtitle adds a line of context under the title
func (v *ViewBuilder) Subtitle(subtitle string) {
	v.b.WriteString(styles.Subtitle.Render(subtitle) + "\n\n")
}

func (v *ViewBuilder) Line(text string) {
	v.b.WriteString(text + "\n")
}

func (v *ViewBuilder) BlankLine() {
	v.b.WriteString("\n")
}

func (v *ViewBuilder) Section(heading string) {
	v.b.WriteString(styles.Section.Render(heading) + "\n")
}

func (v *ViewBuilder) Muted(text string) {
	v.Line(muted(text))
}

// Message adds the status message, if any
func (v *ViewBuilder) Message(message string, isError bool) {
	if message != "" {
		v.b.WriteString(renderMessage(message, isError) + "\n\n")
	}
}

// Help ends the view with its key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) {
	v.b.WriteString(renderHelpLine(bindings...))
}

// String returns the view inside the app frame
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}

// Plain returns the view without the app frame, for callers that place it
// themselves
func (v *ViewBuilder) Plain() string {
	return v.b.String()
}
