package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"focusly/internal/adapters/tui/styles"
	"focusly/internal/application"
	"focusly/internal/application/commands"
)

// SearchKeyMap defines key bindings for the search view
type SearchKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Copy   key.Binding
	Cancel key.Binding
}

var SearchKeys = SearchKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "jump"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy title"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

const maxSearchResults = 10

// SearchModel is the model for the search view
type SearchModel struct {
	ViewState
	engine  *application.Engine
	input   textinput.Model
	results []commands.SearchResult
	cursor  int
}

// NewSearchModel creates a new search view model
func NewSearchModel(engine *application.Engine) *SearchModel {
	input := textinput.New()
	input.Placeholder = "Search titles, descriptions and queries..."
	input.Focus()

	return &SearchModel{
		engine: engine,
		input:  input,
	}
}

// Init initializes the search view
func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Reset resets the search view
func (m *SearchModel) Reset() {
	m.input.SetValue("")
	m.results = nil
	m.cursor = 0
	m.ClearMessage()
	m.input.Focus()
}

// Update handles messages for the search view
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case searchResultsMsg:
		// Drop results for a query the user has typed past
		if msg.query != m.input.Value() {
			return m, nil
		}
		m.results = msg.results
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, SearchKeys.Cancel):
			return m, backToRoadmap("", false)

		case key.Matches(msg, SearchKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Down):
			if m.cursor < min(len(m.results), maxSearchResults)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Copy):
			if r := m.selected(); r != nil {
				if err := clipboard.WriteAll(r.Node.Title); err != nil {
					m.SetMessage(fmt.Sprintf("Failed to copy: %v", err), true)
				} else {
					m.SetMessage("Copied "+r.Node.Title, false)
				}
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Select):
			if r := m.selected(); r != nil {
				id := r.Node.ID
				return m, func() tea.Msg {
					return SwitchToRoadmapMsg{FocusID: id}
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	query := m.input.Value()
	if len([]rune(strings.TrimSpace(query))) >= 2 {
		return m, tea.Batch(cmd, m.search(query))
	}
	m.results = nil
	m.cursor = 0
	return m, cmd
}

func (m *SearchModel) selected() *commands.SearchResult {
	if m.cursor >= 0 && m.cursor < len(m.results) {
		return &m.results[m.cursor]
	}
	return nil
}

func (m *SearchModel) search(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := commands.NewSearchCommand(m.engine, query).Execute(context.Background())
		if err != nil {
			return searchResultsMsg{query: query}
		}
		return searchResultsMsg{query: query, results: results}
	}
}

type searchResultsMsg struct {
	query   string
	results []commands.SearchResult
}

// View renders the search view
func (m *SearchModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Search"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputFocused.Render(m.input.View()))
	b.WriteString("\n\n")

	if len(m.results) == 0 {
		if len([]rune(strings.TrimSpace(m.input.Value()))) >= 2 {
			b.WriteString(styles.MutedText.Render("No results found"))
		} else {
			b.WriteString(styles.MutedText.Render("Type at least 2 characters to search"))
		}
	} else {
		b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d results", len(m.results))))
		b.WriteString("\n\n")

		for i, r := range m.results[:min(len(m.results), maxSearchResults)] {
			b.WriteString(m.renderResult(r, i == m.cursor))
			b.WriteString("\n")
		}

		if len(m.results) > maxSearchResults {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("... and %d more", len(m.results)-maxSearchResults)))
		}
	}

	b.WriteString("\n\n")
	if m.Message != "" {
		b.WriteString(renderMessage(m.Message, m.MessageErr))
		b.WriteString("\n\n")
	}

	b.WriteString(renderHelpLine(SearchKeys.Up, SearchKeys.Down, SearchKeys.Select, SearchKeys.Copy, SearchKeys.Cancel))

	return styles.App.Render(b.String())
}

func (m *SearchModel) renderResult(r commands.SearchResult, selected bool) string {
	text := fmt.Sprintf("%s %s", styles.StatusIcon(r.Node.Status), r.Node.Title)
	if r.Node.Depth > 0 {
		text += styles.MutedText.Render(fmt.Sprintf("  (depth %d)", r.Node.Depth))
	}

	if selected {
		return styles.NodeSelected.Render(text)
	}
	return styles.NodeStyle(r.Node).Render(text)
}
