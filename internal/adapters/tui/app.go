package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"focusly/internal/adapters/markdown"
	"focusly/internal/adapters/tui/views"
	"focusly/internal/application"
	"focusly/internal/domain"
	"focusly/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewRoadmap ViewState = iota
	ViewCreate
	ViewContent
	ViewFocus
	ViewSearch
	ViewStats
	ViewDelete
	ViewHelp
)

// Option configures an App
type Option func(*App)

// WithEditor opens exported notes with ed
func WithEditor(ed ports.NoteOpener) Option {
	return func(a *App) { a.editor = ed }
}

// WithLauncher opens search queries with l
func WithLauncher(l ports.QueryLauncher) Option {
	return func(a *App) { a.launcher = l }
}

// WithExporter writes notes with ex before opening them
func WithExporter(ex *markdown.Exporter) Option {
	return func(a *App) { a.exporter = ex }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithFocus starts the app on the focus view for nodeID. Leaving the focus
// view quits.
func WithFocus(nodeID string) Option {
	return func(a *App) { a.focusOnly = nodeID }
}

// App is the main TUI application model
type App struct {
	engine   *application.Engine
	editor   ports.NoteOpener
	launcher ports.QueryLauncher
	exporter *markdown.Exporter
	logger   *zap.Logger

	events      chan domain.Event
	unsubscribe func()
	ticking     bool
	focusOnly   string

	state   ViewState
	roadmap *views.RoadmapModel
	create  *views.CreateModel
	content *views.ContentModel
	focus   *views.FocusModel
	search  *views.SearchModel
	stats   *views.StatsModel
	delete  *views.DeleteModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application over a loaded engine
func NewApp(engine *application.Engine, opts ...Option) *App {
	a := &App{
		engine: engine,
		logger: zap.NewNop(),
		events: make(chan domain.Event, 16),
		state:  ViewRoadmap,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.roadmap = views.NewRoadmapModel(engine, a.launcher)
	a.create = views.NewCreateModel(engine)
	a.content = views.NewContentModel(engine)
	a.focus = views.NewFocusModel(engine)
	a.search = views.NewSearchModel(engine)
	a.stats = views.NewStatsModel(engine)
	a.delete = views.NewDeleteModel(engine)
	a.help = views.NewHelpModel()

	// Events are emitted on whatever goroutine ran the command; hand them to
	// the program through the channel
	a.unsubscribe = engine.Subscribe(func(ev domain.Event) {
		select {
		case a.events <- ev:
		default:
		}
	})
	return a
}

// Close stops listening for engine events
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

type eventMsg domain.Event

type editorFinishedMsg struct{ err error }

func (a *App) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return eventMsg(<-a.events)
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.waitForEvent(), a.roadmap.Init()}
	if a.focusOnly != "" {
		a.state = ViewFocus
		cmds = append(cmds, a.focus.Start(a.focusOnly))
	}
	if a.engine.Timer().Running() {
		cmds = append(cmds, a.startTicking())
	}
	return tea.Batch(cmds...)
}

func (a *App) startTicking() tea.Cmd {
	if a.ticking {
		return nil
	}
	a.ticking = true
	return views.ScheduleTick()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.roadmap.SetSize(msg.Width, msg.Height)
		a.create.SetSize(msg.Width, msg.Height)
		a.content.SetSize(msg.Width, msg.Height)
		a.focus.SetSize(msg.Width, msg.Height)
		a.search.SetSize(msg.Width, msg.Height)
		a.stats.SetSize(msg.Width, msg.Height)
		a.delete.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case views.TimerTickMsg:
		state, err := a.engine.Tick(context.Background())
		if err != nil {
			a.logger.Warn("timer tick failed", zap.Error(err))
		}
		if !state.Running() {
			a.ticking = false
			return a, nil
		}
		return a, views.ScheduleTick()

	case views.TimerChangedMsg:
		if msg.State.Running() {
			return a, a.startTicking()
		}
		return a, nil

	case eventMsg:
		if banner := celebration(domain.Event(msg)); banner != "" {
			a.roadmap.SetBanner(banner)
			a.focus.SetBanner(banner)
		}
		return a, tea.Batch(a.waitForEvent(), a.roadmap.Reload(""))

	// View switching messages
	case views.SwitchToRoadmapMsg:
		if a.focusOnly != "" {
			return a, tea.Quit
		}
		a.state = ViewRoadmap
		if msg.Message != "" {
			a.roadmap.SetMessage(msg.Message, msg.IsErr)
		}
		return a, a.roadmap.Reload(msg.FocusID)

	case views.SwitchToCreateMsg:
		a.state = ViewCreate
		a.create.SetMode(msg.Mode)
		return a, a.create.Init()

	case views.SwitchToContentMsg:
		a.state = ViewContent
		a.content.SetNode(msg.NodeID)
		return a, a.content.Init()

	case views.SwitchToFocusMsg:
		a.state = ViewFocus
		return a, a.focus.Start(msg.NodeID)

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.delete.SetTarget(msg.Node)
		return a, nil

	case views.SwitchToSearchMsg:
		a.state = ViewSearch
		a.search.Reset()
		return a, a.search.Init()

	case views.SwitchToStatsMsg:
		a.state = ViewStats
		return a, a.stats.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.OpenNoteMsg:
		return a, a.openNote(msg.NodeID)

	case views.OpenEditorMsg:
		a.roadmap.SetMessage(msg.Message, false)
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			a.roadmap.SetMessage(fmt.Sprintf("Editor failed: %v", msg.err), true)
		}
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewRoadmap:
		_, cmd = a.roadmap.Update(msg)
	case ViewCreate:
		_, cmd = a.create.Update(msg)
	case ViewContent:
		_, cmd = a.content.Update(msg)
	case ViewFocus:
		_, cmd = a.focus.Update(msg)
	case ViewSearch:
		_, cmd = a.search.Update(msg)
	case ViewStats:
		_, cmd = a.stats.Update(msg)
	case ViewDelete:
		_, cmd = a.delete.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	// Background provider calls finish while another view is showing
	if a.state != ViewRoadmap {
		if _, ok := msg.(tea.KeyMsg); !ok {
			_, rcmd := a.roadmap.Update(msg)
			cmd = tea.Batch(cmd, rcmd)
		}
	}

	return a, cmd
}

func celebration(ev domain.Event) string {
	switch ev.Kind {
	case domain.EventNodeMastered:
		return "🎉 Mastered " + ev.Title
	case domain.EventSessionCompleted:
		return "🍅 Session complete: " + ev.Title + ". Take a break with b"
	case domain.EventBreakFinished:
		return "Break over. Ready for the next session"
	default:
		return ""
	}
}

// openNote exports the roadmap as Markdown and opens the node's note
func (a *App) openNote(nodeID string) tea.Cmd {
	if a.exporter == nil || a.editor == nil {
		a.roadmap.SetMessage("No editor configured", true)
		return nil
	}
	return func() tea.Msg {
		paths, err := a.exporter.Export(a.engine.Nodes(application.NodeFilter{}))
		if err != nil {
			return views.SwitchToRoadmapMsg{Message: err.Error(), IsErr: true}
		}
		path, ok := paths[nodeID]
		if !ok {
			return views.SwitchToRoadmapMsg{Message: "Node not found", IsErr: true}
		}
		return views.OpenEditorMsg{
			Path:    path,
			Message: fmt.Sprintf("Exported %d notes to %s", len(paths), a.exporter.Root()),
		}
	}
}

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewCreate:
		return a.create.View()
	case ViewContent:
		return a.content.View()
	case ViewFocus:
		return a.focus.View()
	case ViewSearch:
		return a.search.View()
	case ViewStats:
		return a.stats.View()
	case ViewDelete:
		return a.delete.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.roadmap.View()
	}
}
