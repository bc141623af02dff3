package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"focusly/internal/adapters/browser"
	"focusly/internal/adapters/editor"
	"focusly/internal/adapters/markdown"
	"focusly/internal/adapters/tui"
	"focusly/internal/bootstrap"
)

func main() {
	configFlag := flag.String("config", "", "path to the config file")
	dataFlag := flag.String("data", "", "path to the state database")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt, err := bootstrap.Open(ctx, bootstrap.Overrides{ConfigPath: *configFlag, DataPath: *dataFlag})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	rt.ServeMetrics(ctx)

	cfg := rt.Config
	app := tui.NewApp(rt.Engine,
		tui.WithEditor(editor.NewOpener(cfg.Editor.Command)),
		tui.WithLauncher(browser.NewOpener(cfg.Search.URL)),
		tui.WithExporter(markdown.NewExporter(cfg.Export.Dir)),
		tui.WithLogger(rt.Logger),
	)

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, runErr := p.Run()
	app.Close()
	closeErr := rt.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
	if closeErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", closeErr)
		os.Exit(1)
	}
}
