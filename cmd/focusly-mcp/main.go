package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	mcpadapter "focusly/internal/adapters/mcp"
	"focusly/internal/application"
	"focusly/internal/bootstrap"
	"focusly/internal/domain"
)

const version = "0.1.0"

func main() {
	configFlag := flag.String("config", "", "path to the config file")
	dataFlag := flag.String("data", "", "path to the state database")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.Open(ctx, bootstrap.Overrides{ConfigPath: *configFlag, DataPath: *dataFlag})
	if err != nil {
		log.Fatalf("focusly-mcp: %v", err)
	}
	defer rt.Close()
	rt.ServeMetrics(ctx)

	// No render loop here, so the runner drives focus sessions started over MCP
	runner := application.NewTimerRunner(rt.Engine, rt.Logger)
	runner.OnTick(func(st domain.TimerState) {
		if !st.Running() {
			rt.Logger.Debug("timer stopped", zap.String("status", string(st.Status)))
		}
	})
	go runner.Run(ctx)

	mcpServer := server.NewMCPServer(
		"focusly-mcp",
		version,
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, rt.Engine)
	mcpadapter.RegisterWriteTools(mcpServer, rt.Engine)

	rt.Logger.Info("mcp server starting", zap.String("version", version))
	if err := server.ServeStdio(mcpServer); err != nil {
		rt.Logger.Error("mcp server stopped", zap.Error(err))
		log.Printf("focusly-mcp: %v", err)
	}
}
