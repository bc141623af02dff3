package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"focusly/internal/application"
	"focusly/internal/application/commands"
	"focusly/internal/domain"
)

// RegisterWriteTools adds all roadmap and timer mutations to the MCP server.
func RegisterWriteTools(s *server.MCPServer, engine *application.Engine) {
	s.AddTool(createRoadmapTool(), createRoadmapHandler(engine))
	s.AddTool(drillDownTool(), drillDownHandler(engine))
	s.AddTool(addNodeTool(), addNodeHandler(engine))
	s.AddTool(toggleTypeTool(), toggleTypeHandler(engine))
	s.AddTool(toggleMasteryTool(), toggleMasteryHandler(engine))
	s.AddTool(deleteNodeTool(), deleteNodeHandler(engine))
	s.AddTool(fetchContentTool(), fetchContentHandler(engine))
	s.AddTool(clearRoadmapTool(), clearRoadmapHandler(engine))
	s.AddTool(startFocusTool(), startFocusHandler(engine))
	s.AddTool(exitFocusTool(), exitFocusHandler(engine))
	s.AddTool(toggleTimerTool(), toggleTimerHandler(engine))
	s.AddTool(startBreakTool(), startBreakHandler(engine))
}

func idTool(name, description string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(description),
		mcp.WithString("id",
			mcp.Description("Node ID"),
			mcp.Required(),
		),
	)
}

// --- create_roadmap ---

func createRoadmapTool() mcp.Tool {
	return mcp.NewTool("create_roadmap",
		mcp.WithDescription("Generate a new mastery roadmap for a topic. Replaces the current roadmap."),
		mcp.WithString("topic",
			mcp.Description("What to learn, e.g. \"Rust ownership\""),
			mcp.Required(),
		),
	)
}

func createRoadmapHandler(engine *application.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewCreateRoadmapCommand(engine, req.GetString("topic", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return nodeList(result.Message, result.Nodes), nil
	}
}

// --- drill_down ---

func drillDownTool() mcp.Tool {
	return idTool("drill_down", "Generate a deeper sub-roadmap under a node.")
}

func drillDownHandler(engine *application.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewDrillDownCommand(engine, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return nodeList(result.Message, result.Children), nil
	}
}

// --- add_node ---

func addNodeTool() mcp.Tool {
	return mcp.NewTool("add_node",
		mcp.WithDescription("Capture a manual node at the top of the roadmap."),
		mcp.WithString("title",
			mcp.Description("Node title"),
			mcp.Required(),
		),
		mcp.WithString("type",
			mcp.Description("signal (default) or noise"),
			mcp.Enum("signal", "noise"),
		),
	)
}

func addNodeHandler(engine *application.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewAddNodeCommand(engine, req.GetString("title", ""), req.GetString("type", "signal"))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message + "\n" + formatNode(result.Node)), nil
	}
}

// --- toggle_type ---

func toggleTypeTool() mcp.Tool {
	return idTool("toggle_type", "Flip a node between signal and noise.")
}

func toggleTypeHandler(engine *application.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewToggleTypeCommand(engine, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- toggle_mastery ---

func toggleMasteryTool() mcp.Tool {
	return idTool("toggle_mastery", "Mark a node mastered, or reopen a mastered node.")
}

func toggleMasteryHandler(engine *application.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewToggleMasteryCommand(engine, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_node ---

func deleteNodeTool() mcp.Tool {
	return idTool("delete_node", "Delete a node. Its children stay in the roadmap.")
}

func deleteNodeHandler(engine *application.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewDeleteNodeCommand(engine, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- fetch_content ---

func fetchContentTool() mcp.Tool {
	return mcp.NewTool("fetch_content",
		mcp.WithDescription("Load the deep explanation of a node. Generated once, then served from the roadmap."),
		mcp.WithString("id",
			mcp.Description("Node ID"),
			mcp.Required(),
		),
		mcp.WithNumber("complexity",
			mcp.Description("0 (intuitive) to 100 (expert), default 50"),
			mcp.Min(0),
			mcp.Max(100),
		),
	)
}

func fetchContentHandler(engine *application.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewFetchContentCommand(engine, req.GetString("id", ""), req.GetInt("complexity", application.DefaultComplexity))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(domain.NoteTemplate(result.Node)), nil
	}
}

// --- clear_roadmap ---

func clearRoadmapTool() mcp.Tool {
	return mcp.NewTool("clear_roadmap",
		mcp.WithDescription("Remove every node and the topic. Stats are kept."),
	)
}

func clearRoadmapHandler(engine *application.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewClearRoadmapCommand(engine).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- start_focus / exit_focus ---

func startFocusTool() mcp.Tool {
	return idTool("start_focus", "Start a focus session on a node. The timer runs in the server.")
}

func startFocusHandler(engine *application.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewStartFocusCommand(engine, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func exitFocusTool() mcp.Tool {
	return mcp.NewTool("exit_focus",
		mcp.WithDescription("Abandon the running focus session without credit."),
	)
}

func exitFocusHandler(engine *application.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewExitFocusCommand(engine).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- toggle_timer / start_break ---

func toggleTimerTool() mcp.Tool {
	return mcp.NewTool("toggle_timer",
		mcp.WithDescription("Pause the running focus session, or resume a paused one where it stopped."),
	)
}

func toggleTimerHandler(engine *application.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewToggleTimerCommand(engine).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func startBreakTool() mcp.Tool {
	return mcp.NewTool("start_break",
		mcp.WithDescription("Start a short break after a completed session. Every fourth session earns a long break."),
	)
}

func startBreakHandler(engine *application.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewStartBreakCommand(engine).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if result.Timer.Status != domain.TimerBreak {
			return mcp.NewToolResultError(result.Message), nil
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func nodeList(header string, nodes []*domain.LearningNode) *mcp.CallToolResult {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteByte('\n')
	for _, n := range nodes {
		fmt.Fprintf(&sb, "%s\n", formatNode(n))
	}
	return mcp.NewToolResultText(sb.String())
}
