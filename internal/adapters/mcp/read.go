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

// RegisterReadTools adds all read-only roadmap tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, engine *application.Engine) {
	s.AddTool(listNodesTool(), listNodesHandler(engine))
	s.AddTool(showNodeTool(), showNodeHandler(engine))
	s.AddTool(searchTool(), searchHandler(engine))
	s.AddTool(statsTool(), statsHandler(engine))
	s.AddTool(timerTool(), timerHandler(engine))
}

// --- list_nodes ---

func listNodesTool() mcp.Tool {
	return mcp.NewTool("list_nodes",
		mcp.WithDescription("List the learning roadmap as an outline. Children are indented under their parent."),
		mcp.WithBoolean("signal_only",
			mcp.Description("Hide noise nodes"),
		),
	)
}

func listNodesHandler(engine *application.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewListNodesCommand(engine, req.GetBool("signal_only", false))
		tree, err := cmd.Tree(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(tree) == 0 {
			return mcp.NewToolResultText("Roadmap is empty. Use create_roadmap to generate one."), nil
		}

		var sb strings.Builder
		if topic := engine.Topic(); topic != "" {
			fmt.Fprintf(&sb, "Topic: %s\n\n", topic)
		}
		for _, e := range tree {
			fmt.Fprintf(&sb, "%s%s\n", strings.Repeat("  ", e.Level), formatNode(e.Node))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- show_node ---

func showNodeTool() mcp.Tool {
	return mcp.NewTool("show_node",
		mcp.WithDescription("Show one node with its outcome, search queries, resources, children and deep content if loaded."),
		mcp.WithString("id",
			mcp.Description("Node ID"),
			mcp.Required(),
		),
	)
}

func showNodeHandler(engine *application.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewShowNodeCommand(engine, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		sb.WriteString(domain.NoteTemplate(result.Node))
		if len(result.Children) > 0 {
			sb.WriteString("\n## Children\n\n")
			for _, c := range result.Children {
				fmt.Fprintf(&sb, "- %s\n", formatNode(c))
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Fuzzy search node titles, descriptions and search queries."),
		mcp.WithString("query",
			mcp.Description("Search query, at least two characters"),
			mcp.Required(),
		),
	)
}

func searchHandler(engine *application.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		results, err := commands.NewSearchCommand(engine, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%s\n", formatNode(r.Node))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- stats ---

func statsTool() mcp.Tool {
	return mcp.NewTool("stats",
		mcp.WithDescription("Show streak, mastered nodes, focus hours and roadmap progress."),
	)
}

func statsHandler(engine *application.Engine) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewStatsCommand(engine).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		s, sum := result.Stats, result.Summary
		var sb strings.Builder
		fmt.Fprintf(&sb, "Daily streak: %d\n", s.DailyStreak)
		fmt.Fprintf(&sb, "Nodes mastered: %d\n", s.TotalNodesMastered)
		fmt.Fprintf(&sb, "Focus hours: %.2f\n", s.TotalFocusHours)
		fmt.Fprintf(&sb, "Roadmap: %d nodes (%d signal, %d noise), %d mastered, %d in progress, %d locked\n",
			sum.Total, sum.Signal, sum.Noise, sum.Mastered, sum.InProgress, sum.Locked)
		for _, h := range s.MasteryHistory {
			fmt.Fprintf(&sb, "  %s  %d\n", h.Date, h.Count)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- timer ---

func timerTool() mcp.Tool {
	return mcp.NewTool("timer",
		mcp.WithDescription("Show the focus timer state."),
	)
}

func timerHandler(engine *application.Engine) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(formatTimer(engine, engine.Timer())), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	msg := err.Error()
	if application.IsRetryable(err) {
		msg += " (try again shortly)"
	}
	return mcp.NewToolResultError(msg), nil
}

func formatNode(n *domain.LearningNode) string {
	return fmt.Sprintf("%s  [%s] %s (%s, difficulty %d)", n.ID, statusMark(n.Status), n.Title, n.Type, n.DifficultyLevel)
}

func statusMark(s domain.NodeStatus) string {
	switch s {
	case domain.StatusMastered:
		return "x"
	case domain.StatusInProgress:
		return "~"
	case domain.StatusLocked:
		return "#"
	default:
		return " "
	}
}

func formatTimer(engine *application.Engine, t domain.TimerState) string {
	if t.Status == domain.TimerIdle && t.ActiveNodeID == "" {
		return fmt.Sprintf("Idle. %d sessions completed.", t.TotalSessions)
	}

	title := t.ActiveNodeID
	if n := engine.Node(t.ActiveNodeID); n != nil {
		title = n.Title
	}
	state := string(t.Status)
	if t.Paused {
		state = "paused"
	}
	return fmt.Sprintf("%s on %s: %s left (%d sessions completed)",
		state, title, commands.FormatClock(t.TimeLeft), t.TotalSessions)
}
