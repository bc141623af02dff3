package commands

import (
	"context"
	"fmt"

	"focusly/internal/application"
	"focusly/internal/domain"
)

// TreeEntry is a node placed in the roadmap outline
type TreeEntry struct {
	Node  *domain.LearningNode
	Level int
}

// ListNodesCommand lists the roadmap
type ListNodesCommand struct {
	engine     *application.Engine
	SignalOnly bool
}

// NewListNodesCommand creates a new ListNodesCommand
func NewListNodesCommand(engine *application.Engine, signalOnly bool) *ListNodesCommand {
	return &ListNodesCommand{
		engine:     engine,
		SignalOnly: signalOnly,
	}
}

// Execute returns the nodes in collection order
func (c *ListNodesCommand) Execute(ctx context.Context) ([]*domain.LearningNode, error) {
	return c.engine.Nodes(application.NodeFilter{SignalOnly: c.SignalOnly}), nil
}

// Tree returns the nodes as a depth-first outline. Nodes whose parent is
// missing are listed as top-level entries.
func (c *ListNodesCommand) Tree(ctx context.Context) ([]TreeEntry, error) {
	nodes, err := c.Execute(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTree(nodes), nil
}

// BuildTree orders nodes depth-first, following ChildrenIDs
func BuildTree(nodes []*domain.LearningNode) []TreeEntry {
	byID := make(map[string]*domain.LearningNode, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	entries := make([]TreeEntry, 0, len(nodes))
	seen := make(map[string]bool, len(nodes))

	var walk func(n *domain.LearningNode, level int)
	walk = func(n *domain.LearningNode, level int) {
		if seen[n.ID] {
			return
		}
		seen[n.ID] = true
		entries = append(entries, TreeEntry{Node: n, Level: level})
		for _, id := range n.ChildrenIDs {
			if child := byID[id]; child != nil {
				walk(child, level+1)
			}
		}
	}

	for _, n := range nodes {
		if n.IsRoot() || byID[n.Parent()] == nil {
			walk(n, 0)
		}
	}
	return entries
}

// ShowNodeResult contains one node and its children
type ShowNodeResult struct {
	Node     *domain.LearningNode
	Children []*domain.LearningNode
}

// ShowNodeCommand looks up a single node
type ShowNodeCommand struct {
	engine *application.Engine
	NodeID string
}

// NewShowNodeCommand creates a new ShowNodeCommand
func NewShowNodeCommand(engine *application.Engine, nodeID string) *ShowNodeCommand {
	return &ShowNodeCommand{
		engine: engine,
		NodeID: nodeID,
	}
}

// Execute runs the show node command
func (c *ShowNodeCommand) Execute(ctx context.Context) (*ShowNodeResult, error) {
	if err := application.ValidateRequired("nodeID", c.NodeID); err != nil {
		return nil, err
	}

	n := c.engine.Node(c.NodeID)
	if n == nil {
		return nil, fmt.Errorf("%w: %s", application.ErrNodeNotFound, c.NodeID)
	}
	return &ShowNodeResult{
		Node:     n,
		Children: c.engine.Children(c.NodeID),
	}, nil
}

// StatsResult combines the user stats with roadmap counts
type StatsResult struct {
	Stats   domain.UserStats
	Summary domain.RoadmapSummary
	Timer   domain.TimerState
	Topic   string
}

// StatsCommand reports progress
type StatsCommand struct {
	engine *application.Engine
}

// NewStatsCommand creates a new StatsCommand
func NewStatsCommand(engine *application.Engine) *StatsCommand {
	return &StatsCommand{engine: engine}
}

// Execute runs the stats command
func (c *StatsCommand) Execute(ctx context.Context) (*StatsResult, error) {
	return &StatsResult{
		Stats:   c.engine.Stats(),
		Summary: c.engine.Summary(),
		Timer:   c.engine.Timer(),
		Topic:   c.engine.Topic(),
	}, nil
}
