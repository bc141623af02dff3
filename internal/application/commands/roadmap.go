package commands

import (
	"context"
	"fmt"

	"focusly/internal/application"
	"focusly/internal/domain"
)

// CreateRoadmapResult contains the result of generating a roadmap
type CreateRoadmapResult struct {
	Nodes   []*domain.LearningNode
	Message string
}

// CreateRoadmapCommand replaces the roadmap with one generated for a topic
type CreateRoadmapCommand struct {
	engine *application.Engine
	Topic  string
}

// NewCreateRoadmapCommand creates a new CreateRoadmapCommand
func NewCreateRoadmapCommand(engine *application.Engine, topic string) *CreateRoadmapCommand {
	return &CreateRoadmapCommand{
		engine: engine,
		Topic:  topic,
	}
}

// Validate checks the topic is present
func (c *CreateRoadmapCommand) Validate() error {
	return application.ValidateRequired("topic", c.Topic)
}

// Execute runs the create roadmap command
func (c *CreateRoadmapCommand) Execute(ctx context.Context) (*CreateRoadmapResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	nodes, err := c.engine.CreateRoadmap(ctx, c.Topic)
	if err != nil {
		return nil, fmt.Errorf("failed to create roadmap: %w", err)
	}

	return &CreateRoadmapResult{
		Nodes:   nodes,
		Message: fmt.Sprintf("Created roadmap for %q with %d nodes", c.engine.Topic(), len(nodes)),
	}, nil
}

// DrillDownResult contains the children generated under a node
type DrillDownResult struct {
	Parent   *domain.LearningNode
	Children []*domain.LearningNode
	Message  string
}

// DrillDownCommand generates a sub-roadmap beneath a node
type DrillDownCommand struct {
	engine *application.Engine
	NodeID string
}

// NewDrillDownCommand creates a new DrillDownCommand
func NewDrillDownCommand(engine *application.Engine, nodeID string) *DrillDownCommand {
	return &DrillDownCommand{
		engine: engine,
		NodeID: nodeID,
	}
}

// Validate checks the node ID is present
func (c *DrillDownCommand) Validate() error {
	return application.ValidateRequired("nodeID", c.NodeID)
}

// Execute runs the drill down command
func (c *DrillDownCommand) Execute(ctx context.Context) (*DrillDownResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	children, err := c.engine.DrillDown(ctx, c.NodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to drill down: %w", err)
	}

	parent := c.engine.Node(c.NodeID)
	if parent == nil {
		return nil, fmt.Errorf("%w: %s", application.ErrNodeNotFound, c.NodeID)
	}

	return &DrillDownResult{
		Parent:   parent,
		Children: children,
		Message:  fmt.Sprintf("Added %d nodes under %s", len(children), parent.Title),
	}, nil
}

// ClearRoadmapResult contains the result of clearing the roadmap
type ClearRoadmapResult struct {
	Removed int
	Message string
}

// ClearRoadmapCommand removes every node and the topic
type ClearRoadmapCommand struct {
	engine *application.Engine
}

// NewClearRoadmapCommand creates a new ClearRoadmapCommand
func NewClearRoadmapCommand(engine *application.Engine) *ClearRoadmapCommand {
	return &ClearRoadmapCommand{engine: engine}
}

// Execute runs the clear roadmap command
func (c *ClearRoadmapCommand) Execute(ctx context.Context) (*ClearRoadmapResult, error) {
	removed := len(c.engine.Nodes(application.NodeFilter{}))
	if err := c.engine.ClearRoadmap(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear roadmap: %w", err)
	}

	return &ClearRoadmapResult{
		Removed: removed,
		Message: fmt.Sprintf("Cleared roadmap (%d nodes removed)", removed),
	}, nil
}
