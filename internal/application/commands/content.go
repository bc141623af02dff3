package commands

import (
	"context"
	"fmt"

	"focusly/internal/application"
	"focusly/internal/domain"
)

// FetchContentResult contains a node's deep content
type FetchContentResult struct {
	Node    *domain.LearningNode
	Content *domain.DeepContent
	Message string
}

// FetchContentCommand loads the deep explanation of a node
type FetchContentCommand struct {
	engine     *application.Engine
	NodeID     string
	Complexity int
}

// NewFetchContentCommand creates a new FetchContentCommand
func NewFetchContentCommand(engine *application.Engine, nodeID string, complexity int) *FetchContentCommand {
	return &FetchContentCommand{
		engine:     engine,
		NodeID:     nodeID,
		Complexity: complexity,
	}
}

// Validate checks the node ID and the complexity range
func (c *FetchContentCommand) Validate() error {
	if err := application.ValidateRequired("nodeID", c.NodeID); err != nil {
		return err
	}
	return application.ValidateComplexity(c.Complexity)
}

// Execute runs the fetch content command
func (c *FetchContentCommand) Execute(ctx context.Context) (*FetchContentResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	content, err := c.engine.FetchDeepContent(ctx, c.NodeID, c.Complexity)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}
	n := c.engine.Node(c.NodeID)
	if content == nil || n == nil {
		return nil, fmt.Errorf("%w: %s", application.ErrNodeNotFound, c.NodeID)
	}

	return &FetchContentResult{
		Node:    n,
		Content: content,
		Message: fmt.Sprintf("Loaded deep content for %s", n.Title),
	}, nil
}
