package commands

import (
	"context"
	"fmt"

	"focusly/internal/application"
	"focusly/internal/domain"
)

// NodeResult contains a node after a mutation
type NodeResult struct {
	Node    *domain.LearningNode
	Message string
}

// AddNodeCommand captures a manual root node
type AddNodeCommand struct {
	engine *application.Engine
	Title  string
	Type   string
}

// NewAddNodeCommand creates a new AddNodeCommand. nodeType is "signal" or "noise".
func NewAddNodeCommand(engine *application.Engine, title, nodeType string) *AddNodeCommand {
	return &AddNodeCommand{
		engine: engine,
		Title:  title,
		Type:   nodeType,
	}
}

// Validate checks the title and type
func (c *AddNodeCommand) Validate() error {
	if err := application.ValidateRequired("title", c.Title); err != nil {
		return err
	}
	_, err := application.ParseNodeType("type", c.Type)
	return err
}

// Execute runs the add node command
func (c *AddNodeCommand) Execute(ctx context.Context) (*NodeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	nodeType, _ := application.ParseNodeType("type", c.Type)

	n, err := c.engine.AddNode(ctx, c.Title, nodeType)
	if err != nil {
		return nil, fmt.Errorf("failed to add node: %w", err)
	}

	return &NodeResult{
		Node:    n,
		Message: fmt.Sprintf("Added %s node: %s", n.Type, n.Title),
	}, nil
}

// ToggleTypeCommand flips a node between signal and noise
type ToggleTypeCommand struct {
	engine *application.Engine
	NodeID string
}

// NewToggleTypeCommand creates a new ToggleTypeCommand
func NewToggleTypeCommand(engine *application.Engine, nodeID string) *ToggleTypeCommand {
	return &ToggleTypeCommand{
		engine: engine,
		NodeID: nodeID,
	}
}

// Validate checks the node ID is present
func (c *ToggleTypeCommand) Validate() error {
	return application.ValidateRequired("nodeID", c.NodeID)
}

// Execute runs the toggle type command
func (c *ToggleTypeCommand) Execute(ctx context.Context) (*NodeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	n, err := c.engine.ToggleType(ctx, c.NodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle type: %w", err)
	}
	if n == nil {
		return nil, fmt.Errorf("%w: %s", application.ErrNodeNotFound, c.NodeID)
	}

	return &NodeResult{
		Node:    n,
		Message: fmt.Sprintf("%s is now %s", n.Title, n.Type),
	}, nil
}

// ToggleMasteryCommand marks a node mastered or reopens it
type ToggleMasteryCommand struct {
	engine *application.Engine
	NodeID string
}

// NewToggleMasteryCommand creates a new ToggleMasteryCommand
func NewToggleMasteryCommand(engine *application.Engine, nodeID string) *ToggleMasteryCommand {
	return &ToggleMasteryCommand{
		engine: engine,
		NodeID: nodeID,
	}
}

// Validate checks the node ID is present
func (c *ToggleMasteryCommand) Validate() error {
	return application.ValidateRequired("nodeID", c.NodeID)
}

// Execute runs the toggle mastery command
func (c *ToggleMasteryCommand) Execute(ctx context.Context) (*NodeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	n, err := c.engine.ToggleMastery(ctx, c.NodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle mastery: %w", err)
	}
	if n == nil {
		return nil, fmt.Errorf("%w: %s", application.ErrNodeNotFound, c.NodeID)
	}

	msg := fmt.Sprintf("Mastered: %s", n.Title)
	if n.Status != domain.StatusMastered {
		msg = fmt.Sprintf("Reopened: %s", n.Title)
	}
	return &NodeResult{Node: n, Message: msg}, nil
}

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	DeletedID string
	Message   string
}

// DeleteNodeCommand removes a node; its children stay in the roadmap
type DeleteNodeCommand struct {
	engine *application.Engine
	NodeID string
}

// NewDeleteNodeCommand creates a new DeleteNodeCommand
func NewDeleteNodeCommand(engine *application.Engine, nodeID string) *DeleteNodeCommand {
	return &DeleteNodeCommand{
		engine: engine,
		NodeID: nodeID,
	}
}

// Validate checks the node ID is present
func (c *DeleteNodeCommand) Validate() error {
	return application.ValidateRequired("nodeID", c.NodeID)
}

// Execute runs the delete command
func (c *DeleteNodeCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	n := c.engine.Node(c.NodeID)
	deleted, err := c.engine.DeleteNode(ctx, c.NodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", c.NodeID, err)
	}
	if !deleted || n == nil {
		return nil, fmt.Errorf("%w: %s", application.ErrNodeNotFound, c.NodeID)
	}

	return &DeleteResult{
		DeletedID: c.NodeID,
		Message:   fmt.Sprintf("Deleted %s", n.Title),
	}, nil
}
