package domain

import (
	"fmt"
	"strings"
	"time"
)

// NodeType classifies a node as high-value (signal) or low-value (noise)
type NodeType string

const (
	NodeTypeSignal NodeType = "signal"
	NodeTypeNoise  NodeType = "noise"
)

// ParseNodeType converts a string to a NodeType
func ParseNodeType(s string) (NodeType, error) {
	switch NodeType(strings.ToLower(strings.TrimSpace(s))) {
	case NodeTypeSignal:
		return NodeTypeSignal, nil
	case NodeTypeNoise:
		return NodeTypeNoise, nil
	default:
		return "", fmt.Errorf("unknown node type: %q", s)
	}
}

// Flip returns the opposite classification
func (t NodeType) Flip() NodeType {
	if t == NodeTypeSignal {
		return NodeTypeNoise
	}
	return NodeTypeSignal
}

// NodeStatus governs visibility and actionability of a node
type NodeStatus string

const (
	StatusLocked     NodeStatus = "locked"
	StatusAvailable  NodeStatus = "available"
	StatusInProgress NodeStatus = "in-progress"
	StatusMastered   NodeStatus = "mastered"
)

// Difficulty defaults for manually captured nodes
const (
	ManualSignalDifficulty = 50
	ManualNoiseDifficulty  = 0
)

// PlaygroundType names the kind of interactive exercise attached to deep content
type PlaygroundType string

const (
	PlaygroundCode        PlaygroundType = "code"
	PlaygroundSpreadsheet PlaygroundType = "spreadsheet"
)

// Playground describes an optional interactive exercise
type Playground struct {
	Type        PlaygroundType `json:"type"`
	InitialData string         `json:"initialData"`
	Prompt      string         `json:"prompt"`
}

// DeepContent is the enriched explanation fetched on demand for a node
type DeepContent struct {
	ExecutiveSummary   string      `json:"executiveSummary"`
	TechnicalMechanics []string    `json:"technicalMechanics"`
	MinuteDetails      []string    `json:"minuteDetails"`
	ExpertMentalModel  string      `json:"expertMentalModel"`
	CommonPitfalls     []string    `json:"commonPitfalls"`
	ELI7               string      `json:"eli7"`
	Playground         *Playground `json:"playground,omitempty"`
}

// NodeDescriptor is a provider-proposed node before it becomes part of a roadmap
type NodeDescriptor struct {
	Title           string
	Description     string
	Type            NodeType
	DifficultyLevel int
	LearningOutcome string
	SearchQueries   []string
	Resources       []string
}

// LearningNode is one item of a learning roadmap
type LearningNode struct {
	ID              string       `json:"id"`
	ParentID        *string      `json:"parentId"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	Type            NodeType     `json:"type"`
	Status          NodeStatus   `json:"status"`
	Depth           int          `json:"depth"`
	DifficultyLevel int          `json:"difficultyLevel"`
	LearningOutcome string       `json:"learningOutcome"`
	SearchQueries   []string     `json:"searchQueries"`
	Resources       []string     `json:"resources"`
	DeepContent     *DeepContent `json:"deepContent,omitempty"`
	PomodorosSpent  int          `json:"pomodorosSpent"`
	ChildrenIDs     []string     `json:"childrenIds"`
	CreatedAt       int64        `json:"createdAt"` // Unix milliseconds
}

// IsRoot reports whether the node has no parent
func (n *LearningNode) IsRoot() bool {
	return n.ParentID == nil
}

// Parent returns the parent ID or "" for roots
func (n *LearningNode) Parent() string {
	if n.ParentID == nil {
		return ""
	}
	return *n.ParentID
}

// Created returns the creation time
func (n *LearningNode) Created() time.Time {
	return time.UnixMilli(n.CreatedAt)
}

// Clone returns a deep copy so callers outside the roadmap cannot mutate it
func (n *LearningNode) Clone() *LearningNode {
	if n == nil {
		return nil
	}
	c := *n
	if n.ParentID != nil {
		p := *n.ParentID
		c.ParentID = &p
	}
	c.SearchQueries = nonNil(n.SearchQueries)
	c.Resources = nonNil(n.Resources)
	c.ChildrenIDs = nonNil(n.ChildrenIDs)
	if n.DeepContent != nil {
		dc := n.DeepContent.Clone()
		c.DeepContent = dc
	}
	return &c
}

// Clone returns a deep copy of the content
func (d *DeepContent) Clone() *DeepContent {
	if d == nil {
		return nil
	}
	c := *d
	c.TechnicalMechanics = append([]string(nil), d.TechnicalMechanics...)
	c.MinuteDetails = append([]string(nil), d.MinuteDetails...)
	c.CommonPitfalls = append([]string(nil), d.CommonPitfalls...)
	if d.Playground != nil {
		p := *d.Playground
		c.Playground = &p
	}
	return &c
}
