package jsonstate

import (
	"encoding/json"
	"fmt"
	"strings"

	"focusly/internal/domain"
)

// storedNode accepts both the current node shape and the older flat one,
// where deep content lived in top level content and eli7Content fields.
type storedNode struct {
	domain.LearningNode
	Content     string `json:"content,omitempty"`
	ELI7Content string `json:"eli7Content,omitempty"`
}

// DecodeNode decodes one persisted node, upgrading legacy fields.
// Missing collections decode as empty and a missing status or type gets a default.
func DecodeNode(data []byte) (*domain.LearningNode, error) {
	var s storedNode
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode node: %w", err)
	}
	n := &s.LearningNode
	if n.ID == "" {
		return nil, fmt.Errorf("node without id")
	}

	if n.DeepContent == nil && (s.Content != "" || s.ELI7Content != "") {
		n.DeepContent = &domain.DeepContent{
			ExecutiveSummary:   s.Content,
			TechnicalMechanics: []string{},
			MinuteDetails:      []string{},
			CommonPitfalls:     []string{},
			ELI7:               s.ELI7Content,
		}
	}

	if n.ParentID != nil && *n.ParentID == "" {
		n.ParentID = nil
	}
	if n.Status == "" {
		n.Status = domain.StatusAvailable
	}
	if n.Type == "" {
		n.Type = domain.NodeTypeSignal
	}
	if n.PomodorosSpent < 0 {
		n.PomodorosSpent = 0
	}
	if n.SearchQueries == nil {
		n.SearchQueries = []string{}
	}
	if n.Resources == nil {
		n.Resources = []string{}
	}
	if n.ChildrenIDs == nil {
		n.ChildrenIDs = []string{}
	}
	return n, nil
}

// DecodeNodes decodes a JSON array of nodes
func DecodeNodes(data []byte) ([]*domain.LearningNode, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode nodes: %w", err)
	}
	nodes := make([]*domain.LearningNode, 0, len(raw))
	for i, r := range raw {
		n, err := DecodeNode(r)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// DecodeStats decodes persisted stats, defaulting missing history to empty
func DecodeStats(data []byte) (domain.UserStats, error) {
	stats := domain.NewUserStats()
	if len(strings.TrimSpace(string(data))) == 0 {
		return stats, nil
	}
	if err := json.Unmarshal(data, &stats); err != nil {
		return domain.UserStats{}, fmt.Errorf("failed to decode stats: %w", err)
	}
	if stats.MasteryHistory == nil {
		stats.MasteryHistory = []domain.MasterySample{}
	}
	return stats, nil
}
