package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Manual capture defaults
const (
	ManualDescription = "Manual expert capture"
	ManualOutcome     = "Manual objective completion"
)

// NodeFromDescriptor builds a root node from a provider descriptor
func NodeFromDescriptor(id string, d NodeDescriptor, status NodeStatus, now time.Time) *LearningNode {
	return &LearningNode{
		ID:              id,
		Title:           d.Title,
		Description:     d.Description,
		Type:            d.Type,
		Status:          status,
		DifficultyLevel: d.DifficultyLevel,
		LearningOutcome: d.LearningOutcome,
		SearchQueries:   nonNil(d.SearchQueries),
		Resources:       nonNil(d.Resources),
		ChildrenIDs:     []string{},
		CreatedAt:       now.UnixMilli(),
	}
}

// ManualNode builds an available root node from a user-entered title.
// Returns nil when the title is blank.
func ManualNode(id, title string, t NodeType, now time.Time) *LearningNode {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	difficulty := ManualNoiseDifficulty
	if t == NodeTypeSignal {
		difficulty = ManualSignalDifficulty
	}
	return &LearningNode{
		ID:              id,
		Title:           title,
		Description:     ManualDescription,
		Type:            t,
		Status:          StatusAvailable,
		DifficultyLevel: difficulty,
		LearningOutcome: ManualOutcome,
		SearchQueries:   []string{},
		Resources:       []string{},
		ChildrenIDs:     []string{},
		CreatedAt:       now.UnixMilli(),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string(nil), s...)
}

// Roadmap is the ordered collection of learning nodes.
// It is not safe for concurrent use; the application engine serializes access.
type Roadmap struct {
	order []string
	nodes map[string]*LearningNode
}

// NewRoadmap creates a roadmap from nodes in collection order.
// Duplicate IDs keep the first occurrence.
func NewRoadmap(nodes []*LearningNode) *Roadmap {
	r := &Roadmap{nodes: make(map[string]*LearningNode, len(nodes))}
	for _, n := range nodes {
		if n == nil || n.ID == "" {
			continue
		}
		if _, dup := r.nodes[n.ID]; dup {
			continue
		}
		if n.ChildrenIDs == nil {
			n.ChildrenIDs = []string{}
		}
		r.nodes[n.ID] = n
		r.order = append(r.order, n.ID)
	}
	return r
}

// Len returns the number of nodes
func (r *Roadmap) Len() int {
	return len(r.order)
}

// Get returns the node with the given ID or nil.
// The returned pointer is owned by the roadmap.
func (r *Roadmap) Get(id string) *LearningNode {
	return r.nodes[id]
}

// Nodes returns copies of all nodes in collection order
func (r *Roadmap) Nodes() []*LearningNode {
	out := make([]*LearningNode, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.nodes[id].Clone())
	}
	return out
}

// Children returns copies of the children of id in childrenIds order
func (r *Roadmap) Children(id string) []*LearningNode {
	parent := r.nodes[id]
	if parent == nil {
		return nil
	}
	out := make([]*LearningNode, 0, len(parent.ChildrenIDs))
	for _, cid := range parent.ChildrenIDs {
		if c := r.nodes[cid]; c != nil {
			out = append(out, c.Clone())
		}
	}
	return out
}

// Replace discards every node and installs the given nodes as roots
func (r *Roadmap) Replace(roots []*LearningNode) {
	r.order = r.order[:0]
	r.nodes = make(map[string]*LearningNode, len(roots))
	for _, n := range roots {
		n.ParentID = nil
		n.Depth = 0
		r.nodes[n.ID] = n
		r.order = append(r.order, n.ID)
	}
}

// Clear removes every node
func (r *Roadmap) Clear() {
	r.Replace(nil)
}

// Prepend inserts a node at the front of the collection
func (r *Roadmap) Prepend(n *LearningNode) {
	if n == nil {
		return
	}
	if _, exists := r.nodes[n.ID]; exists {
		return
	}
	r.nodes[n.ID] = n
	r.order = append([]string{n.ID}, r.order...)
}

// AttachChildren links children under parentID and inserts them.
// Parent linkage, depth and the parent's childrenIds are set together.
// Returns false if the parent does not exist.
func (r *Roadmap) AttachChildren(parentID string, children []*LearningNode) bool {
	parent := r.nodes[parentID]
	if parent == nil {
		return false
	}
	for _, c := range children {
		if _, exists := r.nodes[c.ID]; exists {
			continue
		}
		pid := parentID
		c.ParentID = &pid
		c.Depth = parent.Depth + 1
		if c.ChildrenIDs == nil {
			c.ChildrenIDs = []string{}
		}
		r.nodes[c.ID] = c
		r.order = append(r.order, c.ID)
		parent.ChildrenIDs = append(parent.ChildrenIDs, c.ID)
	}
	return true
}

// ToggleType flips signal/noise. Returns false if the node does not exist.
func (r *Roadmap) ToggleType(id string) bool {
	n := r.nodes[id]
	if n == nil {
		return false
	}
	n.Type = n.Type.Flip()
	return true
}

// ToggleMastery flips a node between mastered and available.
// becameMastered is true only for a transition into mastered.
func (r *Roadmap) ToggleMastery(id string) (becameMastered, ok bool) {
	n := r.nodes[id]
	if n == nil {
		return false, false
	}
	if n.Status == StatusMastered {
		n.Status = StatusAvailable
		return false, true
	}
	n.Status = StatusMastered
	return true, true
}

// UnlockNextRoot makes the first locked root after id available.
// Returns the unlocked node ID or "".
func (r *Roadmap) UnlockNextRoot(id string) string {
	n := r.nodes[id]
	if n == nil || !n.IsRoot() {
		return ""
	}
	idx := slices.Index(r.order, id)
	for _, nid := range r.order[idx+1:] {
		next := r.nodes[nid]
		if next.IsRoot() && next.Status == StatusLocked {
			next.Status = StatusAvailable
			return nid
		}
	}
	return ""
}

// MarkInProgress moves an available node to in-progress
func (r *Roadmap) MarkInProgress(id string) bool {
	n := r.nodes[id]
	if n == nil || n.Status != StatusAvailable {
		return false
	}
	n.Status = StatusInProgress
	return true
}

// AttachContent stores deep content if the node has none yet.
// Returns false if the node is missing or already has content.
func (r *Roadmap) AttachContent(id string, c *DeepContent) bool {
	n := r.nodes[id]
	if n == nil || n.DeepContent != nil || c == nil {
		return false
	}
	n.DeepContent = c
	return true
}

// CreditPomodoro adds one completed session to the node
func (r *Roadmap) CreditPomodoro(id string) bool {
	n := r.nodes[id]
	if n == nil {
		return false
	}
	n.PomodorosSpent++
	return true
}

// Delete removes a node and unlinks it from its parent.
// Children keep their parentId pointing at the removed node.
func (r *Roadmap) Delete(id string) bool {
	n := r.nodes[id]
	if n == nil {
		return false
	}
	if parent := r.nodes[n.Parent()]; parent != nil {
		parent.ChildrenIDs = slices.DeleteFunc(parent.ChildrenIDs, func(cid string) bool {
			return cid == id
		})
	}
	delete(r.nodes, id)
	r.order = slices.DeleteFunc(r.order, func(nid string) bool {
		return nid == id
	})
	return true
}

// Normalize repairs parent/child links written by older versions. Child ids
// naming missing nodes, or nodes whose parentId points elsewhere, are
// dropped; nodes missing from an existing parent's childrenIds are appended;
// depths are recomputed down from every root. Dangling parent links are kept.
// Returns the number of repairs.
func (r *Roadmap) Normalize() int {
	repairs := 0
	for _, id := range r.order {
		n := r.nodes[id]
		kept := make([]string, 0, len(n.ChildrenIDs))
		for _, cid := range n.ChildrenIDs {
			c := r.nodes[cid]
			if c == nil || c.Parent() != id || slices.Contains(kept, cid) {
				repairs++
				continue
			}
			kept = append(kept, cid)
		}
		n.ChildrenIDs = kept
	}

	for _, id := range r.order {
		n := r.nodes[id]
		if parent := r.nodes[n.Parent()]; parent != nil && !slices.Contains(parent.ChildrenIDs, id) {
			parent.ChildrenIDs = append(parent.ChildrenIDs, id)
			repairs++
		}
	}

	// Child lists now mirror parent links, so walks from roots cannot loop
	var walk func(id string, depth int)
	walk = func(id string, depth int) {
		n := r.nodes[id]
		if n.Depth != depth {
			n.Depth = depth
			repairs++
		}
		for _, cid := range n.ChildrenIDs {
			walk(cid, depth+1)
		}
	}
	for _, id := range r.order {
		n := r.nodes[id]
		switch {
		case n.ParentID == nil:
			walk(id, 0)
		case r.nodes[*n.ParentID] == nil:
			walk(id, n.Depth)
		}
	}
	return repairs
}

// Validate checks the structural invariants: children lists mirror parent
// links and depths follow their parents. Dangling parent links are allowed.
func (r *Roadmap) Validate() error {
	for _, id := range r.order {
		n := r.nodes[id]
		for _, cid := range n.ChildrenIDs {
			c := r.nodes[cid]
			if c == nil {
				return fmt.Errorf("node %s lists missing child %s", id, cid)
			}
			if c.Parent() != id {
				return fmt.Errorf("node %s lists child %s whose parent is %q", id, cid, c.Parent())
			}
		}
		if n.ParentID == nil {
			if n.Depth != 0 {
				return fmt.Errorf("root node %s has depth %d", id, n.Depth)
			}
			continue
		}
		parent := r.nodes[*n.ParentID]
		if parent == nil {
			continue
		}
		if !slices.Contains(parent.ChildrenIDs, id) {
			return fmt.Errorf("node %s is missing from parent %s children", id, parent.ID)
		}
		if n.Depth != parent.Depth+1 {
			return fmt.Errorf("node %s has depth %d, parent %s has depth %d", id, n.Depth, parent.ID, parent.Depth)
		}
	}
	return nil
}
