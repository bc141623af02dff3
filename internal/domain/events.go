package domain

import "time"

// EventKind identifies a state transition worth telling the presentation layer about
type EventKind int

const (
	EventNodeMastered EventKind = iota
	EventSessionCompleted
	EventBreakFinished
)

func (k EventKind) String() string {
	switch k {
	case EventNodeMastered:
		return "node_mastered"
	case EventSessionCompleted:
		return "session_completed"
	case EventBreakFinished:
		return "break_finished"
	default:
		return "unknown"
	}
}

// Event is emitted after a transition has been applied
type Event struct {
	Kind   EventKind
	NodeID string
	Title  string
	At     time.Time
}
