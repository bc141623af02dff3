package ports

import (
	"context"

	"focusly/internal/domain"
)

// Snapshot is the persisted application state. Timer state is never persisted.
type Snapshot struct {
	Nodes []*domain.LearningNode
	Stats domain.UserStats
	Topic string
}

// StateRepository loads and saves the persisted documents
type StateRepository interface {
	Load(ctx context.Context) (*Snapshot, error)

	// Save writes all three documents atomically
	Save(ctx context.Context, snap *Snapshot) error

	Close() error
}
