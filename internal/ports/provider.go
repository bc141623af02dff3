package ports

import (
	"context"

	"focusly/internal/domain"
)

// ContentProvider generates roadmap nodes and deep content.
// Implementations return errors wrapping application.ErrRateLimited,
// application.ErrProviderFailure or application.ErrEmptyResult.
type ContentProvider interface {
	// GenerateRoadmap proposes nodes for topic at the given depth,
	// sorted by ascending difficulty
	GenerateRoadmap(ctx context.Context, topic string, depth int) ([]domain.NodeDescriptor, error)

	// GenerateNodeContent produces the deep content for one node.
	// complexity is in [0, 100].
	GenerateNodeContent(ctx context.Context, title, contextTopic string, complexity int) (*domain.DeepContent, error)

	// Available returns true if the provider is configured and reachable
	Available() bool
}
