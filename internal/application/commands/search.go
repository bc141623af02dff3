package commands

import (
	"context"
	"sort"
	"strings"

	"focusly/internal/application"
	"focusly/internal/domain"
)

// SearchResult is a node with its relevance to the query
type SearchResult struct {
	Node  *domain.LearningNode
	Score int
}

// SearchCommand filters the roadmap with fuzzy matching
type SearchCommand struct {
	engine *application.Engine
	Query  string
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(engine *application.Engine, query string) *SearchCommand {
	return &SearchCommand{
		engine: engine,
		Query:  query,
	}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	query := strings.TrimSpace(c.Query)
	if len(query) < 2 {
		return nil, nil
	}
	return FuzzySort(c.engine.Nodes(application.NodeFilter{}), query), nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Check for exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		// Bonus if it starts with query
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: check if chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && (target[i-1] == ' ' || target[i-1] == '.' || target[i-1] == '-') {
				score += 10 // after separator
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

// FuzzySort ranks nodes by their best match across title, description and
// search queries. Nodes that do not match are dropped.
func FuzzySort(nodes []*domain.LearningNode, query string) []SearchResult {
	scored := make([]SearchResult, 0, len(nodes))

	for _, n := range nodes {
		best := max(FuzzyScore(n.Title, query), FuzzyScore(n.Description, query)/2)
		for _, q := range n.SearchQueries {
			best = max(best, FuzzyScore(q, query)/2)
		}

		if best > 0 {
			scored = append(scored, SearchResult{
				Node:  n,
				Score: best,
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
