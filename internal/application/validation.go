package application

import (
	"fmt"
	"strings"

	"focusly/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "nodeID" -> "node ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"nodeID":   "node ID",
		"parentID": "parent ID",
		"topic":    "topic",
		"title":    "title",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateComplexity checks the deep content complexity is within 0-100
func ValidateComplexity(complexity int) error {
	if complexity < 0 || complexity > 100 {
		return &ValidationError{
			Field:   "complexity",
			Message: fmt.Sprintf("must be between 0 and 100, got: %d", complexity),
		}
	}
	return nil
}

// ParseNodeType validates a user supplied node type
func ParseNodeType(fieldName, value string) (domain.NodeType, error) {
	t, err := domain.ParseNodeType(value)
	if err != nil {
		return "", &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected signal or noise, got: %s", value),
		}
	}
	return t, nil
}
