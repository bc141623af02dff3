package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for provider-backed operations
var (
	ErrRateLimited     = errors.New("rate limited")
	ErrProviderFailure = errors.New("provider failure")
	ErrEmptyResult     = errors.New("empty result")

	// ErrFetchInProgress is returned when the same node already has a
	// provider call pending. Nothing was mutated.
	ErrFetchInProgress = errors.New("request already in progress")

	ErrProviderUnavailable = fmt.Errorf("content provider not configured: %w", ErrProviderFailure)

	// ErrNodeNotFound is returned by commands addressing a node that does not exist
	ErrNodeNotFound = errors.New("node not found")
)

// classifyProviderError makes sure err matches one of the provider sentinels
func classifyProviderError(err error) error {
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrProviderFailure) || errors.Is(err, ErrEmptyResult) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrProviderFailure, err)
}

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ProviderError wraps a failed content provider call with the operation name
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err is a rate limit the user can retry shortly
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// UserMessage turns a provider error into a short message for the presentation layer
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRateLimited):
		return "The content provider is busy, try again shortly"
	case errors.Is(err, ErrEmptyResult):
		return "The content provider returned nothing, try again"
	case errors.Is(err, ErrFetchInProgress):
		return "Already working on it"
	case errors.Is(err, ErrProviderUnavailable):
		return "No content provider configured: set an API key"
	case errors.Is(err, ErrProviderFailure):
		return "Content generation failed, try again"
	default:
		return err.Error()
	}
}
