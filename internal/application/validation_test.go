package application

import (
	"errors"
	"fmt"
	"testing"

	"focusly/internal/domain"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
		wantMsg   string
	}{
		{
			name:      "valid value",
			fieldName: "topic",
			value:     "Distributed systems",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "title",
			value:     "",
			wantErr:   true,
			wantMsg:   "title: title is required",
		},
		{
			name:      "whitespace only",
			fieldName: "nodeID",
			value:     "   ",
			wantErr:   true,
			wantMsg:   "nodeID: node ID is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
				if err.Error() != tt.wantMsg {
					t.Errorf("expected message %q, got %q", tt.wantMsg, err.Error())
				}
			}
		})
	}
}

func TestValidateComplexity(t *testing.T) {
	for _, c := range []int{0, 50, 100} {
		if err := ValidateComplexity(c); err != nil {
			t.Errorf("ValidateComplexity(%d) unexpected error: %v", c, err)
		}
	}
	for _, c := range []int{-1, 101} {
		if err := ValidateComplexity(c); err == nil {
			t.Errorf("ValidateComplexity(%d) expected error", c)
		}
	}
}

func TestParseNodeType(t *testing.T) {
	tests := []struct {
		value   string
		want    domain.NodeType
		wantErr bool
	}{
		{"signal", domain.NodeTypeSignal, false},
		{" NOISE ", domain.NodeTypeNoise, false},
		{"meh", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseNodeType("type", tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseNodeType() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseNodeType() = %q, want %q", got, tt.want)
			}
			var valErr *ValidationError
			if err != nil && (!errors.As(err, &valErr) || valErr.Field != "type") {
				t.Errorf("expected ValidationError on field type, got %v", err)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"rate limited", &ProviderError{Op: "drill down", Err: ErrRateLimited}, "The content provider is busy, try again shortly"},
		{"unavailable", &ProviderError{Op: "fetch content", Err: ErrProviderUnavailable}, "No content provider configured: set an API key"},
		{"failure", fmt.Errorf("wrapped: %w", ErrProviderFailure), "Content generation failed, try again"},
		{"in flight", ErrFetchInProgress, "Already working on it"},
		{"other", errors.New("disk full"), "disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(&ProviderError{Op: "generate roadmap", Err: ErrRateLimited}) {
		t.Error("rate limit should be retryable")
	}
	if IsRetryable(ErrEmptyResult) {
		t.Error("empty result should not be retryable")
	}
}

func TestClassifyProviderError(t *testing.T) {
	err := classifyProviderError(errors.New("socket closed"))
	if !errors.Is(err, ErrProviderFailure) {
		t.Errorf("unknown errors should become provider failures, got %v", err)
	}
	if got := classifyProviderError(ErrEmptyResult); got != ErrEmptyResult {
		t.Errorf("sentinels should pass through, got %v", got)
	}
}
