package claudecli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"focusly/internal/adapters/providerjson"
	"focusly/internal/application"
	"focusly/internal/domain"
)

// Provider implements ports.ContentProvider using the Claude Code CLI
type Provider struct {
	model string
	run   func(ctx context.Context, args ...string) ([]byte, error)
}

// Option configures the Provider
type Option func(*Provider)

// WithModel sets the Claude model to use
func WithModel(model string) Option {
	return func(p *Provider) {
		if model != "" {
			p.model = model
		}
	}
}

// NewProvider creates a new Claude CLI content provider
func NewProvider(opts ...Option) *Provider {
	p := &Provider{
		model: "haiku",
		run:   runClaude,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// claudeResponse represents the JSON output from claude CLI
type claudeResponse struct {
	Type       string  `json:"type"`
	Subtype    string  `json:"subtype"`
	IsError    bool    `json:"is_error"`
	Result     string  `json:"result"`
	SessionID  string  `json:"session_id"`
	DurationMS int     `json:"duration_ms"`
	CostUSD    float64 `json:"total_cost_usd"`
}

// GenerateRoadmap asks claude for a roadmap on topic
func (p *Provider) GenerateRoadmap(ctx context.Context, topic string, depth int) ([]domain.NodeDescriptor, error) {
	prompt := providerjson.RoadmapSystemPrompt(topic) + "\n\n" + providerjson.RoadmapUserPrompt(topic, depth)
	result, err := p.ask(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return providerjson.ParseRoadmap(result)
}

// GenerateNodeContent asks claude for the deep content of one node
func (p *Provider) GenerateNodeContent(ctx context.Context, title, contextTopic string, complexity int) (*domain.DeepContent, error) {
	result, err := p.ask(ctx, providerjson.ContentPrompt(title, contextTopic, complexity))
	if err != nil {
		return nil, err
	}
	return providerjson.ParseContent(result)
}

// Available checks if the claude CLI is installed and accessible
func (p *Provider) Available() bool {
	_, err := exec.LookPath("claude")
	return err == nil
}

func (p *Provider) ask(ctx context.Context, prompt string) (string, error) {
	output, err := p.run(ctx,
		"-p", prompt,
		"--output-format", "json",
		"--model", p.model,
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", cliError(string(exitErr.Stderr))
		}
		return "", fmt.Errorf("%w: claude CLI error: %v", application.ErrProviderFailure, err)
	}

	return parseResponse(output)
}

// parseResponse unwraps the CLI envelope and returns the model's text
func parseResponse(output []byte) (string, error) {
	var response claudeResponse
	if err := json.Unmarshal(output, &response); err != nil {
		return "", fmt.Errorf("%w: failed to parse claude response: %v", application.ErrProviderFailure, err)
	}
	if response.IsError {
		return "", cliError(response.Result)
	}
	if strings.TrimSpace(response.Result) == "" {
		return "", application.ErrEmptyResult
	}
	return response.Result, nil
}

func cliError(msg string) error {
	if isRateLimit(msg) {
		return fmt.Errorf("%w: %s", application.ErrRateLimited, strings.TrimSpace(msg))
	}
	return fmt.Errorf("%w: claude returned an error: %s", application.ErrProviderFailure, strings.TrimSpace(msg))
}

func isRateLimit(msg string) bool {
	msg = strings.ToLower(msg)
	for _, hint := range []string{"rate limit", "rate_limit", "429", "overloaded", "usage limit"} {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}

func runClaude(ctx context.Context, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, "claude", args...).Output()
}
