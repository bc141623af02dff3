package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"focusly/internal/adapters/providerjson"
	"focusly/internal/application"
	"focusly/internal/domain"
)

const (
	// DefaultBaseURL is Gemini's OpenAI-compatible endpoint
	DefaultBaseURL      = "https://generativelanguage.googleapis.com/v1beta/openai"
	DefaultRoadmapModel = "gemini-2.5-flash"
	DefaultContentModel = "gemini-2.5-flash"
)

// Provider implements ports.ContentProvider over an OpenAI-compatible chat API
type Provider struct {
	client       *openai.Client
	apiKey       string
	roadmapModel string
	contentModel string
	logger       *zap.Logger
}

// Config selects the endpoint and models
type Config struct {
	APIKey       string
	BaseURL      string
	RoadmapModel string
	ContentModel string
	HTTPClient   *http.Client
}

// New creates a provider. An empty API key yields a provider that reports
// itself unavailable.
func New(cfg Config, logger *zap.Logger) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RoadmapModel == "" {
		cfg.RoadmapModel = DefaultRoadmapModel
	}
	if cfg.ContentModel == "" {
		cfg.ContentModel = DefaultContentModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.HTTPClient != nil {
		clientCfg.HTTPClient = cfg.HTTPClient
	}

	return &Provider{
		client:       openai.NewClientWithConfig(clientCfg),
		apiKey:       cfg.APIKey,
		roadmapModel: cfg.RoadmapModel,
		contentModel: cfg.ContentModel,
		logger:       logger,
	}
}

// Available reports whether an API key is configured
func (p *Provider) Available() bool {
	return p.apiKey != ""
}

// GenerateRoadmap asks the model for a roadmap on topic
func (p *Provider) GenerateRoadmap(ctx context.Context, topic string, depth int) ([]domain.NodeDescriptor, error) {
	text, err := p.complete(ctx, p.roadmapModel,
		providerjson.RoadmapSystemPrompt(topic),
		providerjson.RoadmapUserPrompt(topic, depth),
	)
	if err != nil {
		return nil, err
	}
	return providerjson.ParseRoadmap(text)
}

// GenerateNodeContent asks the model for deep content on one node
func (p *Provider) GenerateNodeContent(ctx context.Context, title, contextTopic string, complexity int) (*domain.DeepContent, error) {
	text, err := p.complete(ctx, p.contentModel,
		"You are an expert tutor. Tone: professional, signal-dense, precise.",
		providerjson.ContentPrompt(title, contextTopic, complexity),
	)
	if err != nil {
		return nil, err
	}
	return providerjson.ParseContent(text)
}

func (p *Provider) complete(ctx context.Context, model, system, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	p.logger.Debug("chat completion", zap.String("model", model))
	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", application.ErrEmptyResult
	}
	p.logger.Debug("chat completion finished",
		zap.String("model", model),
		zap.String("finish_reason", string(resp.Choices[0].FinishReason)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)
	return resp.Choices[0].Message.Content, nil
}

// classify maps transport errors onto the provider sentinels
func classify(err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	if status == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", application.ErrRateLimited, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: chat completion failed: %v", application.ErrProviderFailure, err)
}
