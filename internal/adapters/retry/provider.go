package retry

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"focusly/internal/adapters/metrics"
	"focusly/internal/application"
	"focusly/internal/domain"
	"focusly/internal/ports"
)

const (
	DefaultMaxAttempts = 4
	DefaultBaseDelay   = time.Second
)

// Config bounds the retry loop and the client-side request rate
type Config struct {
	MaxAttempts       int
	BaseDelay         time.Duration
	RequestsPerMinute int // 0 disables the limiter
}

// Provider decorates a ContentProvider with rate limiting, exponential
// backoff on ErrRateLimited, and the ordering guarantee on roadmaps.
type Provider struct {
	inner   ports.ContentProvider
	cfg     Config
	limiter *rate.Limiter
	logger  *zap.Logger
	metrics *metrics.Collector
}

// Option configures the Provider
type Option func(*Provider)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(p *Provider) {
		p.logger = l
	}
}

// WithMetrics records calls and retries on c
func WithMetrics(c *metrics.Collector) Option {
	return func(p *Provider) {
		p.metrics = c
	}
}

// New wraps inner
func New(inner ports.ContentProvider, cfg Config, opts ...Option) *Provider {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}

	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
	}

	p := &Provider{
		inner:   inner,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, 1),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Available reports whether the wrapped provider can be called
func (p *Provider) Available() bool {
	return p.inner.Available()
}

// GenerateRoadmap returns descriptors sorted by ascending difficulty
func (p *Provider) GenerateRoadmap(ctx context.Context, topic string, depth int) ([]domain.NodeDescriptor, error) {
	var out []domain.NodeDescriptor
	err := p.do(ctx, "roadmap", func() error {
		descriptors, err := p.inner.GenerateRoadmap(ctx, topic, depth)
		if err != nil {
			return err
		}
		if len(descriptors) == 0 {
			return application.ErrEmptyResult
		}
		out = slices.Clone(descriptors)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(out, func(a, b domain.NodeDescriptor) int {
		return a.DifficultyLevel - b.DifficultyLevel
	})
	return out, nil
}

// GenerateNodeContent returns the content or an error, never partial content
func (p *Provider) GenerateNodeContent(ctx context.Context, title, contextTopic string, complexity int) (*domain.DeepContent, error) {
	var out *domain.DeepContent
	err := p.do(ctx, "content", func() error {
		content, err := p.inner.GenerateNodeContent(ctx, title, contextTopic, complexity)
		if err != nil {
			return err
		}
		if content == nil {
			return application.ErrEmptyResult
		}
		out = content
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Provider) do(ctx context.Context, op string, call func() error) error {
	start := time.Now()
	var lastErr error

	for attempt := 0; attempt < p.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			backoff := p.cfg.BaseDelay * time.Duration(1<<(attempt-1))
			p.logger.Debug("provider rate limited, backing off",
				zap.String("op", op),
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", backoff),
			)
			if p.metrics != nil {
				p.metrics.ObserveRetry(op)
			}
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				p.observe(op, ctx.Err(), start)
				return ctx.Err()
			}
		}

		if err := p.limiter.Wait(ctx); err != nil {
			p.observe(op, err, start)
			return fmt.Errorf("rate limiter error: %w", err)
		}

		err := call()
		if err == nil {
			p.observe(op, nil, start)
			return nil
		}
		lastErr = err
		if !errors.Is(err, application.ErrRateLimited) {
			p.observe(op, err, start)
			return err
		}
	}

	p.observe(op, lastErr, start)
	p.logger.Warn("provider retries exhausted",
		zap.String("op", op),
		zap.Int("attempts", p.cfg.MaxAttempts),
		zap.Error(lastErr),
	)
	return fmt.Errorf("max attempts exceeded: %w", lastErr)
}

func (p *Provider) observe(op string, err error, start time.Time) {
	if p.metrics == nil {
		return
	}
	p.metrics.ObserveProvider(op, status(err), time.Since(start))
}

func status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, application.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, application.ErrEmptyResult):
		return "empty"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}
