package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusly/internal/adapters/metrics"
	"focusly/internal/application"
	"focusly/internal/domain"
)

type scriptedProvider struct {
	errs        []error
	descriptors []domain.NodeDescriptor
	content     *domain.DeepContent
	calls       int
}

func (s *scriptedProvider) next() error {
	s.calls++
	if len(s.errs) == 0 {
		return nil
	}
	err := s.errs[0]
	s.errs = s.errs[1:]
	return err
}

func (s *scriptedProvider) GenerateRoadmap(ctx context.Context, topic string, depth int) ([]domain.NodeDescriptor, error) {
	if err := s.next(); err != nil {
		return nil, err
	}
	return s.descriptors, nil
}

func (s *scriptedProvider) GenerateNodeContent(ctx context.Context, title, contextTopic string, complexity int) (*domain.DeepContent, error) {
	if err := s.next(); err != nil {
		return nil, err
	}
	return s.content, nil
}

func (s *scriptedProvider) Available() bool { return true }

func fastConfig(attempts int) Config {
	return Config{MaxAttempts: attempts, BaseDelay: time.Millisecond}
}

func TestProvider_RetriesRateLimit(t *testing.T) {
	inner := &scriptedProvider{
		errs:    []error{application.ErrRateLimited, application.ErrRateLimited},
		content: &domain.DeepContent{ExecutiveSummary: "ok"},
	}
	m := metrics.New()
	p := New(inner, fastConfig(4), WithMetrics(m))

	content, err := p.GenerateNodeContent(context.Background(), "t", "c", 50)
	require.NoError(t, err)
	assert.Equal(t, "ok", content.ExecutiveSummary)
	assert.Equal(t, 3, inner.calls)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ProviderRetries.WithLabelValues("content")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderRequests.WithLabelValues("content", "ok")))
}

func TestProvider_GivesUpAfterMaxAttempts(t *testing.T) {
	inner := &scriptedProvider{
		errs: []error{application.ErrRateLimited, application.ErrRateLimited, application.ErrRateLimited},
	}
	p := New(inner, fastConfig(3))

	_, err := p.GenerateRoadmap(context.Background(), "Go", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, application.ErrRateLimited)
	assert.Contains(t, err.Error(), "max attempts exceeded")
	assert.Equal(t, 3, inner.calls)
}

func TestProvider_DoesNotRetryOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	inner := &scriptedProvider{errs: []error{boom}}
	p := New(inner, fastConfig(4))

	_, err := p.GenerateRoadmap(context.Background(), "Go", 0)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, inner.calls)
}

func TestProvider_SortsByDifficulty(t *testing.T) {
	inner := &scriptedProvider{descriptors: []domain.NodeDescriptor{
		{Title: "c", DifficultyLevel: 60},
		{Title: "a", DifficultyLevel: 0},
		{Title: "f", DifficultyLevel: 100},
		{Title: "b", DifficultyLevel: 5},
		{Title: "e", DifficultyLevel: 30},
		{Title: "d", DifficultyLevel: 10},
		{Title: "b2", DifficultyLevel: 5},
	}}
	p := New(inner, fastConfig(1))

	out, err := p.GenerateRoadmap(context.Background(), "X", 0)
	require.NoError(t, err)

	var titles []string
	for _, d := range out {
		titles = append(titles, d.Title)
	}
	assert.Equal(t, []string{"a", "b", "b2", "d", "e", "c", "f"}, titles)
}

func TestProvider_EmptyResults(t *testing.T) {
	p := New(&scriptedProvider{}, fastConfig(2))

	_, err := p.GenerateRoadmap(context.Background(), "X", 0)
	assert.ErrorIs(t, err, application.ErrEmptyResult)

	_, err = p.GenerateNodeContent(context.Background(), "t", "c", 50)
	assert.ErrorIs(t, err, application.ErrEmptyResult)
}

func TestProvider_ContextCancelledDuringBackoff(t *testing.T) {
	inner := &scriptedProvider{errs: []error{application.ErrRateLimited, application.ErrRateLimited}}
	p := New(inner, Config{MaxAttempts: 3, BaseDelay: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.GenerateRoadmap(ctx, "X", 0)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, inner.calls)
}

func TestNew_Defaults(t *testing.T) {
	p := New(&scriptedProvider{}, Config{})
	assert.Equal(t, DefaultMaxAttempts, p.cfg.MaxAttempts)
	assert.Equal(t, DefaultBaseDelay, p.cfg.BaseDelay)
	assert.True(t, p.Available())
}
