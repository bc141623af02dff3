package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"focusly/internal/domain"
)

// TimerRunner drives Engine.Tick once per interval for hosts without their own
// render loop, such as the MCP server. The TUI schedules ticks itself.
type TimerRunner struct {
	engine   *Engine
	interval time.Duration
	logger   *zap.Logger
	onTick   func(domain.TimerState)
}

// NewTimerRunner creates a runner ticking every second
func NewTimerRunner(engine *Engine, logger *zap.Logger) *TimerRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimerRunner{
		engine:   engine,
		interval: time.Second,
		logger:   logger,
	}
}

// OnTick registers a callback invoked after every tick that changed the timer
func (r *TimerRunner) OnTick(fn func(domain.TimerState)) {
	r.onTick = fn
}

// Run blocks until ctx is cancelled
func (r *TimerRunner) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if !r.engine.Timer().Running() {
				continue
			}
			st, err := r.engine.Tick(ctx)
			if err != nil {
				r.logger.Warn("timer tick failed", zap.Error(err))
			}
			if r.onTick != nil {
				r.onTick(st)
			}
		}
	}
}
