package application

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"focusly/internal/domain"
	"focusly/internal/ports"
)

// DefaultContextTopic is sent to the provider when no topic has been set
const DefaultContextTopic = "Expert Mastery"

// DefaultComplexity is the deep content complexity used when none is given
const DefaultComplexity = 50

// NodeFilter narrows node listings
type NodeFilter struct {
	SignalOnly bool
}

// Engine owns the roadmap, the focus timer and the stats. Every mutation runs
// in one critical section and is persisted before the lock is released.
// Provider calls run outside the lock.
type Engine struct {
	provider ports.ContentProvider
	repo     ports.StateRepository
	logger   *zap.Logger
	clock    func() time.Time
	newID    func() string

	unlockAll   bool
	workSeconds int

	mu       sync.Mutex
	roadmap  *domain.Roadmap
	timer    *domain.Timer
	stats    domain.UserStats
	topic    string
	inflight map[string]bool

	subMu  sync.Mutex
	subs   map[int]func(domain.Event)
	nextID int
}

// Option configures the Engine
type Option func(*Engine)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithClock replaces time.Now
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithIDGenerator replaces the uuid node ID generator
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) {
		e.newID = gen
	}
}

// WithUnlockAll makes every root of a new roadmap available instead of only the first
func WithUnlockAll(unlock bool) Option {
	return func(e *Engine) {
		e.unlockAll = unlock
	}
}

// WithWorkSeconds sets the work interval length
func WithWorkSeconds(seconds int) Option {
	return func(e *Engine) {
		e.workSeconds = seconds
	}
}

// NewEngine creates an engine with an empty state. Call Load to rehydrate.
// repo may be nil for a purely in-memory engine.
func NewEngine(provider ports.ContentProvider, repo ports.StateRepository, opts ...Option) *Engine {
	e := &Engine{
		provider:    provider,
		repo:        repo,
		logger:      zap.NewNop(),
		clock:       time.Now,
		newID:       uuid.NewString,
		workSeconds: domain.WorkSeconds,
		inflight:    make(map[string]bool),
		subs:        make(map[int]func(domain.Event)),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.roadmap = domain.NewRoadmap(nil)
	e.timer = domain.NewTimer(e.workSeconds)
	e.stats = domain.NewUserStats()
	return e
}

// Load replaces the in-memory state with the persisted snapshot
func (e *Engine) Load(ctx context.Context) error {
	if e.repo == nil {
		return nil
	}
	snap, err := e.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	roadmap := domain.NewRoadmap(snap.Nodes)
	if repairs := roadmap.Normalize(); repairs > 0 {
		e.logger.Warn("repaired persisted roadmap links", zap.Int("repairs", repairs))
	}
	if err := roadmap.Validate(); err != nil {
		e.logger.Warn("persisted roadmap is inconsistent", zap.Error(err))
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.roadmap = roadmap
	e.stats = snap.Stats
	if e.stats.MasteryHistory == nil {
		e.stats.MasteryHistory = []domain.MasterySample{}
	}
	e.topic = snap.Topic
	e.logger.Info("state loaded",
		zap.Int("nodes", roadmap.Len()),
		zap.String("topic", snap.Topic),
	)
	return nil
}

// Subscribe registers fn for every event. The returned func unsubscribes.
// fn runs on the goroutine that caused the event, after the state lock is released.
func (e *Engine) Subscribe(fn func(domain.Event)) func() {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	id := e.nextID
	e.nextID++
	e.subs[id] = fn
	return func() {
		e.subMu.Lock()
		defer e.subMu.Unlock()
		delete(e.subs, id)
	}
}

func (e *Engine) emit(events []domain.Event) {
	if len(events) == 0 {
		return
	}
	e.subMu.Lock()
	fns := make([]func(domain.Event), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	e.subMu.Unlock()

	for _, ev := range events {
		for _, fn := range fns {
			fn(ev)
		}
	}
}

// saveLocked persists the current state. Caller must hold e.mu.
func (e *Engine) saveLocked(ctx context.Context) error {
	if e.repo == nil {
		return nil
	}
	stats := e.stats
	stats.MasteryHistory = append([]domain.MasterySample(nil), e.stats.MasteryHistory...)
	snap := &ports.Snapshot{
		Nodes: e.roadmap.Nodes(),
		Stats: stats,
		Topic: e.topic,
	}
	if err := e.repo.Save(ctx, snap); err != nil {
		e.logger.Error("failed to save state", zap.Error(err))
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

func (e *Engine) providerReady(op string) error {
	if e.provider == nil || !e.provider.Available() {
		return &ProviderError{Op: op, Err: ErrProviderUnavailable}
	}
	return nil
}

// beginRequest marks key as in flight. Caller must hold e.mu.
func (e *Engine) beginRequest(key string) bool {
	if e.inflight[key] {
		return false
	}
	e.inflight[key] = true
	return true
}

// CreateRoadmap asks the provider for root nodes and replaces the whole roadmap.
// A blank topic is a no-op. On failure the previous roadmap is untouched.
func (e *Engine) CreateRoadmap(ctx context.Context, topic string) ([]*domain.LearningNode, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, nil
	}
	const op = "generate roadmap"
	if err := e.providerReady(op); err != nil {
		return nil, err
	}

	e.mu.Lock()
	if !e.beginRequest("roadmap") {
		e.mu.Unlock()
		return nil, ErrFetchInProgress
	}
	e.mu.Unlock()

	e.logger.Info("generating roadmap", zap.String("topic", topic))
	descriptors, err := e.provider.GenerateRoadmap(ctx, topic, 0)

	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inflight, "roadmap")

	if err != nil {
		e.logger.Warn("roadmap generation failed", zap.String("topic", topic), zap.Error(err))
		return nil, &ProviderError{Op: op, Err: classifyProviderError(err)}
	}
	if len(descriptors) == 0 {
		return nil, &ProviderError{Op: op, Err: ErrEmptyResult}
	}

	now := e.clock()
	roots := make([]*domain.LearningNode, 0, len(descriptors))
	for i, d := range descriptors {
		status := domain.StatusLocked
		if i == 0 || e.unlockAll {
			status = domain.StatusAvailable
		}
		roots = append(roots, domain.NodeFromDescriptor(e.newID(), d, status, now))
	}
	e.roadmap.Replace(roots)
	e.topic = topic

	if err := e.saveLocked(ctx); err != nil {
		return nil, err
	}
	e.logger.Info("roadmap created", zap.String("topic", topic), zap.Int("nodes", len(roots)))
	return e.roadmap.Nodes(), nil
}

// DrillDown generates children under parentID.
// A missing parent is a no-op; a drill-down already pending for it returns ErrFetchInProgress.
func (e *Engine) DrillDown(ctx context.Context, parentID string) ([]*domain.LearningNode, error) {
	const op = "drill down"

	e.mu.Lock()
	parent := e.roadmap.Get(parentID)
	if parent == nil {
		e.mu.Unlock()
		return nil, nil
	}
	if err := e.providerReady(op); err != nil {
		e.mu.Unlock()
		return nil, err
	}
	key := "drill:" + parentID
	if !e.beginRequest(key) {
		e.mu.Unlock()
		return nil, ErrFetchInProgress
	}
	title, depth := parent.Title, parent.Depth+1
	e.mu.Unlock()

	e.logger.Info("drilling down", zap.String("parent_id", parentID), zap.Int("depth", depth))
	descriptors, err := e.provider.GenerateRoadmap(ctx, title, depth)

	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inflight, key)

	if err != nil {
		e.logger.Warn("drill down failed", zap.String("parent_id", parentID), zap.Error(err))
		return nil, &ProviderError{Op: op, Err: classifyProviderError(err)}
	}
	if len(descriptors) == 0 {
		return nil, &ProviderError{Op: op, Err: ErrEmptyResult}
	}

	now := e.clock()
	children := make([]*domain.LearningNode, 0, len(descriptors))
	for _, d := range descriptors {
		children = append(children, domain.NodeFromDescriptor(e.newID(), d, domain.StatusAvailable, now))
	}
	if !e.roadmap.AttachChildren(parentID, children) {
		// Parent was deleted while the provider was working
		return nil, nil
	}

	if err := e.saveLocked(ctx); err != nil {
		return nil, err
	}
	return e.roadmap.Children(parentID), nil
}

// AddNode captures a manual root node. A blank title is a no-op.
func (e *Engine) AddNode(ctx context.Context, title string, t domain.NodeType) (*domain.LearningNode, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := domain.ManualNode(e.newID(), title, t, e.clock())
	if n == nil {
		return nil, nil
	}
	e.roadmap.Prepend(n)
	if err := e.saveLocked(ctx); err != nil {
		return nil, err
	}
	return n.Clone(), nil
}

// ToggleType flips a node between signal and noise
func (e *Engine) ToggleType(ctx context.Context, id string) (*domain.LearningNode, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.roadmap.ToggleType(id) {
		return nil, nil
	}
	if err := e.saveLocked(ctx); err != nil {
		return nil, err
	}
	return e.roadmap.Get(id).Clone(), nil
}

// ToggleMastery flips a node between mastered and available. Only a transition
// into mastered counts towards the stats; revoking mastery never decrements.
func (e *Engine) ToggleMastery(ctx context.Context, id string) (*domain.LearningNode, error) {
	e.mu.Lock()

	became, ok := e.roadmap.ToggleMastery(id)
	if !ok {
		e.mu.Unlock()
		return nil, nil
	}

	var events []domain.Event
	now := e.clock()
	n := e.roadmap.Get(id)
	if became {
		e.stats.RecordMastery(now)
		if unlocked := e.roadmap.UnlockNextRoot(id); unlocked != "" {
			e.logger.Debug("unlocked next node", zap.String("node_id", unlocked))
		}
		events = append(events, domain.Event{
			Kind:   domain.EventNodeMastered,
			NodeID: id,
			Title:  n.Title,
			At:     now,
		})
	}

	err := e.saveLocked(ctx)
	out := n.Clone()
	e.mu.Unlock()

	if err != nil {
		return nil, err
	}
	e.emit(events)
	return out, nil
}

// DeleteNode removes a node. Its children keep their dangling parent reference.
func (e *Engine) DeleteNode(ctx context.Context, id string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.roadmap.Delete(id) {
		return false, nil
	}
	if err := e.saveLocked(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// ClearRoadmap removes every node and the topic
func (e *Engine) ClearRoadmap(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.roadmap.Clear()
	e.topic = ""
	return e.saveLocked(ctx)
}

// FetchDeepContent returns the node's deep content, asking the provider at most
// once per node. A missing node returns (nil, nil). On provider failure the node
// is unchanged so the call can be retried with any complexity.
func (e *Engine) FetchDeepContent(ctx context.Context, id string, complexity int) (*domain.DeepContent, error) {
	const op = "fetch content"
	complexity = min(max(complexity, 0), 100)

	e.mu.Lock()
	n := e.roadmap.Get(id)
	if n == nil {
		e.mu.Unlock()
		return nil, nil
	}
	if n.DeepContent != nil {
		c := n.DeepContent.Clone()
		e.mu.Unlock()
		return c, nil
	}
	if err := e.providerReady(op); err != nil {
		e.mu.Unlock()
		return nil, err
	}
	key := "content:" + id
	if !e.beginRequest(key) {
		e.mu.Unlock()
		return nil, ErrFetchInProgress
	}
	title := n.Title
	contextTopic := e.topic
	if contextTopic == "" {
		contextTopic = DefaultContextTopic
	}
	e.mu.Unlock()

	e.logger.Info("fetching deep content",
		zap.String("node_id", id),
		zap.Int("complexity", complexity),
	)
	content, err := e.provider.GenerateNodeContent(ctx, title, contextTopic, complexity)

	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inflight, key)

	if err != nil {
		e.logger.Warn("deep content failed", zap.String("node_id", id), zap.Error(err))
		return nil, &ProviderError{Op: op, Err: classifyProviderError(err)}
	}
	if content == nil {
		return nil, &ProviderError{Op: op, Err: ErrEmptyResult}
	}
	if !e.roadmap.AttachContent(id, content) {
		if n := e.roadmap.Get(id); n != nil && n.DeepContent != nil {
			return n.DeepContent.Clone(), nil
		}
		return nil, nil
	}
	if err := e.saveLocked(ctx); err != nil {
		return nil, err
	}
	return content.Clone(), nil
}

// StartFocus begins a work interval on a node, abandoning any running session.
// An available node becomes in-progress. A missing node is a no-op.
func (e *Engine) StartFocus(ctx context.Context, id string) (domain.TimerState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.roadmap.Get(id) == nil {
		return e.timer.State(), nil
	}
	e.timer.StartFocus(id)
	if e.roadmap.MarkInProgress(id) {
		if err := e.saveLocked(ctx); err != nil {
			return e.timer.State(), err
		}
	}
	e.logger.Debug("focus started", zap.String("node_id", id))
	return e.timer.State(), nil
}

// Tick advances the timer by one second. Completing a work interval credits the
// node and the stats exactly once.
func (e *Engine) Tick(ctx context.Context) (domain.TimerState, error) {
	e.mu.Lock()

	var (
		events []domain.Event
		err    error
	)
	switch e.timer.Tick() {
	case domain.TickCompleted:
		st := e.timer.State()
		now := e.clock()
		ev := domain.Event{Kind: domain.EventSessionCompleted, NodeID: st.ActiveNodeID, At: now}
		if e.roadmap.CreditPomodoro(st.ActiveNodeID) {
			ev.Title = e.roadmap.Get(st.ActiveNodeID).Title
		}
		e.stats.RecordSession(st.Duration, now)
		events = append(events, ev)
		err = e.saveLocked(ctx)
		e.logger.Info("focus session completed",
			zap.String("node_id", st.ActiveNodeID),
			zap.Int("total_sessions", st.TotalSessions),
		)
	case domain.TickBreakOver:
		events = append(events, domain.Event{Kind: domain.EventBreakFinished, At: e.clock()})
	}
	st := e.timer.State()
	e.mu.Unlock()

	e.emit(events)
	return st, err
}

// ToggleTimer pauses or resumes the current work interval
func (e *Engine) ToggleTimer() domain.TimerState {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.timer.Toggle()
	return e.timer.State()
}

// ExitFocus abandons the current session or break
func (e *Engine) ExitFocus() domain.TimerState {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.timer.Exit()
	return e.timer.State()
}

// StartBreak starts a rest interval after a completed session
func (e *Engine) StartBreak() domain.TimerState {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.timer.StartBreak()
	return e.timer.State()
}

// Nodes returns copies of the nodes in collection order
func (e *Engine) Nodes(filter NodeFilter) []*domain.LearningNode {
	e.mu.Lock()
	defer e.mu.Unlock()

	nodes := e.roadmap.Nodes()
	if !filter.SignalOnly {
		return nodes
	}
	out := nodes[:0]
	for _, n := range nodes {
		if n.Type == domain.NodeTypeSignal {
			out = append(out, n)
		}
	}
	return out
}

// Node returns a copy of one node or nil
func (e *Engine) Node(id string) *domain.LearningNode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.roadmap.Get(id).Clone()
}

// Children returns copies of a node's children
func (e *Engine) Children(id string) []*domain.LearningNode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.roadmap.Children(id)
}

// Topic returns the current roadmap topic
func (e *Engine) Topic() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.topic
}

// Stats returns a copy of the user stats
func (e *Engine) Stats() domain.UserStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.stats
	s.MasteryHistory = append([]domain.MasterySample(nil), e.stats.MasteryHistory...)
	return s
}

// Timer returns the timer state
func (e *Engine) Timer() domain.TimerState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timer.State()
}

// Summary derives roadmap counts for the stats view
func (e *Engine) Summary() domain.RoadmapSummary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.Summarize(e.roadmap.Nodes())
}

// Pending reports whether a provider request for key is in flight.
// Keys are "roadmap", "drill:<id>" and "content:<id>".
func (e *Engine) Pending(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inflight[key]
}

// Import replaces the whole state with snap, for restoring exports
func (e *Engine) Import(ctx context.Context, snap *ports.Snapshot) error {
	roadmap := domain.NewRoadmap(snap.Nodes)
	if repairs := roadmap.Normalize(); repairs > 0 {
		e.logger.Info("repaired imported roadmap links", zap.Int("repairs", repairs))
	}
	if err := roadmap.Validate(); err != nil {
		return &ValidationError{Field: "nodes", Message: err.Error()}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.roadmap = roadmap
	e.stats = snap.Stats
	if e.stats.MasteryHistory == nil {
		e.stats.MasteryHistory = []domain.MasterySample{}
	}
	e.topic = snap.Topic
	e.timer.Exit()
	return e.saveLocked(ctx)
}

// Export returns a snapshot of the persisted documents
func (e *Engine) Export() *ports.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.stats
	s.MasteryHistory = append([]domain.MasterySample(nil), e.stats.MasteryHistory...)
	return &ports.Snapshot{
		Nodes: e.roadmap.Nodes(),
		Stats: s,
		Topic: e.topic,
	}
}
