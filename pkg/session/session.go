// Package session orchestrates a search into a network snapshot and holds
// the snapshot and filter a viewer is looking at.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dd0wney/talentgraph/pkg/logging"
	"github.com/dd0wney/talentgraph/pkg/metrics"
	"github.com/dd0wney/talentgraph/pkg/network"
	"github.com/dd0wney/talentgraph/pkg/validation"
)

var (
	// ErrSuperseded means a newer search or demo load started before this one
	// finished. Its result was discarded.
	ErrSuperseded = errors.New("search superseded by a newer request")
	// ErrNoSnapshot means nothing has been loaded yet.
	ErrNoSnapshot = errors.New("no network loaded")
)

// Result describes an installed snapshot.
type Result struct {
	Graph    *network.Graph `json:"graph"`
	Epoch    uint64         `json:"epoch"`
	Reason   FallbackReason `json:"reason,omitempty"`
	Advisory string         `json:"advisory,omitempty"`
	Skipped  int            `json:"skipped"`
}

// Snapshot is a consistent read of the session state.
type Snapshot struct {
	Graph    *network.Graph
	Filter   network.FilterConfig
	Epoch    uint64
	Reason   FallbackReason
	Advisory string
	Skipped  int
	Updated  time.Time
}

// View filters the snapshot graph with the session filter.
func (s Snapshot) View() network.View {
	if s.Graph == nil {
		return network.View{Nodes: []network.Node{}, Edges: []network.Edge{}}
	}
	return s.Graph.Filter(s.Filter)
}

// Option configures a Session.
type Option func(*Session)

// WithGate sets the profile fetch pacing.
func WithGate(l Limiter) Option {
	return func(s *Session) { s.gate = l }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithMetrics records search outcomes and snapshot sizes.
func WithMetrics(m *metrics.Registry) Option {
	return func(s *Session) { s.metrics = m }
}

// WithID names the session.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// Session owns one viewer's snapshot. Search and LoadDemo each start a new
// epoch; only the latest epoch's result is installed.
type Session struct {
	id       string
	upstream Upstream
	gate     Limiter
	logger   logging.Logger
	metrics  *metrics.Registry
	tracer   trace.Tracer

	epoch atomic.Uint64

	mu       sync.RWMutex
	graph    *network.Graph
	filter   network.FilterConfig
	reason   FallbackReason
	advisory string
	skipped  int
	updated  time.Time
	lastUsed time.Time
}

// New creates an empty session.
func New(upstream Upstream, opts ...Option) *Session {
	s := &Session{
		id:       DefaultID,
		upstream: upstream,
		gate:     NewIntervalGate(DefaultFetchInterval),
		logger:   logging.NopLogger{},
		tracer:   otel.Tracer("github.com/dd0wney/talentgraph/pkg/session"),
		filter:   network.DefaultFilterConfig(),
		lastUsed: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logging.String("session", s.id))
	return s
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Epoch returns the current epoch.
func (s *Session) Epoch() uint64 {
	return s.epoch.Load()
}

// Search runs the full pipeline for query and installs the result, which is
// either a live snapshot or the demo network with an advisory. It returns
// ErrSuperseded when a newer request started meanwhile and ctx.Err() when
// cancelled; in both cases the current snapshot is untouched.
func (s *Session) Search(ctx context.Context, query string) (*Result, error) {
	req := validation.SearchRequest{Query: query}
	if err := validation.ValidateSearchRequest(&req); err != nil {
		return nil, err
	}
	query = req.Query

	epoch := s.epoch.Add(1)
	stale := func() bool { return s.epoch.Load() != epoch }

	ctx, span := s.tracer.Start(ctx, "session.Search",
		trace.WithAttributes(
			attribute.String("session.id", s.id),
			attribute.String("search.query", query),
			attribute.Int64("session.epoch", int64(epoch)),
		),
	)
	defer span.End()

	timer := logging.StartTimer(s.logger, "search completed", logging.Query(query), logging.Epoch(epoch))

	g, reason, skipped, err := s.build(ctx, query, stale)
	if err != nil {
		outcome := "cancelled"
		if errors.Is(err, ErrSuperseded) {
			outcome = "superseded"
		}
		s.recordSearch(outcome, ReasonNone, timer.Elapsed())
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Info("search abandoned", logging.Query(query), logging.Epoch(epoch), logging.Error(err))
		return nil, err
	}
	if reason.IsFallback() {
		g = network.DemoGraph()
	}

	res := &Result{Graph: g, Epoch: epoch, Reason: reason, Advisory: reason.Advisory(), Skipped: skipped}
	if err := s.install(res); err != nil {
		s.recordSearch("superseded", ReasonNone, timer.Elapsed())
		span.SetStatus(codes.Error, err.Error())
		s.logger.Info("search result discarded", logging.Query(query), logging.Epoch(epoch))
		return nil, err
	}

	outcome := "live"
	if reason.IsFallback() {
		outcome = "fallback"
	}
	span.SetAttributes(
		attribute.String("search.outcome", outcome),
		attribute.Int("graph.nodes", len(g.Nodes)),
		attribute.Int("graph.edges", len(g.Edges)),
	)
	s.recordSearch(outcome, reason, timer.Elapsed())
	timer.End(
		logging.String("outcome", outcome),
		logging.GraphID(g.ID),
		logging.Reason(string(reason)),
		logging.Count(len(g.Nodes)),
		logging.Int("skipped", skipped))
	return res, nil
}

func (s *Session) recordSearch(outcome string, reason FallbackReason, elapsed time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordSearch(outcome, string(reason), elapsed)
	}
}

// LoadDemo installs the demo network with no advisory. It fails only with
// ErrSuperseded, when a concurrent request started after it.
func (s *Session) LoadDemo() (*Result, error) {
	epoch := s.epoch.Add(1)
	res := &Result{Graph: network.DemoGraph(), Epoch: epoch}
	if err := s.install(res); err != nil {
		return nil, err
	}
	s.logger.Info("demo network loaded", logging.GraphID(res.Graph.ID), logging.Epoch(epoch))
	return res, nil
}

func (s *Session) install(res *Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch.Load() != res.Epoch {
		return ErrSuperseded
	}
	s.graph = res.Graph
	s.reason = res.Reason
	s.advisory = res.Advisory
	s.skipped = res.Skipped
	s.updated = time.Now()
	s.lastUsed = s.updated

	if s.metrics != nil {
		s.metrics.RecordSnapshot(len(res.Graph.Nodes), len(res.Graph.Edges))
	}
	return nil
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Graph:    s.graph,
		Filter:   s.filter,
		Epoch:    s.epoch.Load(),
		Reason:   s.reason,
		Advisory: s.advisory,
		Skipped:  s.skipped,
		Updated:  s.updated,
	}
}

// Graph returns the installed snapshot, or ErrNoSnapshot.
func (s *Session) Graph() (*network.Graph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.graph == nil {
		return nil, ErrNoSnapshot
	}
	return s.graph, nil
}

// View returns the filtered view of the current snapshot.
func (s *Session) View() network.View {
	return s.Snapshot().View()
}

// Filter returns the session filter.
func (s *Session) Filter() network.FilterConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// SetFilter validates and stores cfg. An empty connection type means all.
func (s *Session) SetFilter(cfg network.FilterConfig) error {
	cfg.Skill = strings.TrimSpace(cfg.Skill)
	cfg.Location = strings.TrimSpace(cfg.Location)
	if cfg.ConnectionType == "" {
		cfg.ConnectionType = network.ConnectionAll
	}
	if err := validation.ValidateFilter(&cfg); err != nil {
		return err
	}

	s.mu.Lock()
	s.filter = cfg
	s.lastUsed = time.Now()
	s.mu.Unlock()
	return nil
}

// ResetFilter restores the default filter.
func (s *Session) ResetFilter() {
	s.mu.Lock()
	s.filter = network.DefaultFilterConfig()
	s.mu.Unlock()
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastUsed = time.Now()
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUsed
}
