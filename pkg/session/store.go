package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/talentgraph/pkg/metrics"
)

// DefaultID names the session used when a request carries no session id.
const DefaultID = "default"

// Store defaults.
const (
	DefaultMaxSessions = 1000
	DefaultIdleTimeout = 30 * time.Minute
)

// Factory builds a session for an id.
type Factory func(id string) *Session

// Store hands out sessions by id, creating them on first use. Each session
// is loaded with the demo network when created.
type Store struct {
	factory     Factory
	maxSessions int
	idleTimeout time.Duration
	metrics     *metrics.Registry

	sessions map[string]*Session
	mu       sync.Mutex
}

// NewStore creates a store. maxSessions and idleTimeout fall back to the
// defaults when not positive.
func NewStore(factory Factory, maxSessions int, idleTimeout time.Duration, m *metrics.Registry) *Store {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &Store{
		factory:     factory,
		maxSessions: maxSessions,
		idleTimeout: idleTimeout,
		metrics:     m,
		sessions:    make(map[string]*Session),
	}
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.NewString()
}

// Get returns the session for id, creating it if needed. An empty id selects
// the default session.
func (st *Store) Get(id string) *Session {
	if id == "" {
		id = DefaultID
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if s, ok := st.sessions[id]; ok {
		s.touch()
		return s
	}

	if len(st.sessions) >= st.maxSessions {
		st.evictLocked()
	}

	s := st.factory(id)
	// the demo load cannot be superseded before anyone else sees s
	_, _ = s.LoadDemo()
	st.sessions[id] = s
	st.updateGauge()
	return s
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep drops sessions idle for longer than the idle timeout. The default
// session is kept.
func (st *Store) Sweep(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, s := range st.sessions {
		if id == DefaultID {
			continue
		}
		if now.Sub(s.idleSince()) > st.idleTimeout {
			delete(st.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		st.updateGauge()
	}
	return removed
}

// evictLocked drops the least recently used non-default session.
func (st *Store) evictLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, s := range st.sessions {
		if id == DefaultID {
			continue
		}
		if used := s.idleSince(); oldestID == "" || used.Before(oldest) {
			oldestID, oldest = id, used
		}
	}
	if oldestID != "" {
		delete(st.sessions, oldestID)
	}
}

func (st *Store) updateGauge() {
	if st.metrics != nil {
		st.metrics.ActiveSessions.Set(float64(len(st.sessions)))
	}
}
