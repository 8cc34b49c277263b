package scanner

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Registry creates and tracks scanning sessions, one isolated gate and
// history per session. Only the map itself is guarded; each session remains
// single-owner and unlocked.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	detector Detector
	resolver Resolver
	cooldown time.Duration
	base     zerolog.Logger
	logger   zerolog.Logger
}

// NewRegistry creates a session registry sharing the stateless detector and
// resolver across sessions.
func NewRegistry(detector Detector, resolver Resolver, cooldown time.Duration, logger zerolog.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		detector: detector,
		resolver: resolver,
		cooldown: cooldown,
		base:     logger,
		logger:   logger.With().Str("component", "registry").Logger(),
	}
}

// Create starts a new isolated session and returns it.
func (r *Registry) Create() *Session {
	id := uuid.NewString()
	s := NewSession(id, r.detector, r.resolver, r.cooldown, r.base)

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()

	r.logger.Info().Str("session_id", id).Msg("session created")
	return s
}

// Get returns the session with the given id, or nil if it does not exist.
func (r *Registry) Get(id string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

// Remove drops a session from the registry. Its history is discarded with
// it. Returns false when the id is unknown.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	r.logger.Info().Str("session_id", id).Msg("session removed")
	return true
}

// Len returns the number of active sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
