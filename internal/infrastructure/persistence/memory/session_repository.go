// Package memory provides the in-process stores backing the demo
// deployment: keyed maps with no eviction, no TTL and no durability
// across restarts.
package memory

import (
	"context"
	"sync"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/model"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/port"
)

// SessionRepository stores sessions in a process-wide map and hands out a
// per-session lock so concurrent requests for the same session serialize
// instead of racing.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]*model.Session),
		locks:    make(map[string]*sync.Mutex),
	}
}

func (r *SessionRepository) Save(_ context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID()] = session
	return nil
}

func (r *SessionRepository) FindByID(_ context.Context, id string) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	return session, nil
}

func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return port.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Lock acquires the mutex for one session ID and returns its unlock
// func. Lock entries are never reclaimed; acceptable for the demo's
// process-lifetime sessions.
func (r *SessionRepository) Lock(id string) func() {
	r.locksMu.Lock()
	m, ok := r.locks[id]
	if !ok {
		m = &sync.Mutex{}
		r.locks[id] = m
	}
	r.locksMu.Unlock()

	m.Lock()
	return m.Unlock
}
