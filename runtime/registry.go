// Package runtime holds the concurrent session registry and the relay and
// dispatch logic built on top of it. It orchestrates the system without
// containing transport or UI code.
package runtime

import (
	"sync"

	"github.com/google/uuid"

	"chat-relay/contract"
	"chat-relay/domain"
	errs "chat-relay/errors"
)

// Registry is the single source of truth for "who is online". Every read and
// write goes through one non-reentrant mutex per server instance, so
// name-uniqueness checks, whisper resolution, and membership changes never
// interleave. That trades throughput for a strong invariant, which is the
// right trade at this scale.
type Registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*domain.Session
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*domain.Session),
	}
}

// Register adds a session. Sessions normally arrive unnamed; when a session
// already carries a name, the duplicate check runs under the same lock as the
// insert, so of two concurrent registrations for one name at most one wins.
func (r *Registry) Register(s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.Named() {
		if other := r.findLocked(s.Name); other != nil && other.ID != s.ID {
			return errs.ErrDuplicateName
		}
	}
	r.sessions[s.ID] = s
	return nil
}

// Claim assigns a display name to a session. The uniqueness check and the
// assignment happen under one lock acquisition; the session is registered as
// a side effect if it was not already.
func (r *Registry) Claim(s *domain.Session, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if other := r.findLocked(name); other != nil && other.ID != s.ID {
		return errs.ErrDuplicateName
	}
	s.Name = name
	r.sessions[s.ID] = s
	return nil
}

// Unregister removes a session. Removing an absent session is a no-op, so the
// kick path and the session's own disconnect path can both call it safely.
func (r *Registry) Unregister(s *domain.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, s.ID)
}

// Find returns the session holding the given display name, or nil. The
// reserved operator name never matches a session.
func (r *Registry) Find(name string) *domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(name)
}

// ForEach applies visit to a snapshot of the current sessions, taken and
// visited under the registry lock. Visitors must not block indefinitely and
// must not call back into the registry.
func (r *Registry) ForEach(visit func(*domain.Session)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forEachLocked(visit)
}

func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Atomically runs fn against a view of the registry under one lock
// acquisition. Used where several lookups must observe the same membership,
// e.g. whisper resolution. The view is only valid inside fn, and fn must not
// call the registry's own locking methods.
func (r *Registry) Atomically(fn func(view contract.RegistryView)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(lockedView{r})
}

func (r *Registry) findLocked(name string) *domain.Session {
	if name == "" || name == domain.ReservedName {
		return nil
	}
	for _, s := range r.sessions {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (r *Registry) forEachLocked(visit func(*domain.Session)) {
	snapshot := make([]*domain.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		snapshot = append(snapshot, s)
	}
	for _, s := range snapshot {
		visit(s)
	}
}

// lockedView exposes the read surface without re-acquiring the mutex; it only
// exists for the duration of an Atomically call.
type lockedView struct {
	r *Registry
}

func (v lockedView) Find(name string) *domain.Session { return v.r.findLocked(name) }

func (v lockedView) ForEach(visit func(*domain.Session)) { v.r.forEachLocked(visit) }

func (v lockedView) Count() int { return len(v.r.sessions) }
