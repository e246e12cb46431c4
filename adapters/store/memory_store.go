package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/crowdstaking-org/crowdstaking-platform-sub002/core"
	"github.com/crowdstaking-org/crowdstaking-platform-sub002/ports"
)

// MemoryStore is an in-memory implementation of the SessionStore interface.
// Sessions do not survive a process restart; use the Redis store for that.
type MemoryStore struct {
	sessions map[string]*core.Session
	mu       sync.RWMutex

	// now is swapped out by tests to control expiry.
	now func() time.Time
}

// NewMemoryStore creates a new in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*core.Session),
		now:      time.Now,
	}
}

// Create issues a new session for address. UUIDv4 gives 122 bits of
// randomness, so the ID carries no information about the wallet and cannot
// collide with a live session in practice.
func (s *MemoryStore) Create(ctx context.Context, address string) (*core.Session, error) {
	now := s.now()
	session := &core.Session{
		ID:        uuid.New().String(),
		Address:   core.NormalizeAddress(address),
		CreatedAt: now,
		ExpiresAt: now.Add(core.SessionTTL),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session, nil
}

// Verify resolves sessionID to its wallet address, deleting the record on the
// way out if it has expired.
func (s *MemoryStore) Verify(ctx context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return "", core.ErrSessionInvalid
	}

	if session.Expired(s.now()) {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return "", core.ErrSessionInvalid
	}

	return session.Address, nil
}

// Delete removes a session. Unknown IDs are a no-op.
func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

// Sweep removes all expired sessions. Expired IDs are collected under the read
// lock first so the write of each delete stays a short critical section.
func (s *MemoryStore) Sweep(ctx context.Context) (int, error) {
	now := s.now()

	s.mu.RLock()
	expired := make([]string, 0)
	for id, session := range s.sessions {
		if session.Expired(now) {
			expired = append(expired, id)
		}
	}
	s.mu.RUnlock()

	if len(expired) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	removed := 0
	for _, id := range expired {
		// Re-check under the write lock: a verify may have removed it already.
		if session, ok := s.sessions[id]; ok && session.Expired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	s.mu.Unlock()

	return removed, nil
}

// Len reports the number of stored sessions, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

var _ ports.SessionStore = (*MemoryStore)(nil)
