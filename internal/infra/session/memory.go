package session

import (
	"context"
	"sync"
	"time"

	"github.com/DevAlex-full/barbeflow-scheduler/internal/domain/booking"
)

type entry struct {
	snap    booking.Snapshot
	expires time.Time
}

// MemoryStore is the in-process session store used by the memory driver
// and tests. Expired entries are dropped lazily.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	locks   map[string]time.Time
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: map[string]entry{},
		locks:   map[string]time.Time{},
		now:     time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, id string, snap booking.Snapshot, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = entry{snap: snap, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) SaveIfExists(_ context.Context, id string, snap booking.Snapshot, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.liveLocked(id); !ok {
		return booking.ErrSessionNotFound
	}
	s.entries[id] = entry{snap: snap, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (booking.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.liveLocked(id)
	if !ok {
		return booking.Snapshot{}, booking.ErrSessionNotFound
	}
	return e.snap, nil
}

func (s *MemoryStore) liveLocked(id string) (entry, bool) {
	e, ok := s.entries[id]
	if !ok {
		return entry{}, false
	}
	if !s.now().Before(e.expires) {
		delete(s.entries, id)
		return entry{}, false
	}
	return e, true
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

func (s *MemoryStore) Lock(_ context.Context, id string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if until, held := s.locks[id]; held && now.Before(until) {
		return false, nil
	}
	s.locks[id] = now.Add(ttl)
	return true, nil
}

func (s *MemoryStore) Unlock(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, id)
	return nil
}

var _ booking.SessionStore = (*MemoryStore)(nil)
