package conversation

import (
	"sync"
	"time"
)

// Store is an in-process cache of conversation buffers keyed by session id.
// Entries older than the TTL are evicted on access. Eviction only bounds the
// working set; the durable message log is unaffected.
type Store struct {
	mu  sync.Mutex
	m   map[string]*Buffer
	ttl time.Duration
	now func() time.Time
}

const DefaultTTL = 24 * time.Hour

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		m:   make(map[string]*Buffer),
		ttl: ttl,
		now: time.Now,
	}
}

// Get returns the cached buffer for a session, or nil when absent or
// expired. Every lookup also sweeps out all expired entries.
func (s *Store) Get(sessionID string) *Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked()
	return s.m[sessionID]
}

// Put caches a buffer for a session, replacing any previous one.
func (s *Store) Put(sessionID string, b *Buffer) {
	if b == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[sessionID] = b
}

// Drop removes a session's buffer without touching durable state.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, sessionID)
}

// Len returns the number of cached buffers.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

func (s *Store) evictExpiredLocked() {
	now := s.now()
	for id, b := range s.m {
		if now.Sub(b.Start) > s.ttl {
			delete(s.m, id)
		}
	}
}
