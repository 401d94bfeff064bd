package otp

import (
	"context"
	"sync"
	"time"
)

// DefaultSweepInterval is how often the in-memory store evicts expired
// entries.
const DefaultSweepInterval = time.Minute

// MemoryStore is a process-local Store for single-node deployments. A
// background janitor owned by the store sweeps expired entries; Get also
// refuses entries already past their deadline so expiry never depends on
// sweep timing.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	done    chan struct{}
	once    sync.Once
}

type memoryEntry struct {
	hash      string
	expiresAt time.Time
}

// NewMemoryStore creates a MemoryStore and starts its janitor. A
// non-positive sweep interval selects the default.
func NewMemoryStore(sweepInterval time.Duration) *MemoryStore {
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}
	s := &MemoryStore{
		entries: map[string]memoryEntry{},
		done:    make(chan struct{}),
	}
	go s.janitor(sweepInterval)
	return s
}

func (s *MemoryStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for email, e := range s.entries {
				if now.After(e.expiresAt) {
					delete(s.entries, email)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Set stores a hash, overwriting any previous code for the email.
func (s *MemoryStore) Set(_ context.Context, email, hash string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = memoryEntry{hash: hash, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Get returns the stored hash or ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[email]
	if !ok {
		return "", ErrNotFound
	}
	if time.Now().After(e.expiresAt) {
		delete(s.entries, email)
		return "", ErrNotFound
	}
	return e.hash, nil
}

// Delete removes the entry for the email, if any.
func (s *MemoryStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
	return nil
}

// Close stops the janitor.
func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}
