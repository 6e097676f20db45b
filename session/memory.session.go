package session

import (
	"sync"
	"time"
)

type memoryEntry struct {
	value   string
	expires time.Time
}

// MemoryStore keeps artifacts in memory. It backs headless clients and tests;
// expiry follows the same write windows the cookie store uses.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[Artifact]memoryEntry

	// Now can be swapped to control expiry in tests
	Now func() time.Time
}

// NewMemoryStore is a function that is used to create an in memory artifact store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[Artifact]memoryEntry),
		Now:     time.Now,
	}
}

// Set stores the artifact with the given expiry window
func (s *MemoryStore) Set(artifact Artifact, value string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[artifact] = memoryEntry{
		value:   value,
		expires: s.Now().Add(ttl),
	}
}

// Get returns the artifact value, or the empty string once expired
func (s *MemoryStore) Get(artifact Artifact) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[artifact]
	if !ok {
		return ""
	}
	if s.Now().After(entry.expires) {
		delete(s.entries, artifact)
		return ""
	}
	return entry.value
}

// Clear removes the artifacts
func (s *MemoryStore) Clear(artifacts ...Artifact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, artifact := range artifacts {
		delete(s.entries, artifact)
	}
}
