package pagecache

import (
	"sync"
)

// Store remembers the last HTML sent for each record id, so a reject with an
// adjustment can revise what the recipient actually saw instead of a fresh
// regeneration. Entries live only as long as the process.
type Store struct {
	pages map[string]string
	mu    sync.RWMutex
}

func New() *Store {
	return &Store{
		pages: make(map[string]string),
	}
}

func (s *Store) Get(recordID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	page, exists := s.pages[recordID]
	return page, exists
}

func (s *Store) Set(recordID, html string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[recordID] = html
}

func (s *Store) Delete(recordID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pages, recordID)
}
