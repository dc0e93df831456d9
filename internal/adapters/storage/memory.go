package storage

import (
	"sync"

	"qrcheckctl/internal/domain"
)

// memoryTokenStore is an in-memory TokenStore for tests and ephemeral runs.
type memoryTokenStore struct {
	mu      sync.Mutex
	access  string
	refresh string
}

// NewMemoryTokenStore returns a TokenStore that does not outlive the process.
func NewMemoryTokenStore() domain.TokenStore {
	return &memoryTokenStore{}
}

func (s *memoryTokenStore) AccessToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access, nil
}

func (s *memoryTokenStore) RefreshToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh, nil
}

func (s *memoryTokenStore) Save(pair domain.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = pair.AccessToken
	if pair.RefreshToken != "" {
		s.refresh = pair.RefreshToken
	}
	return nil
}

func (s *memoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	return nil
}
