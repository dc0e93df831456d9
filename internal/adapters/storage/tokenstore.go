package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"qrcheckctl/internal/domain"
)

const (
	accessTokenFile  = "access_token"
	refreshTokenFile = "refresh_token"
)

// fileTokenStore keeps the two token slots as files under a state directory
// so sessions survive restarts. Individual reads and writes are serialized;
// sequences of auth actions are not, and the last write wins.
type fileTokenStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileTokenStore returns a TokenStore rooted at dir, creating it if needed.
func NewFileTokenStore(dir string) (domain.TokenStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &fileTokenStore{dir: dir}, nil
}

func (s *fileTokenStore) AccessToken() (string, error) {
	return s.read(accessTokenFile)
}

func (s *fileTokenStore) RefreshToken() (string, error) {
	return s.read(refreshTokenFile)
}

func (s *fileTokenStore) Save(pair domain.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(accessTokenFile, pair.AccessToken); err != nil {
		return err
	}
	if pair.RefreshToken != "" {
		if err := s.write(refreshTokenFile, pair.RefreshToken); err != nil {
			return err
		}
	}
	return nil
}

func (s *fileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range []string{accessTokenFile, refreshTokenFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("clear token slot %s: %w", name, err)
		}
	}
	return nil
}

func (s *fileTokenStore) read(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token slot %s: %w", name, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *fileTokenStore) write(name, value string) error {
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(value), 0o600); err != nil {
		return fmt.Errorf("write token slot %s: %w", name, err)
	}
	return nil
}
