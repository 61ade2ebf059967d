package session

import "sync"

// TokenStore is the persisted key-value state behind a signed-in session.
// It does no validation of its own.
type TokenStore interface {
	GetToken() (string, bool, error)
	SetToken(token string) error
	UserName() (string, bool, error)
	SetUserName(name string) error
	// Clear removes the token and the cached display name.
	Clear() error
}

type MemoryStore struct {
	mu       sync.Mutex
	token    string
	userName string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) GetToken() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != "", nil
}

func (s *MemoryStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) UserName() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userName, s.userName != "", nil
}

func (s *MemoryStore) SetUserName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userName = name
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.userName = ""
	return nil
}
