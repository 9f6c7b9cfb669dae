package accounts

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store used by tests.
type MemoryStore struct {
	mu      sync.Mutex
	byEmail map[string]*Account
	byID    map[uuid.UUID]*Account
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byEmail: make(map[string]*Account),
		byID:    make(map[uuid.UUID]*Account),
	}
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (s *MemoryStore) Create(_ context.Context, acct NewAccount) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(acct.Email)
	if _, exists := s.byEmail[key]; exists {
		return nil, ErrEmailTaken
	}

	now := time.Now()
	a := &Account{
		ID:           uuid.New(),
		Email:        acct.Email,
		PasswordHash: acct.PasswordHash,
		Name:         acct.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.byEmail[key] = a
	s.byID[a.ID] = a

	copied := *a
	return &copied, nil
}

// Len reports the number of stored accounts.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}
