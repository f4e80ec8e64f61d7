package store

import (
	"sync"

	"github.com/careerboard/careerboard-backend/internal/models"
	"github.com/google/uuid"
)

// MemoryAuthStore is an in-memory AuthStore used in tests.
type MemoryAuthStore struct {
	mu     sync.RWMutex
	users  map[uuid.UUID]models.User
	tokens map[string]models.RefreshToken
}

func NewMemoryAuthStore() *MemoryAuthStore {
	return &MemoryAuthStore{
		users:  make(map[uuid.UUID]models.User),
		tokens: make(map[string]models.RefreshToken),
	}
}

func (s *MemoryAuthStore) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryAuthStore) FindUserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemoryAuthStore) FindUserByID(id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	user := u
	return &user, nil
}

func (s *MemoryAuthStore) CreateRefreshToken(token *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	s.tokens[token.TokenHash] = *token
	return nil
}

func (s *MemoryAuthStore) FindRefreshTokenByHash(hash string) (*models.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tokens[hash]
	if !ok || t.Revoked {
		return nil, ErrTokenNotFound
	}
	token := t
	return &token, nil
}

func (s *MemoryAuthStore) RevokeRefreshToken(hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.tokens[hash]; ok {
		t.Revoked = true
		s.tokens[hash] = t
	}
	return nil
}
