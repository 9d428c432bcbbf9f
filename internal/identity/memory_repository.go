package identity

import (
	"context"
	"sync"
	"time"

	"github.com/askbook/askbook-api/internal/models"
)

// MemoryDirectory is an in-memory Directory used when no database is configured and in tests.
type MemoryDirectory struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{users: make(map[string]models.User)}
}

func (m *MemoryDirectory) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return ErrEmailExists
	}
	m.users[u.Email] = *u
	return nil
}

func (m *MemoryDirectory) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *MemoryDirectory) TouchSignIn(_ context.Context, email string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[email]; ok {
		u.Metadata.LastSignInTime = &at
		m.users[email] = u
	}
	return nil
}
