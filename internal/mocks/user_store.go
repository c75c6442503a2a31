package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)

	// Data for the default implementation, keyed by email
	Users map[string]*domain.User

	// Forced errors for the default implementation
	CreateError     error
	GetByIDError    error
	GetByEmailError error
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[string]*domain.User),
	}
}

// Ensure MockUserStore implements store.UserStore
var _ store.UserStore = (*MockUserStore)(nil)

// Create implements the store.UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if m.CreateError != nil {
		return m.CreateError
	}

	if _, exists := m.Users[user.Email]; exists {
		return store.ErrEmailExists
	}

	// Mirror the real store: the plaintext never survives creation.
	user.HashedPassword = "hashed:" + user.Password
	user.Password = ""
	m.Users[user.Email] = user
	return nil
}

// GetByID implements the store.UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}

	for _, user := range m.Users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByEmail implements the store.UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	if m.GetByEmailError != nil {
		return nil, m.GetByEmailError
	}

	user, exists := m.Users[email]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// WithTx implements the store.UserStore interface; the mock ignores
// transactions.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
