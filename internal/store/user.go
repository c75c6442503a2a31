package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// UserStore defines the interface for user data persistence. It is the
// credential store of the system: after Create has hashed and stored the
// registration password, no caller ever sees a plaintext password again.
type UserStore interface {
	// Create saves a new user to the store.
	// It validates the domain User and hashes the plaintext password
	// internally; the plaintext is cleared from the entity afterwards.
	// Returns ErrEmailExists if the email is already taken (case-sensitive
	// match on the stored value).
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// WithTx returns a UserStore bound to the provided transaction so
	// multiple operations can share one atomic unit of work.
	WithTx(tx *sql.Tx) UserStore
}
