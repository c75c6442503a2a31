package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// User validation errors. Each wraps ErrValidation so the API layer
// classifies all of them as bad requests.
var (
	ErrEmptyUserID         = NewValidationError("user ID", "cannot be empty", nil)
	ErrEmptyEmail          = NewValidationError("email", "cannot be empty", nil)
	ErrEmptyName           = NewValidationError("name", "cannot be empty", nil)
	ErrNameTooLong         = NewValidationError("name", "must be at most 255 characters long", nil)
	ErrEmailTooLong        = NewValidationError("email", "must be at most 255 characters long", nil)
	ErrEmptyPassword       = NewValidationError("password", "cannot be empty", nil)
	ErrPasswordTooLong     = NewValidationError("password", "must be at most 72 bytes long", nil)
	ErrEmptyHashedPassword = NewValidationError("hashed password", "cannot be empty", nil)
)

// maxPasswordLength is bcrypt's practical input limit.
const maxPasswordLength = 72

// User represents a registered account. Each user exclusively owns zero or
// more tasks. Email uniqueness is enforced by the store with a
// case-sensitive match on the stored value.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Password       string    `json:"-"` // Plaintext, held only between registration and hashing
	HashedPassword string    `json:"-"` // Never exposed in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a User with a fresh ID and timestamps from the given
// registration details. The plaintext password is carried on the struct;
// the store is responsible for hashing it before persistence.
func NewUser(email, name, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks that the User fields are well formed. Name and email
// limits count characters; the password limit counts bytes because bcrypt
// does.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if utf8.RuneCountInString(u.Email) > 255 {
		return ErrEmailTooLong
	}
	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.Name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(u.Name) > 255 {
		return ErrNameTooLong
	}

	if u.Password != "" {
		if len(u.Password) > maxPasswordLength {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Users loaded from the store carry only the hash.
		return ErrEmptyPassword
	}

	return nil
}

// validEmailFormat performs a minimal structural check: a non-empty local
// part, an @, and a domain containing an interior dot. The API layer runs
// the stricter go-playground/validator email rule; this guard only keeps
// obviously broken values out of the store.
func validEmailFormat(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
