package mocks

import (
	"errors"

	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

// ErrPasswordMismatch is what the default mock returns on a failed compare.
var ErrPasswordMismatch = errors.New("password mismatch")

// MockPasswordVerifier implements auth.PasswordVerifier for testing
type MockPasswordVerifier struct {
	// CompareFn overrides the default behavior entirely
	CompareFn func(hashedPassword, password string) error

	// ShouldSucceed controls the default behavior
	ShouldSucceed bool

	// Call tracking
	CompareCalls int
}

// Ensure MockPasswordVerifier implements auth.PasswordVerifier
var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.CompareCalls++
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return ErrPasswordMismatch
}
