package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing
type MockTokenService struct {
	// Function fields for customizable behavior
	GenerateFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Fixed results for the default implementation
	Token  string
	Claims *auth.Claims
	Err    error
}

// Ensure MockTokenService implements auth.TokenService
var _ auth.TokenService = (*MockTokenService)(nil)

// Generate implements the auth.TokenService interface
func (m *MockTokenService) Generate(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, userID)
	}
	if m.Err != nil {
		return "", m.Err
	}
	if m.Token != "" {
		return m.Token, nil
	}
	return "token-for-" + userID.String(), nil
}

// Validate implements the auth.TokenService interface
func (m *MockTokenService) Validate(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateFn != nil {
		return m.ValidateFn(ctx, tokenString)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Claims != nil {
		return m.Claims, nil
	}
	return nil, auth.ErrInvalidToken
}

// ClaimsFor builds a plausible claims payload for the given user, for
// tests that only need the identity to round-trip.
func ClaimsFor(userID uuid.UUID) *auth.Claims {
	now := time.Now().UTC()
	return &auth.Claims{
		UserID:    userID,
		TokenType: "access",
		Subject:   userID.String(),
		IssuedAt:  now,
		ExpiresAt: now.Add(30 * time.Minute),
		ID:        uuid.NewString(),
	}
}
