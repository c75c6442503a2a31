package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenService defines operations for issuing and verifying bearer tokens.
//
// A token is either valid (signature checks out, not expired, type is
// "access") or invalid; there is no revocation list and no server-side
// session state. Verification never touches the database; confirming that
// the subject still corresponds to an existing user is a separate step in
// the authorization gate, so token-format failures and missing-user
// failures stay distinguishable.
type TokenService interface {
	// Generate creates a signed access token bound to the given user.
	// Returns the compact token string or an error if signing fails.
	Generate(ctx context.Context, userID uuid.UUID) (string, error)

	// Validate verifies the provided token string and extracts its claims.
	// Returns ErrExpiredToken when the token is past its expiry,
	// ErrWrongTokenType when it is not an access token, and
	// ErrInvalidToken for any other failure (bad signature, malformed
	// payload, corrupted subject).
	Validate(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the decoded content of a verified token.
type Claims struct {
	// UserID is the authenticated identity the token was issued for,
	// parsed from the registered subject claim.
	UserID uuid.UUID

	// TokenType is always "access" for tokens this service accepts.
	TokenType string

	// Standard registered JWT claims
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
