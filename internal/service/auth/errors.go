package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token is malformed or its signature
	// does not match.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim
	// in the future).
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrWrongTokenType indicates the token is well formed but is not an
	// access token.
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")
)
