package auth

import "time"

// NewTestTokenService creates a token service with an injectable time
// function so tests can exercise expiry deterministically. Production code
// must use NewTokenService.
func NewTestTokenService(
	secret string,
	lifetime time.Duration,
	timeFunc func() time.Time,
) TokenService {
	if timeFunc == nil {
		timeFunc = time.Now
	}
	return &hmacTokenService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      timeFunc,
		clockSkew:     0, // No leeway so expiry tests are exact
	}
}
