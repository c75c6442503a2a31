// Package middleware provides HTTP middleware for the API: request
// authentication, ownership enforcement and trace IDs.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/redact"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// AuthMiddleware authenticates requests from their bearer token.
type AuthMiddleware struct {
	tokenService auth.TokenService
	userStore    store.UserStore
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokenService auth.TokenService, userStore store.UserStore) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		userStore:    userStore,
	}
}

// Authenticate validates the bearer token from the Authorization header and
// then re-confirms that the token's subject still corresponds to an
// existing user, covering deleted users and corrupted subjects. Token
// verification itself never touches the database; the user lookup here is
// the separate step that keeps token-format failures distinguishable from
// missing-user failures. On success the user ID is added to the request
// context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		token := parts[1]

		claims, err := m.tokenService.Validate(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrWrongTokenType),
				errors.Is(err, auth.ErrTokenNotYetValid):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				slog.Error("failed to validate token", "error", redact.Error(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		// The token checks out, but its subject may have been deleted
		// since issue.
		if _, err := m.userStore.GetByID(r.Context(), claims.UserID); err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
				return
			}
			slog.Error("failed to confirm token subject", "error", redact.Error(err))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the authenticated user ID from the request context.
// Returns the user ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	return userID, ok
}
