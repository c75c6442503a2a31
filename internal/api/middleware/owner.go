package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
)

// RequireOwner enforces ownership scoping on routes mounted under a
// {userID} path segment. It compares the path user ID against the
// authenticated identity set by Authenticate and rejects mismatches with
// 403 before any handler or store code runs, so a non-owner gets the same
// 403 whether the target resource exists or not, and existence never
// leaks across owners.
//
// Must be mounted after Authenticate on the same route.
func RequireOwner(paramName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authedID, ok := GetUserID(r)
			if !ok || authedID == uuid.Nil {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
				return
			}

			pathParam := chi.URLParam(r, paramName)
			pathID, err := uuid.Parse(pathParam)
			if err != nil {
				shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID format")
				return
			}

			if pathID != authedID {
				shared.RespondWithError(w, r, http.StatusForbidden,
					"Not authorized to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
