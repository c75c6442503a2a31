package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"expired_token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid_token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"task_not_found", store.ErrTaskNotFound, http.StatusNotFound},
		{"email_exists", store.ErrEmailExists, http.StatusBadRequest},
		{"validation", domain.ErrValidation, http.StatusBadRequest},

		// Field-level validation sentinels classify as bad requests, so
		// no pre-storage validation failure ever surfaces as a 500.
		{"title_length", domain.ErrTitleLength, http.StatusBadRequest},
		{"description_long", domain.ErrDescriptionLong, http.StatusBadRequest},
		{"too_many_tags", domain.ErrTooManyTags, http.StatusBadRequest},
		{"name_too_long", domain.ErrNameTooLong, http.StatusBadRequest},
		{"password_too_long", domain.ErrPasswordTooLong, http.StatusBadRequest},
		{"invalid_email", domain.ErrInvalidEmail, http.StatusBadRequest},
		{
			"wrapped_invalid_priority",
			fmt.Errorf("%w: %q", domain.ErrInvalidPriority, "urgent"),
			http.StatusBadRequest,
		},
		{
			"store_wrapped_validation",
			fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrTitleLength),
			http.StatusBadRequest,
		},

		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage_ValidationSentinels(t *testing.T) {
	t.Parallel()

	// The field sentinels carry user-facing messages; the safe message
	// surfaces them instead of the generic fallback.
	assert.Equal(t, "title must be between 1 and 255 characters",
		GetSafeErrorMessage(domain.ErrTitleLength))
	assert.Equal(t, "priority must be low, medium or high",
		GetSafeErrorMessage(fmt.Errorf("%w: %q", domain.ErrInvalidPriority, "urgent")))

	// A bare classification error has no field context to expose.
	assert.Equal(t, "Invalid request data", GetSafeErrorMessage(domain.ErrValidation))
}
