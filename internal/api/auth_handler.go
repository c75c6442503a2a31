package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// bearerTokenType is the token_type value in every token bundle.
const bearerTokenType = "bearer"

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userStore        store.UserStore
	tokenService     auth.TokenService
	passwordVerifier auth.PasswordVerifier
	validator        *validator.Validate
	logger           *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	tokenService auth.TokenService,
	passwordVerifier auth.PasswordVerifier,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		userStore:        userStore,
		tokenService:     tokenService,
		passwordVerifier: passwordVerifier,
		validator:        validator.New(),
		logger:           logger.With(slog.String("component", "auth_handler")),
	}
}

// tokenBundle issues a fresh access token for the user and assembles the
// response shared by register, login and refresh.
func (h *AuthHandler) tokenBundle(r *http.Request, user *domain.User) (*TokenResponse, error) {
	token, err := h.tokenService.Generate(r.Context(), user.ID)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{
		AccessToken: token,
		TokenType:   bearerTokenType,
		User:        userToResponse(user),
	}, nil
}

// Register handles POST /auth/register.
// A successful registration returns the same token bundle as a login, so
// clients are signed in immediately.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := domain.NewUser(req.Email, req.Name, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, err.Error())
		return
	}

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Email already registered")
			return
		}
		log.Error("failed to create user", "error", err)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to create user", err)
		return
	}

	bundle, err := h.tokenBundle(r, user)
	if err != nil {
		log.Error("failed to generate token", "error", err, "user_id", user.ID)
		shared.RespondWithErrorAndLog(
			w, r, http.StatusInternalServerError, "Failed to generate authentication token", err)
		return
	}

	log.Info("user registered", "user_id", user.ID)
	shared.RespondWithJSON(w, r, http.StatusOK, bundle)
}

// Login handles POST /auth/login.
// An unknown email and a wrong password produce the identical response so
// callers cannot tell which check failed.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		log.Error("failed to get user by email", "error", err)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to authenticate user", err)
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	bundle, err := h.tokenBundle(r, user)
	if err != nil {
		log.Error("failed to generate token", "error", err, "user_id", user.ID)
		shared.RespondWithErrorAndLog(
			w, r, http.StatusInternalServerError, "Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, bundle)
}

// Me handles GET /auth/me.
// The auth middleware has already verified the token; this re-fetches the
// user so a deletion racing the request surfaces as 404 rather than stale
// data.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "User not found")
			return
		}
		log.Error("failed to get user", "error", err, "user_id", userID)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to fetch user", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// Refresh handles POST /auth/refresh.
// A valid access token buys a fresh token bundle; there is no separate
// refresh-token type in this design.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "User not found")
			return
		}
		log.Error("failed to get user", "error", err, "user_id", userID)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to fetch user", err)
		return
	}

	bundle, err := h.tokenBundle(r, user)
	if err != nil {
		log.Error("failed to generate token", "error", err, "user_id", user.ID)
		shared.RespondWithErrorAndLog(
			w, r, http.StatusInternalServerError, "Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, bundle)
}

// Logout handles POST /auth/logout.
// Tokens carry no server-side state, so logout is a stateless no-op by
// contract: clients discard the token and the server simply confirms.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Message: "Logged out successfully",
	})
}
