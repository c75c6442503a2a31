package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/taskdeck/taskdeck-api/internal/api"
	apiMiddleware "github.com/taskdeck/taskdeck-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(
		app.userStore,
		app.tokenService,
		app.passwordVerifier,
		app.logger,
	)
	taskHandler := api.NewTaskHandler(app.taskStore, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService, app.userStore)

	// Authentication endpoints
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/me", authHandler.Me)
			r.Post("/refresh", authHandler.Refresh)
		})
	})

	// Task endpoints. Every route is scoped to the path owner: the caller
	// must be authenticated and must be the user named in the path.
	r.Route("/{userID}/tasks", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Use(apiMiddleware.RequireOwner("userID"))

		r.Get("/", taskHandler.List)
		r.Post("/", taskHandler.Create)
		r.Get("/{taskID}", taskHandler.Get)
		r.Put("/{taskID}", taskHandler.Update)
		r.Patch("/{taskID}/complete", taskHandler.Complete)
		r.Delete("/{taskID}", taskHandler.Delete)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
