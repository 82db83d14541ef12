package routes

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"PATHFINDER_BACK-END/internal/config"
	"PATHFINDER_BACK-END/internal/handlers"
	"PATHFINDER_BACK-END/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Users   *handlers.UsersHandler
	Session *handlers.SessionHandler
	Posts   *handlers.PostsHandler
	Reviews *handlers.ReviewsHandler
	Health  *handlers.HealthHandler
	Google  *handlers.GoogleAuthHandler
}

// New assembles the application router. Session restore and CSRF
// verification cover the whole /api tree; RequireAuth guards only the
// mutating trip and review routes, so anonymous reads keep working.
func New(h Handlers, cfg *config.Config, revoker middleware.TokenRevoker) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger)

	// Health check routes
	r.Get("/healthz", h.Health.HealthCheck)
	r.Get("/livez", h.Health.LivenessCheck)
	r.Get("/readyz", h.Health.ReadinessCheck)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RestoreSession(&cfg.Session, revoker))
		r.Use(middleware.VerifyCSRF)

		r.Get("/csrf/restore", h.Session.RestoreCSRF)

		r.Get("/session", h.Session.Current)
		r.Post("/session", h.Session.Login)
		r.Delete("/session", h.Session.Logout)

		r.Post("/users", h.Users.Signup)
		r.Get("/users/{userId}", h.Users.GetUser)

		r.Get("/auth/google", h.Google.GoogleLogin)
		r.Get("/auth/google/callback", h.Google.GoogleCallback)

		r.Get("/posts", h.Posts.List)
		r.Get("/posts/{postId}", h.Posts.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Post("/posts", h.Posts.Create)
			r.Put("/posts/{postId}", h.Posts.Update)
			r.Delete("/posts/{postId}", h.Posts.Delete)

			r.Post("/posts/{postId}/reviews", h.Reviews.Create)
			r.Put("/posts/{postId}/reviews/{reviewId}", h.Reviews.Update)
			r.Delete("/posts/{postId}/reviews/{reviewId}", h.Reviews.Delete)
		})
	})

	return r
}
