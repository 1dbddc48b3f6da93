package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"cuet-tuition-backend/internal/handlers"
	"cuet-tuition-backend/internal/middleware"
	"cuet-tuition-backend/internal/models"
	"cuet-tuition-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	clientIdentity *middleware.ClientIdentity,
	authLimiter *middleware.RateLimiter,
	sessionHandler *handlers.SessionHandler,
	listingHandler *handlers.ListingHandler,
	tuitionHandler *handlers.TuitionHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Session Routes ────
		r.Route("/session", func(r chi.Router) {
			r.Use(clientIdentity.Middleware)
			r.Get("/", sessionHandler.Current)
			r.Delete("/", sessionHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(authLimiter.Middleware)
				r.Post("/login", sessionHandler.Login)
				r.Post("/signup", sessionHandler.Signup)
			})
		})

		// ──── Tutor Search Routes (public) ────
		r.Route("/tutors", func(r chi.Router) {
			r.Get("/", listingHandler.Search)
			r.Get("/subjects", listingHandler.Subjects)
			r.Get("/departments", listingHandler.Departments)
		})

		// ──── Tuition Board Routes ────
		r.Route("/tuitions", func(r chi.Router) {
			r.Get("/", tuitionHandler.List)
			r.Get("/subjects", tuitionHandler.Subjects)
			r.Get("/levels", tuitionHandler.Levels)

			r.Group(func(r chi.Router) {
				r.Use(clientIdentity.Middleware)
				r.Use(jwtAuth.Middleware)
				r.Use(middleware.RequireRole(models.RoleTutor))
				r.Post("/", tuitionHandler.Post)
			})
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
