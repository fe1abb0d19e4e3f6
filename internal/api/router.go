package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ammanharoon/Gym-Membership-and-Fitness-Tracking/internal/api/handlers"
	"github.com/ammanharoon/Gym-Membership-and-Fitness-Tracking/internal/auth"
	"github.com/ammanharoon/Gym-Membership-and-Fitness-Tracking/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(userService services.UserServiceProvider, membershipService services.MembershipServiceProvider, eventService services.EventServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for the React front-end
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	membershipHandler := handlers.NewMembershipHandler(membershipService)
	eventHandler := handlers.NewEventHandler(eventService)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Everything below requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(auth.JWTMiddleware())

			r.Route("/membership", func(r chi.Router) {
				r.Post("/select", membershipHandler.Select)
				r.Get("/status", membershipHandler.Status)
			})

			r.Get("/events", eventHandler.List)
		})
	})

	return r
}
