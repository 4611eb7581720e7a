package routes

import (
	"github.com/focusnow-app/focusnow-backend/internal/config"
	"github.com/focusnow-app/focusnow-backend/internal/handlers"
	"github.com/focusnow-app/focusnow-backend/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes(r *chi.Mux, cfg *config.Config) {
	// Public routes
	r.Get("/health", handlers.Health)
	r.Get("/api/catalog", handlers.Catalog)
	r.Post("/api/register", handlers.Register)
	r.Post("/api/login", handlers.Login)
	r.Post("/api/forgot-password", handlers.ForgotPassword)
	r.Post("/api/reset-password", handlers.ResetPassword)

	// Admin routes (API-key guarded in the handler)
	r.Post("/api/admin/sounds", handlers.UploadSound)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(cfg))

		r.Post("/api/logout", handlers.Logout)
		r.Get("/api/me", handlers.Me)

		// Cycles and derived views
		r.Post("/api/ciclos", handlers.CreateCycle)
		r.Get("/api/historico", handlers.History)
		r.Get("/api/estatisticas", handlers.Statistics)
		r.Get("/api/dias-foco", handlers.FocusCalendar)
		r.Get("/api/streak", handlers.GetStreak)

		// Per-user state
		r.Get("/api/me/timer-config", handlers.GetTimerConfig)
		r.Put("/api/me/timer-config", handlers.PutTimerConfig)
		r.Get("/api/me/unlocks", handlers.GetUnlocks)
		r.Put("/api/me/unlocks", handlers.PutUnlocks)
		r.Get("/api/me/playlist", handlers.GetPlaylist)
		r.Put("/api/me/playlist", handlers.PutPlaylist)
		r.Get("/api/me/achievements", handlers.GetAchievements)
		r.Post("/api/me/achievements/achieve", handlers.Achieve)
		r.Post("/api/me/achievements/seen", handlers.MarkAchievementSeen)
		r.Get("/api/me/activity", handlers.Activity)

		// Progression event stream
		r.Get("/ws/events", handlers.EventsWS)
	})
}
