package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/users/register", h.register)
		r.Post("/api/users/login", h.login)
		r.Get("/api/version", h.getServerVersion)
		if h.metrics != nil {
			r.Method("GET", "/metrics", h.metrics.Handler())
		}
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/users/logout", h.logout)
		r.Post("/api/users/logout/all", h.logoutAll)

		r.Get("/api/users/me", h.me)
		r.Patch("/api/users/me", h.updateProfile)
		r.Delete("/api/users/me", h.deleteAccount)

		r.Get("/api/users/{id}", h.getUser)
		r.Post("/api/users/{id}/follow", h.follow)
		r.Delete("/api/users/{id}/follow", h.unfollow)

		r.Put("/api/admin/users/{id}/type", h.setUserType)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
