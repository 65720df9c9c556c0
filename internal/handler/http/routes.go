package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	router.Route("/api/v1", func(r chi.Router) {
		// routes without a session
		r.Group(func(r chi.Router) {
			r.Post("/user/signup", h.signup)
			r.Post("/user/login", h.login)
			r.Get("/version", h.getServerVersion)
		})

		// routes with a session
		r.Group(func(r chi.Router) {
			r.Use(h.withSession)

			r.Get("/user/auth-status", h.authStatus)
			r.Get("/user/logout", h.logout)

			r.With(h.withRateLimit).Post("/chat/new", h.newChat)
			r.Get("/chat/all-chats", h.allChats)
			r.Delete("/chat/delete", h.deleteChats)

			r.Post("/feedback/submit", h.submitFeedback)
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
