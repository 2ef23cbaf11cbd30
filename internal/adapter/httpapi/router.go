package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

// NewRouter wires the JSON API.
// loginLimiter bounds password attempts and may be shared with other transports.
func NewRouter(h *Handler, validator TokenValidator, loginLimiter *rate.Limiter) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(ContextualLoggerMiddleware)

	r.Get("/healthz", h.HandleHealth)

	r.Route("/api", func(r chi.Router) {
		r.With(RateLimitMiddleware(loginLimiter)).Post("/session", h.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(validator))
			r.Get("/dashboard", h.HandleGetDashboard)
			r.Get("/refreshes", h.HandleListRefreshes)
		})
	})

	return r
}
