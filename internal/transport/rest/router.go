package rest

import (
	"log/slog"
	"net/http"

	"github.com/gigante-rh/talent-intake/internal/access"
	"github.com/gigante-rh/talent-intake/internal/audit"
	"github.com/gigante-rh/talent-intake/internal/auth"
	"github.com/gigante-rh/talent-intake/internal/refdata"
	"github.com/gigante-rh/talent-intake/internal/submission"
	appmiddleware "github.com/gigante-rh/talent-intake/internal/transport/middleware"
	"github.com/gigante-rh/talent-intake/internal/transport/swagger"
	"github.com/gigante-rh/talent-intake/internal/user"

	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	"github.com/jmoiron/sqlx"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth       *auth.Handler
	Access     *access.Middleware
	Refdata    *refdata.Handler
	Submission *submission.Handler
	User       *user.Handler
	Audit      *audit.Handler
}

// NewRouter assembles the HTTP surface: a public slice for the submission
// form, a dashboard slice behind authentication plus access resolution, and
// an admin slice on top of that.
func NewRouter(logger *slog.Logger, db *sqlx.DB, h Handlers, allowedOrigins string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(appmiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(appmiddleware.RecoveryMiddleware(logger))
	r.Use(appmiddleware.LoggingMiddleware(logger))
	r.Use(appmiddleware.CORS(allowedOrigins))

	r.Get("/openapi.yml", swagger.ServeSpec)
	r.Get("/swagger/*", swagger.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", pingHandler)
		r.Get("/health", healthCheckHandler(db))

		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/refresh", h.Auth.RefreshToken)
		r.Post("/auth/logout", h.Auth.Logout)

		// public surface used by the submission form
		r.Get("/reference/{kind}", h.Refdata.List)
		r.Post("/submissions", h.Submission.Create)

		// dashboard surface
		r.Group(func(r chi.Router) {
			r.Use(h.Auth.Middleware)
			r.Use(h.Access.RequireDashboard)

			r.Get("/submissions", h.Submission.List)
			r.Get("/submissions/stats", h.Submission.Stats)
			r.Get("/submissions/export", h.Submission.Export)
			r.Get("/submissions/{id}", h.Submission.Get)
			r.Get("/submissions/{id}/file", h.Submission.File)
			r.Post("/submissions/{id}/insights", h.Submission.Insights)

			// admin surface
			r.Group(func(r chi.Router) {
				r.Use(h.Access.RequireAdmin)

				r.Post("/reference/{kind}", h.Refdata.Add)
				r.Delete("/reference/{kind}/{id}", h.Refdata.Remove)

				r.Post("/users", h.User.Create)
				r.Get("/users", h.User.List)
				r.Patch("/users/{id}/active", h.User.ToggleActive)
				r.Put("/users/{id}/cities", h.User.UpdateCities)
				r.Put("/users/{id}/stores", h.User.UpdateStores)

				r.Get("/audit", h.Audit.List)
			})
		})
	})

	return r
}
