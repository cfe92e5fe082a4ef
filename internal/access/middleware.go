package access

import (
	"context"
	"net/http"

	"github.com/gigante-rh/talent-intake/internal"
	"github.com/gigante-rh/talent-intake/internal/transport"
)

type ctxKey struct{}

// FromContext returns the access resolved by RequireDashboard.
func FromContext(ctx context.Context) (*Access, bool) {
	acc, ok := ctx.Value(ctxKey{}).(*Access)
	return acc, ok
}

func ContextWithAccess(ctx context.Context, acc *Access) context.Context {
	return context.WithValue(ctx, ctxKey{}, acc)
}

// Middleware gates dashboard routes on a resolved access record. It runs
// after authentication, so a session user is expected in the context.
type Middleware struct {
	base    *transport.BaseHandler
	service ServiceAPI
}

func NewMiddleware(base *transport.BaseHandler, service ServiceAPI) *Middleware {
	return &Middleware{base: base, service: service}
}

// RequireDashboard resolves the caller's access and stores it in the request
// context. No record or an inactive one yields 403; a resolver failure
// yields 503 rather than a silent denial.
func (m *Middleware) RequireDashboard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := internal.UserFromContext(r.Context())
		if !ok {
			m.base.WriteError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		acc, err := m.service.Resolve(r.Context(), user.ID)
		if err != nil {
			m.base.Logger.Error("access resolution failed", "user_id", user.ID, "error", err)
			m.base.WriteError(w, http.StatusServiceUnavailable, "access verification unavailable")
			return
		}
		if acc == nil {
			m.base.WriteError(w, http.StatusForbidden, "no dashboard access")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithAccess(r.Context(), acc)))
	})
}

// RequireAdmin allows only admin access records through. It must be mounted
// inside RequireDashboard.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acc, ok := FromContext(r.Context())
		if !ok {
			m.base.WriteError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !acc.IsAdmin() {
			m.base.WriteError(w, http.StatusForbidden, "administrator role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
