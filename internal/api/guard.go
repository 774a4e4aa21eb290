package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/localpages/backoffice/internal/pkg/logger"
	"github.com/localpages/backoffice/internal/service/business"
	"github.com/localpages/backoffice/internal/session"
)

// activeBusinessKey is the context key carrying the guard-validated
// active business id.
type activeBusinessKey struct{}

// ActiveBusinessGuard redirects panel requests to the business-selection
// page unless the actor's session holds a valid, authorized business.
type ActiveBusinessGuard struct {
	sessions   *session.Store
	businesses *business.Service
	selectURL  string
}

// NewActiveBusinessGuard creates the guard middleware.
func NewActiveBusinessGuard(sessions *session.Store, businesses *business.Service, selectURL string) *ActiveBusinessGuard {
	return &ActiveBusinessGuard{sessions: sessions, businesses: businesses, selectURL: selectURL}
}

// exempt lists the route intents that never require an active business:
// the selection flow itself, business creation, and profile/preference
// pages. The selection page differentiates the zero-business empty state.
func exempt(method, path string) bool {
	switch {
	case path == "/api/businesses" && (method == http.MethodGet || method == http.MethodPost):
		return true
	case strings.HasSuffix(path, "/select") && strings.HasPrefix(path, "/api/businesses/"):
		return true
	case strings.HasPrefix(path, "/api/profile"):
		return true
	case strings.HasPrefix(path, "/api/preferences"):
		return true
	case strings.HasPrefix(path, "/api/notifications"):
		return true
	}
	return false
}

// Middleware enforces the active-business check. Unauthenticated requests
// pass through untouched; authentication is enforced elsewhere.
func (g *ActiveBusinessGuard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := ActorFromContext(r.Context())
		if actor == nil || exempt(r.Method, r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		businessID, err := g.sessions.ActiveBusiness(r.Context(), actor.ID)
		if err != nil {
			logger.Warn("active business lookup failed", "user_id", actor.ID, "error", err.Error())
		}
		if businessID != "" {
			ok, err := g.businesses.Authorized(r.Context(), actor.ID, businessID)
			if err != nil {
				logger.Warn("business authorization check failed", "user_id", actor.ID, "error", err.Error())
			}
			if ok {
				ctx := context.WithValue(r.Context(), activeBusinessKey{}, businessID)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}

		// Same redirect whether the actor has zero or many businesses.
		http.Redirect(w, r, g.selectURL, http.StatusSeeOther)
	})
}

// ActiveBusinessFromContext returns the guard-validated business id, or "".
func ActiveBusinessFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(activeBusinessKey{}).(string); ok {
		return id
	}
	return ""
}
