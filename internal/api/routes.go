package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/localpages/backoffice/internal/notify"
	"github.com/localpages/backoffice/internal/service/business"
	"github.com/localpages/backoffice/internal/service/invitation"
	"github.com/localpages/backoffice/internal/service/preference"
	"github.com/localpages/backoffice/internal/service/suppression"
	"github.com/localpages/backoffice/internal/session"
)

// Deps bundles the services the router wires into handlers.
type Deps struct {
	Suppressions   *suppression.Service
	Preferences    *preference.Service
	Invitations    *invitation.Service
	Businesses     *business.Service
	Notifications  *notify.Service
	Sessions       *session.Store
	AllowedOrigins []string
	SelectURL      string
}

// NewRouter builds the full route tree. Public endpoints (unsubscribe
// link, bounce webhook, health) sit outside the actor/guard middleware;
// everything under /api requires an actor and, outside the allow-list,
// an active business.
func NewRouter(d Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-ID", "X-User-Email"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Method(http.MethodGet, "/unsubscribe", NewUnsubscribeHandler(d.Suppressions, d.Preferences))
	r.Method(http.MethodPost, "/webhooks/mailer/bounce", NewBounceWebhookHandler(d.Suppressions))

	guard := NewActiveBusinessGuard(d.Sessions, d.Businesses, d.SelectURL)

	suppressions := NewSuppressionHandlers(d.Suppressions)
	invitations := NewInvitationHandlers(d.Invitations, d.Businesses)
	businesses := NewBusinessHandlers(d.Businesses, d.Sessions)
	preferences := NewPreferenceHandlers(d.Preferences, d.Notifications)

	r.Route("/api", func(r chi.Router) {
		r.Use(ActorMiddleware)
		r.Use(RequireActor)
		r.Use(guard.Middleware)

		r.Get("/businesses", businesses.List)
		r.Post("/businesses/{businessID}/select", businesses.Select)
		r.Get("/businesses/{businessID}/invitations", invitations.List)
		r.Post("/businesses/{businessID}/invitations", invitations.Create)
		r.Post("/invitations/{invitationID}/resend", invitations.Resend)

		r.Get("/preferences", preferences.Get)
		r.Get("/preferences/{userID}", preferences.GetForUser)
		r.Get("/notifications", preferences.Notifications)

		r.Get("/suppressions", suppressions.List)
		r.Get("/suppressions/stats", suppressions.Stats)
		r.Get("/suppressions/check", suppressions.Check)
		r.Delete("/suppressions/{email}", suppressions.Remove)
	})

	return r
}
