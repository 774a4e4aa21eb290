package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/localpages/backoffice/internal/pkg/logger"
	"github.com/localpages/backoffice/internal/service/business"
	"github.com/localpages/backoffice/internal/session"
)

// BusinessHandlers exposes business listing and active-business
// selection to the owner panel.
type BusinessHandlers struct {
	businesses *business.Service
	sessions   *session.Store
}

// NewBusinessHandlers creates the business handlers.
func NewBusinessHandlers(businesses *business.Service, sessions *session.Store) *BusinessHandlers {
	return &BusinessHandlers{businesses: businesses, sessions: sessions}
}

// List handles GET /api/businesses: the actor's selectable businesses.
func (h *BusinessHandlers) List(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	businesses, err := h.businesses.ListForUser(r.Context(), actor.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list businesses")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"businesses": businesses})
}

// Select handles POST /api/businesses/{businessID}/select: sets the
// actor's active business after an authorization check.
func (h *BusinessHandlers) Select(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	businessID := chi.URLParam(r, "businessID")

	ok, err := h.businesses.Authorized(r.Context(), actor.ID, businessID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "authorization check failed")
		return
	}
	if !ok {
		respondError(w, http.StatusForbidden, "not authorized for this business")
		return
	}

	if err := h.sessions.SetActiveBusiness(r.Context(), actor.ID, businessID); err != nil {
		logger.Error("active business selection failed", "user_id", actor.ID, "error", err.Error())
		respondError(w, http.StatusInternalServerError, "failed to select business")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"active_business_id": businessID})
}
