package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/localpages/backoffice/internal/pkg/logger"
	"github.com/localpages/backoffice/internal/service/business"
	"github.com/localpages/backoffice/internal/service/invitation"
)

// InvitationHandlers exposes manager-invitation dispatch to the owner
// panel.
type InvitationHandlers struct {
	invitations *invitation.Service
	businesses  *business.Service
}

// NewInvitationHandlers creates the invitation handlers.
func NewInvitationHandlers(invitations *invitation.Service, businesses *business.Service) *InvitationHandlers {
	return &InvitationHandlers{invitations: invitations, businesses: businesses}
}

type createInvitationRequest struct {
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
}

// Create handles POST /api/businesses/{businessID}/invitations.
func (h *InvitationHandlers) Create(w http.ResponseWriter, r *http.Request) {
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

	var req createInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.invitations.Create(r.Context(), invitation.CreateParams{
		BusinessID:  businessID,
		Email:       req.Email,
		ActorID:     actor.ID,
		Permissions: req.Permissions,
	})
	switch err {
	case nil:
	case invitation.ErrEmailRequired:
		respondError(w, http.StatusBadRequest, "email is required")
		return
	default:
		logger.Error("invitation create failed", "business_id", businessID, "error", err.Error())
		respondError(w, http.StatusInternalServerError, "failed to create invitation")
		return
	}

	// A failed email is not a failed create; the panel shows the
	// "created but not sent" state from email_sent.
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"invitation": result.Invitation,
		"email_sent": result.EmailSent,
	})
}

// List handles GET /api/businesses/{businessID}/invitations.
func (h *InvitationHandlers) List(w http.ResponseWriter, r *http.Request) {
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

	pending, err := h.invitations.ListPending(r.Context(), businessID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list invitations")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"invitations": pending})
}

// Resend handles POST /api/invitations/{invitationID}/resend. The actor
// must be authorized for the invitation's business, same as Create.
func (h *InvitationHandlers) Resend(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	id := chi.URLParam(r, "invitationID")

	inv, err := h.invitations.Get(r.Context(), id)
	if err == invitation.ErrNotFound {
		respondError(w, http.StatusNotFound, "invitation not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load invitation")
		return
	}

	ok, err := h.businesses.Authorized(r.Context(), actor.ID, inv.BusinessID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "authorization check failed")
		return
	}
	if !ok {
		respondError(w, http.StatusForbidden, "not authorized for this business")
		return
	}

	sent, err := h.invitations.Resend(r.Context(), id, actor.ID)
	switch err {
	case nil:
		respondJSON(w, http.StatusOK, map[string]bool{"email_sent": sent})
	case invitation.ErrNotFound:
		respondError(w, http.StatusNotFound, "invitation not found")
	default:
		logger.Error("invitation resend failed", "invitation_id", id, "error", err.Error())
		respondError(w, http.StatusInternalServerError, "failed to resend invitation")
	}
}
