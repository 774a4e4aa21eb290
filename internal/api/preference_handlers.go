package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/localpages/backoffice/internal/notify"
	"github.com/localpages/backoffice/internal/service/preference"
)

// PreferenceHandlers exposes the actor's notification preferences and
// in-app notification feed.
type PreferenceHandlers struct {
	preferences   *preference.Service
	notifications *notify.Service
}

// NewPreferenceHandlers creates the preference handlers.
func NewPreferenceHandlers(preferences *preference.Service, notifications *notify.Service) *PreferenceHandlers {
	return &PreferenceHandlers{preferences: preferences, notifications: notifications}
}

// Get handles GET /api/preferences: the actor's own topic flags.
func (h *PreferenceHandlers) Get(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	prefs, err := h.preferences.Get(r.Context(), actor.ID)
	if err == preference.ErrNotFound {
		respondError(w, http.StatusNotFound, "no preferences on record")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load preferences")
		return
	}
	respondJSON(w, http.StatusOK, prefs)
}

// GetForUser handles GET /api/preferences/{userID}: admin read of
// another user's topic flags.
func (h *PreferenceHandlers) GetForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	prefs, err := h.preferences.Get(r.Context(), userID)
	if err == preference.ErrNotFound {
		respondError(w, http.StatusNotFound, "no preferences on record")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load preferences")
		return
	}
	respondJSON(w, http.StatusOK, prefs)
}

// Notifications handles GET /api/notifications?limit=.
func (h *PreferenceHandlers) Notifications(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	items, err := h.notifications.Recent(r.Context(), actor.ID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load notifications")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"notifications": items})
}
