package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/localpages/backoffice/internal/service/suppression"
)

// SuppressionHandlers exposes the suppression list to the admin panel.
type SuppressionHandlers struct {
	suppressions *suppression.Service
}

// NewSuppressionHandlers creates the suppression admin handlers.
func NewSuppressionHandlers(suppressions *suppression.Service) *SuppressionHandlers {
	return &SuppressionHandlers{suppressions: suppressions}
}

// List handles GET /api/suppressions?source=&search=&limit=&offset=.
func (h *SuppressionHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	offset, _ := strconv.Atoi(q.Get("offset"))

	records, total, err := h.suppressions.List(r.Context(), suppression.ListFilter{
		Source: q.Get("source"),
		Search: q.Get("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list suppressions")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"suppressions": records,
		"total":        total,
		"limit":        limit,
		"offset":       offset,
	})
}

// Stats handles GET /api/suppressions/stats.
func (h *SuppressionHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.suppressions.GetStats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// Check handles GET /api/suppressions/check?email=.
func (h *SuppressionHandlers) Check(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	suppressed, err := h.suppressions.IsSuppressed(r.Context(), email)
	if err == suppression.ErrEmailRequired {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to check suppression")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"suppressed": suppressed})
}

// Remove handles DELETE /api/suppressions/{email}. Manual admin action,
// the only way a suppression record goes away.
func (h *SuppressionHandlers) Remove(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	err := h.suppressions.Remove(r.Context(), email)
	switch err {
	case nil:
		respondJSON(w, http.StatusOK, map[string]bool{"removed": true})
	case suppression.ErrEmailRequired:
		respondError(w, http.StatusBadRequest, "email is required")
	case suppression.ErrNotFound:
		respondError(w, http.StatusNotFound, "suppression not found")
	default:
		respondError(w, http.StatusInternalServerError, "failed to remove suppression")
	}
}
