package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/localpages/backoffice/internal/domain"
	"github.com/localpages/backoffice/internal/pkg/logger"
	"github.com/localpages/backoffice/internal/service/suppression"
)

// maxWebhookBody caps bounce payloads at 1MB. Provider events are a few
// KB; anything larger is garbage.
const maxWebhookBody = 1 << 20

// BounceWebhookHandler ingests bounce callbacks from the mail provider.
// Providers deliver at-least-once and retry on non-2xx, so the handler
// always answers ok and logs what it could not process.
type BounceWebhookHandler struct {
	suppressions *suppression.Service
}

// NewBounceWebhookHandler creates the bounce webhook handler.
func NewBounceWebhookHandler(suppressions *suppression.Service) *BounceWebhookHandler {
	return &BounceWebhookHandler{suppressions: suppressions}
}

// extractEmail pulls the bounced address out of a provider payload.
// Precedence: top-level "email", then "recipient", then the nested
// message.to[0].email path some providers use. First non-empty wins.
func extractEmail(payload map[string]interface{}) string {
	if email, ok := payload["email"].(string); ok && strings.TrimSpace(email) != "" {
		return email
	}
	if recipient, ok := payload["recipient"].(string); ok && strings.TrimSpace(recipient) != "" {
		return recipient
	}
	msg, ok := payload["message"].(map[string]interface{})
	if !ok {
		return ""
	}
	to, ok := msg["to"].([]interface{})
	if !ok || len(to) == 0 {
		return ""
	}
	first, ok := to[0].(map[string]interface{})
	if !ok {
		return ""
	}
	if email, ok := first["email"].(string); ok {
		return strings.TrimSpace(email)
	}
	return ""
}

// extractReason pulls the bounce reason: "reason" wins over the event
// name, and "bounce" is the fallback when neither is present.
func extractReason(payload map[string]interface{}) string {
	if reason, ok := payload["reason"].(string); ok && reason != "" {
		return reason
	}
	if event, ok := payload["event"].(string); ok && event != "" {
		return event
	}
	return "bounce"
}

// ServeHTTP handles POST /webhooks/mailer/bounce.
func (h *BounceWebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		logger.Warn("bounce webhook body read failed", "error", err.Error())
		respondOK(w)
		return
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		logger.Warn("bounce webhook payload not json", "error", err.Error())
		respondOK(w)
		return
	}

	email := extractEmail(payload)
	if email == "" {
		logger.Warn("bounce webhook without resolvable email")
		respondOK(w)
		return
	}

	reason := extractReason(payload)
	if err := h.suppressions.Suppress(r.Context(), email, reason, domain.SourceMailerWebhook, body); err != nil {
		logger.Error("bounce suppression failed", "email", email, "reason", reason, "error", err.Error())
	} else {
		logger.Info("bounce recorded", "email", email, "reason", reason)
	}
	respondOK(w)
}

func respondOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"ok":true}`))
}
