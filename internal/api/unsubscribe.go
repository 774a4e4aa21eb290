package api

import (
	"encoding/base64"
	"html/template"
	"net/http"
	"strings"

	"github.com/localpages/backoffice/internal/domain"
	"github.com/localpages/backoffice/internal/pkg/logger"
	"github.com/localpages/backoffice/internal/service/preference"
	"github.com/localpages/backoffice/internal/service/suppression"
)

// UnsubscribeHandler serves one-click unsubscribe links embedded in
// outbound mail. The link itself is the credential; responses never
// reveal whether the address was known.
type UnsubscribeHandler struct {
	suppressions *suppression.Service
	preferences  *preference.Service
}

// NewUnsubscribeHandler creates the unsubscribe handler.
func NewUnsubscribeHandler(suppressions *suppression.Service, preferences *preference.Service) *UnsubscribeHandler {
	return &UnsubscribeHandler{suppressions: suppressions, preferences: preferences}
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<head><title>Unsubscribed</title></head>
<body style="font-family: sans-serif; max-width: 480px; margin: 64px auto;">
  <h1>You've been unsubscribed</h1>
  {{if eq .Topic "all"}}
  <p>You will no longer receive emails from us.</p>
  {{else}}
  <p>You will no longer receive <strong>{{.Topic}}</strong> emails from us.</p>
  {{end}}
  <p>It may take a few days for this change to apply to emails already scheduled.</p>
</body>
</html>
`))

var invalidLinkTmpl = template.Must(template.New("invalid").Parse(`<!DOCTYPE html>
<html>
<head><title>Invalid link</title></head>
<body style="font-family: sans-serif; max-width: 480px; margin: 64px auto;">
  <h1>This link is not valid</h1>
  <p>The unsubscribe link you followed is incomplete or has expired. Please use the link from a recent email.</p>
</body>
</html>
`))

// decodeEmailParam decodes the base64 email parameter. Mail clients and
// forwarders mangle padding and alphabets, so every base64 variant is
// accepted.
func decodeEmailParam(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, enc := range []*base64.Encoding{
		base64.URLEncoding,
		base64.StdEncoding,
		base64.RawURLEncoding,
		base64.RawStdEncoding,
	} {
		if b, err := enc.DecodeString(raw); err == nil {
			email := strings.ToLower(strings.TrimSpace(string(b)))
			if strings.Contains(email, "@") {
				return email
			}
			return ""
		}
	}
	return ""
}

// ServeHTTP handles GET /unsubscribe?e=<base64 email>&t=<topic?>.
func (h *UnsubscribeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	email := decodeEmailParam(r.URL.Query().Get("e"))
	if email == "" {
		// Expected noise from stale or truncated links, not an error.
		h.renderInvalid(w)
		return
	}

	ctx := r.Context()
	rawTopic := r.URL.Query().Get("t")
	confirmTopic := "all"

	switch {
	case rawTopic == "":
		if err := h.suppressions.Suppress(ctx, email, domain.ReasonUserUnsubscribe, domain.SourceUnsubscribeLink, nil); err != nil {
			logger.Error("unsubscribe suppression failed", "email", email, "error", err.Error())
		}
		if err := h.preferences.OptOutAll(ctx, email); err != nil {
			logger.Error("unsubscribe preference update failed", "email", email, "error", err.Error())
		}

	case domain.KnownTopic(domain.NotificationTopic(rawTopic)):
		topic := domain.NotificationTopic(rawTopic)
		confirmTopic = rawTopic
		if err := h.preferences.OptOutTopic(ctx, email, topic); err != nil {
			logger.Error("unsubscribe preference update failed", "email", email, "topic", rawTopic, "error", err.Error())
		}
		// Topic suppression blocks future sends even when no preference
		// row exists yet for this address.
		if err := h.suppressions.Suppress(ctx, email, domain.TopicUnsubscribeReason(topic), domain.SourceUnsubscribeLink, nil); err != nil {
			logger.Error("unsubscribe suppression failed", "email", email, "topic", rawTopic, "error", err.Error())
		}

	default:
		// Unrecognized topic values get the global treatment with a
		// distinguishing reason so they show up in the stats.
		if err := h.suppressions.Suppress(ctx, email, domain.ReasonUserUnsubscribeUnknown, domain.SourceUnsubscribeLink, nil); err != nil {
			logger.Error("unsubscribe suppression failed", "email", email, "topic", rawTopic, "error", err.Error())
		}
		if err := h.preferences.OptOutAll(ctx, email); err != nil {
			logger.Error("unsubscribe preference update failed", "email", email, "error", err.Error())
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := confirmationTmpl.Execute(w, struct{ Topic string }{Topic: confirmTopic}); err != nil {
		logger.Error("confirmation render failed", "error", err.Error())
	}
}

func (h *UnsubscribeHandler) renderInvalid(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	if err := invalidLinkTmpl.Execute(w, nil); err != nil {
		logger.Error("invalid link render failed", "error", err.Error())
	}
}
