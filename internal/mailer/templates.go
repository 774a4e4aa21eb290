package mailer

import (
	"fmt"
	"sync"

	"github.com/osteele/liquid"
)

// Liquid sources for outbound back-office email, keyed by template id.
var templateSources = map[string]string{
	"manager_invite": `<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>You've been invited to help manage a business</h2>
  <p>
    A business owner on LocalPages has invited you to join their team.
    Click below to accept the invitation and set up your access.
  </p>
  <p>
    <a href="{{ accept_url }}" style="background:#2563eb;color:#fff;padding:10px 18px;border-radius:6px;text-decoration:none;">
      Accept invitation
    </a>
  </p>
  <p>This invitation expires on {{ expires_at }}.</p>
  <p style="color:#888;font-size:12px;">
    If you weren't expecting this email you can safely ignore it.
  </p>
</body>
</html>`,
}

// TemplateRenderer renders Liquid email templates with caching.
type TemplateRenderer struct {
	engine *liquid.Engine
	cache  sync.Map // map[string]*liquid.Template
}

// NewTemplateRenderer creates a renderer over the built-in template set.
func NewTemplateRenderer() *TemplateRenderer {
	return &TemplateRenderer{engine: liquid.NewEngine()}
}

// Render produces the HTML body for a template id and variable bindings.
func (r *TemplateRenderer) Render(templateID string, vars map[string]interface{}) (string, error) {
	if cached, ok := r.cache.Load(templateID); ok {
		out, err := cached.(*liquid.Template).RenderString(vars)
		if err != nil {
			return "", fmt.Errorf("render template %s: %w", templateID, err)
		}
		return out, nil
	}

	src, ok := templateSources[templateID]
	if !ok {
		return "", fmt.Errorf("unknown email template %q", templateID)
	}
	tpl, err := r.engine.ParseString(src)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", templateID, err)
	}
	r.cache.Store(templateID, tpl)

	out, err := tpl.RenderString(vars)
	if err != nil {
		return "", fmt.Errorf("render template %s: %w", templateID, err)
	}
	return out, nil
}
