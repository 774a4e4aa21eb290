package invitation

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/localpages/backoffice/internal/domain"
	"github.com/localpages/backoffice/internal/pkg/logger"
)

const (
	tokenLength   = 64
	tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// TemplateManagerInvite identifies the Liquid template used for the
	// invitation email.
	TemplateManagerInvite = "manager_invite"
)

// Options configures invitation dispatch.
type Options struct {
	// AcceptURLBase is the owner-panel URL the token is appended to.
	AcceptURLBase string
	// Expiry is how long an invitation can be accepted.
	Expiry time.Duration
	// SendTimeout bounds the mail-send attempt; timeout counts as failure.
	SendTimeout time.Duration
}

// Service implements the invitation dispatch flow.
type Service struct {
	repo     Repository
	mailer   Mailer
	notifier Notifier
	opts     Options
}

// NewService creates an invitation service.
func NewService(repo Repository, mailer Mailer, notifier Notifier, opts Options) *Service {
	if opts.Expiry <= 0 {
		opts.Expiry = 7 * 24 * time.Hour
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = 15 * time.Second
	}
	return &Service{repo: repo, mailer: mailer, notifier: notifier, opts: opts}
}

// NormalizePermissions projects a list of granted keys onto the closed
// permission set: every recognized key maps to true iff present in the
// input, unrecognized keys are silently dropped.
func NormalizePermissions(granted []string) domain.PermissionSet {
	requested := make(map[domain.Permission]bool, len(granted))
	for _, g := range granted {
		requested[domain.Permission(g)] = true
	}
	out := make(domain.PermissionSet, len(domain.AllPermissions()))
	for _, p := range domain.AllPermissions() {
		out[p] = requested[p]
	}
	return out
}

// NewToken generates a cryptographically random alphanumeric token.
func NewToken() (string, error) {
	var b strings.Builder
	b.Grow(tokenLength)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := 0; i < tokenLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate token: %w", err)
		}
		b.WriteByte(tokenAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// CreateParams carries form input for a new invitation. ActorID is the
// authenticated inviter, never a client-supplied value.
type CreateParams struct {
	BusinessID  string
	Email       string
	ActorID     string
	Permissions []string
	Token       string // assigned if empty
}

// CreateResult reports the created record and whether the invitation
// email went out.
type CreateResult struct {
	Invitation *domain.ManagerInvitation
	EmailSent  bool
}

// Create persists a pending invitation and attempts the invitation email.
// A mail failure does not roll the record back; the actor gets a
// warning-severity notification instead of an error.
func (s *Service) Create(ctx context.Context, p CreateParams) (*CreateResult, error) {
	email := strings.ToLower(strings.TrimSpace(p.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	if p.BusinessID == "" {
		return nil, ErrBusinessRequired
	}

	token := p.Token
	if token == "" {
		var err error
		token, err = NewToken()
		if err != nil {
			return nil, err
		}
	}

	inv := &domain.ManagerInvitation{
		BusinessID:  p.BusinessID,
		Email:       email,
		Token:       token,
		InvitedBy:   p.ActorID,
		Status:      domain.InvitationPending,
		Permissions: NormalizePermissions(p.Permissions),
		ExpiresAt:   time.Now().Add(s.opts.Expiry).UTC(),
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}

	sent := s.dispatch(ctx, inv, inv.InvitedBy)
	return &CreateResult{Invitation: inv, EmailSent: sent}, nil
}

// Get returns an invitation by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.ManagerInvitation, error) {
	return s.repo.Get(ctx, id)
}

// Resend re-dispatches the invitation email for an existing invitation.
// The outcome notification goes to the actor requesting the resend, who
// is not necessarily the original inviter.
func (s *Service) Resend(ctx context.Context, id, actorID string) (bool, error) {
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if actorID == "" {
		actorID = inv.InvitedBy
	}
	return s.dispatch(ctx, inv, actorID), nil
}

// ListPending returns the pending invitations for a business.
func (s *Service) ListPending(ctx context.Context, businessID string) ([]domain.ManagerInvitation, error) {
	return s.repo.ListPending(ctx, businessID)
}

// dispatch attempts the invitation email and records the outcome as a
// notification for notifyTo. Returns true if the send completed.
func (s *Service) dispatch(ctx context.Context, inv *domain.ManagerInvitation, notifyTo string) bool {
	sendCtx, cancel := context.WithTimeout(ctx, s.opts.SendTimeout)
	defer cancel()

	vars := map[string]interface{}{
		"accept_url": fmt.Sprintf("%s/%s", strings.TrimRight(s.opts.AcceptURLBase, "/"), inv.Token),
		"expires_at": inv.ExpiresAt.Format("January 2, 2006 at 15:04 MST"),
	}

	err := s.mailer.Send(sendCtx, inv.Email, "You've been invited to manage a business", TemplateManagerInvite, vars)
	if err != nil {
		logger.Error("invitation email failed",
			"invitation_id", inv.ID,
			"email", inv.Email,
			"error", err.Error(),
		)
		s.notify(ctx, notifyTo,
			"Invitation created, email not sent",
			fmt.Sprintf("The invitation for %s was saved but the email could not be delivered. You can resend it from the invitations list.", inv.Email),
			domain.SeverityWarning,
		)
		return false
	}

	s.notify(ctx, notifyTo,
		"Invitation sent",
		fmt.Sprintf("An invitation email was sent to %s.", inv.Email),
		domain.SeveritySuccess,
	)
	return true
}

func (s *Service) notify(ctx context.Context, userID, title, body string, sev domain.NotificationSeverity) {
	if s.notifier == nil || userID == "" {
		return
	}
	if err := s.notifier.Notify(ctx, userID, title, body, sev); err != nil {
		logger.Warn("notification delivery failed", "user_id", userID, "error", err.Error())
	}
}
