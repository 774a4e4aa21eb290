package invitation

import (
	"context"

	"github.com/localpages/backoffice/internal/domain"
)

// Repository defines the data access contract for manager invitations.
// The store carries a uniqueness constraint on the token column.
type Repository interface {
	// Create persists a new invitation.
	Create(ctx context.Context, inv *domain.ManagerInvitation) error

	// Get returns an invitation by id, or ErrNotFound.
	Get(ctx context.Context, id string) (*domain.ManagerInvitation, error)

	// ListPending returns pending invitations for a business, newest first.
	ListPending(ctx context.Context, businessID string) ([]domain.ManagerInvitation, error)
}

// Mailer is the outbound email port. Implementations either complete the
// send or return a delivery error; the service only depends on that
// boolean outcome.
type Mailer interface {
	Send(ctx context.Context, recipient, subject, templateID string, vars map[string]interface{}) error
}

// Notifier is the in-app notification port for actor-facing outcomes.
type Notifier interface {
	Notify(ctx context.Context, userID, title, body string, severity domain.NotificationSeverity) error
}
