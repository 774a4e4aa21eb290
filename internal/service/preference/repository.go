package preference

import (
	"context"

	"github.com/localpages/backoffice/internal/domain"
)

// Repository defines the data access contract for notification preferences.
type Repository interface {
	// GetByUser returns a user's preference row, or ErrNotFound.
	GetByUser(ctx context.Context, userID string) (*domain.NotificationPreference, error)

	// ClearTopics sets the given topic flags to false on every preference
	// row whose user email matches. Zero matching rows is not an error;
	// the address may have no account yet.
	ClearTopics(ctx context.Context, email string, topics []domain.NotificationTopic) error
}
