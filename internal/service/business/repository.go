package business

import (
	"context"

	"github.com/localpages/backoffice/internal/domain"
)

// Repository defines the data access contract for businesses.
type Repository interface {
	// Get returns a business by id, or ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Business, error)

	// ListForUser returns every business the user owns or manages.
	ListForUser(ctx context.Context, userID string) ([]domain.Business, error)

	// IsMember reports whether the user owns or manages the business.
	IsMember(ctx context.Context, userID, businessID string) (bool, error)
}
