package suppression

import (
	"context"

	"github.com/localpages/backoffice/internal/domain"
)

// Repository defines the data access contract for the suppression list.
type Repository interface {
	// Upsert writes a suppression record keyed by email. If a record for
	// the email already exists its reason, source and payload are
	// overwritten in a single atomic statement.
	Upsert(ctx context.Context, s *domain.Suppression) error

	// Get returns the record for an email, or ErrNotFound.
	Get(ctx context.Context, email string) (*domain.Suppression, error)

	// IsSuppressed returns true if the email has a suppression record.
	IsSuppressed(ctx context.Context, email string) (bool, error)

	// Remove deletes a suppression record. Returns ErrNotFound if absent.
	Remove(ctx context.Context, email string) error

	// List returns records matching the filter plus the total count.
	List(ctx context.Context, filter ListFilter) ([]domain.Suppression, int, error)
}

// ListFilter controls pagination and filtering for suppression lists.
type ListFilter struct {
	Source string
	Search string
	Limit  int
	Offset int
}
