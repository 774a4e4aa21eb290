package business

import (
	"context"

	"github.com/localpages/backoffice/internal/domain"
)

// Service implements business lookup and authorization checks.
type Service struct {
	repo Repository
}

// NewService creates a business service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns a business by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Business, error) {
	return s.repo.Get(ctx, id)
}

// ListForUser returns the businesses an actor can operate.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]domain.Business, error) {
	return s.repo.ListForUser(ctx, userID)
}

// Authorized reports whether the actor may operate the business: the
// business must exist, be active, and the actor must own or manage it.
func (s *Service) Authorized(ctx context.Context, userID, businessID string) (bool, error) {
	b, err := s.repo.Get(ctx, businessID)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if b.Status != domain.BusinessActive {
		return false, nil
	}
	return s.repo.IsMember(ctx, userID, businessID)
}
