// Package notify delivers in-app notifications to panel actors. It backs
// the toast/flash area of the owner panel; flows that must not fail on a
// notification error log and continue.
package notify

import (
	"context"

	"github.com/localpages/backoffice/internal/domain"
)

// Repository defines the data access contract for notifications.
type Repository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListForUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error)
}

// Service records and lists actor-facing notifications.
type Service struct {
	repo Repository
}

// NewService creates a notification service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Notify records an in-app notification for a user.
func (s *Service) Notify(ctx context.Context, userID, title, body string, severity domain.NotificationSeverity) error {
	return s.repo.Create(ctx, &domain.Notification{
		UserID:   userID,
		Title:    title,
		Body:     body,
		Severity: severity,
	})
}

// Recent returns the user's newest notifications.
func (s *Service) Recent(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	return s.repo.ListForUser(ctx, userID, limit)
}
