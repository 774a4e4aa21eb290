package preference

import (
	"context"
	"strings"

	"github.com/localpages/backoffice/internal/domain"
)

// Service implements preference business logic.
type Service struct {
	repo Repository
}

// NewService creates a preference service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns a user's notification preferences.
func (s *Service) Get(ctx context.Context, userID string) (*domain.NotificationPreference, error) {
	return s.repo.GetByUser(ctx, userID)
}

// OptOutAll clears every known topic flag for users matching the email.
// Topic-blind: a global unsubscribe turns off newsletter and promotions
// alike.
func (s *Service) OptOutAll(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	return s.repo.ClearTopics(ctx, email, []domain.NotificationTopic{
		domain.TopicNewsletter,
		domain.TopicPromotions,
	})
}

// OptOutTopic clears a single topic flag for users matching the email,
// leaving sibling topics untouched. Returns ErrUnknownTopic for topics
// outside the fixed mapping.
func (s *Service) OptOutTopic(ctx context.Context, email string, topic domain.NotificationTopic) error {
	if !domain.KnownTopic(topic) {
		return ErrUnknownTopic
	}
	email = strings.ToLower(strings.TrimSpace(email))
	return s.repo.ClearTopics(ctx, email, []domain.NotificationTopic{topic})
}
