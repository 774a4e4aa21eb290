package preference

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/localpages/backoffice/internal/domain"
)

// mockRepo is an in-memory repository for testing.
type mockRepo struct {
	mu    sync.RWMutex
	byID  map[string]*domain.NotificationPreference
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: make(map[string]*domain.NotificationPreference)}
}

func (m *mockRepo) add(p domain.NotificationPreference) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[p.UserID] = &p
}

func (m *mockRepo) GetByUser(_ context.Context, userID string) (*domain.NotificationPreference, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.byID[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepo) ClearTopics(_ context.Context, email string, topics []domain.NotificationTopic) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byID {
		if !strings.EqualFold(p.Email, email) {
			continue
		}
		for _, t := range topics {
			switch t {
			case domain.TopicNewsletter:
				p.NotifyNewsletterCustomer = false
			case domain.TopicPromotions:
				p.NotifyPromotionsCustomer = false
			}
		}
	}
	return nil
}

func seeded() (*mockRepo, *Service) {
	repo := newMockRepo()
	repo.add(domain.NotificationPreference{
		UserID:                   "user-1",
		Email:                    "sam@example.com",
		NotifyNewsletterCustomer: true,
		NotifyPromotionsCustomer: true,
	})
	repo.add(domain.NotificationPreference{
		UserID:                   "user-2",
		Email:                    "other@example.com",
		NotifyNewsletterCustomer: true,
		NotifyPromotionsCustomer: true,
	})
	return repo, NewService(repo)
}

func TestOptOutAll_ClearsBothTopics(t *testing.T) {
	_, svc := seeded()
	ctx := context.Background()

	if err := svc.OptOutAll(ctx, "SAM@example.com"); err != nil {
		t.Fatalf("OptOutAll: %v", err)
	}

	p, _ := svc.Get(ctx, "user-1")
	if p.NotifyNewsletterCustomer || p.NotifyPromotionsCustomer {
		t.Errorf("expected both flags cleared, got newsletter=%v promotions=%v",
			p.NotifyNewsletterCustomer, p.NotifyPromotionsCustomer)
	}

	// Unrelated user untouched.
	o, _ := svc.Get(ctx, "user-2")
	if !o.NotifyNewsletterCustomer || !o.NotifyPromotionsCustomer {
		t.Error("expected other user's flags to remain set")
	}
}

func TestOptOutTopic_LeavesSiblingFlagUntouched(t *testing.T) {
	_, svc := seeded()
	ctx := context.Background()

	if err := svc.OptOutTopic(ctx, "sam@example.com", domain.TopicNewsletter); err != nil {
		t.Fatalf("OptOutTopic: %v", err)
	}

	p, _ := svc.Get(ctx, "user-1")
	if p.NotifyNewsletterCustomer {
		t.Error("expected newsletter flag cleared")
	}
	if !p.NotifyPromotionsCustomer {
		t.Error("expected promotions flag unchanged")
	}
}

func TestOptOutTopic_UnknownTopic(t *testing.T) {
	_, svc := seeded()

	err := svc.OptOutTopic(context.Background(), "sam@example.com", "sms")
	if err != ErrUnknownTopic {
		t.Errorf("expected ErrUnknownTopic, got %v", err)
	}
}

func TestOptOutAll_NoMatchingUser_IsNoop(t *testing.T) {
	_, svc := seeded()

	if err := svc.OptOutAll(context.Background(), "stranger@example.com"); err != nil {
		t.Fatalf("expected no error for unknown email, got %v", err)
	}
}
