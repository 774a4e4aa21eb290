package suppression

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
	store map[string]*domain.Suppression // keyed by email
}

func newMockRepo() *mockRepo {
	return &mockRepo{store: make(map[string]*domain.Suppression)}
}

func (m *mockRepo) Upsert(_ context.Context, s *domain.Suppression) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.store[strings.ToLower(s.Email)] = &cp
	return nil
}

func (m *mockRepo) Get(_ context.Context, email string) (*domain.Suppression, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.store[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *mockRepo) IsSuppressed(_ context.Context, email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.store[strings.ToLower(email)]
	return ok, nil
}

func (m *mockRepo) Remove(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := strings.ToLower(email)
	if _, ok := m.store[k]; !ok {
		return ErrNotFound
	}
	delete(m.store, k)
	return nil
}

func (m *mockRepo) List(_ context.Context, f ListFilter) ([]domain.Suppression, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []domain.Suppression
	for _, s := range m.store {
		if f.Source != "" && string(s.Source) != f.Source {
			continue
		}
		result = append(result, *s)
	}
	return result, len(result), nil
}

func TestSuppress_CreatesRecord(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	err := svc.Suppress(ctx, "Visitor@Example.com", domain.ReasonUserUnsubscribe, domain.SourceUnsubscribeLink, nil)
	if err != nil {
		t.Fatalf("Suppress: %v", err)
	}

	ok, err := svc.IsSuppressed(ctx, "visitor@example.com")
	if err != nil {
		t.Fatalf("IsSuppressed: %v", err)
	}
	if !ok {
		t.Error("expected email to be suppressed after Suppress()")
	}
}

func TestSuppress_RepeatOverwritesNotAppends(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := svc.Suppress(ctx, "dup@example.com", domain.ReasonUserUnsubscribe, domain.SourceUnsubscribeLink, nil); err != nil {
			t.Fatalf("Suppress #%d: %v", i, err)
		}
	}

	_, total, _ := svc.List(ctx, ListFilter{})
	if total != 1 {
		t.Errorf("expected 1 record after repeated suppress, got %d", total)
	}

	rec, err := svc.Get(ctx, "dup@example.com")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Reason != domain.ReasonUserUnsubscribe {
		t.Errorf("unexpected reason %q", rec.Reason)
	}
}

func TestSuppress_OverwriteChangesReasonAndSource(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	_ = svc.Suppress(ctx, "a@b.com", domain.ReasonUserUnsubscribe, domain.SourceUnsubscribeLink, nil)
	_ = svc.Suppress(ctx, "a@b.com", "hard_bounce", domain.SourceMailerWebhook, []byte(`{"recipient":"a@b.com"}`))

	rec, err := svc.Get(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Reason != "hard_bounce" {
		t.Errorf("expected overwritten reason, got %q", rec.Reason)
	}
	if rec.Source != domain.SourceMailerWebhook {
		t.Errorf("expected overwritten source, got %q", rec.Source)
	}
	if len(rec.Payload) == 0 {
		t.Error("expected payload to be retained")
	}
}

func TestSuppress_EmptyEmail_Fails(t *testing.T) {
	svc := NewService(newMockRepo())

	err := svc.Suppress(context.Background(), "   ", "x", domain.SourceUnsubscribeLink, nil)
	if err != ErrEmailRequired {
		t.Errorf("expected ErrEmailRequired, got %v", err)
	}
}

func TestRemove_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	err := svc.Remove(context.Background(), "ghost@example.com")
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetStats_GroupsBySourceAndReason(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	_ = svc.Suppress(ctx, "a@example.com", domain.ReasonUserUnsubscribe, domain.SourceUnsubscribeLink, nil)
	_ = svc.Suppress(ctx, "b@example.com", "hard_bounce", domain.SourceMailerWebhook, nil)
	_ = svc.Suppress(ctx, "c@example.com", "hard_bounce", domain.SourceMailerWebhook, nil)

	stats, err := svc.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("expected total=3, got %d", stats.Total)
	}
	if stats.BySource["mailer_webhook"] != 2 {
		t.Errorf("expected 2 webhook records, got %d", stats.BySource["mailer_webhook"])
	}
	if stats.ByReason["hard_bounce"] != 2 {
		t.Errorf("expected 2 hard bounces, got %d", stats.ByReason["hard_bounce"])
	}
}
