package business

import (
	"context"
	"testing"

	"github.com/localpages/backoffice/internal/domain"
)

// mockRepo is an in-memory repository for testing.
type mockRepo struct {
	businesses map[string]*domain.Business
	members    map[string]map[string]bool // businessID → userID set
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		businesses: make(map[string]*domain.Business),
		members:    make(map[string]map[string]bool),
	}
}

func (m *mockRepo) add(b domain.Business, memberIDs ...string) {
	m.businesses[b.ID] = &b
	set := make(map[string]bool)
	set[b.OwnerID] = true
	for _, id := range memberIDs {
		set[id] = true
	}
	m.members[b.ID] = set
}

func (m *mockRepo) Get(_ context.Context, id string) (*domain.Business, error) {
	b, ok := m.businesses[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *mockRepo) ListForUser(_ context.Context, userID string) ([]domain.Business, error) {
	var out []domain.Business
	for id, set := range m.members {
		if set[userID] {
			out = append(out, *m.businesses[id])
		}
	}
	return out, nil
}

func (m *mockRepo) IsMember(_ context.Context, userID, businessID string) (bool, error) {
	return m.members[businessID][userID], nil
}

func TestAuthorized_OwnerOfActiveBusiness(t *testing.T) {
	repo := newMockRepo()
	repo.add(domain.Business{ID: "biz-1", OwnerID: "u1", Status: domain.BusinessActive})
	svc := NewService(repo)

	ok, err := svc.Authorized(context.Background(), "u1", "biz-1")
	if err != nil {
		t.Fatalf("Authorized: %v", err)
	}
	if !ok {
		t.Error("expected owner to be authorized")
	}
}

func TestAuthorized_ManagerOfActiveBusiness(t *testing.T) {
	repo := newMockRepo()
	repo.add(domain.Business{ID: "biz-1", OwnerID: "u1", Status: domain.BusinessActive}, "u2")
	svc := NewService(repo)

	ok, _ := svc.Authorized(context.Background(), "u2", "biz-1")
	if !ok {
		t.Error("expected manager to be authorized")
	}
}

func TestAuthorized_NonMember(t *testing.T) {
	repo := newMockRepo()
	repo.add(domain.Business{ID: "biz-1", OwnerID: "u1", Status: domain.BusinessActive})
	svc := NewService(repo)

	ok, _ := svc.Authorized(context.Background(), "stranger", "biz-1")
	if ok {
		t.Error("expected non-member to be denied")
	}
}

func TestAuthorized_SuspendedBusiness(t *testing.T) {
	repo := newMockRepo()
	repo.add(domain.Business{ID: "biz-1", OwnerID: "u1", Status: domain.BusinessSuspended})
	svc := NewService(repo)

	ok, _ := svc.Authorized(context.Background(), "u1", "biz-1")
	if ok {
		t.Error("expected suspended business to be denied")
	}
}

func TestAuthorized_MissingBusiness_NoError(t *testing.T) {
	svc := NewService(newMockRepo())

	ok, err := svc.Authorized(context.Background(), "u1", "ghost")
	if err != nil {
		t.Fatalf("expected nil error for missing business, got %v", err)
	}
	if ok {
		t.Error("expected missing business to be denied")
	}
}
