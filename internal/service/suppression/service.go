package suppression

import (
	"context"
	"strings"

	"github.com/localpages/backoffice/internal/domain"
)

// Service implements suppression business logic. It is safe for concurrent
// use; idempotence under duplicate webhook deliveries comes from the
// repository's atomic upsert, not from locking here.
type Service struct {
	repo Repository
}

// NewService creates a suppression service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// normalize lowercases and trims an email so link- and webhook-sourced
// writes for the same address converge on one record.
func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Suppress records that an address must not receive further sends.
// Calling it again for the same email overwrites reason, source and
// payload rather than appending a second record.
func (s *Service) Suppress(ctx context.Context, email, reason string, source domain.SuppressionSource, payload []byte) error {
	email = normalize(email)
	if email == "" {
		return ErrEmailRequired
	}
	return s.repo.Upsert(ctx, &domain.Suppression{
		Email:   email,
		Reason:  reason,
		Source:  source,
		Payload: payload,
	})
}

// IsSuppressed checks whether an email address is blocked from sending.
func (s *Service) IsSuppressed(ctx context.Context, email string) (bool, error) {
	email = normalize(email)
	if email == "" {
		return false, ErrEmailRequired
	}
	return s.repo.IsSuppressed(ctx, email)
}

// Get returns the suppression record for an email.
func (s *Service) Get(ctx context.Context, email string) (*domain.Suppression, error) {
	email = normalize(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	return s.repo.Get(ctx, email)
}

// Remove deletes a suppression record (manual admin action).
func (s *Service) Remove(ctx context.Context, email string) error {
	email = normalize(email)
	if email == "" {
		return ErrEmailRequired
	}
	return s.repo.Remove(ctx, email)
}

// List returns suppression records matching the given filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]domain.Suppression, int, error) {
	return s.repo.List(ctx, filter)
}

// Stats holds aggregate counts for the admin dashboard.
type Stats struct {
	Total    int            `json:"total"`
	BySource map[string]int `json:"by_source"`
	ByReason map[string]int `json:"by_reason"`
}

// GetStats computes suppression statistics grouped by source and reason.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	records, total, err := s.repo.List(ctx, ListFilter{Limit: 0})
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Total:    total,
		BySource: make(map[string]int),
		ByReason: make(map[string]int),
	}
	for _, r := range records {
		stats.BySource[string(r.Source)]++
		stats.ByReason[r.Reason]++
	}
	return stats, nil
}
