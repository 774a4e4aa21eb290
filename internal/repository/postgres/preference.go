package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/localpages/backoffice/internal/domain"
	"github.com/localpages/backoffice/internal/service/preference"
)

// PreferenceRepo implements preference.Repository against PostgreSQL.
type PreferenceRepo struct{ db *sql.DB }

// NewPreferenceRepo creates a Postgres-backed preference repository.
func NewPreferenceRepo(db *sql.DB) *PreferenceRepo { return &PreferenceRepo{db: db} }

func (r *PreferenceRepo) GetByUser(ctx context.Context, userID string) (*domain.NotificationPreference, error) {
	p := &domain.NotificationPreference{}
	err := r.db.QueryRowContext(ctx, `
		SELECT np.user_id, u.email, np.notify_newsletter_customer, np.notify_promotions_customer, np.updated_at
		FROM notification_preferences np
		JOIN users u ON u.id = np.user_id
		WHERE np.user_id = $1
	`, userID).Scan(&p.UserID, &p.Email, &p.NotifyNewsletterCustomer, &p.NotifyPromotionsCustomer, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, preference.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get preference: %w", err)
	}
	return p, nil
}

// ClearTopics updates every preference row whose user's email matches.
// The column list is built from the fixed topic enum, never from request
// input.
func (r *PreferenceRepo) ClearTopics(ctx context.Context, email string, topics []domain.NotificationTopic) error {
	sets := ""
	for _, t := range topics {
		col := topicColumn(t)
		if col == "" {
			continue
		}
		if sets != "" {
			sets += ", "
		}
		sets += col + " = false"
	}
	if sets == "" {
		return nil
	}

	q := fmt.Sprintf(`
		UPDATE notification_preferences SET %s, updated_at = NOW()
		WHERE user_id IN (SELECT id FROM users WHERE LOWER(email) = $1)
	`, sets)
	if _, err := r.db.ExecContext(ctx, q, email); err != nil {
		return fmt.Errorf("clear preference topics: %w", err)
	}
	return nil
}

func topicColumn(t domain.NotificationTopic) string {
	switch t {
	case domain.TopicNewsletter:
		return "notify_newsletter_customer"
	case domain.TopicPromotions:
		return "notify_promotions_customer"
	}
	return ""
}
