package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/localpages/backoffice/internal/domain"
	"github.com/localpages/backoffice/internal/service/business"
)

// BusinessRepo implements business.Repository against PostgreSQL.
type BusinessRepo struct{ db *sql.DB }

// NewBusinessRepo creates a Postgres-backed business repository.
func NewBusinessRepo(db *sql.DB) *BusinessRepo { return &BusinessRepo{db: db} }

func (r *BusinessRepo) Get(ctx context.Context, id string) (*domain.Business, error) {
	b := &domain.Business{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, owner_id, status, created_at
		FROM businesses
		WHERE id = $1
	`, id).Scan(&b.ID, &b.Name, &b.OwnerID, &b.Status, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, business.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get business: %w", err)
	}
	return b, nil
}

func (r *BusinessRepo) ListForUser(ctx context.Context, userID string) ([]domain.Business, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT b.id, b.name, b.owner_id, b.status, b.created_at
		FROM businesses b
		LEFT JOIN business_managers bm ON bm.business_id = b.id
		WHERE b.owner_id = $1 OR bm.user_id = $1
		ORDER BY b.name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list businesses for user: %w", err)
	}
	defer rows.Close()

	var out []domain.Business
	for rows.Next() {
		var b domain.Business
		if err := rows.Scan(&b.ID, &b.Name, &b.OwnerID, &b.Status, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BusinessRepo) IsMember(ctx context.Context, userID, businessID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM businesses WHERE id = $1 AND owner_id = $2
			UNION
			SELECT 1 FROM business_managers WHERE business_id = $1 AND user_id = $2
		)
	`, businessID, userID).Scan(&exists)
	return exists, err
}
