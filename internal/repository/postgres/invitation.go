package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/localpages/backoffice/internal/domain"
	"github.com/localpages/backoffice/internal/service/invitation"
)

// InvitationRepo implements invitation.Repository against PostgreSQL.
// The invitation_token column carries a UNIQUE constraint.
type InvitationRepo struct{ db *sql.DB }

// NewInvitationRepo creates a Postgres-backed invitation repository.
func NewInvitationRepo(db *sql.DB) *InvitationRepo { return &InvitationRepo{db: db} }

func (r *InvitationRepo) Create(ctx context.Context, inv *domain.ManagerInvitation) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	perms, err := json.Marshal(inv.Permissions)
	if err != nil {
		return fmt.Errorf("marshal permissions: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO manager_invitations
			(id, business_id, email, invitation_token, invited_by, status, permissions, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`, inv.ID, inv.BusinessID, inv.Email, inv.Token, inv.InvitedBy, inv.Status, perms, inv.ExpiresAt)
	if err != nil {
		return fmt.Errorf("create invitation: %w", err)
	}
	return nil
}

func (r *InvitationRepo) Get(ctx context.Context, id string) (*domain.ManagerInvitation, error) {
	inv := &domain.ManagerInvitation{}
	var perms []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT id, business_id, email, invitation_token, invited_by, status, permissions, expires_at, created_at
		FROM manager_invitations
		WHERE id = $1
	`, id).Scan(&inv.ID, &inv.BusinessID, &inv.Email, &inv.Token, &inv.InvitedBy,
		&inv.Status, &perms, &inv.ExpiresAt, &inv.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, invitation.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	if err := json.Unmarshal(perms, &inv.Permissions); err != nil {
		return nil, fmt.Errorf("unmarshal permissions: %w", err)
	}
	return inv, nil
}

func (r *InvitationRepo) ListPending(ctx context.Context, businessID string) ([]domain.ManagerInvitation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, business_id, email, invitation_token, invited_by, status, permissions, expires_at, created_at
		FROM manager_invitations
		WHERE business_id = $1 AND status = 'pending'
		ORDER BY created_at DESC
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("list pending invitations: %w", err)
	}
	defer rows.Close()

	var out []domain.ManagerInvitation
	for rows.Next() {
		var inv domain.ManagerInvitation
		var perms []byte
		if err := rows.Scan(&inv.ID, &inv.BusinessID, &inv.Email, &inv.Token, &inv.InvitedBy,
			&inv.Status, &perms, &inv.ExpiresAt, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		if err := json.Unmarshal(perms, &inv.Permissions); err != nil {
			return nil, fmt.Errorf("unmarshal permissions: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}
