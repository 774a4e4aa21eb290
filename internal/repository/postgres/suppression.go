package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/localpages/backoffice/internal/domain"
	"github.com/localpages/backoffice/internal/service/suppression"
)

// SuppressionRepo implements suppression.Repository against PostgreSQL.
type SuppressionRepo struct{ db *sql.DB }

// NewSuppressionRepo creates a Postgres-backed suppression repository.
func NewSuppressionRepo(db *sql.DB) *SuppressionRepo { return &SuppressionRepo{db: db} }

// Upsert is a single atomic statement so concurrent duplicate webhook
// deliveries converge on the same final record.
func (r *SuppressionRepo) Upsert(ctx context.Context, s *domain.Suppression) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO suppressions (id, email, reason, source, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (email) DO UPDATE SET
			reason = EXCLUDED.reason,
			source = EXCLUDED.source,
			payload = EXCLUDED.payload,
			updated_at = NOW()
	`, s.ID, s.Email, s.Reason, s.Source, nullBytes(s.Payload))
	if err != nil {
		return fmt.Errorf("upsert suppression: %w", err)
	}
	return nil
}

func (r *SuppressionRepo) Get(ctx context.Context, email string) (*domain.Suppression, error) {
	s := &domain.Suppression{}
	var payload sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, reason, source, COALESCE(payload::text, ''), created_at, updated_at
		FROM suppressions
		WHERE email = $1
	`, email).Scan(&s.ID, &s.Email, &s.Reason, &s.Source, &payload, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, suppression.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get suppression: %w", err)
	}
	if payload.Valid && payload.String != "" {
		s.Payload = []byte(payload.String)
	}
	return s, nil
}

func (r *SuppressionRepo) IsSuppressed(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM suppressions WHERE email = $1)`,
		email,
	).Scan(&exists)
	return exists, err
}

func (r *SuppressionRepo) Remove(ctx context.Context, email string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM suppressions WHERE email = $1`,
		email,
	)
	if err != nil {
		return fmt.Errorf("remove suppression: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return suppression.ErrNotFound
	}
	return nil
}

func (r *SuppressionRepo) List(ctx context.Context, f suppression.ListFilter) ([]domain.Suppression, int, error) {
	countQ := `SELECT COUNT(*) FROM suppressions WHERE 1=1`
	args := []interface{}{}
	idx := 1
	if f.Source != "" {
		countQ += fmt.Sprintf(" AND source = $%d", idx)
		args = append(args, f.Source)
		idx++
	}
	if f.Search != "" {
		countQ += fmt.Sprintf(" AND email LIKE $%d", idx)
		args = append(args, "%"+f.Search+"%")
		idx++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count suppressions: %w", err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = total
	}

	q := `SELECT id, email, reason, source, created_at, updated_at FROM suppressions WHERE 1=1`
	qArgs := []interface{}{}
	qIdx := 1
	if f.Source != "" {
		q += fmt.Sprintf(" AND source = $%d", qIdx)
		qArgs = append(qArgs, f.Source)
		qIdx++
	}
	if f.Search != "" {
		q += fmt.Sprintf(" AND email LIKE $%d", qIdx)
		qArgs = append(qArgs, "%"+f.Search+"%")
		qIdx++
	}
	q += fmt.Sprintf(" ORDER BY updated_at DESC LIMIT $%d OFFSET $%d", qIdx, qIdx+1)
	qArgs = append(qArgs, limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, q, qArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list suppressions: %w", err)
	}
	defer rows.Close()

	var out []domain.Suppression
	for rows.Next() {
		var s domain.Suppression
		if err := rows.Scan(&s.ID, &s.Email, &s.Reason, &s.Source, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan suppression: %w", err)
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

// nullBytes maps an empty payload to SQL NULL instead of an empty jsonb.
func nullBytes(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return b
}
