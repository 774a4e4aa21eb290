package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localpages/backoffice/internal/domain"
	"github.com/localpages/backoffice/internal/service/suppression"
)

func newMockDB(t *testing.T) (*SuppressionRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSuppressionRepo(db), mock
}

func TestSuppressionUpsert_SingleStatementWithConflictClause(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectExec(`INSERT INTO suppressions .*ON CONFLICT \(email\) DO UPDATE`).
		WithArgs(sqlmock.AnyArg(), "a@b.com", "hard_bounce", "mailer_webhook", []byte(`{"recipient":"a@b.com"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &domain.Suppression{
		Email:   "a@b.com",
		Reason:  "hard_bounce",
		Source:  domain.SourceMailerWebhook,
		Payload: []byte(`{"recipient":"a@b.com"}`),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSuppressionUpsert_NilPayloadStoredAsNull(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectExec(`INSERT INTO suppressions`).
		WithArgs(sqlmock.AnyArg(), "a@b.com", "user_unsubscribe", "unsubscribe_link", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &domain.Suppression{
		Email:  "a@b.com",
		Reason: domain.ReasonUserUnsubscribe,
		Source: domain.SourceUnsubscribeLink,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSuppressionGet_NotFound(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT .* FROM suppressions`).
		WithArgs("ghost@b.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "reason", "source", "payload", "created_at", "updated_at"}))

	_, err := repo.Get(context.Background(), "ghost@b.com")
	assert.ErrorIs(t, err, suppression.ErrNotFound)
}

func TestSuppressionGet_ReturnsRecord(t *testing.T) {
	repo, mock := newMockDB(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM suppressions`).
		WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "email", "reason", "source", "payload", "created_at", "updated_at"}).
			AddRow("id-1", "a@b.com", "hard_bounce", "mailer_webhook", `{"x":1}`, now, now))

	s, err := repo.Get(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "hard_bounce", s.Reason)
	assert.Equal(t, domain.SourceMailerWebhook, s.Source)
	assert.JSONEq(t, `{"x":1}`, string(s.Payload))
}

func TestSuppressionRemove_NotFound(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectExec(`DELETE FROM suppressions`).
		WithArgs("ghost@b.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Remove(context.Background(), "ghost@b.com")
	assert.ErrorIs(t, err, suppression.ErrNotFound)
}

func TestSuppressionList_FiltersBySource(t *testing.T) {
	repo, mock := newMockDB(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM suppressions`).
		WithArgs("unsubscribe_link").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT id, email, reason, source, created_at, updated_at FROM suppressions`).
		WithArgs("unsubscribe_link", 1, 0).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "email", "reason", "source", "created_at", "updated_at"}).
			AddRow("id-1", "a@b.com", "user_unsubscribe", "unsubscribe_link", now, now))

	records, total, err := repo.List(context.Background(), suppression.ListFilter{Source: "unsubscribe_link"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, records, 1)
	assert.Equal(t, "a@b.com", records[0].Email)
}
