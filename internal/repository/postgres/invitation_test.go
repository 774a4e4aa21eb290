package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localpages/backoffice/internal/domain"
	"github.com/localpages/backoffice/internal/service/invitation"
)

func newInvitationMock(t *testing.T) (*InvitationRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewInvitationRepo(db), mock
}

func TestInvitationCreate_AssignsID(t *testing.T) {
	repo, mock := newInvitationMock(t)

	mock.ExpectExec(`INSERT INTO manager_invitations`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	inv := &domain.ManagerInvitation{
		BusinessID:  "biz-1",
		Email:       "m@example.com",
		Token:       "tok",
		InvitedBy:   "owner-1",
		Status:      domain.InvitationPending,
		Permissions: invitation.NormalizePermissions([]string{"can_view_leads"}),
		ExpiresAt:   time.Now().Add(7 * 24 * time.Hour),
	}
	err := repo.Create(context.Background(), inv)
	require.NoError(t, err)
	assert.NotEmpty(t, inv.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationGet_RoundTripsPermissions(t *testing.T) {
	repo, mock := newInvitationMock(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM manager_invitations`).
		WithArgs("inv-1").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "business_id", "email", "invitation_token", "invited_by", "status", "permissions", "expires_at", "created_at"}).
			AddRow("inv-1", "biz-1", "m@example.com", "tok", "owner-1", "pending",
				[]byte(`{"can_view_leads":true,"can_edit_business":false}`), now.Add(time.Hour), now))

	inv, err := repo.Get(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.True(t, inv.Permissions[domain.PermViewLeads])
	assert.False(t, inv.Permissions[domain.PermEditBusiness])
	assert.Equal(t, domain.InvitationPending, inv.Status)
}

func TestInvitationGet_NotFound(t *testing.T) {
	repo, mock := newInvitationMock(t)

	mock.ExpectQuery(`SELECT .* FROM manager_invitations`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, invitation.ErrNotFound)
}

func TestInvitationListPending(t *testing.T) {
	repo, mock := newInvitationMock(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM manager_invitations`).
		WithArgs("biz-1").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "business_id", "email", "invitation_token", "invited_by", "status", "permissions", "expires_at", "created_at"}).
			AddRow("inv-1", "biz-1", "a@example.com", "tok1", "owner-1", "pending", []byte(`{}`), now.Add(time.Hour), now).
			AddRow("inv-2", "biz-1", "b@example.com", "tok2", "owner-1", "pending", []byte(`{}`), now.Add(time.Hour), now))

	out, err := repo.ListPending(context.Background(), "biz-1")
	require.NoError(t, err)
	assert.Len(t, out, 2)
}
