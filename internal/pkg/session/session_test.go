package session

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/formify/core/internal/pkg/jwt"
	"github.com/formify/core/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIssueBindsTokenToSessionRow(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	mock.ExpectExec("INSERT INTO `user_sessions`").WillReturnResult(sqlmock.NewResult(1, 1))

	token, s, err := Issue(db, "alice", " 10.0.0.1 ", "curl", 0)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", s.IP)

	claims, err := jwt.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.UserID)
	assert.Equal(t, s.ID, claims.SessionID)
}

func TestIsActiveWithoutSessionID(t *testing.T) {
	ok, err := IsActive(nil, "alice", " ")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsActiveCountsLiveRows(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `user_sessions` WHERE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	ok, err := IsActive(db, "alice", "s-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRevokeUnknownSession(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	mock.ExpectExec("UPDATE `user_sessions` SET `revoked_at`").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, Revoke(db, "alice", "s-404"), gorm.ErrRecordNotFound)
}

func TestRevokeAllExceptKeepsCurrent(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	mock.ExpectExec("UPDATE `user_sessions` SET `revoked_at`=\\?.*WHERE .*user_id = \\? AND revoked_at IS NULL.*id <> \\?").
		WillReturnResult(sqlmock.NewResult(0, 2))

	assert.NoError(t, RevokeAllExcept(db, "alice", "s-1"))
}
