package user

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/formify/core/internal/pkg/jwt"
	"github.com/formify/core/internal/pkg/testutil"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var userColumns = []string{
	"id", "username", "name", "email", "password",
	"last_login_time", "last_login_ip", "created_at", "updated_at", "deleted_at",
}

func userRow(t *testing.T, id, username, password string) *sqlmock.Rows {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now()
	return sqlmock.NewRows(userColumns).AddRow(id, username, "", "", string(hash), nil, "", now, now, nil)
}

func TestRegisterHashesPasswordAndDefaultsName(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	mock.ExpectExec("INSERT INTO `users`").WillReturnResult(sqlmock.NewResult(1, 1))

	u, err := NewService(db).Register(context.Background(), &RegisterDTO{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Name)
	assert.NotEqual(t, "secret1", u.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret1")))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnError(&mysql.MySQLError{Number: mysqlDuplicateEntry, Message: "Duplicate entry 'alice'"})

	_, err := NewService(db).Register(context.Background(), &RegisterDTO{Username: "alice", Password: "secret1"})
	assert.ErrorIs(t, err, errUsernameTaken)
}

func TestLoginIssuesSessionToken(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\?").WillReturnRows(userRow(t, "u-1", "alice", "secret1"))
	mock.ExpectExec("UPDATE `users` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `user_sessions`").WillReturnResult(sqlmock.NewResult(1, 1))

	token, u, err := NewService(db).Login(context.Background(), "alice", "secret1", "10.0.0.1", "test")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", u.LastLoginIP)

	claims, err := jwt.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.NotEmpty(t, claims.SessionID)
}

func TestLoginWrongPassword(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnRows(userRow(t, "u-1", "alice", "secret1"))

	_, _, err := NewService(db).Login(context.Background(), "alice", "nope", "", "")
	assert.ErrorIs(t, err, errInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnRows(sqlmock.NewRows(userColumns))

	_, _, err := NewService(db, WithFailureDelay(0)).Login(context.Background(), "ghost", "secret1", "", "")
	assert.ErrorIs(t, err, errInvalidCredentials)
}

func TestChangePasswordRejectsSamePassword(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	mock.ExpectQuery("SELECT id, password FROM `users`").WillReturnRows(userRow(t, "u-1", "alice", "secret1"))

	err := NewService(db).ChangePassword(context.Background(), "u-1", "secret1", "secret1")
	assert.ErrorIs(t, err, errPasswordSameAsOld)
}

func TestUpdateProfileWithoutChangesWritesNothing(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnRows(userRow(t, "u-1", "alice", "secret1"))

	u, err := NewService(db).UpdateProfile(context.Background(), "u-1", &UpdateUserDTO{})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
}
