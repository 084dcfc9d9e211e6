package user

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/formify/core/internal/middleware"
	"github.com/formify/core/internal/pkg/testutil"
	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(db, WithFailureDelay(0))).RegisterRoutes(r.Group("/api/v1"), middleware.Auth(db))
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRegisterValidatesBody(t *testing.T) {
	db, _ := testutil.NewMockDB(t)
	rec := post(newRouter(db), "/api/v1/auth/register", `{"username":"al","password":"123"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterConflict(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	mock.ExpectExec("INSERT INTO `users`").WillReturnError(&mysql.MySQLError{Number: mysqlDuplicateEntry})

	rec := post(newRouter(db), "/api/v1/auth/register", `{"username":"alice","password":"secret1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginSetsCookie(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnRows(userRow(t, "u-1", "alice", "secret1"))
	mock.ExpectExec("UPDATE `users` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `user_sessions`").WillReturnResult(sqlmock.NewResult(1, 1))

	rec := post(newRouter(db), "/api/v1/auth/login", `{"username":"alice","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), middleware.TokenCookie+"=")
	assert.Contains(t, rec.Body.String(), `"token"`)
}

func TestMeRequiresToken(t *testing.T) {
	db, _ := testutil.NewMockDB(t)
	rec := httptest.NewRecorder()
	newRouter(db).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
