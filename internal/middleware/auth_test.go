package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/formify/core/internal/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func whoami(c *gin.Context) {
	c.String(http.StatusOK, CurrentUserID(c))
}

func TestAuthRejectsMissingToken(t *testing.T) {
	r := gin.New()
	r.GET("/me", Auth(nil), whoami)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthAcceptsBearerToken(t *testing.T) {
	token, err := jwt.Sign("user-42", time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", Auth(nil), whoami)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-42", rec.Body.String())
}

func TestAuthAcceptsCookie(t *testing.T) {
	token, err := jwt.Sign("user-7", time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", Auth(nil), whoami)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "user-7", rec.Body.String())
}

func TestOptionalAuthPassesAnonymous(t *testing.T) {
	r := gin.New()
	r.GET("/me", OptionalAuth(nil), whoami)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "abc", NormalizeToken("  Bearer abc "))
	assert.Equal(t, "abc", NormalizeToken("bearer abc"))
	assert.Equal(t, "abc", NormalizeToken("abc"))
	assert.Empty(t, NormalizeToken("   "))
}
