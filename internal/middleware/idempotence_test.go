package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keyFor runs idempotenceKey inside a real route so FullPath and Params are set.
func keyFor(t *testing.T, userID, path, body string, header string) string {
	t.Helper()
	var key string
	r := gin.New()
	handler := func(c *gin.Context) {
		if userID != "" {
			c.Set(ContextKeyUserID, userID)
		}
		var err error
		key, err = idempotenceKey(c)
		require.NoError(t, err)
		c.Status(http.StatusNoContent)
	}
	r.POST("/api/v1/forms/:id/responses", handler)
	r.POST("/api/v1/forms", handler)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if header != "" {
		req.Header.Set(IdempotenceHeader, header)
	}
	r.ServeHTTP(httptest.NewRecorder(), req)
	return key
}

func TestIdempotenceKeyScopesSubmissionsByFormAndRespondent(t *testing.T) {
	body := `{"data":{"email":"a@example.com"}}`

	alice := keyFor(t, "alice", "/api/v1/forms/f-1/responses", body, "")
	require.NotEmpty(t, alice)
	assert.Equal(t, alice, keyFor(t, "alice", "/api/v1/forms/f-1/responses", body, ""))
	assert.NotEqual(t, alice, keyFor(t, "bob", "/api/v1/forms/f-1/responses", body, ""))
	assert.NotEqual(t, alice, keyFor(t, "alice", "/api/v1/forms/f-2/responses", body, ""))
	assert.NotEqual(t, alice, keyFor(t, "alice", "/api/v1/forms/f-1/responses", `{"data":{}}`, ""))
}

func TestIdempotenceKeySkipsAnonymousWithoutHeader(t *testing.T) {
	body := `{"data":{"email":"a@example.com"}}`

	assert.Empty(t, keyFor(t, "", "/api/v1/forms/f-1/responses", body, ""))

	first := keyFor(t, "", "/api/v1/forms/f-1/responses", body, "attempt-1")
	require.NotEmpty(t, first)
	assert.Equal(t, first, keyFor(t, "", "/api/v1/forms/f-1/responses", `{"other":1}`, "attempt-1"))
	assert.NotEqual(t, first, keyFor(t, "", "/api/v1/forms/f-1/responses", body, "attempt-2"))
}

func TestIdempotenceKeyKeepsBodyReadable(t *testing.T) {
	r := gin.New()
	var seen string
	r.POST("/api/v1/forms", func(c *gin.Context) {
		c.Set(ContextKeyUserID, "alice")
		_, err := idempotenceKey(c)
		require.NoError(t, err)
		raw, _ := c.GetRawData()
		seen = string(raw)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/forms", strings.NewReader(`{"title":"T"}`)))
	assert.Equal(t, `{"title":"T"}`, seen)
}

func TestIdempotencePassesThroughExemptReadsAndRedisFailure(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(ContextKeyUserID, "alice"); c.Next() }, Idempotence(rdb))
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }
	r.GET("/api/v1/forms", ok)
	r.POST("/api/v1/auth/login", ok)
	r.POST("/api/v1/forms", ok)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/forms"},
		{http.MethodPost, "/api/v1/auth/login"},
		{http.MethodPost, "/api/v1/forms"},
		{http.MethodPost, "/api/v1/forms"},
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{}`)))
		assert.Equal(t, http.StatusNoContent, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestIsWrite(t *testing.T) {
	assert.True(t, isWrite(http.MethodPost))
	assert.True(t, isWrite(http.MethodDelete))
	assert.False(t, isWrite(http.MethodGet))
	assert.False(t, isWrite(http.MethodOptions))
}
