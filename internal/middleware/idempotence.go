package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/formify/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	IdempotenceHeader = "x-idempotence"
	idempotenceTTL    = 60 * time.Second
	idempotencePrefix = "formify:idempotence:"

	markInFlight = "0"
	markDone     = "1"
)

// Auth routes are retried legitimately after a failure and never deduplicated.
var idempotenceExempt = map[string]bool{
	"/api/v1/auth/login":    true,
	"/api/v1/auth/register": true,
	"/api/v1/auth/logout":   true,
}

// Idempotence rejects a repeated write with 409 while the first is in flight
// or for 60s after it succeeded. Failed writes release their key so the
// caller can retry. Redis errors let the request through.
func Idempotence(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isWrite(c.Request.Method) || idempotenceExempt[c.FullPath()] {
			c.Next()
			return
		}

		key, err := idempotenceKey(c)
		if err != nil || key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		redisKey := idempotencePrefix + key
		claimed, err := rdb.SetNX(ctx, redisKey, markInFlight, idempotenceTTL).Result()
		if err != nil {
			c.Next()
			return
		}
		if !claimed {
			msg := "duplicate request, retry after 60 seconds"
			if state, _ := rdb.Get(ctx, redisKey).Result(); state == markInFlight {
				msg = "identical request is still being processed"
			}
			response.Conflict(c, msg)
			return
		}

		c.Next()

		if status := c.Writer.Status(); status >= 200 && status < 300 {
			rdb.Set(ctx, redisKey, markDone, redis.KeepTTL)
		} else {
			rdb.Del(ctx, redisKey)
		}
	}
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// idempotenceKey hashes the route pattern, its path parameters and the
// caller, so a repeated submission is keyed on the form and its respondent.
// Signed-in callers are identified by user id and the request body is part
// of the key. Anonymous callers share IPs behind NAT and are only
// deduplicated when they send IdempotenceHeader.
func idempotenceKey(c *gin.Context) (string, error) {
	token := strings.TrimSpace(c.GetHeader(IdempotenceHeader))
	actor := CurrentUserID(c)
	if actor == "" {
		if token == "" {
			return "", nil
		}
		actor = "anonymous"
	}

	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s", c.Request.Method, routeOf(c), actor)
	for _, p := range c.Params {
		fmt.Fprintf(h, "|%s=%s", p.Key, p.Value)
	}
	h.Write([]byte{'|'})

	if token != "" {
		h.Write([]byte(token))
	} else if c.Request.Body != nil {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return "", err
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		h.Write(body)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
