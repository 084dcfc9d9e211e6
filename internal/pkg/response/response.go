package response

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/formify/core/internal/pkg/apperr"
	"github.com/gin-gonic/gin"
)

// CursorPage is the envelope for cursor-paginated list responses.
type CursorPage struct {
	Data       interface{} `json:"data"`
	NextCursor string      `json:"next_cursor,omitempty"`
}

// OK sends a 200 response. Arrays/slices are wrapped in {data: [...]}.
func OK(c *gin.Context, data interface{}) {
	if data != nil {
		v := reflect.ValueOf(data)
		if v.Kind() == reflect.Slice {
			c.JSON(http.StatusOK, gin.H{"data": data})
			return
		}
	}
	c.JSON(http.StatusOK, data)
}

// Paged sends a cursor-paginated response.
func Paged(c *gin.Context, data interface{}, nextCursor string) {
	c.JSON(http.StatusOK, CursorPage{Data: data, NextCursor: nextCursor})
}

// Created sends a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context) {
	abort(c, http.StatusUnauthorized, "authentication required")
}

// ForbiddenMsg sends a 403 error response with a custom message.
func ForbiddenMsg(c *gin.Context, message string) {
	abort(c, http.StatusForbidden, message)
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context) {
	abort(c, http.StatusNotFound, "Not Found")
}

// NotFoundMsg sends a 404 error with a custom message.
func NotFoundMsg(c *gin.Context, message string) {
	abort(c, http.StatusNotFound, message)
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	abort(c, http.StatusMethodNotAllowed, "Method Not Allowed")
}

// Conflict sends a 409 error response.
func Conflict(c *gin.Context, message string) {
	abort(c, http.StatusConflict, message)
}

// UnprocessableEntity sends a 422 error response.
func UnprocessableEntity(c *gin.Context, message string, issues []apperr.Issue) {
	body := gin.H{"ok": 0, "code": http.StatusUnprocessableEntity, "message": message}
	if len(issues) > 0 {
		body["errors"] = issues
	}
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, body)
}

// InternalError sends a 500 error response.
func InternalError(c *gin.Context, err error) {
	abort(c, http.StatusInternalServerError, err.Error())
}

// Error maps a service error onto the matching status code.
func Error(c *gin.Context, err error) {
	var verr *apperr.ValidationError
	switch {
	case errors.As(err, &verr):
		UnprocessableEntity(c, verr.Error(), verr.Issues)
	case errors.Is(err, apperr.ErrValidation):
		UnprocessableEntity(c, err.Error(), nil)
	case errors.Is(err, apperr.ErrNotFound):
		NotFoundMsg(c, err.Error())
	case errors.Is(err, apperr.ErrUnauthenticated):
		abort(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		ForbiddenMsg(c, err.Error())
	default:
		_ = c.Error(err)
		InternalError(c, err)
	}
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"ok": 0, "code": status, "message": message})
}
