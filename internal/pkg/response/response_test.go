package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/formify/core/internal/pkg/apperr"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func TestErrorMapsTaxonomy(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", apperr.NotFound("form"), http.StatusNotFound},
		{"forbidden", fmt.Errorf("update: %w", apperr.ErrForbidden), http.StatusForbidden},
		{"unauthenticated", apperr.ErrUnauthenticated, http.StatusUnauthorized},
		{"validation", apperr.Invalidf("title", "is required"), http.StatusUnprocessableEntity},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			Error(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.EqualValues(t, tc.status, body["code"])
			assert.EqualValues(t, 0, body["ok"])
		})
	}
}

func TestErrorIncludesValidationIssues(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, apperr.Invalid(
		apperr.Issue{Field: "fields[0].options", Message: "choice fields need at least one option"},
	))

	var body struct {
		Errors []apperr.Issue `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "fields[0].options", body.Errors[0].Field)
}

func TestOKWrapsSlices(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OK(c, []string{"a", "b"})

	assert.JSONEq(t, `{"data":["a","b"]}`, w.Body.String())
}

func TestPagedOmitsEmptyCursor(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Paged(c, []int{1}, "")

	assert.JSONEq(t, `{"data":[1]}`, w.Body.String())
}
