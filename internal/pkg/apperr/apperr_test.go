package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidNilWhenNoIssues(t *testing.T) {
	assert.NoError(t, Invalid())
}

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("create form: %w", Invalidf("title", "is required"))

	assert.True(t, errors.Is(err, ErrValidation))
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, []Issue{{Field: "title", Message: "is required"}}, verr.Issues)
	assert.Contains(t, err.Error(), "title: is required")
}

func TestNotFoundAndForbiddenWrap(t *testing.T) {
	nf := NotFound("form")
	assert.True(t, errors.Is(nf, ErrNotFound))
	assert.Equal(t, "form not found", nf.Error())

	fb := Forbidden("predefined blocks are read-only")
	assert.True(t, errors.Is(fb, ErrForbidden))
	assert.False(t, errors.Is(fb, ErrNotFound))
}
