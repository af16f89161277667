package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("Name", "The Name field is required.")
	err.Add("Email", "The Email field is required.")
	err.Add("Name", "second")

	assert.Equal(t, []string{"The Name field is required.", "second"}, err.Fields["Name"])
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus())
	assert.Equal(t, "validation failed: Email - The Email field is required., Name - The Name field is required.; second", err.Error())
}

func TestValidationError_ZeroValue(t *testing.T) {
	var err ValidationError
	assert.Equal(t, "validation failed", err.Error())

	err.Add("Name", "bad")
	assert.Len(t, err.Fields, 1)
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("user", "abc")
	assert.Equal(t, "user not found: id=abc", err.Error())
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus())

	assert.Equal(t, "user not found", NewNotFoundError("user", "").Error())
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := fmt.Errorf("listing: %w", NewInternalError("store unavailable", cause))

	var internal *InternalError
	assert.True(t, stderrors.As(err, &internal))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "store unavailable: connection refused", internal.Error())
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus())
}

func TestHTTPStatuser(t *testing.T) {
	for _, err := range []error{
		NewValidationError("Name", "x"),
		NewNotFoundError("user", "1"),
		NewInternalError("boom", nil),
	} {
		_, ok := err.(HTTPStatuser)
		assert.True(t, ok, "%T", err)
	}
}
