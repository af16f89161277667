package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "user-management-api/pkg/errors"
	"user-management-api/pkg/logger"
	"user-management-api/pkg/validation"
)

const (
	problemType  = "https://tools.ietf.org/html/rfc9110#section-15.5.1"
	problemTitle = "One or more validation errors occurred."

	// BodyField keys errors that concern the request body as a whole.
	BodyField = "body"
)

// ProblemDetails is the 400 response body for validation failures.
type ProblemDetails struct {
	Type    string              `json:"type"`
	Title   string              `json:"title"`
	Status  int                 `json:"status"`
	Errors  map[string][]string `json:"errors"`
	TraceID string              `json:"traceId,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// InternalErrorResponse is the body sent for every unexpected failure.
var InternalErrorResponse = ErrorResponse{
	Error:   "internal_error",
	Message: "An internal error occurred",
}

// handleError converts usecase errors to HTTP responses. Validation failures
// get a problem body; errors carrying an HTTPStatus below 500 get that status
// with an empty body; everything else is logged and answered with a 500.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		writeProblem(c, validationErr)
		return
	}

	status := http.StatusInternalServerError
	var statuser apperrors.HTTPStatuser
	if errors.As(err, &statuser) {
		status = statuser.HTTPStatus()
	}

	if status < http.StatusInternalServerError {
		c.Status(status)
		return
	}

	logger.WithContext(c.Request.Context(), h.log).Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", status),
		zap.Error(err),
	)
	c.JSON(status, InternalErrorResponse)
}

// bindingError turns a ShouldBindJSON failure into a ValidationError.
// Decoding failures are reported against the body itself.
func bindingError(err error) *apperrors.ValidationError {
	var validationErr *apperrors.ValidationError
	if errors.As(validation.ToError(err), &validationErr) {
		return validationErr
	}
	return apperrors.NewValidationError(BodyField, "A non-empty request body is required and must be valid JSON.")
}

func writeProblem(c *gin.Context, err *apperrors.ValidationError) {
	c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:    problemType,
		Title:   problemTitle,
		Status:  http.StatusBadRequest,
		Errors:  err.Fields,
		TraceID: logger.GetRequestID(c.Request.Context()),
	})
}
