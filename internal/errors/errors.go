package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rmittal-realty/api/internal/middleware"
)

// Error code constants for standardized error responses
const (
	ErrNotFound         = "NOT_FOUND"
	ErrBadRequest       = "BAD_REQUEST"
	ErrUnauthorized     = "UNAUTHORIZED"
	ErrConflict         = "CONFLICT"
	ErrMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrValidation       = "VALIDATION_ERROR"
)

// ErrorResponse is the failure envelope returned by every handler:
// a short error string, optional detail text, and the request ID for
// correlation with server logs.
type ErrorResponse struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// NotFound returns a 404 Not Found error response.
// It logs a warning and sends a JSON response with the error details.
func NotFound(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, ErrNotFound, message, "")
}

// BadRequest returns a 400 Bad Request error response with optional details.
func BadRequest(c *gin.Context, message, details string) {
	respond(c, http.StatusBadRequest, ErrBadRequest, message, details)
}

// Unauthorized returns a 401 Unauthorized error response.
func Unauthorized(c *gin.Context, message string) {
	respond(c, http.StatusUnauthorized, ErrUnauthorized, message, "")
}

// Conflict returns a 409 Conflict error response. It is used when an
// optimistic-concurrency precondition fails on an update or delete.
func Conflict(c *gin.Context, message string) {
	respond(c, http.StatusConflict, ErrConflict, message, "")
}

// MethodNotAllowed returns a 405 Method Not Allowed error response.
func MethodNotAllowed(c *gin.Context) {
	respond(c, http.StatusMethodNotAllowed, ErrMethodNotAllowed, "Method not allowed", "")
}

// InternalServerError returns a 500 Internal Server Error response.
// It logs the error with full context; the underlying store error message is
// passed through in the details field per the API contract.
func InternalServerError(c *gin.Context, message string, err error) {
	log := middleware.GetLogger(c)
	requestID := middleware.GetRequestID(c)

	if log != nil {
		log.Error("Internal server error", err, map[string]interface{}{
			"message":    message,
			"request_id": requestID,
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
		})
	}

	details := ""
	if err != nil {
		details = err.Error()
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:     message,
		Details:   details,
		Code:      ErrInternalServer,
		RequestID: requestID,
	})
}

// ValidationError returns a 400 Bad Request error response built from the
// field-specific validation errors reported by the validator library.
func ValidationError(c *gin.Context, validationErrors validator.ValidationErrors) {
	log := middleware.GetLogger(c)
	requestID := middleware.GetRequestID(c)

	details := ""
	for _, err := range validationErrors {
		if details != "" {
			details += "; "
		}
		details += err.Field() + ": " + formatValidationError(err)
	}

	if log != nil {
		log.Warn("Validation error", map[string]interface{}{
			"request_id": requestID,
			"path":       c.Request.URL.Path,
			"fields":     details,
		})
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:     "Validation failed for one or more fields",
		Details:   details,
		Code:      ErrValidation,
		RequestID: requestID,
	})
}

// respond logs the failure and writes the error envelope.
func respond(c *gin.Context, status int, code, message, details string) {
	log := middleware.GetLogger(c)
	requestID := middleware.GetRequestID(c)

	if log != nil {
		fields := map[string]interface{}{
			"message":    message,
			"request_id": requestID,
			"path":       c.Request.URL.Path,
		}
		if details != "" {
			fields["details"] = details
		}
		log.Warn("Request failed: "+code, fields)
	}

	c.JSON(status, ErrorResponse{
		Error:     message,
		Details:   details,
		Code:      code,
		RequestID: requestID,
	})
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return "Value is too short or small (minimum: " + err.Param() + ")"
	case "max":
		return "Value is too long or large (maximum: " + err.Param() + ")"
	case "gt":
		return "Must be greater than " + err.Param()
	case "gte":
		return "Must be greater than or equal to " + err.Param()
	case "lt":
		return "Must be less than " + err.Param()
	case "lte":
		return "Must be less than or equal to " + err.Param()
	case "oneof":
		return "Must be one of: " + err.Param()
	case "url":
		return "Must be a valid URL"
	default:
		return "Validation failed for tag: " + err.Tag()
	}
}
