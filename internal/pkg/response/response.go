package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/gohotels/internal/pkg/logger"
	"github.com/xyz-asif/gohotels/internal/pkg/pagination"
	"github.com/xyz-asif/gohotels/internal/pkg/validator"
	apperrors "github.com/xyz-asif/gohotels/pkg/errors"
)

// ErrorResponse represents a standard error payload returned by the API
type ErrorResponse struct {
	Message string                 `json:"message" example:"unauthorized"`
	Code    string                 `json:"code,omitempty" example:"AUTH_INVALID_TOKEN"`
	Errors  []validator.FieldError `json:"errors,omitempty"`
}

// MessageResponse is a body carrying only a human readable message.
type MessageResponse struct {
	Message string `json:"message" example:"User registered successfully"`
}

// PaginatedResponse represents a paginated list response
type PaginatedResponse struct {
	Data       interface{}            `json:"data"`
	Pagination *pagination.Pagination `json:"pagination"`
}

// Success sends a 200 OK response with data as the body
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 Created response
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message sends a 200 OK response with a message body
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageResponse{Message: message})
}

// Paginated sends a page of data with its pagination metadata
func Paginated(c *gin.Context, data interface{}, p *pagination.Pagination) {
	c.JSON(http.StatusOK, PaginatedResponse{
		Data:       data,
		Pagination: p,
	})
}

// Error sends an error response with custom status code and message
func Error(c *gin.Context, statusCode int, message string, errorCode ...string) {
	code := ""
	if len(errorCode) > 0 {
		code = errorCode[0]
	}

	c.JSON(statusCode, ErrorResponse{
		Message: message,
		Code:    code,
	})
}

// BadRequest sends a 400 Bad Request error
func BadRequest(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusBadRequest, message, errorCode...)
}

// Unauthorized sends a 401 Unauthorized error
func Unauthorized(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusUnauthorized, message, errorCode...)
}

// NotFound sends a 404 Not Found error
func NotFound(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusNotFound, message, errorCode...)
}

// TooManyRequests sends a 429 error
func TooManyRequests(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusTooManyRequests, message, errorCode...)
}

// InternalServerError sends a 500 Internal Server Error
func InternalServerError(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusInternalServerError, message, errorCode...)
}

// ValidationFailed sends a 400 with one entry per invalid field
func ValidationFailed(c *gin.Context, fields []validator.FieldError) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Message: "Validation failed",
		Code:    "VALIDATION_FAILED",
		Errors:  fields,
	})
}

// BindError handles request decoding failures, reporting field errors when the
// binder's validator rejected the payload.
func BindError(c *gin.Context, err error) {
	if fields := validator.FieldErrors(err); len(fields) > 0 {
		ValidationFailed(c, fields)
		return
	}
	BadRequest(c, "Invalid request format", "INVALID_REQUEST")
}

// FromError maps a domain error to its status code. notFoundMessage is only
// needed by callers that can see ErrNotFound. Unknown errors become a generic
// 500 and the cause is only written to the request log.
func FromError(c *gin.Context, err error, notFoundMessage ...string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		message := "Not found"
		if len(notFoundMessage) > 0 {
			message = notFoundMessage[0]
		}
		NotFound(c, message, "NOT_FOUND")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		BadRequest(c, "Invalid Credentials", "INVALID_CREDENTIALS")
	case errors.Is(err, apperrors.ErrValidation):
		BadRequest(c, err.Error(), "VALIDATION_FAILED")
	case errors.Is(err, apperrors.ErrDuplicate):
		BadRequest(c, "Resource already exists", "DUPLICATE")
	case errors.Is(err, apperrors.ErrPaymentNotVerified):
		BadRequest(c, "Payment not verified", "PAYMENT_NOT_VERIFIED")
	default:
		logger.FromContext(c.Request.Context()).Error().Err(err).
			Str("path", c.FullPath()).
			Msg("request failed")
		InternalServerError(c, "Something went wrong", "INTERNAL_ERROR")
	}
}
