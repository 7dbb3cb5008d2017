package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// FieldError describes a single validation violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorBody is the error response envelope: {error, details?}.
type ErrorBody struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

// AppError represents a structured application error with HTTP status.
type AppError struct {
	HTTPStatus int          // HTTP status code (e.g. 400, 404, 500)
	Message    string       // Human-readable error message
	Details    []FieldError // Itemized validation violations, if any
}

func (e *AppError) Error() string {
	return e.Message
}

// Pre-defined error constructors

func NewInvalidInput(msg string, details ...FieldError) *AppError {
	return &AppError{HTTPStatus: http.StatusBadRequest, Message: msg, Details: details}
}

func NewUnauthenticated(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusUnauthorized, Message: msg}
}

func NewForbidden(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusForbidden, Message: msg}
}

func NewNotFound(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusNotFound, Message: msg}
}

func NewConflict(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusConflict, Message: msg}
}

func NewServerError(msg string) *AppError {
	return &AppError{HTTPStatus: http.StatusInternalServerError, Message: msg}
}

// --- Gin response helpers ---

// Success sends a 200 OK response with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 Created response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Error sends an error response. If err is an *AppError, its status, message
// and details are used; any other error becomes a generic 500 so internal
// error text never reaches the client.
func Error(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, ErrorBody{Error: appErr.Message, Details: appErr.Details})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorBody{Error: "internal server error"})
}

// Convenience error response functions

func InvalidInput(c *gin.Context, msg string, details ...FieldError) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: msg, Details: details})
}

func Unauthenticated(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, ErrorBody{Error: msg})
}

func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, ErrorBody{Error: msg})
}

func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, ErrorBody{Error: msg})
}

func Conflict(c *gin.Context, msg string) {
	c.JSON(http.StatusConflict, ErrorBody{Error: msg})
}

func ServerError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, ErrorBody{Error: msg})
}
