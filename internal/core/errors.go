// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenRevoked = errors.New("token revoked")
)

// AppError is an error that already knows how it should be rendered.
type AppError struct {
	Err        error
	Message    string
	StatusCode int
	Code       string
	Details    map[string]string
}

func NewAppError(err error, message string, statusCode int, code string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: statusCode,
		Code:       code,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

const unauthorizedMessage = "unauthorized"

func UnauthorizedError(message string) *AppError {
	if message == "" {
		message = unauthorizedMessage
	}
	return NewAppError(ErrUnauthorized, message, http.StatusUnauthorized, "UNAUTHORIZED")
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrForbidden, message, http.StatusForbidden, "FORBIDDEN")
}

func NotFoundError(resource string) *AppError {
	return NewAppError(ErrNotFound, resource+" not found", http.StatusNotFound, "NOT_FOUND")
}

func DuplicateError(field string) *AppError {
	return NewAppError(ErrDuplicateKey, field+" already exists", http.StatusConflict, "DUPLICATE")
}

func ValidationError(details map[string]string) *AppError {
	appErr := NewAppError(
		ErrInvalidInput,
		"validation failed",
		http.StatusUnprocessableEntity,
		"VALIDATION_FAILED",
	)
	appErr.Details = details
	return appErr
}

// Session failures all collapse to the same response so callers cannot
// tell an expired token from a forged or revoked one.
func TokenExpiredError() *AppError {
	return NewAppError(ErrTokenExpired, unauthorizedMessage, http.StatusUnauthorized, "UNAUTHORIZED")
}

func TokenInvalidError() *AppError {
	return NewAppError(ErrTokenInvalid, unauthorizedMessage, http.StatusUnauthorized, "UNAUTHORIZED")
}

func TokenRevokedError() *AppError {
	return NewAppError(ErrTokenRevoked, unauthorizedMessage, http.StatusUnauthorized, "UNAUTHORIZED")
}
