package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeMissingFields    ErrorCode = "MISSING_FIELDS"
	ErrCodeInvalidRole      ErrorCode = "INVALID_ROLE"
	ErrCodeInvalidDate      ErrorCode = "INVALID_RETURN_DATE"
	ErrCodeInvalidSetting   ErrorCode = "INVALID_SETTING"

	ErrCodeQuotaExceeded      ErrorCode = "QUOTA_EXCEEDED"
	ErrCodeProductUnavailable ErrorCode = "PRODUCT_UNAVAILABLE"
	ErrCodeInvalidStatus      ErrorCode = "INVALID_STATUS"
	ErrCodeExtensionPending   ErrorCode = "EXTENSION_ALREADY_PENDING"
	ErrCodeDuplicateIdentity  ErrorCode = "DUPLICATE_IDENTITY"

	ErrCodeProductNotFound   ErrorCode = "PRODUCT_NOT_FOUND"
	ErrCodeRequestNotFound   ErrorCode = "REQUEST_NOT_FOUND"
	ErrCodeExtensionNotFound ErrorCode = "EXTENSION_NOT_FOUND"
	ErrCodeDonationNotFound  ErrorCode = "DONATION_NOT_FOUND"
	ErrCodeUserNotFound      ErrorCode = "USER_NOT_FOUND"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeMissingToken       ErrorCode = "MISSING_TOKEN"
	ErrCodeForbiddenRole      ErrorCode = "INSUFFICIENT_ROLE"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// Shared domain errors. Feature packages compare against these with errors.Is.
var (
	ErrQuotaExceeded      = NewConflictError("borrow limit reached for this user", ErrCodeQuotaExceeded)
	ErrProductUnavailable = NewConflictError("product is not available for borrowing", ErrCodeProductUnavailable)
	ErrInvalidStatus      = NewConflictError("operation not allowed in the current status", ErrCodeInvalidStatus)
	ErrExtensionPending   = NewConflictError("an extension request is already pending for this loan", ErrCodeExtensionPending)
	ErrDuplicateIdentity  = NewConflictError("email or username already in use", ErrCodeDuplicateIdentity)

	ErrProductNotFound   = NewNotFoundError("product not found", ErrCodeProductNotFound)
	ErrRequestNotFound   = NewNotFoundError("borrow request not found", ErrCodeRequestNotFound)
	ErrExtensionNotFound = NewNotFoundError("extension request not found", ErrCodeExtensionNotFound)
	ErrDonationNotFound  = NewNotFoundError("donation request not found", ErrCodeDonationNotFound)
	ErrUserNotFound      = NewNotFoundError("user not found", ErrCodeUserNotFound)

	ErrInvalidCredentials = NewUnauthorizedError("invalid email or password", ErrCodeInvalidCredentials)
	ErrInvalidToken       = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)
	ErrMissingToken       = NewUnauthorizedError("missing authorization token", ErrCodeMissingToken)
	ErrForbiddenRole      = NewForbiddenError("insufficient role for this operation", ErrCodeForbiddenRole)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type ErrorResponse struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, ErrorResponse{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
