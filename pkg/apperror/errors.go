package apperror

import (
	"errors"
	"net/http"
)

// Operation tags understood by the legacy invoice clients. Clients branch on
// the tag, so the strings are part of the wire contract and must not change.
const (
	OpUnsupported      = "unsupported"
	OpNotAuthenticated = "not-authenticated"
	OpDuplicateInvoice = "duplicate-invoice"
	OpInvoiceNumber    = "invoice-number"
	OpInvoiceData      = "invoice-data"
	OpUpdatedData      = "updated-data"
	OpID               = "_id"
	OpUnknown          = "unknown"
	OpUnknownError     = "unknown-error"
)

// AppError represents an application error carrying both an HTTP status code
// (used by the v1 API) and the legacy operation tag (used by the invoice
// surface, which always answers 200 and reports the tag in the body).
type AppError struct {
	Code    int    `json:"code"`
	Op      string `json:"operation,omitempty"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Op: OpNotAuthenticated, Message: "user not authenticated"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid email or password"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Op: OpUnknown, Message: "Internal server error"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewLegacyError creates an error for the legacy invoice surface, tagged with
// one of the Op* operation strings.
func NewLegacyError(code int, op, message string) *AppError {
	return &AppError{
		Code:    code,
		Op:      op,
		Message: message,
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible. Unclassified errors
// become 500s tagged "unknown"; the underlying message is passed through,
// matching the legacy contract of echoing store failures verbatim.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Op:      OpUnknown,
		Message: err.Error(),
	}
}
