package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Token Ledger Business Logic (TOK) ----

func ErrInsufficientBalance() *AppError {
	return New("TOK_001", "Insufficient token balance", http.StatusUnprocessableEntity)
}

func ErrInvalidAmount() *AppError {
	return New("TOK_002", "Invalid amount", http.StatusBadRequest)
}

func ErrTooManyPending() *AppError {
	return New("TOK_003", "Too many pending spend requests, wait for review", http.StatusTooManyRequests)
}

func ErrAlreadyReviewed() *AppError {
	return New("TOK_004", "Spend request has already been reviewed", http.StatusConflict)
}

func ErrNotFound(entity string) *AppError {
	return New("TOK_005", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrDailyCapReached() *AppError {
	return New("TOK_006", "Daily token cap reached", http.StatusUnprocessableEntity)
}

// ---- Security & Authentication (SEC) ----

func ErrInvalidToken() *AppError {
	return New("SEC_001", "Invalid or expired session token", http.StatusUnauthorized)
}

func ErrForbidden() *AppError {
	return New("SEC_002", "Insufficient permissions for this operation", http.StatusForbidden)
}

func ErrInvalidSyncSecret() *AppError {
	return New("SEC_003", "Invalid sync secret", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrWriteConflict(err error) *AppError {
	return Wrap("SYS_002", "Concurrent update conflict, try again", http.StatusConflict, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_003", "Encryption service failure", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a TOK_002-style validation error.
func Validation(message string) *AppError {
	return New("TOK_002", message, http.StatusBadRequest)
}
