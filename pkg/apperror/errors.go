package apperror

import (
	"errors"
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

const (
	CodeUnauthorized      = "AUTH_001"
	CodeForbidden         = "AUTH_002"
	CodeInvalidState      = "ORD_001"
	CodeOrderExpired      = "ORD_002"
	CodeInsufficientFunds = "WAL_001"
	CodeBelowMinimum      = "WAL_002"
	CodeWithdrawalLocked  = "WAL_003"
	CodeAlreadyUsed       = "TOK_001"
	CodeTokenExpired      = "TOK_002"
	CodeTokenMismatch     = "TOK_003"
	CodeNotFound          = "NF_001"
	CodeGatewayFailure    = "GW_001"
	CodeValidation        = "VAL_001"
	CodeInternal          = "SYS_001"
	CodeEncryption        = "SYS_003"
	CodeRateLimited       = "RATE_001"
)

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsRetryable reports whether the caller (or the gateway, for webhooks)
// may redeliver the request. Only gateway and storage failures qualify.
func IsRetryable(err error) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return true
	}
	return appErr.Code == CodeGatewayFailure || appErr.Code == CodeInternal
}

// ---- Authorization (AUTH) ----

func ErrUnauthorized(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func ErrForbidden(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

// ---- Order lifecycle (ORD) ----

func ErrInvalidState(message string) *AppError {
	return New(CodeInvalidState, message, http.StatusConflict)
}

func ErrOrderExpired() *AppError {
	return New(CodeOrderExpired, "Checkout session has expired; cancel and place a new order", http.StatusConflict)
}

// ---- Wallet (WAL) ----

func ErrInsufficientFunds() *AppError {
	return New(CodeInsufficientFunds, "Insufficient balance in wallet", http.StatusPaymentRequired)
}

func ErrBelowMinimum(minimum int64) *AppError {
	return New(CodeBelowMinimum, fmt.Sprintf("Withdrawal amount is below the minimum of %d", minimum), http.StatusUnprocessableEntity)
}

func ErrWithdrawalLocked() *AppError {
	return New(CodeWithdrawalLocked, "Wallet is locked for withdrawals", http.StatusLocked)
}

// ---- Verification tokens (TOK) ----

func ErrAlreadyUsed() *AppError {
	return New(CodeAlreadyUsed, "Verification token has already been used", http.StatusConflict)
}

func ErrTokenExpired() *AppError {
	return New(CodeTokenExpired, "Verification scan is too old; re-issue and scan again", http.StatusGone)
}

func ErrTokenMismatch() *AppError {
	return New(CodeTokenMismatch, "Scanned code does not match this checkpoint", http.StatusForbidden)
}

// ---- Lookup (NF) ----

func ErrNotFound(entity string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Payment gateway (GW) ----

func ErrExternalGateway(err error) *AppError {
	return Wrap(CodeGatewayFailure, "Payment gateway call failed", http.StatusBadGateway, err)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimited, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap(CodeInternal, "Internal database error", http.StatusInternalServerError, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap(CodeEncryption, "Encryption service failure", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a VAL_001 validation error.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}
