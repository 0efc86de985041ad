package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap returns a copy of base carrying err, so the sentinel values below are
// never mutated.
func Wrap(base *Error, err error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Err:     err,
	}
}

// WithMessage returns a copy of base with a more specific message.
func WithMessage(base *Error, message string) *Error {
	return &Error{
		Code:    base.Code,
		Message: message,
		Err:     base.Err,
	}
}

// From extracts an *Error from err, or wraps it as an internal server error.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(ErrInternalServer, err)
}

// Is reports whether err is (or wraps) an *Error with the same code as base.
func Is(err error, base *Error) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == base.Code
	}
	return false
}

// Common error types
var (
	ErrBadRequest     = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized   = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrNotFound       = New(http.StatusNotFound, "Not found", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// Checkout flow error types
var (
	ErrValidation     = New(http.StatusBadRequest, "Validation error", nil)
	ErrEmptyCart      = New(http.StatusBadRequest, "Your cart is empty. Please add items before checkout.", nil)
	ErrGatewaySession = New(http.StatusBadGateway, "Failed to create payment session", nil)
	ErrStaleIntent    = New(http.StatusGone, "Checkout session expired. Please restart checkout.", nil)
	ErrIntentMissing  = New(http.StatusNotFound, "No pending order found to confirm", nil)
	ErrConflict       = New(http.StatusConflict, "Order already exists for this payment", nil)
	ErrAuthExpired    = New(http.StatusUnauthorized, "Session expired. Please log in again.", nil)
	ErrOrderService   = New(http.StatusBadGateway, "Order service request failed", nil)
)
