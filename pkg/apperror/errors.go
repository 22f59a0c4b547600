package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error"`
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

// ---- Gateway lookup (terminal, no side effects) ----

// ErrServiceNotFound is returned for an unknown service id.
func ErrServiceNotFound() *AppError {
	return New("API service not found", "No API service exists with the given id", http.StatusNotFound)
}

// ErrServiceUnavailable is returned when the service exists but is not active.
// Distinct from not-found so callers can tell "doesn't exist" from
// "temporarily disabled".
func ErrServiceUnavailable(status string) *AppError {
	return New("API not available", fmt.Sprintf("This API is currently %s", status), http.StatusForbidden)
}

// ---- Payment ----

// ErrPaymentInvalid is returned when a payment artifact was supplied but
// rejected by the chain verifier.
func ErrPaymentInvalid(message string) *AppError {
	return New("Invalid payment proof", message, http.StatusPaymentRequired)
}

// ErrSettlementFailed is returned when the facilitator could not settle a
// pre-signed transfer.
func ErrSettlementFailed(message string) *AppError {
	if message == "" {
		message = "Facilitator could not settle the transaction."
	}
	return New("Payment settlement failed", message, http.StatusPaymentRequired)
}

// ErrProofAlreadyUsed is returned when the transaction hash was already redeemed.
func ErrProofAlreadyUsed() *AppError {
	return New("Payment proof already used",
		"Each transaction hash can only be used once. Please make a new payment.",
		http.StatusForbidden)
}

// ErrInvalidPaymentHeader is returned when the payment-signature header cannot
// be decoded.
func ErrInvalidPaymentHeader() *AppError {
	return New("Invalid payment-signature header",
		"Could not extract signed transaction from payment-signature.",
		http.StatusBadRequest)
}

// ---- System & Infrastructure ----

// ErrDatabaseError wraps a storage failure.
func ErrDatabaseError(err error) *AppError {
	return Wrap("Internal error", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps any internal error.
func InternalError(err error) *AppError {
	return Wrap("Internal error", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("Invalid request", message, http.StatusBadRequest)
}
