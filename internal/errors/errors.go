// Package errors provides the error taxonomy for the risk report service.
// Every failure raised by the entity model, the store gateway, the risk
// generator or the report orchestrator is an AppError so that callers (CLI,
// HTTP handlers, scheduler) can classify it by code without string matching.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Internal != nil {
		return e.Message + ": " + e.Internal.Error()
	}
	return e.Message
}

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so that
// errors derived with Wrap or WithMessage still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrUnauthorized   = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Data-integrity errors. These abort the whole computation.
var (
	ErrDataIntegrity            = &AppError{Code: "DATA_INTEGRITY", Message: "Stored data is inconsistent", StatusCode: http.StatusUnprocessableEntity}
	ErrUnknownInstrumentType    = &AppError{Code: "UNKNOWN_INSTRUMENT_TYPE", Message: "Instrument type is not supported", StatusCode: http.StatusUnprocessableEntity}
	ErrMissingPrice             = &AppError{Code: "MISSING_PRICE", Message: "No price found for instrument and date", StatusCode: http.StatusUnprocessableEntity}
	ErrZeroMarketValue          = &AppError{Code: "ZERO_MARKET_VALUE", Message: "Market value of the previous day is zero", StatusCode: http.StatusUnprocessableEntity}
	ErrInsufficientObservations = &AppError{Code: "INSUFFICIENT_OBSERVATIONS", Message: "At least two return observations are required", StatusCode: http.StatusUnprocessableEntity}
	ErrPortfolioNotFound        = &AppError{Code: "PORTFOLIO_NOT_FOUND", Message: "Portfolio not found", StatusCode: http.StatusNotFound}
	ErrInstrumentNotFound       = &AppError{Code: "INSTRUMENT_NOT_FOUND", Message: "Instrument not found", StatusCode: http.StatusNotFound}
	ErrKeyFigureNotFound        = &AppError{Code: "KEY_FIGURE_NOT_FOUND", Message: "Key figure not found", StatusCode: http.StatusNotFound}
)

// Persistence errors.
var (
	ErrPersistence = &AppError{Code: "PERSISTENCE_ERROR", Message: "Failed to persist data", StatusCode: http.StatusInternalServerError}
)

// Configuration errors.
var (
	ErrUnsupportedKeyFigure = &AppError{Code: "UNSUPPORTED_KEY_FIGURE", Message: "Key figure is not supported", StatusCode: http.StatusBadRequest}
	ErrConfiguration        = &AppError{Code: "CONFIGURATION_ERROR", Message: "Invalid configuration", StatusCode: http.StatusInternalServerError}
)
