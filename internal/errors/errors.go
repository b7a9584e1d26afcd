// Package errors provides the structured error type shared by the engines,
// services, and HTTP handlers. Engine failures are always *AppError values so
// callers can tell configuration problems apart from internal faults without
// string matching.
package errors

import (
	"errors"
	"net/http"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is matches two AppErrors by code so that errors.Is works against the
// sentinels below even after WithMessage or Wrap produced a copy.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
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
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
	ErrCanceled       = &AppError{Code: "CANCELED", Message: "The computation was canceled", StatusCode: http.StatusRequestTimeout}
)

// Cap table configuration errors.
var (
	ErrInvalidCapTable    = &AppError{Code: "INVALID_CAP_TABLE", Message: "Cap table is inconsistent", StatusCode: http.StatusUnprocessableEntity}
	ErrInvalidShareCount  = &AppError{Code: "INVALID_SHARE_COUNT", Message: "Total shares must be positive", StatusCode: http.StatusUnprocessableEntity}
	ErrUnknownStakeholder = &AppError{Code: "UNKNOWN_STAKEHOLDER", Message: "Referenced stakeholder is not on the cap table", StatusCode: http.StatusUnprocessableEntity}
)

// Conversion configuration errors.
var (
	ErrMissingPricingTerms = &AppError{Code: "MISSING_PRICING_TERMS", Message: "Instrument needs a valuation cap or a discount", StatusCode: http.StatusUnprocessableEntity}
	ErrInvalidInstrument   = &AppError{Code: "INVALID_INSTRUMENT", Message: "Instrument terms are invalid", StatusCode: http.StatusUnprocessableEntity}
	ErrInvalidRoundPrice   = &AppError{Code: "INVALID_ROUND_PRICE", Message: "Round price per share must be positive", StatusCode: http.StatusUnprocessableEntity}
)

// Waterfall configuration errors.
var (
	ErrNegativeExitValuation = &AppError{Code: "NEGATIVE_EXIT_VALUATION", Message: "Exit valuation cannot be negative", StatusCode: http.StatusUnprocessableEntity}
	ErrInvalidPreferenceTier = &AppError{Code: "INVALID_PREFERENCE_TIER", Message: "Preference tier terms are invalid", StatusCode: http.StatusUnprocessableEntity}
	ErrDuplicateTierMember   = &AppError{Code: "DUPLICATE_TIER_MEMBER", Message: "A stakeholder can belong to at most one preference tier", StatusCode: http.StatusUnprocessableEntity}
	ErrTooManyValuations     = &AppError{Code: "TOO_MANY_VALUATIONS", Message: "Too many exit valuations requested", StatusCode: http.StatusBadRequest}
)

var configurationErrors = []*AppError{
	ErrInvalidCapTable,
	ErrInvalidShareCount,
	ErrUnknownStakeholder,
	ErrMissingPricingTerms,
	ErrInvalidInstrument,
	ErrInvalidRoundPrice,
	ErrNegativeExitValuation,
	ErrInvalidPreferenceTier,
	ErrDuplicateTierMember,
}

// IsConfigurationError reports whether err describes caller-supplied terms the
// engines refuse to compute with. These are deterministic: retrying with the
// same input always fails the same way.
func IsConfigurationError(err error) bool {
	for _, sentinel := range configurationErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
