package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/feral-file/brainrot-ledger/internal/domain"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeValidationFailed ErrorCode = "validation_failed"
	ErrCodeUnauthorized     ErrorCode = "unauthorized"
	ErrCodeForbidden        ErrorCode = "forbidden"

	// Ledger rejections
	ErrCodeNotAuthorized        ErrorCode = "not_authorized"
	ErrCodeNotTokenOwner        ErrorCode = "not_token_owner"
	ErrCodeNotOwnerOrAuthorized ErrorCode = "not_owner_or_authorized"
	ErrCodeNonexistentToken     ErrorCode = "nonexistent_token"
	ErrCodeInsufficientPayment  ErrorCode = "insufficient_payment"
	ErrCodeInsufficientFunds    ErrorCode = "insufficient_funds"
	ErrCodeInvalidLevel         ErrorCode = "invalid_level"
	ErrCodeInvalidPrice         ErrorCode = "invalid_price"
	ErrCodeInvalidRecipe        ErrorCode = "invalid_recipe"
	ErrCodeNotListed            ErrorCode = "not_listed"
	ErrCodeNotSeller            ErrorCode = "not_seller"
	ErrCodeListingConflict      ErrorCode = "listing_conflict"
	ErrCodeSelfPurchase         ErrorCode = "self_purchase"
	ErrCodeUnknownPurchase      ErrorCode = "unknown_purchase"
	ErrCodePurchaseNotReady     ErrorCode = "purchase_not_ready"
	ErrCodeUnknownCaseType      ErrorCode = "unknown_case_type"
	ErrCodeInvalidAddress       ErrorCode = "invalid_address"
	ErrCodeInvalidAmount        ErrorCode = "invalid_amount"
	ErrCodeInvalidAttributes    ErrorCode = "invalid_attributes"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
	ErrCodeDatabaseError ErrorCode = "database_error"
	ErrCodeServiceError  ErrorCode = "service_error"
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

// Error constructors for common error types
func NewBadRequestError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewNotFoundError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeNotFound,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewValidationError(details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeValidationFailed,
		Message: "Validation failed",
		Details: strings.Join(details, ", "),
	}
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewForbiddenError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeForbidden,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewInternalError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeInternalError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewDatabaseError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeDatabaseError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewServiceError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeServiceError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

// rejection binds a ledger sentinel to its HTTP status and code
type rejection struct {
	err     error
	status  int
	code    ErrorCode
	message string
}

var rejections = []rejection{
	{domain.ErrNonexistentToken, http.StatusNotFound, ErrCodeNonexistentToken, "Token does not exist"},
	{domain.ErrUnknownPurchase, http.StatusNotFound, ErrCodeUnknownPurchase, "Unknown or already opened purchase"},
	{domain.ErrNotListed, http.StatusNotFound, ErrCodeNotListed, "Token is not listed"},
	{domain.ErrUnauthorized, http.StatusForbidden, ErrCodeNotAuthorized, "Caller is not authorized"},
	{domain.ErrNotTokenOwner, http.StatusForbidden, ErrCodeNotTokenOwner, "Caller does not own the token"},
	{domain.ErrNotOwnerOrAuthorized, http.StatusForbidden, ErrCodeNotOwnerOrAuthorized, "Caller is neither owner nor authorized"},
	{domain.ErrNotSeller, http.StatusForbidden, ErrCodeNotSeller, "Caller is not the seller"},
	{domain.ErrInsufficientPayment, http.StatusPaymentRequired, ErrCodeInsufficientPayment, "Attached value is below the price"},
	{domain.ErrInsufficientFunds, http.StatusPaymentRequired, ErrCodeInsufficientFunds, "Account balance is too low"},
	{domain.ErrListingConflict, http.StatusConflict, ErrCodeListingConflict, "Token is listed by another seller"},
	{domain.ErrSelfPurchase, http.StatusConflict, ErrCodeSelfPurchase, "Cannot buy own listing"},
	{domain.ErrPurchaseNotReady, http.StatusConflict, ErrCodePurchaseNotReady, "Purchase cannot be opened yet"},
	{domain.ErrInvalidLevel, http.StatusUnprocessableEntity, ErrCodeInvalidLevel, "Invalid target level"},
	{domain.ErrInvalidPrice, http.StatusUnprocessableEntity, ErrCodeInvalidPrice, "Price must be positive"},
	{domain.ErrInvalidRecipe, http.StatusUnprocessableEntity, ErrCodeInvalidRecipe, "Tokens do not form an upgrade recipe"},
	{domain.ErrUnknownCaseType, http.StatusUnprocessableEntity, ErrCodeUnknownCaseType, "Unknown case type"},
	{domain.ErrInvalidAddress, http.StatusUnprocessableEntity, ErrCodeInvalidAddress, "Invalid address"},
	{domain.ErrInvalidAmount, http.StatusUnprocessableEntity, ErrCodeInvalidAmount, "Invalid amount"},
	{domain.ErrInvalidAttributes, http.StatusUnprocessableEntity, ErrCodeInvalidAttributes, "Invalid token attributes"},
}

// statusByCode gives the HTTP status of the generic codes
var statusByCode = map[ErrorCode]int{
	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeValidationFailed: http.StatusUnprocessableEntity,
	ErrCodeUnauthorized:     http.StatusUnauthorized,
	ErrCodeForbidden:        http.StatusForbidden,
	ErrCodeInternalError:    http.StatusInternalServerError,
	ErrCodeDatabaseError:    http.StatusInternalServerError,
	ErrCodeServiceError:     http.StatusServiceUnavailable,
}

// FromError converts an executor error into an HTTP status and API error.
// Ledger rejections keep their message as details; anything unrecognised is an internal error.
func FromError(err error) (int, *APIError) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		status, ok := statusByCode[apiErr.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		return status, apiErr
	}

	for _, r := range rejections {
		if errors.Is(err, r.err) {
			return r.status, &APIError{Code: r.code, Message: r.message, Details: err.Error()}
		}
	}

	return http.StatusInternalServerError, NewInternalError("Internal server error")
}

// IsRejection reports whether err is an expected ledger rejection rather than a failure
func IsRejection(err error) bool {
	for _, r := range rejections {
		if errors.Is(err, r.err) {
			return true
		}
	}
	return false
}
