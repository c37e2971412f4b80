package errors

import (
	"net/http"

	"phresh/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
const (
	authenticationFailedCode    = "AUTHENTICATION_FAILED"
	authenticationFailedMessage = "Authentication was unsuccessful."
)

var (
	// Registration errors
	ErrEmailTaken = NewBaseError(
		http.StatusBadRequest,
		"EMAIL_TAKEN",
		"This email is already taken. Login with that email or register with another one.",
		"",
	)

	ErrUsernameTaken = NewBaseError(
		http.StatusBadRequest,
		"USERNAME_TAKEN",
		"This username is already taken. Please try another one.",
		"",
	)

	ErrUserCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_CREATION_FAILED",
		"Failed to create user",
		"",
	)

	ErrUserUpdateFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_UPDATE_FAILED",
		"Failed to update user",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"No user found with that username",
		"",
	)

	// Authentication errors. Every failure to prove identity renders the same code and message;
	// the sentinels stay distinct so callers and logs can tell them apart.
	ErrAuthenticationFailed = NewBaseError(
		http.StatusUnauthorized,
		authenticationFailedCode,
		authenticationFailedMessage,
		"",
	)

	ErrMissingCredential = NewBaseError(
		http.StatusUnauthorized,
		authenticationFailedCode,
		authenticationFailedMessage,
		"",
	)

	ErrMalformedHeader = NewBaseError(
		http.StatusUnauthorized,
		authenticationFailedCode,
		authenticationFailedMessage,
		"",
	)

	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		authenticationFailedCode,
		authenticationFailedMessage,
		"",
	)

	ErrInactiveUser = NewBaseError(
		http.StatusUnauthorized,
		"INACTIVE_USER",
		"Not an active user.",
		"",
	)

	ErrCorruptCredential = NewBaseError(
		http.StatusInternalServerError,
		"CORRUPT_CREDENTIAL",
		"Internal server error",
		"",
	)

	ErrTokenIssueFailed = NewBaseError(
		http.StatusInternalServerError,
		"TOKEN_ISSUE_FAILED",
		"Internal server error",
		"",
	)

	// Cleaning errors
	ErrCleaningNotFound = NewBaseError(
		http.StatusNotFound,
		"CLEANING_NOT_FOUND",
		"No cleaning found with that id.",
		"",
	)

	ErrInvalidCleaningType = NewBaseError(
		http.StatusBadRequest,
		"INVALID_CLEANING_TYPE",
		"Invalid cleaning type. Cannot be None.",
		"",
	)

	// Offer errors
	ErrOfferNotFound = NewBaseError(
		http.StatusNotFound,
		"OFFER_NOT_FOUND",
		"Offer not found.",
		"",
	)

	ErrDuplicateOffer = NewBaseError(
		http.StatusBadRequest,
		"DUPLICATE_OFFER",
		"Users aren't allowed create more than one offer for a cleaning job.",
		"",
	)

	ErrSelfOfferNotAllowed = NewBaseError(
		http.StatusBadRequest,
		"SELF_OFFER_NOT_ALLOWED",
		"Users are unable to create offers for cleaning jobs they own.",
		"",
	)

	ErrOfferNotPending = NewBaseError(
		http.StatusBadRequest,
		"OFFER_NOT_PENDING",
		"Only pending offers can be changed.",
		"",
	)

	ErrOfferAlreadyAccepted = NewBaseError(
		http.StatusConflict,
		"OFFER_ALREADY_ACCEPTED",
		"An offer has already been accepted for this cleaning job.",
		"",
	)

	// Profile errors
	ErrProfileNotFound = NewBaseError(
		http.StatusNotFound,
		"PROFILE_NOT_FOUND",
		"No profile found with that username.",
		"",
	)

	// Validation errors
	ErrValidationFailed = NewBaseError(
		http.StatusUnprocessableEntity,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// Transaction errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error, please try again later",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"You are not allowed to modify this resource.",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
