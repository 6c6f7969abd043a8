package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCategory string

const (
	CategoryValidation   ErrorCategory = "VALIDATION"
	CategoryAuth         ErrorCategory = "AUTH"
	CategoryNotFound     ErrorCategory = "NOT_FOUND"
	CategoryConflict     ErrorCategory = "CONFLICT"
	CategoryUnauthorized ErrorCategory = "UNAUTHORIZED"
	CategoryInternal     ErrorCategory = "INTERNAL"
	CategoryExternal     ErrorCategory = "EXTERNAL"
)

// DomainError carries an HTTP status and a client-safe message alongside the
// internal cause. Handlers never expose the cause to the client.
type DomainError interface {
	error
	Code() string
	Category() ErrorCategory
	HTTPStatus() int
	Message() string
	Unwrap() error
	WithCause(cause error) DomainError
}

type domainError struct {
	code     string
	category ErrorCategory
	status   int
	message  string
	cause    error
}

func (e *domainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *domainError) Code() string {
	return e.code
}

func (e *domainError) Category() ErrorCategory {
	return e.category
}

func (e *domainError) HTTPStatus() int {
	return e.status
}

func (e *domainError) Message() string {
	return e.message
}

func (e *domainError) Unwrap() error {
	return e.cause
}

func (e *domainError) WithCause(cause error) DomainError {
	return &domainError{
		code:     e.code,
		category: e.category,
		status:   e.status,
		message:  e.message,
		cause:    cause,
	}
}

// Is matches two domain errors by code, so a sentinel wrapped with WithCause
// still compares equal to the bare sentinel under errors.Is.
func (e *domainError) Is(target error) bool {
	var de DomainError
	if errors.As(target, &de) {
		return e.code == de.Code()
	}
	return false
}

func NewDomainError(code string, category ErrorCategory, status int, message string) DomainError {
	return &domainError{
		code:     code,
		category: category,
		status:   status,
		message:  message,
	}
}

func IsDomainError(err error) bool {
	var de DomainError
	return errors.As(err, &de)
}

func AsDomainError(err error) (DomainError, bool) {
	var de DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

var (
	ErrMissingRequiredEnv = NewDomainError(
		"MISSING_REQUIRED_ENV",
		CategoryValidation,
		http.StatusBadRequest,
		"missing required environment variable",
	)

	ErrInvalidJWTSecret = NewDomainError(
		"INVALID_JWT_SECRET",
		CategoryValidation,
		http.StatusInternalServerError,
		"JWT_SECRET must be at least 32 bytes",
	)

	ErrInvalidInput = NewDomainError(
		"INVALID_INPUT",
		CategoryValidation,
		http.StatusUnprocessableEntity,
		"Invalid input",
	)

	ErrAuthentication = NewDomainError(
		"AUTHENTICATION_FAILED",
		CategoryAuth,
		http.StatusForbidden,
		"Authentication failed",
	)

	ErrInvalidToken = NewDomainError(
		"INVALID_TOKEN",
		CategoryAuth,
		http.StatusForbidden,
		"token is not valid",
	)

	ErrUserNotFound = NewDomainError(
		"USER_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"user not found",
	)

	ErrEmailTaken = NewDomainError(
		"EMAIL_TAKEN",
		CategoryConflict,
		http.StatusUnprocessableEntity,
		"An account with that e-mail already exists",
	)

	ErrPlaceNotFound = NewDomainError(
		"PLACE_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"Could not find a place with that id.",
	)

	ErrNoPlacesForUser = NewDomainError(
		"NO_PLACES_FOR_USER",
		CategoryNotFound,
		http.StatusNotFound,
		"Could not find places for that user.",
	)

	ErrGeocodeNoMatch = NewDomainError(
		"GEOCODE_NO_MATCH",
		CategoryValidation,
		http.StatusUnprocessableEntity,
		"Could not find location for the specified address.",
	)

	ErrGeocodeProvider = NewDomainError(
		"GEOCODE_PROVIDER",
		CategoryExternal,
		http.StatusBadGateway,
		"could not resolve address",
	)

	// The acting user's id came from a valid token but has no store record.
	// A data-integrity failure, not a client error.
	ErrInconsistentIdentity = NewDomainError(
		"INCONSISTENT_IDENTITY",
		CategoryInternal,
		http.StatusInternalServerError,
		"Could not find user for the provided id.",
	)

	ErrDatabaseError = NewDomainError(
		"DATABASE_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"database operation failed",
	)

	ErrInternalError = NewDomainError(
		"INTERNAL_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)

	ErrFileSizeExceeded = NewDomainError(
		"FILE_SIZE_EXCEEDED",
		CategoryValidation,
		http.StatusBadRequest,
		"file size exceeds maximum",
	)

	ErrMimeTypeNotAllowed = NewDomainError(
		"MIME_TYPE_NOT_ALLOWED",
		CategoryValidation,
		http.StatusBadRequest,
		"Invalid file type.",
	)

	ErrMissingFile = NewDomainError(
		"MISSING_FILE",
		CategoryValidation,
		http.StatusBadRequest,
		"image file is required",
	)
)
