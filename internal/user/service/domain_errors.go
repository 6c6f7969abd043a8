package service

import (
	"net/http"

	commonerrors "github.com/migfernandes01/places-share-API/internal/common/errors"
)

var (
	// Unknown e-mail and wrong password deliberately share the same
	// client-facing message; only the status differs.
	ErrUnknownEmail = commonerrors.NewDomainError(
		"UNKNOWN_EMAIL",
		commonerrors.CategoryAuth,
		http.StatusForbidden,
		"Invalid credentials.",
	)

	ErrWrongPassword = commonerrors.NewDomainError(
		"WRONG_PASSWORD",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"Invalid credentials.",
	)

	ErrSignupFailed = commonerrors.NewDomainError(
		"SIGNUP_FAILED",
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		"Signing up failed.",
	)

	ErrLoginFailed = commonerrors.NewDomainError(
		"LOGIN_FAILED",
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		"Login failed.",
	)

	ErrFetchUsersFailed = commonerrors.NewDomainError(
		"FETCH_USERS_FAILED",
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		"Fetching users failed",
	)
)
