package service

import (
	"net/http"

	commonerrors "github.com/migfernandes01/places-share-API/internal/common/errors"
)

var (
	ErrEditForbidden = commonerrors.NewDomainError(
		"EDIT_FORBIDDEN",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"You are not allowed to edit this place",
	)

	ErrDeleteForbidden = commonerrors.NewDomainError(
		"DELETE_FORBIDDEN",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"You are not allowed to delete this place",
	)

	ErrCreateFailed = commonerrors.NewDomainError(
		"CREATE_FAILED",
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		"Failure creating place.",
	)

	ErrUpdateFailed = commonerrors.NewDomainError(
		"UPDATE_FAILED",
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		"Could not update place.",
	)

	ErrDeleteFailed = commonerrors.NewDomainError(
		"DELETE_FAILED",
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		"Could not delete place.",
	)

	ErrFetchFailed = commonerrors.NewDomainError(
		"FETCH_FAILED",
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		"Could not find a place with that id.",
	)

	ErrFetchByUserFailed = commonerrors.NewDomainError(
		"FETCH_BY_USER_FAILED",
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		"Could not find places for that user",
	)
)
