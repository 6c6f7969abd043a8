package validation

import (
	"github.com/go-playground/validator/v10"

	commonerrors "github.com/migfernandes01/places-share-API/internal/common/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates the request payload tags and folds any violation into the
// single client-facing validation error.
func Struct(v any) error {
	if err := validate.Struct(v); err != nil {
		return commonerrors.ErrInvalidInput.WithCause(err)
	}
	return nil
}
