package errors

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apierr "github.com/ahdhani/boilerplate/pkg/api/types/errors"
	kerr "github.com/ahdhani/boilerplate/pkg/domain/errors"
)

func NewErrorMessage(code int, kind string, detail any) *echo.HTTPError {
	msg := apierr.Message{Exception: kind, Detail: detail}
	return echo.NewHTTPError(code, msg).SetInternal(msg)
}

func NotFound(detail string) *echo.HTTPError {
	return NewErrorMessage(http.StatusNotFound, apierr.KindNotFound, detail)
}

func Conflict(detail string) *echo.HTTPError {
	return NewErrorMessage(http.StatusConflict, apierr.KindConflict, detail)
}

// UnprocessableEntity reports per-field validation failures.
func UnprocessableEntity(violations []apierr.FieldViolation) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusUnprocessableEntity, apierr.KindValidation, violations,
	)
}

// MalformedRequest is for requests that fail before field validation
// can even start: undecodable bodies, wrong content type.
func MalformedRequest(detail string) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusUnprocessableEntity, apierr.KindValidation, detail,
	)
}

// InternalServerError hides err from the response body.
// The error handler still logs it server-side via SetInternal.
func InternalServerError(err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusInternalServerError, apierr.KindInternal, "Internal Server Error",
	).SetInternal(err)
}

// FromStorageError translates storage-layer errors to their HTTP
// representation. Errors outside the storage taxonomy pass through
// unchanged, for the catch-all handler to turn into a 500.
func FromStorageError(err error) error {
	switch {
	case errors.Is(err, kerr.ErrMissing):
		return NotFound(err.Error())
	case errors.Is(err, kerr.ErrConflict):
		return Conflict(err.Error())
	default:
		return err
	}
}
