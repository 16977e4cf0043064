package echoutil

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apierr "github.com/ahdhani/boilerplate/pkg/api/types/errors"
)

// ErrorHandler is the outermost error boundary.
//
// Errors carrying an apierr.Message (built by pkg/api-types-binding/errors)
// are sent as-is. Echo's own routing errors (no route, bad method) keep
// their status but get wrapped into the envelope. Everything else is an
// unhandled failure: it is logged with full detail and answered with an
// opaque 500, so internals never leak to the caller.
func ErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := apierr.Message{
			Exception: apierr.KindInternal,
			Detail:    "Internal Server Error",
		}

		if httpErr, ok := err.(*echo.HTTPError); ok {
			code = httpErr.Code
			switch payload := httpErr.Message.(type) {
			case apierr.Message:
				msg = payload
			case string:
				msg = apierr.Message{Exception: kindOf(code), Detail: payload}
			}
		}

		if code >= http.StatusInternalServerError {
			e.Logger.Errorf("unhandled error on %s %s: %+v",
				c.Request().Method, c.Request().URL, err,
			)
		}

		if c.Request().Method == http.MethodHead {
			if err := c.NoContent(code); err != nil {
				e.Logger.Error(err)
			}
			return
		}
		if err := c.JSON(code, msg); err != nil {
			e.Logger.Error(err)
		}
	}
}

func kindOf(code int) string {
	switch code {
	case http.StatusNotFound:
		return apierr.KindNotFound
	case http.StatusConflict:
		return apierr.KindConflict
	case http.StatusUnprocessableEntity:
		return apierr.KindValidation
	default:
		if code < http.StatusInternalServerError {
			return strings.ReplaceAll(http.StatusText(code), " ", "")
		}
		return apierr.KindInternal
	}
}
