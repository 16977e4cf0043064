package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ahdhani/boilerplate/pkg/api/types/misc"
)

// HealthCheckHandler handles `GET /health`.
//
// It responds 200 unconditionally. Liveness only; it does not
// probe the database.
func HealthCheckHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, misc.Health{Status: "success"})
	}
}
