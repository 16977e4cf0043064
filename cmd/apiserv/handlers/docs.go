package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ahdhani/boilerplate/pkg/api/types/misc"
	"github.com/ahdhani/boilerplate/pkg/utils"
)

// DocsHandler handles `GET /docs`, registered only when the server
// runs in the DEV environment.
//
// It responds the route table of the running server, as a poor man's
// API index for developers poking the service with curl.
func DocsHandler(e *echo.Echo) echo.HandlerFunc {
	return func(c echo.Context) error {
		routes := utils.Map(e.Routes(), func(r *echo.Route) misc.Route {
			return misc.Route{Method: r.Method, Path: r.Path}
		})

		routes = utils.Sorted(routes, func(a, b misc.Route) bool {
			if a.Path != b.Path {
				return a.Path < b.Path
			}
			return a.Method < b.Method
		})

		// echo registers hidden helper routes for trailing-slash
		// redirects. they are noise here.
		shown := []misc.Route{}
		for _, r := range routes {
			if strings.HasSuffix(r.Path, "*") {
				continue
			}
			shown = append(shown, r)
		}

		return c.JSON(http.StatusOK, misc.Docs{Routes: shown})
	}
}
