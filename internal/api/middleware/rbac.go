package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/esociety/society-api/internal/api/handler"
	"github.com/esociety/society-api/internal/api/metrics"
	"github.com/esociety/society-api/internal/core/domain"
	"github.com/esociety/society-api/internal/core/service"
)

// LoginPath is where anonymous callers of a protected route are sent.
const LoginPath = "/login"

// Access enforces role-based access control from policy. Paths outside every
// policy prefix are public. A protected path without a session redirects to
// LoginPath with 303; a session with the wrong role gets domain.ErrDenied.
func Access(policy service.Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			required, ok := policy.Required(c.Request().URL.Path)
			if !ok {
				return next(c)
			}

			err := service.Authorize(handler.SessionFrom(c), required)
			switch {
			case errors.Is(err, domain.ErrUnauthenticated):
				return c.Redirect(http.StatusSeeOther, LoginPath)
			case errors.Is(err, domain.ErrDenied):
				route := c.Path()
				if route == "" {
					route = "unmatched"
				}
				metrics.AccessDeniedTotal.WithLabelValues(route).Inc()
				return err
			}
			return next(c)
		}
	}
}
