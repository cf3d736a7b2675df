package middleware

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/esociety/society-api/internal/api/handler"
	"github.com/esociety/society-api/internal/core/domain"
	"github.com/esociety/society-api/internal/core/service"
)

// Authenticator resolves a session token to its session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Session, error)
}

// Session resolves the caller's session token (cookie, or Bearer header) and
// injects the session into the context. Requests without a live session
// continue anonymously; whether that is allowed is decided by Access.
// When the store itself fails, paths outside the policy stay reachable
// anonymously and protected paths return the error.
func Session(auth Authenticator, cookieName string, policy service.Policy, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := handler.TokenFrom(c, cookieName)
			if token == "" {
				return next(c)
			}

			session, err := auth.Authenticate(c.Request().Context(), token)
			switch {
			case errors.Is(err, domain.ErrUnauthenticated):
				return next(c)
			case err != nil:
				if _, protected := policy.Required(c.Request().URL.Path); protected {
					return err
				}
				log.Warn().Err(err).Str("path", c.Request().URL.Path).Msg("session lookup failed, continuing anonymously")
				return next(c)
			}

			handler.SetSession(c, session)
			return next(c)
		}
	}
}
