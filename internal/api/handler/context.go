package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/esociety/society-api/internal/core/domain"
)

// SessionContextKey is where the Session middleware stores the caller's session.
const SessionContextKey = "session"

// SetSession attaches session to the request context.
func SetSession(c echo.Context, session *domain.Session) {
	c.Set(SessionContextKey, session)
}

// SessionFrom returns the session injected by the Session middleware, or nil
// for anonymous requests.
func SessionFrom(c echo.Context) *domain.Session {
	session, _ := c.Get(SessionContextKey).(*domain.Session)
	return session
}

// ctxSession is the fast-fail variant used by handlers behind the access
// middleware: a missing session means the middleware did not run.
func ctxSession(c echo.Context) (*domain.Session, error) {
	session := SessionFrom(c)
	if session == nil {
		return nil, domain.ErrUnauthenticated
	}
	return session, nil
}

// TokenFrom returns the session token carried by the request: the session
// cookie first, then an "Authorization: Bearer" header for API clients.
func TokenFrom(c echo.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
