package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/esociety/society-api/internal/api/handler"
	"github.com/esociety/society-api/internal/core/domain"
	"github.com/esociety/society-api/internal/core/service"
)

// newAccessServer wires Access in front of a handful of routes the way the
// router does, so redirects and error rendering are exercised end to end.
func newAccessServer(session *domain.Session) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(zerolog.Nop())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if session != nil {
				handler.SetSession(c, session)
			}
			return next(c)
		}
	})
	e.Use(Access(service.DefaultPolicy()))

	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/", ok)
	e.GET("/admin/", ok)
	e.GET("/admin/units", ok)
	e.GET("/resident/", ok)
	e.GET("/guard/", ok)
	e.GET("/notices", ok)
	e.GET("/administrator", ok)
	return e
}

func serve(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestAccess_AllowsMatchingRole(t *testing.T) {
	e := newAccessServer(&domain.Session{AccountID: "a", Role: domain.RoleAdmin})

	for _, path := range []string{"/admin/", "/admin/units", "/notices"} {
		if rec := serve(e, path); rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestAccess_ForbidsOtherRoles(t *testing.T) {
	e := newAccessServer(&domain.Session{AccountID: "g", Role: domain.RoleGuard})

	rec := serve(e, "/admin/units")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if rec.Body.String() == "" {
		t.Fatalf("expected error body")
	}
	if rec := serve(e, "/resident/"); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 on /resident/, got %d", rec.Code)
	}
	if rec := serve(e, "/guard/"); rec.Code != http.StatusOK {
		t.Fatalf("expected guard dashboard to be reachable, got %d", rec.Code)
	}
}

func TestAccess_RedirectsAnonymousToLogin(t *testing.T) {
	e := newAccessServer(nil)

	rec := serve(e, "/resident/")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != LoginPath {
		t.Fatalf("expected redirect to %s, got %q", LoginPath, loc)
	}
}

func TestAccess_PublicRoutes(t *testing.T) {
	e := newAccessServer(nil)

	for _, path := range []string{"/", "/administrator"} {
		if rec := serve(e, path); rec.Code != http.StatusOK {
			t.Fatalf("%s: expected public route, got %d", path, rec.Code)
		}
	}
}
