package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/esociety/society-api/internal/core/domain"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// bindAndValidate decodes the request body into req and runs the struct
// validator over it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

// parseTime reads value with layout in UTC, reporting failures against field.
func parseTime(field, value, layout string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, domain.FieldError(field, "use the format "+layoutHint(layout))
	}
	return t, nil
}

func layoutHint(layout string) string {
	switch layout {
	case dateLayout:
		return "YYYY-MM-DD"
	case monthLayout:
		return "YYYY-MM"
	}
	return layout
}

// queryInt returns the integer query parameter name, or 0 when absent.
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.FieldError(name, "must be a whole number")
	}
	return n, nil
}

// queryBool returns the boolean query parameter name, or false when absent.
func queryBool(c echo.Context, name string) (bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, domain.FieldError(name, "must be true or false")
	}
	return b, nil
}

// queryUpper returns the query parameter name upper-cased, for enum filters.
func queryUpper(c echo.Context, name string) string {
	return strings.ToUpper(strings.TrimSpace(c.QueryParam(name)))
}
