package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/esociety/society-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// statusByError maps sentinel domain errors to HTTP status codes. The
// sentinel's own message is returned to the client unless detail is set, in
// which case the full wrapped message is.
var statusByError = []struct {
	err    error
	code   int
	detail bool
}{
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, false},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, false},
	{domain.ErrDenied, http.StatusForbidden, false},

	{domain.ErrDuplicateEmail, http.StatusConflict, false},
	{domain.ErrUsernameConflict, http.StatusConflict, false},
	{domain.ErrDuplicateUnit, http.StatusConflict, false},
	{domain.ErrResidentExists, http.StatusConflict, false},
	{domain.ErrDuplicateBill, http.StatusConflict, false},
	{domain.ErrDuplicateReference, http.StatusConflict, false},
	{domain.ErrBillAlreadyPaid, http.StatusConflict, false},
	{domain.ErrVisitorAlreadyOut, http.StatusConflict, false},
	{domain.ErrBookingConflict, http.StatusConflict, false},

	{domain.ErrInvalidTransition, http.StatusUnprocessableEntity, true},
	{domain.ErrAmenityUnavailable, http.StatusUnprocessableEntity, false},

	{domain.ErrAccountNotFound, http.StatusNotFound, false},
	{domain.ErrUnitNotFound, http.StatusNotFound, false},
	{domain.ErrResidentNotFound, http.StatusNotFound, false},
	{domain.ErrBillNotFound, http.StatusNotFound, false},
	{domain.ErrVisitorNotFound, http.StatusNotFound, false},
	{domain.ErrComplaintNotFound, http.StatusNotFound, false},
	{domain.ErrAmenityNotFound, http.StatusNotFound, false},
	{domain.ErrBookingNotFound, http.StatusNotFound, false},
	{domain.ErrNoticeNotFound, http.StatusNotFound, false},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "fields": {...}}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, rate limiter, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity, errorResponse{Error: domain.ErrValidation.Error(), Fields: verr.Fields}
	}
	if errors.Is(err, domain.ErrInvalidRole) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:  domain.ErrValidation.Error(),
			Fields: map[string][]string{"role": {"select a valid role"}},
		}
	}

	for _, m := range statusByError {
		if !errors.Is(err, m.err) {
			continue
		}
		if m.detail {
			return m.code, errorResponse{Error: err.Error()}
		}
		return m.code, errorResponse{Error: m.err.Error()}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
