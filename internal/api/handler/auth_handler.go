package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/esociety/society-api/internal/api/metrics"
	"github.com/esociety/society-api/internal/core/domain"
	"github.com/esociety/society-api/internal/core/ports"
	"github.com/esociety/society-api/internal/core/service"
)

const (
	flashCookie   = "flash"
	signupSuccess = "Account created successfully! Please login to continue."
)

// CookieConfig controls the session cookie issued at login.
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieConfig
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, cookie CookieConfig, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie, log: log}
}

// Landing is the neutral page, also used as the fallback dashboard.
//
// @Summary      Landing page
// @Tags         auth
// @Produce      json
// @Success      200  {object}  landingResponse
// @Router       / [get]
func (h *AuthHandler) Landing(c echo.Context) error {
	links := map[string]string{"signup": "/signup", "login": "/login"}
	if session := SessionFrom(c); session != nil {
		links = map[string]string{"dashboard": string(service.RouteAfterLogin(session)), "logout": "/logout"}
	}
	return c.JSON(http.StatusOK, landingResponse{Name: "society", Links: links})
}

// SignupForm describes the signup form.
//
// @Summary      Signup form
// @Tags         auth
// @Produce      json
// @Success      200  {object}  formResponse
// @Success      303  "already logged in, redirected to the dashboard"
// @Router       /signup [get]
func (h *AuthHandler) SignupForm(c echo.Context) error {
	if session := SessionFrom(c); session != nil {
		return c.Redirect(http.StatusSeeOther, string(service.RouteAfterLogin(session)))
	}

	roles := make([]string, len(domain.Roles))
	for i, r := range domain.Roles {
		roles[i] = r.String()
	}
	return c.JSON(http.StatusOK, formResponse{
		Form:   "signup",
		Action: "/signup",
		Fields: []formField{
			{Name: "email", Type: "email", Required: true},
			{Name: "password", Type: "password", Required: true},
			{Name: "password_confirmation", Type: "password", Required: true},
			{Name: "role", Type: "select", Choices: roles},
		},
	})
}

// Signup creates an account and sends the caller to the login page. It does
// not log the new account in.
//
// @Summary      Create an account
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup form"
// @Success      303   "redirect to /login with a success notice"
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	roleLabel := "invalid"
	if role, err := domain.ParseRole(req.Role); err == nil {
		roleLabel = role.String()
	}

	_, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		Role:                 req.Role,
	})
	if err != nil {
		metrics.SignupsTotal.WithLabelValues(roleLabel, signupResult(err)).Inc()
		return err
	}
	metrics.SignupsTotal.WithLabelValues(roleLabel, "created").Inc()

	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(signupSuccess),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, "/login")
}

// LoginForm describes the login form and consumes any pending notice.
//
// @Summary      Login form
// @Tags         auth
// @Produce      json
// @Success      200  {object}  formResponse
// @Success      303  "already logged in, redirected to the dashboard"
// @Router       /login [get]
func (h *AuthHandler) LoginForm(c echo.Context) error {
	if session := SessionFrom(c); session != nil {
		return c.Redirect(http.StatusSeeOther, string(service.RouteAfterLogin(session)))
	}

	return c.JSON(http.StatusOK, formResponse{
		Form:   "login",
		Action: "/login",
		Fields: []formField{
			{Name: "email", Type: "email", Required: true},
			{Name: "password", Type: "password", Required: true},
		},
		Notice: h.popFlash(c),
	})
}

// Login authenticates the caller, sets the session cookie and redirects to
// the dashboard of the account's role.
//
// @Summary      Login
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      303   "redirect to the role dashboard"
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	session, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(h.cookie.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, string(service.RouteAfterLogin(session)))
}

// Logout ends the current session, clears the cookie and returns to login.
//
// @Summary      Logout
// @Tags         auth
// @Success      303  "redirect to /login"
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), TokenFrom(c, h.cookie.Name)); err != nil {
		h.log.Warn().Err(err).Msg("logout: session not removed")
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
	})
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AuthHandler) popFlash(c echo.Context) string {
	cookie, err := c.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return ""
	}
	c.SetCookie(&http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})

	msg, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return msg
}

func signupResult(err error) string {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, domain.ErrInvalidRole):
		return "invalid"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return "duplicate"
	case errors.Is(err, domain.ErrUsernameConflict):
		return "conflict"
	default:
		return "error"
	}
}

func loginResult(err error) string {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.As(err, &verr):
		return "invalid"
	default:
		return "error"
	}
}
