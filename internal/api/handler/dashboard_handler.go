package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/esociety/society-api/internal/core/domain"
	"github.com/esociety/society-api/internal/core/ports"
)

// DashboardHandler serves the landing page of each role.
type DashboardHandler struct {
	dashboards ports.DashboardService
	notices    ports.NoticeService
}

func NewDashboardHandler(dashboards ports.DashboardService, notices ports.NoticeService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards, notices: notices}
}

// Admin handles GET /admin/.
//
// @Summary      Admin dashboard
// @Tags         dashboards
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  adminDashboardResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/ [get]
func (h *DashboardHandler) Admin(c echo.Context) error {
	d, err := h.dashboards.Admin(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminDashboardResponse{
		Role:           domain.RoleAdmin,
		UnitsTotal:     d.UnitsTotal,
		UnitsOccupied:  d.UnitsOccupied,
		Residents:      d.Residents,
		PendingBills:   d.PendingBills,
		OverdueBills:   d.OverdueBills,
		OpenComplaints: d.OpenComplaints,
		VisitorsInside: d.VisitorsInside,
		Links: map[string]string{
			"units":        "/admin/units",
			"residents":    "/admin/residents",
			"accounts":     "/admin/accounts",
			"bills":        "/admin/bills",
			"transactions": "/admin/transactions",
			"complaints":   "/admin/complaints",
			"bookings":     "/admin/bookings",
			"notices":      "/admin/notices",
			"logout":       "/logout",
		},
	})
}

// Resident handles GET /resident/. An account not yet linked to a unit gets
// an empty dashboard with the current notices.
//
// @Summary      Resident dashboard
// @Tags         dashboards
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  residentDashboardResponse
// @Failure      403  {object}  errorResponse
// @Router       /resident/ [get]
func (h *DashboardHandler) Resident(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	resp := residentDashboardResponse{
		Role: domain.RoleResident,
		Links: map[string]string{
			"bills":        "/resident/bills",
			"transactions": "/resident/transactions",
			"visitors":     "/resident/visitors",
			"complaints":   "/resident/complaints",
			"bookings":     "/resident/bookings",
			"amenities":    "/amenities",
			"notices":      "/notices",
			"logout":       "/logout",
		},
	}

	d, err := h.dashboards.Resident(c.Request().Context(), session.AccountID)
	switch {
	case errors.Is(err, domain.ErrResidentNotFound):
		if resp.Notices, err = h.notices.ListCurrent(c.Request().Context()); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		resp.Resident = d.Resident
		resp.Unit = d.Unit
		resp.PendingBills = d.PendingBills
		resp.OpenComplaints = d.OpenComplaints
		resp.UpcomingBookings = d.UpcomingBookings
		resp.Notices = d.Notices
	}
	return c.JSON(http.StatusOK, resp)
}

// Guard handles GET /guard/.
//
// @Summary      Guard dashboard
// @Tags         dashboards
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  guardDashboardResponse
// @Failure      403  {object}  errorResponse
// @Router       /guard/ [get]
func (h *DashboardHandler) Guard(c echo.Context) error {
	d, err := h.dashboards.Guard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, guardDashboardResponse{
		Role:           domain.RoleGuard,
		VisitorsInside: d.VisitorsInside,
		CheckedInToday: d.CheckedInToday,
		Notices:        d.Notices,
		Links: map[string]string{
			"visitors": "/guard/visitors",
			"check_in": "/guard/visitors",
			"notices":  "/notices",
			"logout":   "/logout",
		},
	})
}
