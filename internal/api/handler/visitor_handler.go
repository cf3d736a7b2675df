package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/esociety/society-api/internal/core/domain"
	"github.com/esociety/society-api/internal/core/ports"
)

// VisitorHandler handles the gate register.
type VisitorHandler struct {
	service ports.VisitorService
}

func NewVisitorHandler(service ports.VisitorService) *VisitorHandler {
	return &VisitorHandler{service: service}
}

// CheckIn handles POST /guard/visitors.
//
// @Summary      Check a visitor in
// @Tags         visitors
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      checkInRequest  true  "Visitor details"
// @Success      201   {object}  domain.Visitor
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /guard/visitors [post]
func (h *VisitorHandler) CheckIn(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req checkInRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	visitor, err := h.service.CheckIn(c.Request().Context(), ports.CheckInInput{
		GuardID:   session.AccountID,
		Name:      req.Name,
		Phone:     req.Phone,
		UnitID:    req.UnitID,
		HostID:    req.HostID,
		Purpose:   req.Purpose,
		VehicleNo: req.VehicleNo,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, visitor)
}

// CheckOut handles POST /guard/visitors/:id/checkout.
//
// @Summary      Check a visitor out
// @Tags         visitors
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      string  true  "Visitor id"
// @Success      200  {object}  domain.Visitor
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /guard/visitors/{id}/checkout [post]
func (h *VisitorHandler) CheckOut(c echo.Context) error {
	visitor, err := h.service.CheckOut(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, visitor)
}

// List handles GET /guard/visitors?status=.
//
// @Summary      List visitors
// @Tags         visitors
// @Produce      json
// @Security     SessionCookie
// @Param        status  query     string  false  "IN or OUT"
// @Success      200     {object}  listResponse[domain.Visitor]
// @Failure      422     {object}  errorResponse
// @Router       /guard/visitors [get]
func (h *VisitorHandler) List(c echo.Context) error {
	visitors, err := h.service.ListVisitors(c.Request().Context(), ports.VisitorFilter{
		Status: domain.VisitorStatus(queryUpper(c, "status")),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(visitors))
}

// Mine handles GET /resident/visitors.
//
// @Summary      Visitors of the caller's unit
// @Tags         visitors
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  listResponse[domain.Visitor]
// @Router       /resident/visitors [get]
func (h *VisitorHandler) Mine(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	visitors, err := h.service.ListResidentVisitors(c.Request().Context(), session.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(visitors))
}
