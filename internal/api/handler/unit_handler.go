package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/esociety/society-api/internal/core/domain"
	"github.com/esociety/society-api/internal/core/ports"
)

// UnitHandler handles unit and resident profile administration.
type UnitHandler struct {
	service ports.UnitService
}

func NewUnitHandler(service ports.UnitService) *UnitHandler {
	return &UnitHandler{service: service}
}

// Create handles POST /admin/units.
//
// @Summary      Create a unit
// @Tags         units
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      createUnitRequest  true  "Unit details"
// @Success      201   {object}  domain.Unit
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/units [post]
func (h *UnitHandler) Create(c echo.Context) error {
	var req createUnitRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	unit, err := h.service.CreateUnit(c.Request().Context(), ports.CreateUnitInput{
		UnitNo: req.UnitNo,
		Wing:   req.Wing,
		Floor:  req.Floor,
		Type:   req.UnitType,
		SqFt:   req.SqFt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, unit)
}

// List handles GET /admin/units.
//
// @Summary      List units
// @Tags         units
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  listResponse[domain.Unit]
// @Router       /admin/units [get]
func (h *UnitHandler) List(c echo.Context) error {
	units, err := h.service.ListUnits(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(units))
}

// Get handles GET /admin/units/:id.
//
// @Summary      Get a unit
// @Tags         units
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      string  true  "Unit id"
// @Success      200  {object}  domain.Unit
// @Failure      404  {object}  errorResponse
// @Router       /admin/units/{id} [get]
func (h *UnitHandler) Get(c echo.Context) error {
	unit, err := h.service.GetUnit(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, unit)
}

// CreateResident handles POST /admin/residents.
//
// @Summary      Register a resident in a unit
// @Tags         residents
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      createResidentRequest  true  "Resident profile"
// @Success      201   {object}  domain.Resident
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/residents [post]
func (h *UnitHandler) CreateResident(c echo.Context) error {
	var req createResidentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	moveIn, err := parseTime("move_in_date", req.MoveInDate, dateLayout)
	if err != nil {
		return err
	}

	resident, err := h.service.CreateResident(c.Request().Context(), ports.CreateResidentInput{
		AccountID:        req.AccountID,
		UnitID:           req.UnitID,
		Status:           req.Status,
		VehicleNo:        req.VehicleNo,
		MemberCount:      req.MemberCount,
		MoveInDate:       moveIn,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
		Occupation:       req.Occupation,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resident)
}

// ListResidents handles GET /admin/residents?unit_id=.
//
// @Summary      List residents
// @Tags         residents
// @Produce      json
// @Security     SessionCookie
// @Param        unit_id  query     string  false  "Only residents of this unit"
// @Success      200      {object}  listResponse[domain.Resident]
// @Router       /admin/residents [get]
func (h *UnitHandler) ListResidents(c echo.Context) error {
	residents, err := h.service.ListResidents(c.Request().Context(), c.QueryParam("unit_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(residents))
}

// AccountHandler lets administrators inspect and deactivate accounts.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// List handles GET /admin/accounts?role=&limit=.
//
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Security     SessionCookie
// @Param        role   query     string  false  "ADMIN, RESIDENT or GUARD"
// @Param        limit  query     int     false  "Maximum results (default 100)"
// @Success      200    {object}  listResponse[domain.Account]
// @Failure      422    {object}  errorResponse
// @Router       /admin/accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	accounts, err := h.service.ListAccounts(c.Request().Context(), ports.ListAccountsFilter{
		Role:  domain.Role(queryUpper(c, "role")),
		Limit: limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(accounts))
}

// Deactivate handles DELETE /admin/accounts/:id. The account is kept but can
// no longer log in.
//
// @Summary      Deactivate an account
// @Tags         accounts
// @Security     SessionCookie
// @Param        id   path  string  true  "Account id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /admin/accounts/{id} [delete]
func (h *AccountHandler) Deactivate(c echo.Context) error {
	if err := h.service.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
