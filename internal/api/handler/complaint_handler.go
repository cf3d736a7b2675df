package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/esociety/society-api/internal/core/domain"
	"github.com/esociety/society-api/internal/core/ports"
)

type ComplaintHandler struct {
	service ports.ComplaintService
}

func NewComplaintHandler(service ports.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{service: service}
}

// Raise handles POST /resident/complaints.
//
// @Summary      Raise a complaint
// @Tags         complaints
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      raiseComplaintRequest  true  "Complaint"
// @Success      201   {object}  domain.Complaint
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /resident/complaints [post]
func (h *ComplaintHandler) Raise(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req raiseComplaintRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	complaint, err := h.service.Raise(c.Request().Context(), ports.RaiseComplaintInput{
		AccountID:   session.AccountID,
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, complaint)
}

// Mine handles GET /resident/complaints.
//
// @Summary      Complaints raised by the caller
// @Tags         complaints
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  listResponse[domain.Complaint]
// @Router       /resident/complaints [get]
func (h *ComplaintHandler) Mine(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	complaints, err := h.service.ListResidentComplaints(c.Request().Context(), session.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(complaints))
}

// List handles GET /admin/complaints?status=&open=.
//
// @Summary      List complaints
// @Tags         complaints
// @Produce      json
// @Security     SessionCookie
// @Param        status  query     string  false  "OPEN, IN_PROGRESS, RESOLVED or CLOSED"
// @Param        open    query     bool    false  "Only complaints not yet resolved or closed"
// @Success      200     {object}  listResponse[domain.Complaint]
// @Failure      422     {object}  errorResponse
// @Router       /admin/complaints [get]
func (h *ComplaintHandler) List(c echo.Context) error {
	open, err := queryBool(c, "open")
	if err != nil {
		return err
	}
	complaints, err := h.service.ListComplaints(c.Request().Context(), ports.ComplaintFilter{
		Status: domain.ComplaintStatus(queryUpper(c, "status")),
		Open:   open,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(complaints))
}

// Update handles PATCH /admin/complaints/:id.
//
// @Summary      Update or assign a complaint
// @Tags         complaints
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string                  true  "Complaint id"
// @Param        body  body      updateComplaintRequest  true  "Fields to change"
// @Success      200   {object}  domain.Complaint
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/complaints/{id} [patch]
func (h *ComplaintHandler) Update(c echo.Context) error {
	var req updateComplaintRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	complaint, err := h.service.Update(c.Request().Context(), ports.UpdateComplaintInput{
		ID:         c.Param("id"),
		Status:     req.Status,
		AssignedTo: req.AssignedTo,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, complaint)
}
