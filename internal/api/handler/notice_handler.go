package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/esociety/society-api/internal/core/ports"
)

type NoticeHandler struct {
	service ports.NoticeService
}

func NewNoticeHandler(service ports.NoticeService) *NoticeHandler {
	return &NoticeHandler{service: service}
}

// Post handles POST /admin/notices.
//
// @Summary      Post a notice
// @Tags         notices
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      postNoticeRequest  true  "Notice; expiry_date is YYYY-MM-DD"
// @Success      201   {object}  domain.Notice
// @Failure      422   {object}  errorResponse
// @Router       /admin/notices [post]
func (h *NoticeHandler) Post(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req postNoticeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	var expiry *time.Time
	if req.ExpiryDate != "" {
		t, err := parseTime("expiry_date", req.ExpiryDate, dateLayout)
		if err != nil {
			return err
		}
		expiry = &t
	}

	notice, err := h.service.Post(c.Request().Context(), ports.PostNoticeInput{
		PostedBy:   session.AccountID,
		Title:      req.Title,
		Content:    req.Content,
		Priority:   req.Priority,
		ExpiryDate: expiry,
		Image:      req.Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, notice)
}

// Current handles GET /notices.
//
// @Summary      Current notices
// @Tags         notices
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  listResponse[domain.Notice]
// @Router       /notices [get]
func (h *NoticeHandler) Current(c echo.Context) error {
	notices, err := h.service.ListCurrent(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(notices))
}

// All handles GET /admin/notices, including inactive and expired ones.
//
// @Summary      All notices
// @Tags         notices
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  listResponse[domain.Notice]
// @Router       /admin/notices [get]
func (h *NoticeHandler) All(c echo.Context) error {
	notices, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(notices))
}

// Deactivate handles DELETE /admin/notices/:id.
//
// @Summary      Withdraw a notice
// @Tags         notices
// @Security     SessionCookie
// @Param        id   path  string  true  "Notice id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /admin/notices/{id} [delete]
func (h *NoticeHandler) Deactivate(c echo.Context) error {
	if err := h.service.Deactivate(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
