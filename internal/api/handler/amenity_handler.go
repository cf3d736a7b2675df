package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/esociety/society-api/internal/core/domain"
	"github.com/esociety/society-api/internal/core/ports"
)

// AmenityHandler handles amenities and their bookings.
type AmenityHandler struct {
	service ports.AmenityService
}

func NewAmenityHandler(service ports.AmenityService) *AmenityHandler {
	return &AmenityHandler{service: service}
}

// Create handles POST /admin/amenities.
//
// @Summary      Add an amenity
// @Tags         amenities
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      createAmenityRequest  true  "Amenity"
// @Success      201   {object}  domain.Amenity
// @Failure      422   {object}  errorResponse
// @Router       /admin/amenities [post]
func (h *AmenityHandler) Create(c echo.Context) error {
	var req createAmenityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	amenity, err := h.service.CreateAmenity(c.Request().Context(), ports.CreateAmenityInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, amenity)
}

// List handles GET /amenities?available=.
//
// @Summary      List amenities
// @Tags         amenities
// @Produce      json
// @Security     SessionCookie
// @Param        available  query     bool  false  "Only amenities open for booking"
// @Success      200        {object}  listResponse[domain.Amenity]
// @Router       /amenities [get]
func (h *AmenityHandler) List(c echo.Context) error {
	availableOnly, err := queryBool(c, "available")
	if err != nil {
		return err
	}
	amenities, err := h.service.ListAmenities(c.Request().Context(), availableOnly)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(amenities))
}

// SetAvailability handles PATCH /admin/amenities/:id.
//
// @Summary      Open or close an amenity for booking
// @Tags         amenities
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string               true  "Amenity id"
// @Param        body  body      availabilityRequest  true  "Availability"
// @Success      200   {object}  domain.Amenity
// @Failure      404   {object}  errorResponse
// @Router       /admin/amenities/{id} [patch]
func (h *AmenityHandler) SetAvailability(c echo.Context) error {
	var req availabilityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	amenity, err := h.service.SetAvailability(c.Request().Context(), c.Param("id"), *req.Available)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, amenity)
}

// Book handles POST /resident/amenities/:id/bookings.
//
// @Summary      Book an amenity
// @Tags         amenities
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string              true  "Amenity id"
// @Param        body  body      bookAmenityRequest  true  "Time range (RFC 3339), same day"
// @Success      201   {object}  domain.AmenityBooking
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /resident/amenities/{id}/bookings [post]
func (h *AmenityHandler) Book(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req bookAmenityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	booking, err := h.service.Book(c.Request().Context(), ports.BookAmenityInput{
		AccountID: session.AccountID,
		AmenityID: c.Param("id"),
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		Purpose:   req.Purpose,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, booking)
}

// MyBookings handles GET /resident/bookings.
//
// @Summary      Bookings made by the caller
// @Tags         amenities
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  listResponse[domain.AmenityBooking]
// @Router       /resident/bookings [get]
func (h *AmenityHandler) MyBookings(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	bookings, err := h.service.ListResidentBookings(c.Request().Context(), session.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(bookings))
}

// ListBookings handles GET /admin/bookings?amenity_id=&status=.
//
// @Summary      List bookings
// @Tags         amenities
// @Produce      json
// @Security     SessionCookie
// @Param        amenity_id  query     string  false  "Only bookings of this amenity"
// @Param        status      query     string  false  "PENDING, CONFIRMED, CANCELLED or COMPLETED"
// @Success      200         {object}  listResponse[domain.AmenityBooking]
// @Failure      422         {object}  errorResponse
// @Router       /admin/bookings [get]
func (h *AmenityHandler) ListBookings(c echo.Context) error {
	filter := ports.BookingFilter{AmenityID: c.QueryParam("amenity_id")}
	if raw := queryUpper(c, "status"); raw != "" {
		status := domain.BookingStatus(raw)
		if !status.Valid() {
			return domain.FieldError("status", "select a valid booking status")
		}
		filter.Statuses = []domain.BookingStatus{status}
	}

	bookings, err := h.service.ListBookings(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(bookings))
}

// UpdateBookingStatus handles PATCH /admin/bookings/:id.
//
// @Summary      Confirm, cancel or complete a booking
// @Tags         amenities
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string         true  "Booking id"
// @Param        body  body      statusRequest  true  "Target status"
// @Success      200   {object}  domain.AmenityBooking
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/bookings/{id} [patch]
func (h *AmenityHandler) UpdateBookingStatus(c echo.Context) error {
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	booking, err := h.service.UpdateBookingStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}
