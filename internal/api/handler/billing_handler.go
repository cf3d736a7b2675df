package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/esociety/society-api/internal/api/metrics"
	"github.com/esociety/society-api/internal/core/domain"
	"github.com/esociety/society-api/internal/core/ports"
)

// BillingHandler handles maintenance bills and payments.
type BillingHandler struct {
	service ports.BillingService
}

func NewBillingHandler(service ports.BillingService) *BillingHandler {
	return &BillingHandler{service: service}
}

// Create handles POST /admin/bills.
//
// @Summary      Raise a maintenance bill
// @Tags         bills
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      createBillRequest  true  "Bill details; billing_month is YYYY-MM"
// @Success      201   {object}  domain.MaintenanceBill
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/bills [post]
func (h *BillingHandler) Create(c echo.Context) error {
	var req createBillRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	month, err := parseTime("billing_month", req.BillingMonth, monthLayout)
	if err != nil {
		return err
	}

	bill, err := h.service.CreateBill(c.Request().Context(), ports.CreateBillInput{
		UnitID:       req.UnitID,
		BillingMonth: month,
		Amount:       req.Amount,
		Penalty:      req.Penalty,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, bill)
}

// List handles GET /admin/bills?status=&unit_id=.
//
// @Summary      List bills
// @Tags         bills
// @Produce      json
// @Security     SessionCookie
// @Param        status   query     string  false  "PENDING, PAID, OVERDUE or PARTIAL"
// @Param        unit_id  query     string  false  "Only bills of this unit"
// @Success      200      {object}  listResponse[domain.MaintenanceBill]
// @Failure      422      {object}  errorResponse
// @Router       /admin/bills [get]
func (h *BillingHandler) List(c echo.Context) error {
	bills, err := h.service.ListBills(c.Request().Context(), ports.BillFilter{
		UnitID: c.QueryParam("unit_id"),
		Status: domain.BillStatus(queryUpper(c, "status")),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(bills))
}

// UpdateStatus handles PATCH /admin/bills/:id.
//
// @Summary      Change a bill's status
// @Tags         bills
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string         true  "Bill id"
// @Param        body  body      statusRequest  true  "Target status"
// @Success      200   {object}  domain.MaintenanceBill
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/bills/{id} [patch]
func (h *BillingHandler) UpdateStatus(c echo.Context) error {
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	bill, err := h.service.UpdateBillStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bill)
}

// ListTransactions handles GET /admin/transactions?resident_id=&limit=.
//
// @Summary      List transactions
// @Tags         bills
// @Produce      json
// @Security     SessionCookie
// @Param        resident_id  query     string  false  "Only this resident's payments"
// @Param        limit        query     int     false  "Maximum results (default 100)"
// @Success      200          {object}  listResponse[domain.Transaction]
// @Router       /admin/transactions [get]
func (h *BillingHandler) ListTransactions(c echo.Context) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	txs, err := h.service.ListTransactions(c.Request().Context(), ports.TransactionFilter{
		ResidentID: c.QueryParam("resident_id"),
		Limit:      limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(txs))
}

// MyBills handles GET /resident/bills.
//
// @Summary      Bills of the caller's unit
// @Tags         bills
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  listResponse[domain.MaintenanceBill]
// @Failure      404  {object}  errorResponse
// @Router       /resident/bills [get]
func (h *BillingHandler) MyBills(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	bills, err := h.service.ListResidentBills(c.Request().Context(), session.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(bills))
}

// Pay handles POST /resident/bills/:id/pay.
//
// @Summary      Pay a bill
// @Tags         bills
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string          true  "Bill id"
// @Param        body  body      payBillRequest  true  "Payment details"
// @Success      201   {object}  domain.Transaction
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /resident/bills/{id}/pay [post]
func (h *BillingHandler) Pay(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req payBillRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	tx, err := h.service.PayBill(c.Request().Context(), ports.PayBillInput{
		AccountID:   session.AccountID,
		BillID:      c.Param("id"),
		PaymentMode: req.PaymentMode,
		Remarks:     req.Remarks,
	})
	if err != nil {
		return err
	}
	metrics.BillPaymentsTotal.WithLabelValues(string(tx.PaymentMode)).Inc()
	return c.JSON(http.StatusCreated, tx)
}

// MyTransactions handles GET /resident/transactions.
//
// @Summary      Payments made by the caller
// @Tags         bills
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  listResponse[domain.Transaction]
// @Router       /resident/transactions [get]
func (h *BillingHandler) MyTransactions(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	txs, err := h.service.ListResidentTransactions(c.Request().Context(), session.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(txs))
}
