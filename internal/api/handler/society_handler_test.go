package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/esociety/society-api/internal/api/metrics"
	"github.com/esociety/society-api/internal/core/domain"
	"github.com/esociety/society-api/internal/core/ports"
)

// Stub services embed the port so only the methods a test needs are defined.

type stubBillingService struct {
	ports.BillingService
	createFn func(ctx context.Context, in ports.CreateBillInput) (*domain.MaintenanceBill, error)
	payFn    func(ctx context.Context, in ports.PayBillInput) (*domain.Transaction, error)
	listFn   func(ctx context.Context, filter ports.BillFilter) ([]*domain.MaintenanceBill, error)
}

func (s *stubBillingService) CreateBill(ctx context.Context, in ports.CreateBillInput) (*domain.MaintenanceBill, error) {
	return s.createFn(ctx, in)
}

func (s *stubBillingService) PayBill(ctx context.Context, in ports.PayBillInput) (*domain.Transaction, error) {
	return s.payFn(ctx, in)
}

func (s *stubBillingService) ListBills(ctx context.Context, filter ports.BillFilter) ([]*domain.MaintenanceBill, error) {
	return s.listFn(ctx, filter)
}

type stubAmenityService struct {
	ports.AmenityService
	bookFn         func(ctx context.Context, in ports.BookAmenityInput) (*domain.AmenityBooking, error)
	listBookingsFn func(ctx context.Context, filter ports.BookingFilter) ([]*domain.AmenityBooking, error)
}

func (s *stubAmenityService) Book(ctx context.Context, in ports.BookAmenityInput) (*domain.AmenityBooking, error) {
	return s.bookFn(ctx, in)
}

func (s *stubAmenityService) ListBookings(ctx context.Context, filter ports.BookingFilter) ([]*domain.AmenityBooking, error) {
	return s.listBookingsFn(ctx, filter)
}

type stubNoticeService struct {
	ports.NoticeService
	postFn  func(ctx context.Context, in ports.PostNoticeInput) (*domain.Notice, error)
	current []*domain.Notice
}

func (s *stubNoticeService) Post(ctx context.Context, in ports.PostNoticeInput) (*domain.Notice, error) {
	return s.postFn(ctx, in)
}

func (s *stubNoticeService) ListCurrent(context.Context) ([]*domain.Notice, error) {
	return s.current, nil
}

type stubDashboardService struct {
	ports.DashboardService
	residentErr error
}

func (s *stubDashboardService) Resident(context.Context, string) (*ports.ResidentDashboard, error) {
	return nil, s.residentErr
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func residentContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(req, rec)
	SetSession(c, &domain.Session{AccountID: "acc-res", Role: domain.RoleResident})
	return c
}

func TestBillingHandler_Create_ParsesMonth(t *testing.T) {
	e := newTestEcho()
	svc := &stubBillingService{
		createFn: func(_ context.Context, in ports.CreateBillInput) (*domain.MaintenanceBill, error) {
			want := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
			if !in.BillingMonth.Equal(want) || in.UnitID != "u1" || in.Amount != 250000 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.MaintenanceBill{ID: "b1", UnitID: in.UnitID, BillingMonth: in.BillingMonth, Amount: in.Amount, Status: domain.BillPending}, nil
		},
	}
	h := NewBillingHandler(svc)

	rec := httptest.NewRecorder()
	req := jsonRequest(http.MethodPost, "/admin/bills", `{"unit_id":"u1","billing_month":"2025-03","amount":250000}`)
	run(e, h.Create, e.NewContext(req, rec))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBillingHandler_Create_BadMonth(t *testing.T) {
	e := newTestEcho()
	h := NewBillingHandler(&stubBillingService{
		createFn: func(context.Context, ports.CreateBillInput) (*domain.MaintenanceBill, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	rec := httptest.NewRecorder()
	req := jsonRequest(http.MethodPost, "/admin/bills", `{"unit_id":"u1","billing_month":"March","amount":1}`)
	run(e, h.Create, e.NewContext(req, rec))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); len(resp.Fields["billing_month"]) == 0 {
		t.Fatalf("expected billing_month error, got %+v", resp)
	}
}

func TestBillingHandler_List_EmptyIsArray(t *testing.T) {
	e := newTestEcho()
	h := NewBillingHandler(&stubBillingService{
		listFn: func(_ context.Context, filter ports.BillFilter) ([]*domain.MaintenanceBill, error) {
			if filter.Status != domain.BillOverdue {
				t.Fatalf("expected status filter to be upper-cased, got %q", filter.Status)
			}
			return nil, nil
		},
	})

	rec := httptest.NewRecorder()
	run(e, h.List, e.NewContext(httptest.NewRequest(http.MethodGet, "/admin/bills?status=overdue", nil), rec))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"data":[],"count":0}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestBillingHandler_Pay(t *testing.T) {
	e := newTestEcho()
	h := NewBillingHandler(&stubBillingService{
		payFn: func(_ context.Context, in ports.PayBillInput) (*domain.Transaction, error) {
			if in.AccountID != "acc-res" || in.BillID != "b1" || in.PaymentMode != "UPI" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Transaction{ID: "t1", BillID: "b1", PaymentMode: domain.PayUPI, ReferenceNo: "TXN-1"}, nil
		},
	})
	before := testutil.ToFloat64(metrics.BillPaymentsTotal.WithLabelValues("UPI"))

	rec := httptest.NewRecorder()
	c := residentContext(e, jsonRequest(http.MethodPost, "/resident/bills/b1/pay", `{"payment_mode":"UPI"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("b1")
	run(e, h.Pay, c)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var tx domain.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &tx); err != nil || tx.ReferenceNo != "TXN-1" {
		t.Fatalf("unexpected transaction %s (%v)", rec.Body.String(), err)
	}
	if after := testutil.ToFloat64(metrics.BillPaymentsTotal.WithLabelValues("UPI")); after != before+1 {
		t.Fatalf("expected payment metric to increase")
	}
}

func TestBillingHandler_Pay_AlreadyPaid(t *testing.T) {
	e := newTestEcho()
	h := NewBillingHandler(&stubBillingService{
		payFn: func(context.Context, ports.PayBillInput) (*domain.Transaction, error) {
			return nil, domain.ErrBillAlreadyPaid
		},
	})

	rec := httptest.NewRecorder()
	c := residentContext(e, jsonRequest(http.MethodPost, "/resident/bills/b1/pay", `{"payment_mode":"CASH"}`), rec)
	run(e, h.Pay, c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestBillingHandler_Pay_RequiresSession(t *testing.T) {
	e := newTestEcho()
	h := NewBillingHandler(&stubBillingService{})

	rec := httptest.NewRecorder()
	run(e, h.Pay, e.NewContext(jsonRequest(http.MethodPost, "/resident/bills/b1/pay", `{"payment_mode":"CASH"}`), rec))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAmenityHandler_Book_Conflict(t *testing.T) {
	e := newTestEcho()
	h := NewAmenityHandler(&stubAmenityService{
		bookFn: func(_ context.Context, in ports.BookAmenityInput) (*domain.AmenityBooking, error) {
			if in.AmenityID != "pool" || in.EndsAt.Sub(in.StartsAt) != time.Hour {
				t.Fatalf("unexpected input: %+v", in)
			}
			return nil, domain.ErrBookingConflict
		},
	})

	rec := httptest.NewRecorder()
	body := `{"starts_at":"2030-05-01T10:00:00Z","ends_at":"2030-05-01T11:00:00Z"}`
	c := residentContext(e, jsonRequest(http.MethodPost, "/resident/amenities/pool/bookings", body), rec)
	c.SetParamNames("id")
	c.SetParamValues("pool")
	run(e, h.Book, c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAmenityHandler_ListBookings_StatusFilter(t *testing.T) {
	e := newTestEcho()
	h := NewAmenityHandler(&stubAmenityService{
		listBookingsFn: func(_ context.Context, filter ports.BookingFilter) ([]*domain.AmenityBooking, error) {
			if len(filter.Statuses) != 1 || filter.Statuses[0] != domain.BookingConfirmed {
				t.Fatalf("unexpected filter: %+v", filter)
			}
			return []*domain.AmenityBooking{{ID: "bk1"}}, nil
		},
	})

	rec := httptest.NewRecorder()
	run(e, h.ListBookings, e.NewContext(httptest.NewRequest(http.MethodGet, "/admin/bookings?status=confirmed", nil), rec))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	run(e, h.ListBookings, e.NewContext(httptest.NewRequest(http.MethodGet, "/admin/bookings?status=maybe", nil), rec))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown status, got %d", rec.Code)
	}
}

func TestNoticeHandler_Post_ExpiryDate(t *testing.T) {
	e := newTestEcho()
	h := NewNoticeHandler(&stubNoticeService{
		postFn: func(_ context.Context, in ports.PostNoticeInput) (*domain.Notice, error) {
			if in.ExpiryDate == nil || in.ExpiryDate.Format(dateLayout) != "2030-01-31" || in.PostedBy != "acc-admin" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Notice{ID: "n1", Title: in.Title, IsActive: true}, nil
		},
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/admin/notices", `{"title":"Water","content":"Tank cleaning","expiry_date":"2030-01-31"}`), rec)
	SetSession(c, &domain.Session{AccountID: "acc-admin", Role: domain.RoleAdmin})
	run(e, h.Post, c)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDashboardHandler_Resident_WithoutProfile(t *testing.T) {
	e := newTestEcho()
	notices := &stubNoticeService{current: []*domain.Notice{{ID: "n1", Title: "AGM", IsActive: true}}}
	h := NewDashboardHandler(&stubDashboardService{residentErr: domain.ErrResidentNotFound}, notices)

	rec := httptest.NewRecorder()
	run(e, h.Resident, residentContext(e, httptest.NewRequest(http.MethodGet, "/resident/", nil), rec))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp residentDashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Resident != nil || len(resp.Notices) != 1 || resp.Role != domain.RoleResident {
		t.Fatalf("unexpected dashboard: %+v", resp)
	}
}

func TestDashboardHandler_Resident_Failure(t *testing.T) {
	e := newTestEcho()
	h := NewDashboardHandler(&stubDashboardService{residentErr: errors.New("mongo down")}, &stubNoticeService{})

	rec := httptest.NewRecorder()
	run(e, h.Resident, residentContext(e, httptest.NewRequest(http.MethodGet, "/resident/", nil), rec))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	e := newTestEcho()
	ok := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("connection refused") })

	rec := httptest.NewRecorder()
	h := NewHealthHandler(map[string]Pinger{"mongodb": ok, "redis": ok})
	run(e, h.Readiness, e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h = NewHealthHandler(map[string]Pinger{"mongodb": ok, "redis": down})
	run(e, h.Readiness, e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "degraded" || resp.Dependencies["redis"].Status != "unhealthy" || resp.Dependencies["mongodb"].Status != "ok" {
		t.Fatalf("unexpected readiness: %+v", resp)
	}
}
