package handler

import (
	"time"

	"github.com/esociety/society-api/internal/core/domain"
)

// --- Auth forms ---

// Signup and login fields are validated by the auth service so the field
// messages match the password policy; they carry no validate tags.

type signupRequest struct {
	Email                string `json:"email"                 form:"email"`
	Password             string `json:"password"              form:"password"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation"`
	Role                 string `json:"role"                  form:"role"`
}

type loginRequest struct {
	Email    string `json:"email"    form:"email"`
	Password string `json:"password" form:"password"`
}

type formField struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Choices  []string `json:"choices,omitempty"`
}

// formResponse describes a form to the client, plus any one-shot notice
// carried over from the previous redirect.
type formResponse struct {
	Form   string      `json:"form"`
	Action string      `json:"action"`
	Fields []formField `json:"fields"`
	Notice string      `json:"notice,omitempty"`
}

type landingResponse struct {
	Name   string            `json:"name"`
	Links  map[string]string `json:"_links"`
	Notice string            `json:"notice,omitempty"`
}

// --- Units and residents ---

type createUnitRequest struct {
	UnitNo   string  `json:"unit_no"   validate:"required"`
	Wing     string  `json:"wing"      validate:"required"`
	Floor    int     `json:"floor"     validate:"gte=0"`
	UnitType string  `json:"unit_type" validate:"required"`
	SqFt     float64 `json:"sq_ft"     validate:"required,gt=0"`
}

type createResidentRequest struct {
	AccountID        string `json:"account_id"   validate:"required"`
	UnitID           string `json:"unit_id"      validate:"required"`
	Status           string `json:"status"       validate:"required"`
	VehicleNo        string `json:"vehicle_no"`
	MemberCount      int    `json:"member_count" validate:"gte=0"`
	MoveInDate       string `json:"move_in_date" validate:"required"` // YYYY-MM-DD
	EmergencyContact string `json:"emergency_contact"`
	EmergencyPhone   string `json:"emergency_phone"`
	Occupation       string `json:"occupation"`
}

// --- Billing ---

type createBillRequest struct {
	UnitID       string `json:"unit_id"       validate:"required"`
	BillingMonth string `json:"billing_month" validate:"required"` // YYYY-MM
	Amount       int64  `json:"amount"        validate:"required,gt=0"`
	Penalty      int64  `json:"penalty"       validate:"gte=0"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type payBillRequest struct {
	PaymentMode string `json:"payment_mode" validate:"required"`
	Remarks     string `json:"remarks"`
}

// --- Visitors ---

type checkInRequest struct {
	Name      string `json:"name"          validate:"required"`
	Phone     string `json:"phone"         validate:"required"`
	UnitID    string `json:"visit_unit_id" validate:"required"`
	HostID    string `json:"host_id"`
	Purpose   string `json:"purpose"       validate:"required"`
	VehicleNo string `json:"vehicle_no"`
}

// --- Complaints ---

type raiseComplaintRequest struct {
	Category    string `json:"category"    validate:"required"`
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	Priority    int    `json:"priority"    validate:"gte=0,max=3"`
}

type updateComplaintRequest struct {
	Status     string `json:"status"`
	AssignedTo string `json:"assigned_to"`
}

// --- Amenities ---

type createAmenityRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type availabilityRequest struct {
	Available *bool `json:"is_available" validate:"required"`
}

type bookAmenityRequest struct {
	StartsAt time.Time `json:"starts_at" validate:"required"`
	EndsAt   time.Time `json:"ends_at"   validate:"required"`
	Purpose  string    `json:"purpose"`
}

// --- Notices ---

type postNoticeRequest struct {
	Title      string `json:"title"   validate:"required"`
	Content    string `json:"content" validate:"required"`
	Priority   string `json:"priority"`
	ExpiryDate string `json:"expiry_date"` // YYYY-MM-DD, optional
	Image      string `json:"image"`
}

// --- Responses ---

// listResponse wraps every collection so the envelope can grow without
// breaking clients.
type listResponse[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

func newList[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Data: items, Count: len(items)}
}

type adminDashboardResponse struct {
	Role           domain.Role       `json:"role"`
	UnitsTotal     int64             `json:"units_total"`
	UnitsOccupied  int64             `json:"units_occupied"`
	Residents      int64             `json:"residents"`
	PendingBills   int64             `json:"pending_bills"`
	OverdueBills   int64             `json:"overdue_bills"`
	OpenComplaints int64             `json:"open_complaints"`
	VisitorsInside int64             `json:"visitors_inside"`
	Links          map[string]string `json:"_links"`
}

type residentDashboardResponse struct {
	Role             domain.Role              `json:"role"`
	Resident         *domain.Resident         `json:"resident,omitempty"`
	Unit             *domain.Unit             `json:"unit,omitempty"`
	PendingBills     []*domain.MaintenanceBill `json:"pending_bills"`
	OpenComplaints   []*domain.Complaint      `json:"open_complaints"`
	UpcomingBookings []*domain.AmenityBooking `json:"upcoming_bookings"`
	Notices          []*domain.Notice         `json:"notices"`
	Links            map[string]string        `json:"_links"`
}

type guardDashboardResponse struct {
	Role           domain.Role       `json:"role"`
	VisitorsInside []*domain.Visitor `json:"visitors_inside"`
	CheckedInToday int64             `json:"checked_in_today"`
	Notices        []*domain.Notice  `json:"notices"`
	Links          map[string]string `json:"_links"`
}
