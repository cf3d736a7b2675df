package ports

import (
	"context"
	"time"

	"github.com/esociety/society-api/internal/core/domain"
)

// CreateUnitInput carries a new unit.
type CreateUnitInput struct {
	UnitNo string
	Wing   string
	Floor  int
	Type   string
	SqFt   float64
}

// CreateResidentInput links an account to a unit.
type CreateResidentInput struct {
	AccountID        string
	UnitID           string
	Status           string
	VehicleNo        string
	MemberCount      int
	MoveInDate       time.Time
	EmergencyContact string
	EmergencyPhone   string
	Occupation       string
}

type UnitService interface {
	CreateUnit(ctx context.Context, in CreateUnitInput) (*domain.Unit, error)
	GetUnit(ctx context.Context, id string) (*domain.Unit, error)
	ListUnits(ctx context.Context) ([]*domain.Unit, error)
	CreateResident(ctx context.Context, in CreateResidentInput) (*domain.Resident, error)
	ListResidents(ctx context.Context, unitID string) ([]*domain.Resident, error)
}

// CreateBillInput carries a new maintenance bill.
type CreateBillInput struct {
	UnitID       string
	BillingMonth time.Time
	Amount       int64
	Penalty      int64
}

// PayBillInput is a resident paying one of their unit's bills.
type PayBillInput struct {
	AccountID   string
	BillID      string
	PaymentMode string
	Remarks     string
}

type BillingService interface {
	CreateBill(ctx context.Context, in CreateBillInput) (*domain.MaintenanceBill, error)
	ListBills(ctx context.Context, filter BillFilter) ([]*domain.MaintenanceBill, error)
	UpdateBillStatus(ctx context.Context, id, status string) (*domain.MaintenanceBill, error)
	ListResidentBills(ctx context.Context, accountID string) ([]*domain.MaintenanceBill, error)
	PayBill(ctx context.Context, in PayBillInput) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]*domain.Transaction, error)
	ListResidentTransactions(ctx context.Context, accountID string) ([]*domain.Transaction, error)
}

// CheckInInput is a guard logging a visitor at the gate.
type CheckInInput struct {
	GuardID   string
	Name      string
	Phone     string
	UnitID    string
	HostID    string
	Purpose   string
	VehicleNo string
}

type VisitorService interface {
	CheckIn(ctx context.Context, in CheckInInput) (*domain.Visitor, error)
	CheckOut(ctx context.Context, id string) (*domain.Visitor, error)
	ListVisitors(ctx context.Context, filter VisitorFilter) ([]*domain.Visitor, error)
	ListResidentVisitors(ctx context.Context, accountID string) ([]*domain.Visitor, error)
}

// RaiseComplaintInput is a resident filing a complaint.
type RaiseComplaintInput struct {
	AccountID   string
	Category    string
	Title       string
	Description string
	Priority    int
}

// UpdateComplaintInput is an admin moving or assigning a complaint.
// Empty fields are left unchanged.
type UpdateComplaintInput struct {
	ID         string
	Status     string
	AssignedTo string
}

type ComplaintService interface {
	Raise(ctx context.Context, in RaiseComplaintInput) (*domain.Complaint, error)
	ListResidentComplaints(ctx context.Context, accountID string) ([]*domain.Complaint, error)
	ListComplaints(ctx context.Context, filter ComplaintFilter) ([]*domain.Complaint, error)
	Update(ctx context.Context, in UpdateComplaintInput) (*domain.Complaint, error)
}

// CreateAmenityInput carries a new amenity.
type CreateAmenityInput struct {
	Name        string
	Description string
	Image       string
}

// BookAmenityInput is a resident reserving an amenity.
type BookAmenityInput struct {
	AccountID string
	AmenityID string
	StartsAt  time.Time
	EndsAt    time.Time
	Purpose   string
}

type AmenityService interface {
	CreateAmenity(ctx context.Context, in CreateAmenityInput) (*domain.Amenity, error)
	ListAmenities(ctx context.Context, availableOnly bool) ([]*domain.Amenity, error)
	SetAvailability(ctx context.Context, id string, available bool) (*domain.Amenity, error)
	Book(ctx context.Context, in BookAmenityInput) (*domain.AmenityBooking, error)
	ListResidentBookings(ctx context.Context, accountID string) ([]*domain.AmenityBooking, error)
	ListBookings(ctx context.Context, filter BookingFilter) ([]*domain.AmenityBooking, error)
	UpdateBookingStatus(ctx context.Context, id, status string) (*domain.AmenityBooking, error)
}

// PostNoticeInput carries a new notice.
type PostNoticeInput struct {
	PostedBy   string
	Title      string
	Content    string
	Priority   string
	ExpiryDate *time.Time
	Image      string
}

type NoticeService interface {
	Post(ctx context.Context, in PostNoticeInput) (*domain.Notice, error)
	ListCurrent(ctx context.Context) ([]*domain.Notice, error)
	ListAll(ctx context.Context) ([]*domain.Notice, error)
	Deactivate(ctx context.Context, id string) error
}

// AdminDashboard summarises the society for administrators.
type AdminDashboard struct {
	UnitsTotal     int64
	UnitsOccupied  int64
	Residents      int64
	PendingBills   int64
	OverdueBills   int64
	OpenComplaints int64
	VisitorsInside int64
}

// ResidentDashboard is what a resident sees after login.
type ResidentDashboard struct {
	Resident         *domain.Resident
	Unit             *domain.Unit
	PendingBills     []*domain.MaintenanceBill
	OpenComplaints   []*domain.Complaint
	UpcomingBookings []*domain.AmenityBooking
	Notices          []*domain.Notice
}

// GuardDashboard is what a guard sees after login.
type GuardDashboard struct {
	VisitorsInside []*domain.Visitor
	CheckedInToday int64
	Notices        []*domain.Notice
}

type DashboardService interface {
	Admin(ctx context.Context) (*AdminDashboard, error)
	Resident(ctx context.Context, accountID string) (*ResidentDashboard, error)
	Guard(ctx context.Context) (*GuardDashboard, error)
}
