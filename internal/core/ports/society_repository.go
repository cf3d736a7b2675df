package ports

import (
	"context"
	"time"

	"github.com/esociety/society-api/internal/core/domain"
)

// UnitRepository persists units. Create returns domain.ErrDuplicateUnit when
// the unit number is taken.
type UnitRepository interface {
	Create(ctx context.Context, u *domain.Unit) error
	FindByID(ctx context.Context, id string) (*domain.Unit, error)
	List(ctx context.Context) ([]*domain.Unit, error)
	SetOccupied(ctx context.Context, id string, occupied bool) error
	// Stats returns the total and occupied unit counts.
	Stats(ctx context.Context) (total, occupied int64, err error)
}

// ResidentRepository persists resident profiles. Create returns
// domain.ErrResidentExists when the account already has a profile.
type ResidentRepository interface {
	Create(ctx context.Context, r *domain.Resident) error
	FindByID(ctx context.Context, id string) (*domain.Resident, error)
	FindByAccountID(ctx context.Context, accountID string) (*domain.Resident, error)
	// List returns residents, restricted to unitID when it is non-empty.
	List(ctx context.Context, unitID string) ([]*domain.Resident, error)
	Count(ctx context.Context) (int64, error)
}

// BillFilter narrows bill queries. Zero values mean no filter.
type BillFilter struct {
	UnitID string
	Status domain.BillStatus
}

// BillRepository persists maintenance bills. Create returns
// domain.ErrDuplicateBill when the unit already has a bill for the month.
type BillRepository interface {
	Create(ctx context.Context, b *domain.MaintenanceBill) error
	FindByID(ctx context.Context, id string) (*domain.MaintenanceBill, error)
	List(ctx context.Context, filter BillFilter) ([]*domain.MaintenanceBill, error)
	Count(ctx context.Context, filter BillFilter) (int64, error)
	// UpdateStatus moves the bill from `from` to `to`. It returns
	// domain.ErrInvalidTransition when the stored status is no longer `from`.
	UpdateStatus(ctx context.Context, id string, from, to domain.BillStatus) error
	// MarkPaid sets the bill PAID unless it already is; a bill that is
	// already PAID yields domain.ErrBillAlreadyPaid.
	MarkPaid(ctx context.Context, id string, mode domain.PaymentMode, at time.Time) error
	// RevertPaid undoes MarkPaid, restoring prev and clearing the payment
	// fields. It only applies while the bill is still PAID.
	RevertPaid(ctx context.Context, id string, prev domain.BillStatus) error
}

// TransactionFilter narrows transaction queries.
type TransactionFilter struct {
	ResidentID string
	Limit      int
}

// TransactionRepository persists payments. Create returns
// domain.ErrDuplicateReference when the reference number is reused.
type TransactionRepository interface {
	Create(ctx context.Context, t *domain.Transaction) error
	List(ctx context.Context, filter TransactionFilter) ([]*domain.Transaction, error)
}

// VisitorFilter narrows visitor queries.
type VisitorFilter struct {
	UnitID string
	Status domain.VisitorStatus
	Since  time.Time
}

type VisitorRepository interface {
	Create(ctx context.Context, v *domain.Visitor) error
	FindByID(ctx context.Context, id string) (*domain.Visitor, error)
	List(ctx context.Context, filter VisitorFilter) ([]*domain.Visitor, error)
	Count(ctx context.Context, filter VisitorFilter) (int64, error)
	// CheckOut marks an IN visitor OUT. A visitor already OUT yields
	// domain.ErrVisitorAlreadyOut.
	CheckOut(ctx context.Context, id string, at time.Time) error
}

// ComplaintFilter narrows complaint queries.
type ComplaintFilter struct {
	RaisedBy string
	Status   domain.ComplaintStatus
	// Open selects complaints that are neither RESOLVED nor CLOSED.
	Open bool
}

type ComplaintRepository interface {
	Create(ctx context.Context, c *domain.Complaint) error
	FindByID(ctx context.Context, id string) (*domain.Complaint, error)
	List(ctx context.Context, filter ComplaintFilter) ([]*domain.Complaint, error)
	Count(ctx context.Context, filter ComplaintFilter) (int64, error)
	// Update replaces the complaint if its stored status still equals
	// expected, otherwise it returns domain.ErrInvalidTransition.
	Update(ctx context.Context, c *domain.Complaint, expected domain.ComplaintStatus) error
}

type AmenityRepository interface {
	Create(ctx context.Context, a *domain.Amenity) error
	FindByID(ctx context.Context, id string) (*domain.Amenity, error)
	List(ctx context.Context, availableOnly bool) ([]*domain.Amenity, error)
	SetAvailable(ctx context.Context, id string, available bool) error
}

// BookingFilter narrows booking queries. From/To select bookings that
// overlap [From, To).
type BookingFilter struct {
	ResidentID string
	AmenityID  string
	From       time.Time
	To         time.Time
	Statuses   []domain.BookingStatus
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.AmenityBooking) error
	FindByID(ctx context.Context, id string) (*domain.AmenityBooking, error)
	List(ctx context.Context, filter BookingFilter) ([]*domain.AmenityBooking, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error
}

type NoticeRepository interface {
	Create(ctx context.Context, n *domain.Notice) error
	List(ctx context.Context, activeOnly bool) ([]*domain.Notice, error)
	SetActive(ctx context.Context, id string, active bool) error
}
