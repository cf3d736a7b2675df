package service

import (
	"context"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/esociety/society-api/internal/core/domain"
	"github.com/esociety/society-api/internal/core/ports"
)

var nopLog = zerolog.Nop()

// ---------------------------------------------------------------------------
// Accounts and sessions
// ---------------------------------------------------------------------------

// stubAccountRepo enforces email and username uniqueness atomically, like the
// unique indexes of the real store.
type stubAccountRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Account
	createErr error
	touchErr  error
	creates   int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{byID: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.byID {
		if existing.Email == a.Email {
			return nil, domain.ErrDuplicateEmail
		}
		if existing.Username == a.Username {
			return nil, domain.ErrUsernameConflict
		}
	}
	stored := cloneAccount(a)
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.byID[stored.ID] = stored
	return cloneAccount(stored), nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) UsernamesWithPrefix(_ context.Context, base string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	re := regexp.MustCompile("^" + regexp.QuoteMeta(base) + `\d*$`)
	var names []string
	for _, a := range r.byID {
		if re.MatchString(a.Username) {
			names = append(names, a.Username)
		}
	}
	return names, nil
}

func (r *stubAccountRepo) List(_ context.Context, f ports.ListAccountsFilter) ([]*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Account
	for _, a := range r.byID {
		if f.Role != "" && a.Role != f.Role {
			continue
		}
		out = append(out, cloneAccount(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *stubAccountRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.touchErr != nil {
		return r.touchErr
	}
	if a, ok := r.byID[id]; ok {
		a.LastLoginAt = &at
		return nil
	}
	return domain.ErrAccountNotFound
}

func (r *stubAccountRepo) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.ActiveResident = active
	return nil
}

// put stores a ready-made account, bypassing signup.
func (r *stubAccountRepo) put(a *domain.Account) *domain.Account {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	r.byID[a.ID] = cloneAccount(a)
	return a
}

type stubSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Create(_ context.Context, a *domain.Account) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		AccountID: a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	session.Token = "token-" + session.ID
	s.sessions[session.Token] = session
	clone := *session
	return &clone, nil
}

func (s *stubSessionStore) Get(_ context.Context, token string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *session
	return &clone, nil
}

func (s *stubSessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// ---------------------------------------------------------------------------
// Society records
// ---------------------------------------------------------------------------

type stubUnitRepo struct {
	mu    sync.Mutex
	units map[string]*domain.Unit
}

func newStubUnitRepo() *stubUnitRepo {
	return &stubUnitRepo{units: make(map[string]*domain.Unit)}
}

func (r *stubUnitRepo) Create(_ context.Context, u *domain.Unit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.units {
		if existing.UnitNo == u.UnitNo {
			return domain.ErrDuplicateUnit
		}
	}
	clone := *u
	r.units[u.ID] = &clone
	return nil
}

func (r *stubUnitRepo) FindByID(_ context.Context, id string) (*domain.Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.units[id]
	if !ok {
		return nil, domain.ErrUnitNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUnitRepo) List(_ context.Context) ([]*domain.Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Unit, 0, len(r.units))
	for _, u := range r.units {
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UnitNo < out[j].UnitNo })
	return out, nil
}

func (r *stubUnitRepo) SetOccupied(_ context.Context, id string, occupied bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.units[id]
	if !ok {
		return domain.ErrUnitNotFound
	}
	u.IsOccupied = occupied
	return nil
}

func (r *stubUnitRepo) Stats(_ context.Context) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var occupied int64
	for _, u := range r.units {
		if u.IsOccupied {
			occupied++
		}
	}
	return int64(len(r.units)), occupied, nil
}

type stubResidentRepo struct {
	mu        sync.Mutex
	residents map[string]*domain.Resident
}

func newStubResidentRepo() *stubResidentRepo {
	return &stubResidentRepo{residents: make(map[string]*domain.Resident)}
}

func (r *stubResidentRepo) Create(_ context.Context, res *domain.Resident) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.residents {
		if existing.AccountID == res.AccountID {
			return domain.ErrResidentExists
		}
	}
	clone := *res
	r.residents[res.ID] = &clone
	return nil
}

func (r *stubResidentRepo) FindByID(_ context.Context, id string) (*domain.Resident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.residents[id]
	if !ok {
		return nil, domain.ErrResidentNotFound
	}
	clone := *res
	return &clone, nil
}

func (r *stubResidentRepo) FindByAccountID(_ context.Context, accountID string) (*domain.Resident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.residents {
		if res.AccountID == accountID {
			clone := *res
			return &clone, nil
		}
	}
	return nil, domain.ErrResidentNotFound
}

func (r *stubResidentRepo) List(_ context.Context, unitID string) ([]*domain.Resident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Resident
	for _, res := range r.residents {
		if unitID != "" && res.UnitID != unitID {
			continue
		}
		clone := *res
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubResidentRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.residents)), nil
}

type stubBillRepo struct {
	mu    sync.Mutex
	bills map[string]*domain.MaintenanceBill
}

func newStubBillRepo() *stubBillRepo {
	return &stubBillRepo{bills: make(map[string]*domain.MaintenanceBill)}
}

func (r *stubBillRepo) Create(_ context.Context, b *domain.MaintenanceBill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.bills {
		if existing.UnitID == b.UnitID && existing.BillingMonth.Equal(b.BillingMonth) {
			return domain.ErrDuplicateBill
		}
	}
	clone := *b
	r.bills[b.ID] = &clone
	return nil
}

func (r *stubBillRepo) FindByID(_ context.Context, id string) (*domain.MaintenanceBill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bills[id]
	if !ok {
		return nil, domain.ErrBillNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBillRepo) match(b *domain.MaintenanceBill, f ports.BillFilter) bool {
	return (f.UnitID == "" || b.UnitID == f.UnitID) && (f.Status == "" || b.Status == f.Status)
}

func (r *stubBillRepo) List(_ context.Context, f ports.BillFilter) ([]*domain.MaintenanceBill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.MaintenanceBill
	for _, b := range r.bills {
		if r.match(b, f) {
			clone := *b
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BillingMonth.After(out[j].BillingMonth) })
	return out, nil
}

func (r *stubBillRepo) Count(_ context.Context, f ports.BillFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bills {
		if r.match(b, f) {
			n++
		}
	}
	return n, nil
}

func (r *stubBillRepo) UpdateStatus(_ context.Context, id string, from, to domain.BillStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bills[id]
	if !ok {
		return domain.ErrBillNotFound
	}
	if b.Status != from {
		return domain.ErrInvalidTransition
	}
	b.Status = to
	return nil
}

func (r *stubBillRepo) MarkPaid(_ context.Context, id string, mode domain.PaymentMode, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bills[id]
	if !ok {
		return domain.ErrBillNotFound
	}
	if b.Status == domain.BillPaid {
		return domain.ErrBillAlreadyPaid
	}
	b.Status = domain.BillPaid
	b.PaymentMode = string(mode)
	b.PaymentDate = &at
	return nil
}

func (r *stubBillRepo) RevertPaid(_ context.Context, id string, prev domain.BillStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bills[id]
	if !ok {
		return domain.ErrBillNotFound
	}
	if b.Status != domain.BillPaid {
		return domain.ErrInvalidTransition
	}
	b.Status = prev
	b.PaymentMode = ""
	b.PaymentDate = nil
	return nil
}

type stubTransactionRepo struct {
	mu  sync.Mutex
	txs []*domain.Transaction
	// createErr, when set, fails every Create.
	createErr error
}

func (r *stubTransactionRepo) Create(_ context.Context, t *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.txs {
		if existing.ReferenceNo == t.ReferenceNo {
			return domain.ErrDuplicateReference
		}
	}
	clone := *t
	r.txs = append(r.txs, &clone)
	return nil
}

func (r *stubTransactionRepo) List(_ context.Context, f ports.TransactionFilter) ([]*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Transaction
	for _, t := range r.txs {
		if f.ResidentID != "" && t.ResidentID != f.ResidentID {
			continue
		}
		clone := *t
		out = append(out, &clone)
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

type stubVisitorRepo struct {
	mu       sync.Mutex
	visitors map[string]*domain.Visitor
}

func newStubVisitorRepo() *stubVisitorRepo {
	return &stubVisitorRepo{visitors: make(map[string]*domain.Visitor)}
}

func (r *stubVisitorRepo) Create(_ context.Context, v *domain.Visitor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *v
	r.visitors[v.ID] = &clone
	return nil
}

func (r *stubVisitorRepo) FindByID(_ context.Context, id string) (*domain.Visitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.visitors[id]
	if !ok {
		return nil, domain.ErrVisitorNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *stubVisitorRepo) match(v *domain.Visitor, f ports.VisitorFilter) bool {
	return (f.UnitID == "" || v.UnitID == f.UnitID) &&
		(f.Status == "" || v.Status == f.Status) &&
		(f.Since.IsZero() || !v.InTime.Before(f.Since))
}

func (r *stubVisitorRepo) List(_ context.Context, f ports.VisitorFilter) ([]*domain.Visitor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Visitor
	for _, v := range r.visitors {
		if r.match(v, f) {
			clone := *v
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubVisitorRepo) Count(_ context.Context, f ports.VisitorFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, v := range r.visitors {
		if r.match(v, f) {
			n++
		}
	}
	return n, nil
}

func (r *stubVisitorRepo) CheckOut(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.visitors[id]
	if !ok {
		return domain.ErrVisitorNotFound
	}
	if v.Status == domain.VisitorOut {
		return domain.ErrVisitorAlreadyOut
	}
	v.Status = domain.VisitorOut
	v.OutTime = &at
	return nil
}

type stubComplaintRepo struct {
	mu         sync.Mutex
	complaints map[string]*domain.Complaint
}

func newStubComplaintRepo() *stubComplaintRepo {
	return &stubComplaintRepo{complaints: make(map[string]*domain.Complaint)}
}

func (r *stubComplaintRepo) Create(_ context.Context, c *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *c
	r.complaints[c.ID] = &clone
	return nil
}

func (r *stubComplaintRepo) FindByID(_ context.Context, id string) (*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.complaints[id]
	if !ok {
		return nil, domain.ErrComplaintNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubComplaintRepo) match(c *domain.Complaint, f ports.ComplaintFilter) bool {
	if f.RaisedBy != "" && c.RaisedBy != f.RaisedBy {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Open && (c.Status == domain.ComplaintResolved || c.Status == domain.ComplaintClosed) {
		return false
	}
	return true
}

func (r *stubComplaintRepo) List(_ context.Context, f ports.ComplaintFilter) ([]*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Complaint
	for _, c := range r.complaints {
		if r.match(c, f) {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubComplaintRepo) Count(_ context.Context, f ports.ComplaintFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.complaints {
		if r.match(c, f) {
			n++
		}
	}
	return n, nil
}

func (r *stubComplaintRepo) Update(_ context.Context, c *domain.Complaint, expected domain.ComplaintStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.complaints[c.ID]
	if !ok {
		return domain.ErrComplaintNotFound
	}
	if stored.Status != expected {
		return domain.ErrInvalidTransition
	}
	clone := *c
	r.complaints[c.ID] = &clone
	return nil
}

type stubAmenityRepo struct {
	mu        sync.Mutex
	amenities map[string]*domain.Amenity
}

func newStubAmenityRepo() *stubAmenityRepo {
	return &stubAmenityRepo{amenities: make(map[string]*domain.Amenity)}
}

func (r *stubAmenityRepo) Create(_ context.Context, a *domain.Amenity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *a
	r.amenities[a.ID] = &clone
	return nil
}

func (r *stubAmenityRepo) FindByID(_ context.Context, id string) (*domain.Amenity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.amenities[id]
	if !ok {
		return nil, domain.ErrAmenityNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAmenityRepo) List(_ context.Context, availableOnly bool) ([]*domain.Amenity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Amenity
	for _, a := range r.amenities {
		if availableOnly && !a.IsAvailable {
			continue
		}
		clone := *a
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubAmenityRepo) SetAvailable(_ context.Context, id string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.amenities[id]
	if !ok {
		return domain.ErrAmenityNotFound
	}
	a.IsAvailable = available
	return nil
}

type stubBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*domain.AmenityBooking
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{bookings: make(map[string]*domain.AmenityBooking)}
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.AmenityBooking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id string) (*domain.AmenityBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) List(_ context.Context, f ports.BookingFilter) ([]*domain.AmenityBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.AmenityBooking
	for _, b := range r.bookings {
		if f.ResidentID != "" && b.ResidentID != f.ResidentID {
			continue
		}
		if f.AmenityID != "" && b.AmenityID != f.AmenityID {
			continue
		}
		if !f.From.IsZero() && !b.EndsAt.After(f.From) {
			continue
		}
		if !f.To.IsZero() && !b.StartsAt.Before(f.To) {
			continue
		}
		if len(f.Statuses) > 0 && !containsStatus(f.Statuses, b.Status) {
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

func containsStatus(statuses []domain.BookingStatus, s domain.BookingStatus) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}

func (r *stubBookingRepo) UpdateStatus(_ context.Context, id string, from, to domain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	if b.Status != from {
		return domain.ErrInvalidTransition
	}
	b.Status = to
	return nil
}

type stubNoticeRepo struct {
	mu      sync.Mutex
	notices []*domain.Notice
}

func (r *stubNoticeRepo) Create(_ context.Context, n *domain.Notice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *n
	r.notices = append(r.notices, &clone)
	return nil
}

func (r *stubNoticeRepo) List(_ context.Context, activeOnly bool) ([]*domain.Notice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Notice
	for _, n := range r.notices {
		if activeOnly && !n.IsActive {
			continue
		}
		clone := *n
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubNoticeRepo) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notices {
		if n.ID == id {
			n.IsActive = active
			return nil
		}
	}
	return domain.ErrNoticeNotFound
}
