package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/esociety/society-api/internal/core/domain"
	"github.com/esociety/society-api/internal/core/ports"
)

// DashboardRepos groups the repositories the dashboards read from.
type DashboardRepos struct {
	Units      ports.UnitRepository
	Residents  ports.ResidentRepository
	Bills      ports.BillRepository
	Complaints ports.ComplaintRepository
	Visitors   ports.VisitorRepository
	Bookings   ports.BookingRepository
}

// DashboardService builds the per-role landing pages.
type DashboardService struct {
	repos   DashboardRepos
	notices *NoticeService
	now     func() time.Time
	log     zerolog.Logger
}

func NewDashboardService(repos DashboardRepos, notices *NoticeService, log zerolog.Logger) *DashboardService {
	return &DashboardService{repos: repos, notices: notices, now: time.Now, log: log}
}

func (s *DashboardService) Admin(ctx context.Context) (*ports.AdminDashboard, error) {
	var (
		d   ports.AdminDashboard
		err error
	)
	if d.UnitsTotal, d.UnitsOccupied, err = s.repos.Units.Stats(ctx); err != nil {
		return nil, fmt.Errorf("unit stats: %w", err)
	}
	if d.Residents, err = s.repos.Residents.Count(ctx); err != nil {
		return nil, fmt.Errorf("count residents: %w", err)
	}
	if d.PendingBills, err = s.repos.Bills.Count(ctx, ports.BillFilter{Status: domain.BillPending}); err != nil {
		return nil, fmt.Errorf("count pending bills: %w", err)
	}
	if d.OverdueBills, err = s.repos.Bills.Count(ctx, ports.BillFilter{Status: domain.BillOverdue}); err != nil {
		return nil, fmt.Errorf("count overdue bills: %w", err)
	}
	if d.OpenComplaints, err = s.repos.Complaints.Count(ctx, ports.ComplaintFilter{Open: true}); err != nil {
		return nil, fmt.Errorf("count complaints: %w", err)
	}
	if d.VisitorsInside, err = s.repos.Visitors.Count(ctx, ports.VisitorFilter{Status: domain.VisitorIn}); err != nil {
		return nil, fmt.Errorf("count visitors: %w", err)
	}
	return &d, nil
}

// Resident returns the dashboard of the resident owning accountID. An
// account without a resident profile gets domain.ErrResidentNotFound.
func (s *DashboardService) Resident(ctx context.Context, accountID string) (*ports.ResidentDashboard, error) {
	resident, err := s.repos.Residents.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	unit, err := s.repos.Units.FindByID(ctx, resident.UnitID)
	if err != nil {
		return nil, err
	}

	d := &ports.ResidentDashboard{Resident: resident, Unit: unit}
	bills, err := s.repos.Bills.List(ctx, ports.BillFilter{UnitID: unit.ID})
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	for _, b := range bills {
		if b.Status != domain.BillPaid {
			d.PendingBills = append(d.PendingBills, b)
		}
	}
	if d.OpenComplaints, err = s.repos.Complaints.List(ctx, ports.ComplaintFilter{RaisedBy: resident.ID, Open: true}); err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	if d.UpcomingBookings, err = s.repos.Bookings.List(ctx, ports.BookingFilter{
		ResidentID: resident.ID,
		From:       s.now().UTC(),
		Statuses:   holdingStatuses,
	}); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if d.Notices, err = s.notices.ListCurrent(ctx); err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	return d, nil
}

func (s *DashboardService) Guard(ctx context.Context) (*ports.GuardDashboard, error) {
	var (
		d   ports.GuardDashboard
		err error
	)
	if d.VisitorsInside, err = s.repos.Visitors.List(ctx, ports.VisitorFilter{Status: domain.VisitorIn}); err != nil {
		return nil, fmt.Errorf("list visitors: %w", err)
	}
	now := s.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d.CheckedInToday, err = s.repos.Visitors.Count(ctx, ports.VisitorFilter{Since: midnight}); err != nil {
		return nil, fmt.Errorf("count visitors: %w", err)
	}
	if d.Notices, err = s.notices.ListCurrent(ctx); err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	return &d, nil
}
