package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/esociety/society-api/internal/core/domain"
	"github.com/esociety/society-api/internal/core/ports"
)

type ComplaintService struct {
	complaints ports.ComplaintRepository
	residents  ports.ResidentRepository
	accounts   ports.AccountRepository
	log        zerolog.Logger
}

func NewComplaintService(complaints ports.ComplaintRepository, residents ports.ResidentRepository, accounts ports.AccountRepository, log zerolog.Logger) *ComplaintService {
	return &ComplaintService{complaints: complaints, residents: residents, accounts: accounts, log: log}
}

func (s *ComplaintService) Raise(ctx context.Context, in ports.RaiseComplaintInput) (*domain.Complaint, error) {
	verr := domain.NewValidationError()
	category := domain.ComplaintCategory(strings.ToUpper(in.Category))
	if !category.Valid() {
		verr.Add("category", "select a valid category")
	}
	if strings.TrimSpace(in.Title) == "" {
		verr.Add("title", "this field is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		verr.Add("description", "this field is required")
	}
	priority := in.Priority
	if priority == 0 {
		priority = domain.PriorityLow
	}
	if priority < domain.PriorityLow || priority > domain.PriorityHigh {
		verr.Add("priority", "must be between 1 and 3")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	resident, err := s.residents.FindByAccountID(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	complaint := &domain.Complaint{
		ID:          uuid.NewString(),
		RaisedBy:    resident.ID,
		Category:    category,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Status:      domain.ComplaintOpen,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, fmt.Errorf("raise complaint: %w", err)
	}

	s.log.Info().Str("complaint_id", complaint.ID).Str("category", string(category)).Msg("complaint raised")
	return complaint, nil
}

func (s *ComplaintService) ListResidentComplaints(ctx context.Context, accountID string) ([]*domain.Complaint, error) {
	resident, err := s.residents.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.complaints.List(ctx, ports.ComplaintFilter{RaisedBy: resident.ID})
}

func (s *ComplaintService) ListComplaints(ctx context.Context, filter ports.ComplaintFilter) ([]*domain.Complaint, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.FieldError("status", "select a valid complaint status")
	}
	return s.complaints.List(ctx, filter)
}

// Update moves a complaint along its transitions and/or assigns it.
// Entering RESOLVED stamps the resolved date.
func (s *ComplaintService) Update(ctx context.Context, in ports.UpdateComplaintInput) (*domain.Complaint, error) {
	complaint, err := s.complaints.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	expected := complaint.Status
	now := time.Now().UTC()

	if in.Status != "" {
		next := domain.ComplaintStatus(strings.ToUpper(in.Status))
		if !next.Valid() {
			return nil, domain.FieldError("status", "select a valid complaint status")
		}
		if next != complaint.Status {
			if !complaint.Status.CanTransitionTo(next) {
				return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, complaint.Status, next)
			}
			complaint.Status = next
			if next == domain.ComplaintResolved {
				complaint.ResolvedDate = &now
			}
		}
	}

	if in.AssignedTo != "" {
		assignee, err := s.accounts.FindByID(ctx, in.AssignedTo)
		if err != nil {
			return nil, err
		}
		if assignee.Role == domain.RoleResident {
			return nil, domain.FieldError("assigned_to", "complaints are assigned to staff accounts")
		}
		complaint.AssignedTo = assignee.ID
	}

	complaint.UpdatedAt = now
	if err := s.complaints.Update(ctx, complaint, expected); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("complaint_id", complaint.ID).
		Str("status", string(complaint.Status)).
		Str("assigned_to", complaint.AssignedTo).
		Msg("complaint updated")
	return complaint, nil
}
