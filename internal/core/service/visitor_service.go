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

type VisitorService struct {
	visitors  ports.VisitorRepository
	units     ports.UnitRepository
	residents ports.ResidentRepository
	log       zerolog.Logger
}

func NewVisitorService(visitors ports.VisitorRepository, units ports.UnitRepository, residents ports.ResidentRepository, log zerolog.Logger) *VisitorService {
	return &VisitorService{visitors: visitors, units: units, residents: residents, log: log}
}

// CheckIn logs a visitor entering the premises. A named host must live in
// the visited unit.
func (s *VisitorService) CheckIn(ctx context.Context, in ports.CheckInInput) (*domain.Visitor, error) {
	verr := domain.NewValidationError()
	if strings.TrimSpace(in.Name) == "" {
		verr.Add("name", "this field is required")
	}
	if strings.TrimSpace(in.Phone) == "" {
		verr.Add("phone", "this field is required")
	}
	if strings.TrimSpace(in.Purpose) == "" {
		verr.Add("purpose", "this field is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if _, err := s.units.FindByID(ctx, in.UnitID); err != nil {
		return nil, err
	}
	if in.HostID != "" {
		host, err := s.residents.FindByID(ctx, in.HostID)
		if err != nil {
			return nil, err
		}
		if host.UnitID != in.UnitID {
			return nil, domain.FieldError("host_id", "host does not live in the visited unit")
		}
	}

	visitor := &domain.Visitor{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(in.Name),
		Phone:      strings.TrimSpace(in.Phone),
		UnitID:     in.UnitID,
		HostID:     in.HostID,
		Purpose:    strings.TrimSpace(in.Purpose),
		Status:     domain.VisitorIn,
		InTime:     time.Now().UTC(),
		VehicleNo:  in.VehicleNo,
		LoggedByID: in.GuardID,
	}
	if err := s.visitors.Create(ctx, visitor); err != nil {
		return nil, fmt.Errorf("check in visitor: %w", err)
	}

	s.log.Info().Str("visitor_id", visitor.ID).Str("unit_id", visitor.UnitID).Msg("visitor checked in")
	return visitor, nil
}

func (s *VisitorService) CheckOut(ctx context.Context, id string) (*domain.Visitor, error) {
	visitor, err := s.visitors.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if visitor.Status == domain.VisitorOut {
		return nil, domain.ErrVisitorAlreadyOut
	}

	now := time.Now().UTC()
	if err := s.visitors.CheckOut(ctx, id, now); err != nil {
		return nil, err
	}
	visitor.Status = domain.VisitorOut
	visitor.OutTime = &now

	s.log.Info().Str("visitor_id", id).Msg("visitor checked out")
	return visitor, nil
}

func (s *VisitorService) ListVisitors(ctx context.Context, filter ports.VisitorFilter) ([]*domain.Visitor, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.FieldError("status", "select a valid visitor status")
	}
	return s.visitors.List(ctx, filter)
}

func (s *VisitorService) ListResidentVisitors(ctx context.Context, accountID string) ([]*domain.Visitor, error) {
	resident, err := s.residents.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.visitors.List(ctx, ports.VisitorFilter{UnitID: resident.UnitID})
}
