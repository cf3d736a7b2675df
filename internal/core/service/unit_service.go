package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/esociety/society-api/internal/core/domain"
	"github.com/esociety/society-api/internal/core/ports"
)

// UnitService manages units and the resident profiles living in them.
type UnitService struct {
	units     ports.UnitRepository
	residents ports.ResidentRepository
	accounts  ports.AccountRepository
	log       zerolog.Logger
}

func NewUnitService(units ports.UnitRepository, residents ports.ResidentRepository, accounts ports.AccountRepository, log zerolog.Logger) *UnitService {
	return &UnitService{units: units, residents: residents, accounts: accounts, log: log}
}

func (s *UnitService) CreateUnit(ctx context.Context, in ports.CreateUnitInput) (*domain.Unit, error) {
	verr := domain.NewValidationError()
	unitNo := strings.TrimSpace(in.UnitNo)
	if unitNo == "" {
		verr.Add("unit_no", "this field is required")
	}
	if strings.TrimSpace(in.Wing) == "" {
		verr.Add("wing", "this field is required")
	}
	unitType := domain.UnitType(strings.ToUpper(in.Type))
	if !unitType.Valid() {
		verr.Add("unit_type", "select a valid unit type")
	}
	if in.SqFt <= 0 {
		verr.Add("sq_ft", "must be greater than 0")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	unit := &domain.Unit{
		ID:        uuid.NewString(),
		UnitNo:    unitNo,
		Wing:      strings.TrimSpace(in.Wing),
		Floor:     in.Floor,
		Type:      unitType,
		SqFt:      in.SqFt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.units.Create(ctx, unit); err != nil {
		if errors.Is(err, domain.ErrDuplicateUnit) {
			return nil, err
		}
		return nil, fmt.Errorf("create unit: %w", err)
	}

	s.log.Info().Str("unit_id", unit.ID).Str("unit", unit.Label()).Msg("unit created")
	return unit, nil
}

func (s *UnitService) GetUnit(ctx context.Context, id string) (*domain.Unit, error) {
	return s.units.FindByID(ctx, id)
}

func (s *UnitService) ListUnits(ctx context.Context) ([]*domain.Unit, error) {
	return s.units.List(ctx)
}

// CreateResident links a RESIDENT account to a unit and marks the unit
// occupied. An account can hold a single profile.
func (s *UnitService) CreateResident(ctx context.Context, in ports.CreateResidentInput) (*domain.Resident, error) {
	verr := domain.NewValidationError()
	status := domain.ResidentStatus(strings.ToUpper(in.Status))
	if !status.Valid() {
		verr.Add("status", "select a valid resident status")
	}
	if in.MemberCount < 0 {
		verr.Add("member_count", "must not be negative")
	}
	if in.MoveInDate.IsZero() {
		verr.Add("move_in_date", "this field is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	account, err := s.accounts.FindByID(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}
	if account.Role != domain.RoleResident {
		return nil, domain.FieldError("account_id", "account must have the RESIDENT role")
	}
	if _, err := s.units.FindByID(ctx, in.UnitID); err != nil {
		return nil, err
	}

	memberCount := in.MemberCount
	if memberCount == 0 {
		memberCount = 1
	}
	resident := &domain.Resident{
		ID:               uuid.NewString(),
		AccountID:        account.ID,
		UnitID:           in.UnitID,
		Status:           status,
		VehicleNo:        in.VehicleNo,
		MemberCount:      memberCount,
		MoveInDate:       in.MoveInDate.UTC(),
		EmergencyContact: in.EmergencyContact,
		EmergencyPhone:   in.EmergencyPhone,
		Occupation:       in.Occupation,
	}
	if err := s.residents.Create(ctx, resident); err != nil {
		if errors.Is(err, domain.ErrResidentExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create resident: %w", err)
	}

	if err := s.units.SetOccupied(ctx, in.UnitID, true); err != nil {
		s.log.Warn().Err(err).Str("unit_id", in.UnitID).Msg("failed to mark unit occupied")
	}

	s.log.Info().Str("resident_id", resident.ID).Str("unit_id", resident.UnitID).Msg("resident registered")
	return resident, nil
}

func (s *UnitService) ListResidents(ctx context.Context, unitID string) ([]*domain.Resident, error) {
	return s.residents.List(ctx, unitID)
}
