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

// holdingStatuses are the booking statuses that reserve an amenity slot.
var holdingStatuses = []domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed}

type AmenityService struct {
	amenities ports.AmenityRepository
	bookings  ports.BookingRepository
	residents ports.ResidentRepository
	now       func() time.Time
	log       zerolog.Logger
}

func NewAmenityService(amenities ports.AmenityRepository, bookings ports.BookingRepository, residents ports.ResidentRepository, log zerolog.Logger) *AmenityService {
	return &AmenityService{
		amenities: amenities,
		bookings:  bookings,
		residents: residents,
		now:       time.Now,
		log:       log,
	}
}

func (s *AmenityService) CreateAmenity(ctx context.Context, in ports.CreateAmenityInput) (*domain.Amenity, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.FieldError("name", "this field is required")
	}

	amenity := &domain.Amenity{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		IsAvailable: true,
		Image:       in.Image,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.amenities.Create(ctx, amenity); err != nil {
		return nil, fmt.Errorf("create amenity: %w", err)
	}

	s.log.Info().Str("amenity_id", amenity.ID).Str("name", amenity.Name).Msg("amenity created")
	return amenity, nil
}

func (s *AmenityService) ListAmenities(ctx context.Context, availableOnly bool) ([]*domain.Amenity, error) {
	return s.amenities.List(ctx, availableOnly)
}

func (s *AmenityService) SetAvailability(ctx context.Context, id string, available bool) (*domain.Amenity, error) {
	amenity, err := s.amenities.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.amenities.SetAvailable(ctx, id, available); err != nil {
		return nil, err
	}
	amenity.IsAvailable = available
	return amenity, nil
}

// Book reserves an amenity for the resident. The slot must start in the
// future, end after it starts on the same day, and not overlap another
// pending or confirmed booking of the same amenity.
func (s *AmenityService) Book(ctx context.Context, in ports.BookAmenityInput) (*domain.AmenityBooking, error) {
	start, end := in.StartsAt.UTC(), in.EndsAt.UTC()

	verr := domain.NewValidationError()
	switch {
	case start.IsZero():
		verr.Add("starts_at", "this field is required")
	case !start.After(s.now()):
		verr.Add("starts_at", "must be in the future")
	}
	switch {
	case end.IsZero():
		verr.Add("ends_at", "this field is required")
	case !end.After(start):
		verr.Add("ends_at", "must be after the start time")
	case !sameDay(start, end):
		verr.Add("ends_at", "must be on the same day as the start time")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	resident, err := s.residents.FindByAccountID(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}
	amenity, err := s.amenities.FindByID(ctx, in.AmenityID)
	if err != nil {
		return nil, err
	}
	if !amenity.IsAvailable {
		return nil, domain.ErrAmenityUnavailable
	}

	clashes, err := s.bookings.List(ctx, ports.BookingFilter{
		AmenityID: amenity.ID,
		From:      start,
		To:        end,
		Statuses:  holdingStatuses,
	})
	if err != nil {
		return nil, fmt.Errorf("check booking overlap: %w", err)
	}
	for _, b := range clashes {
		if b.Status.Holds() && b.Overlaps(start, end) {
			return nil, domain.ErrBookingConflict
		}
	}

	booking := &domain.AmenityBooking{
		ID:         uuid.NewString(),
		ResidentID: resident.ID,
		AmenityID:  amenity.ID,
		StartsAt:   start,
		EndsAt:     end,
		Status:     domain.BookingPending,
		Purpose:    strings.TrimSpace(in.Purpose),
		CreatedAt:  s.now().UTC(),
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info().
		Str("booking_id", booking.ID).
		Str("amenity_id", amenity.ID).
		Time("starts_at", start).
		Msg("amenity booked")
	return booking, nil
}

func (s *AmenityService) ListResidentBookings(ctx context.Context, accountID string) ([]*domain.AmenityBooking, error) {
	resident, err := s.residents.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.bookings.List(ctx, ports.BookingFilter{ResidentID: resident.ID})
}

func (s *AmenityService) ListBookings(ctx context.Context, filter ports.BookingFilter) ([]*domain.AmenityBooking, error) {
	return s.bookings.List(ctx, filter)
}

func (s *AmenityService) UpdateBookingStatus(ctx context.Context, id, status string) (*domain.AmenityBooking, error) {
	next := domain.BookingStatus(strings.ToUpper(status))
	if !next.Valid() {
		return nil, domain.FieldError("status", "select a valid booking status")
	}

	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, booking.Status, next)
	}
	if err := s.bookings.UpdateStatus(ctx, id, booking.Status, next); err != nil {
		return nil, err
	}
	booking.Status = next

	s.log.Info().Str("booking_id", id).Str("status", string(next)).Msg("booking status updated")
	return booking, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
