package domain

import "time"

// Amenity is a shared facility residents can reserve.
type Amenity struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	IsAvailable bool      `json:"is_available" bson:"is_available"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return canTransition(bookingTransitions, s, next)
}

// Holds reports whether a booking in status s still reserves its slot.
func (s BookingStatus) Holds() bool {
	return s == BookingPending || s == BookingConfirmed
}

// AmenityBooking reserves an amenity for a time range on one day.
type AmenityBooking struct {
	ID         string        `json:"id" bson:"_id"`
	ResidentID string        `json:"resident_id" bson:"resident_id"`
	AmenityID  string        `json:"amenity_id" bson:"amenity_id"`
	StartsAt   time.Time     `json:"starts_at" bson:"starts_at"`
	EndsAt     time.Time     `json:"ends_at" bson:"ends_at"`
	Status     BookingStatus `json:"status" bson:"status"`
	Purpose    string        `json:"purpose,omitempty" bson:"purpose,omitempty"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at"`
}

// Overlaps reports whether the half-open ranges [StartsAt, EndsAt) intersect.
func (b *AmenityBooking) Overlaps(start, end time.Time) bool {
	return b.StartsAt.Before(end) && start.Before(b.EndsAt)
}
