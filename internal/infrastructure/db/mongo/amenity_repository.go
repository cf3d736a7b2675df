package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/esociety/society-api/internal/core/domain"
	"github.com/esociety/society-api/internal/core/ports"
)

type AmenityRepository struct {
	col *mongo.Collection
}

func NewAmenityRepository(db *mongo.Database) *AmenityRepository {
	return &AmenityRepository{col: db.Collection(collectionAmenities)}
}

func (r *AmenityRepository) Create(ctx context.Context, a *domain.Amenity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert amenity: %w", err)
	}
	return nil
}

func (r *AmenityRepository) FindByID(ctx context.Context, id string) (*domain.Amenity, error) {
	return findOne[domain.Amenity](ctx, r.col, bson.M{"_id": id}, domain.ErrAmenityNotFound)
}

func (r *AmenityRepository) List(ctx context.Context, availableOnly bool) ([]*domain.Amenity, error) {
	q := bson.M{}
	if availableOnly {
		q["is_available"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findAll[domain.Amenity](ctx, r.col, q, opts)
}

func (r *AmenityRepository) SetAvailable(ctx context.Context, id string, available bool) error {
	return updateByID(ctx, r.col, id, bson.M{"$set": bson.M{"is_available": available}}, domain.ErrAmenityNotFound)
}

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection(collectionBookings)}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.AmenityBooking) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*domain.AmenityBooking, error) {
	return findOne[domain.AmenityBooking](ctx, r.col, bson.M{"_id": id}, domain.ErrBookingNotFound)
}

// List returns bookings matching filter. From/To select bookings whose
// [starts_at, ends_at) range intersects [From, To).
func (r *BookingRepository) List(ctx context.Context, filter ports.BookingFilter) ([]*domain.AmenityBooking, error) {
	q := bson.M{}
	if filter.ResidentID != "" {
		q["resident_id"] = filter.ResidentID
	}
	if filter.AmenityID != "" {
		q["amenity_id"] = filter.AmenityID
	}
	if !filter.From.IsZero() {
		q["ends_at"] = bson.M{"$gt": filter.From.UTC()}
	}
	if !filter.To.IsZero() {
		q["starts_at"] = bson.M{"$lt": filter.To.UTC()}
	}
	if len(filter.Statuses) > 0 {
		statuses := make(bson.A, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		q["status"] = bson.M{"$in": statuses}
	}

	opts := options.Find().SetSort(bson.D{{Key: "starts_at", Value: 1}})
	return findAll[domain.AmenityBooking](ctx, r.col, q, opts)
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error {
	update := bson.M{"$set": bson.M{"status": string(to)}}
	return conditionalUpdate(ctx, r.col, id, bson.M{"status": string(from)}, update,
		domain.ErrBookingNotFound, domain.ErrInvalidTransition)
}
