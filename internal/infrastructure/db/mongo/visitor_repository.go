package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/esociety/society-api/internal/core/domain"
	"github.com/esociety/society-api/internal/core/ports"
)

type VisitorRepository struct {
	col *mongo.Collection
}

func NewVisitorRepository(db *mongo.Database) *VisitorRepository {
	return &VisitorRepository{col: db.Collection(collectionVisitors)}
}

func (r *VisitorRepository) Create(ctx context.Context, v *domain.Visitor) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, v); err != nil {
		return fmt.Errorf("insert visitor: %w", err)
	}
	return nil
}

func (r *VisitorRepository) FindByID(ctx context.Context, id string) (*domain.Visitor, error) {
	return findOne[domain.Visitor](ctx, r.col, bson.M{"_id": id}, domain.ErrVisitorNotFound)
}

func visitorQuery(f ports.VisitorFilter) bson.M {
	q := bson.M{}
	if f.UnitID != "" {
		q["visit_unit_id"] = f.UnitID
	}
	if f.Status != "" {
		q["status"] = string(f.Status)
	}
	if !f.Since.IsZero() {
		q["in_time"] = bson.M{"$gte": f.Since.UTC()}
	}
	return q
}

func (r *VisitorRepository) List(ctx context.Context, filter ports.VisitorFilter) ([]*domain.Visitor, error) {
	opts := options.Find().SetSort(bson.D{{Key: "in_time", Value: -1}})
	return findAll[domain.Visitor](ctx, r.col, visitorQuery(filter), opts)
}

func (r *VisitorRepository) Count(ctx context.Context, filter ports.VisitorFilter) (int64, error) {
	return count(ctx, r.col, visitorQuery(filter))
}

func (r *VisitorRepository) CheckOut(ctx context.Context, id string, at time.Time) error {
	update := bson.M{"$set": bson.M{"status": string(domain.VisitorOut), "out_time": at.UTC()}}
	return conditionalUpdate(ctx, r.col, id, bson.M{"status": string(domain.VisitorIn)}, update,
		domain.ErrVisitorNotFound, domain.ErrVisitorAlreadyOut)
}
