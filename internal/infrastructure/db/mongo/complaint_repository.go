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

type ComplaintRepository struct {
	col *mongo.Collection
}

func NewComplaintRepository(db *mongo.Database) *ComplaintRepository {
	return &ComplaintRepository{col: db.Collection(collectionComplaints)}
}

func (r *ComplaintRepository) Create(ctx context.Context, c *domain.Complaint) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert complaint: %w", err)
	}
	return nil
}

func (r *ComplaintRepository) FindByID(ctx context.Context, id string) (*domain.Complaint, error) {
	return findOne[domain.Complaint](ctx, r.col, bson.M{"_id": id}, domain.ErrComplaintNotFound)
}

func complaintQuery(f ports.ComplaintFilter) bson.M {
	q := bson.M{}
	if f.RaisedBy != "" {
		q["raised_by"] = f.RaisedBy
	}
	switch {
	case f.Status != "":
		q["status"] = string(f.Status)
	case f.Open:
		q["status"] = bson.M{"$nin": bson.A{string(domain.ComplaintResolved), string(domain.ComplaintClosed)}}
	}
	return q
}

func (r *ComplaintRepository) List(ctx context.Context, filter ports.ComplaintFilter) ([]*domain.Complaint, error) {
	opts := options.Find().SetSort(bson.D{{Key: "priority", Value: -1}, {Key: "created_at", Value: -1}})
	return findAll[domain.Complaint](ctx, r.col, complaintQuery(filter), opts)
}

func (r *ComplaintRepository) Count(ctx context.Context, filter ports.ComplaintFilter) (int64, error) {
	return count(ctx, r.col, complaintQuery(filter))
}

// Update replaces the complaint if nobody changed its status since it was read.
func (r *ComplaintRepository) Update(ctx context.Context, c *domain.Complaint, expected domain.ComplaintStatus) error {
	update := bson.M{"$set": bson.M{
		"status":        string(c.Status),
		"assigned_to":   c.AssignedTo,
		"resolved_date": c.ResolvedDate,
		"updated_at":    c.UpdatedAt.UTC(),
	}}
	return conditionalUpdate(ctx, r.col, c.ID, bson.M{"status": string(expected)}, update,
		domain.ErrComplaintNotFound, domain.ErrInvalidTransition)
}
