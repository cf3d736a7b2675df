package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/esociety/society-api/internal/core/domain"
)

type NoticeRepository struct {
	col *mongo.Collection
}

func NewNoticeRepository(db *mongo.Database) *NoticeRepository {
	return &NoticeRepository{col: db.Collection(collectionNotices)}
}

func (r *NoticeRepository) Create(ctx context.Context, n *domain.Notice) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("insert notice: %w", err)
	}
	return nil
}

func (r *NoticeRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Notice, error) {
	q := bson.M{}
	if activeOnly {
		q["is_active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "posted_date", Value: -1}})
	return findAll[domain.Notice](ctx, r.col, q, opts)
}

func (r *NoticeRepository) SetActive(ctx context.Context, id string, active bool) error {
	return updateByID(ctx, r.col, id, bson.M{"$set": bson.M{"is_active": active}}, domain.ErrNoticeNotFound)
}
