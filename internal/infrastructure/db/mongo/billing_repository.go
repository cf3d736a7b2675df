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

type BillRepository struct {
	col *mongo.Collection
}

func NewBillRepository(db *mongo.Database) *BillRepository {
	return &BillRepository{col: db.Collection(collectionBills)}
}

func (r *BillRepository) Create(ctx context.Context, b *domain.MaintenanceBill) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, b); err != nil {
		if duplicateOn(err, indexUniqueBill) {
			return domain.ErrDuplicateBill
		}
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

func (r *BillRepository) FindByID(ctx context.Context, id string) (*domain.MaintenanceBill, error) {
	return findOne[domain.MaintenanceBill](ctx, r.col, bson.M{"_id": id}, domain.ErrBillNotFound)
}

func billQuery(f ports.BillFilter) bson.M {
	q := bson.M{}
	if f.UnitID != "" {
		q["unit_id"] = f.UnitID
	}
	if f.Status != "" {
		q["status"] = string(f.Status)
	}
	return q
}

func (r *BillRepository) List(ctx context.Context, filter ports.BillFilter) ([]*domain.MaintenanceBill, error) {
	opts := options.Find().SetSort(bson.D{{Key: "billing_month", Value: -1}})
	return findAll[domain.MaintenanceBill](ctx, r.col, billQuery(filter), opts)
}

func (r *BillRepository) Count(ctx context.Context, filter ports.BillFilter) (int64, error) {
	return count(ctx, r.col, billQuery(filter))
}

func (r *BillRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BillStatus) error {
	update := bson.M{"$set": bson.M{"status": string(to), "updated_at": time.Now().UTC()}}
	return conditionalUpdate(ctx, r.col, id, bson.M{"status": string(from)}, update,
		domain.ErrBillNotFound, domain.ErrInvalidTransition)
}

// MarkPaid flips the bill to PAID only if it is not PAID already, so two
// concurrent payments cannot both succeed.
func (r *BillRepository) MarkPaid(ctx context.Context, id string, mode domain.PaymentMode, at time.Time) error {
	update := bson.M{"$set": bson.M{
		"status":       string(domain.BillPaid),
		"payment_mode": string(mode),
		"payment_date": at.UTC(),
		"updated_at":   at.UTC(),
	}}
	return conditionalUpdate(ctx, r.col, id, bson.M{"status": bson.M{"$ne": string(domain.BillPaid)}}, update,
		domain.ErrBillNotFound, domain.ErrBillAlreadyPaid)
}

func (r *BillRepository) RevertPaid(ctx context.Context, id string, prev domain.BillStatus) error {
	update := bson.M{
		"$set":   bson.M{"status": string(prev), "updated_at": time.Now().UTC()},
		"$unset": bson.M{"payment_mode": "", "payment_date": ""},
	}
	return conditionalUpdate(ctx, r.col, id, bson.M{"status": string(domain.BillPaid)}, update,
		domain.ErrBillNotFound, domain.ErrInvalidTransition)
}

type TransactionRepository struct {
	col *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{col: db.Collection(collectionTransactions)}
}

func (r *TransactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, t); err != nil {
		if duplicateOn(err, indexUniqueRef) {
			return domain.ErrDuplicateReference
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepository) List(ctx context.Context, filter ports.TransactionFilter) ([]*domain.Transaction, error) {
	q := bson.M{}
	if filter.ResidentID != "" {
		q["resident_id"] = filter.ResidentID
	}
	opts := options.Find().SetSort(bson.D{{Key: "transaction_date", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	return findAll[domain.Transaction](ctx, r.col, q, opts)
}
