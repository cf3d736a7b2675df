package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/esociety/society-api/internal/core/domain"
)

type UnitRepository struct {
	col *mongo.Collection
}

func NewUnitRepository(db *mongo.Database) *UnitRepository {
	return &UnitRepository{col: db.Collection(collectionUnits)}
}

func (r *UnitRepository) Create(ctx context.Context, u *domain.Unit) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, u); err != nil {
		if duplicateOn(err, indexUniqueUnitNo) {
			return domain.ErrDuplicateUnit
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

func (r *UnitRepository) FindByID(ctx context.Context, id string) (*domain.Unit, error) {
	return findOne[domain.Unit](ctx, r.col, bson.M{"_id": id}, domain.ErrUnitNotFound)
}

func (r *UnitRepository) List(ctx context.Context) ([]*domain.Unit, error) {
	opts := options.Find().SetSort(bson.D{{Key: "wing", Value: 1}, {Key: "unit_no", Value: 1}})
	return findAll[domain.Unit](ctx, r.col, bson.M{}, opts)
}

func (r *UnitRepository) SetOccupied(ctx context.Context, id string, occupied bool) error {
	update := bson.M{"$set": bson.M{"is_occupied": occupied, "updated_at": time.Now().UTC()}}
	return updateByID(ctx, r.col, id, update, domain.ErrUnitNotFound)
}

func (r *UnitRepository) Stats(ctx context.Context) (int64, int64, error) {
	total, err := count(ctx, r.col, bson.M{})
	if err != nil {
		return 0, 0, err
	}
	occupied, err := count(ctx, r.col, bson.M{"is_occupied": true})
	if err != nil {
		return 0, 0, err
	}
	return total, occupied, nil
}

type ResidentRepository struct {
	col *mongo.Collection
}

func NewResidentRepository(db *mongo.Database) *ResidentRepository {
	return &ResidentRepository{col: db.Collection(collectionResidents)}
}

func (r *ResidentRepository) Create(ctx context.Context, res *domain.Resident) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, res); err != nil {
		if duplicateOn(err, indexUniqueResident) {
			return domain.ErrResidentExists
		}
		return fmt.Errorf("insert resident: %w", err)
	}
	return nil
}

func (r *ResidentRepository) FindByID(ctx context.Context, id string) (*domain.Resident, error) {
	return findOne[domain.Resident](ctx, r.col, bson.M{"_id": id}, domain.ErrResidentNotFound)
}

func (r *ResidentRepository) FindByAccountID(ctx context.Context, accountID string) (*domain.Resident, error) {
	return findOne[domain.Resident](ctx, r.col, bson.M{"account_id": accountID}, domain.ErrResidentNotFound)
}

func (r *ResidentRepository) List(ctx context.Context, unitID string) ([]*domain.Resident, error) {
	filter := bson.M{}
	if unitID != "" {
		filter["unit_id"] = unitID
	}
	opts := options.Find().SetSort(bson.D{{Key: "move_in_date", Value: -1}})
	return findAll[domain.Resident](ctx, r.col, filter, opts)
}

func (r *ResidentRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.col, bson.M{})
}
