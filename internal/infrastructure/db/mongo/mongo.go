package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Collection names.
const (
	collectionAccounts     = "accounts"
	collectionUnits        = "units"
	collectionResidents    = "residents"
	collectionBills        = "maintenance_bills"
	collectionTransactions = "transactions"
	collectionVisitors     = "visitors"
	collectionComplaints   = "complaints"
	collectionAmenities    = "amenities"
	collectionBookings     = "amenity_bookings"
	collectionNotices      = "notices"
)

// Unique index names. Repositories match duplicate-key errors against them.
const (
	indexUniqueEmail    = "uniq_email"
	indexUniqueUsername = "uniq_username"
	indexUniqueUnitNo   = "uniq_unit_no"
	indexUniqueBill     = "uniq_unit_month"
	indexUniqueRef      = "uniq_reference"
	indexUniqueResident = "uniq_resident_account"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// Ping checks that the server answers and the database accepts commands.
func Ping(ctx context.Context, db *mongo.Database) error {
	if err := db.Client().Ping(ctx, nil); err != nil {
		return err
	}
	return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// EnsureIndexes creates the indexes every repository relies on. The unique
// indexes are the source of truth for email, username, unit number,
// bill-per-month, payment reference and one-profile-per-account uniqueness.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := func(name string) *options.IndexOptions {
		return options.Index().SetName(name).SetUnique(true)
	}

	indexes := map[string][]mongo.IndexModel{
		collectionAccounts: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique(indexUniqueEmail)},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique(indexUniqueUsername)},
			{Keys: bson.D{{Key: "role", Value: 1}}},
		},
		collectionUnits: {
			{Keys: bson.D{{Key: "unit_no", Value: 1}}, Options: unique(indexUniqueUnitNo)},
		},
		collectionResidents: {
			{Keys: bson.D{{Key: "account_id", Value: 1}}, Options: unique(indexUniqueResident)},
			{Keys: bson.D{{Key: "unit_id", Value: 1}}},
		},
		collectionBills: {
			{Keys: bson.D{{Key: "unit_id", Value: 1}, {Key: "billing_month", Value: 1}}, Options: unique(indexUniqueBill)},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		collectionTransactions: {
			{Keys: bson.D{{Key: "reference_no", Value: 1}}, Options: unique(indexUniqueRef)},
			{Keys: bson.D{{Key: "resident_id", Value: 1}, {Key: "transaction_date", Value: -1}}},
		},
		collectionVisitors: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "in_time", Value: -1}}},
			{Keys: bson.D{{Key: "visit_unit_id", Value: 1}}},
		},
		collectionComplaints: {
			{Keys: bson.D{{Key: "raised_by", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		collectionBookings: {
			{Keys: bson.D{{Key: "amenity_id", Value: 1}, {Key: "starts_at", Value: 1}}},
			{Keys: bson.D{{Key: "resident_id", Value: 1}}},
		},
		collectionNotices: {
			{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "posted_date", Value: -1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// duplicateOn reports whether err is a duplicate-key error raised by index.
func duplicateOn(err error, index string) bool {
	return mongo.IsDuplicateKeyError(err) && strings.Contains(err.Error(), index)
}

func findOne[T any](ctx context.Context, col *mongo.Collection, filter any, notFound error) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc T
	if err := col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, fmt.Errorf("find %s: %w", col.Name(), err)
	}
	return &doc, nil
}

func findAll[T any](ctx context.Context, col *mongo.Collection, filter any, opts ...*options.FindOptions) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", col.Name(), err)
	}
	out := make([]*T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", col.Name(), err)
	}
	return out, nil
}

func count(ctx context.Context, col *mongo.Collection, filter any) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", col.Name(), err)
	}
	return n, nil
}

// updateByID applies update to the document with id and returns notFound
// when nothing matched.
func updateByID(ctx context.Context, col *mongo.Collection, id string, update any, notFound error) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update %s: %w", col.Name(), err)
	}
	if res.MatchedCount == 0 {
		return notFound
	}
	return nil
}

// conditionalUpdate applies update when filter (which must include the id)
// matches. On a miss it returns notFound if the id does not exist, and
// conflict otherwise.
func conditionalUpdate(ctx context.Context, col *mongo.Collection, id string, filter bson.M, update any, notFound, conflict error) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter["_id"] = id
	res, err := col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update %s: %w", col.Name(), err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("count %s: %w", col.Name(), err)
	}
	if n == 0 {
		return notFound
	}
	return conflict
}
