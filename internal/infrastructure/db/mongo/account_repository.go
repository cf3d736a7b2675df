package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/esociety/society-api/internal/core/domain"
	"github.com/esociety/society-api/internal/core/ports"
)

// AccountRepository implements ports.AccountRepository using MongoDB.
type AccountRepository struct {
	col *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{col: db.Collection(collectionAccounts)}
}

type mongoAccount struct {
	ID             string     `bson:"_id"`
	Email          string     `bson:"email"`
	Username       string     `bson:"username"`
	FirstName      string     `bson:"first_name"`
	LastName       string     `bson:"last_name"`
	Role           string     `bson:"role"`
	PasswordHash   string     `bson:"password_hash"`
	Phone          string     `bson:"phone,omitempty"`
	ProfileImage   string     `bson:"profile_image,omitempty"`
	DateOfBirth    *time.Time `bson:"date_of_birth,omitempty"`
	ActiveResident bool       `bson:"is_active_resident"`
	DateJoined     time.Time  `bson:"date_joined"`
	LastLogin      *time.Time `bson:"last_login,omitempty"`
}

func toMongoAccount(a *domain.Account) mongoAccount {
	return mongoAccount{
		ID:             a.ID,
		Email:          a.Email,
		Username:       a.Username,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		Role:           string(a.Role),
		PasswordHash:   a.PasswordHash,
		Phone:          a.Phone,
		ProfileImage:   a.ProfileImage,
		DateOfBirth:    a.DateOfBirth,
		ActiveResident: a.ActiveResident,
		DateJoined:     a.DateJoined.UTC(),
		LastLogin:      a.LastLoginAt,
	}
}

func (m *mongoAccount) toDomain() *domain.Account {
	return &domain.Account{
		ID:             m.ID,
		Email:          m.Email,
		Username:       m.Username,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Role:           domain.Role(m.Role),
		PasswordHash:   m.PasswordHash,
		Phone:          m.Phone,
		ProfileImage:   m.ProfileImage,
		DateOfBirth:    m.DateOfBirth,
		ActiveResident: m.ActiveResident,
		DateJoined:     m.DateJoined,
		LastLoginAt:    m.LastLogin,
	}
}

// Create inserts the account. Unique index violations map to
// domain.ErrDuplicateEmail and domain.ErrUsernameConflict.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoAccount(account)
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		switch {
		case duplicateOn(err, indexUniqueEmail):
			return nil, domain.ErrDuplicateEmail
		case duplicateOn(err, indexUniqueUsername):
			return nil, domain.ErrUsernameConflict
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	doc, err := findOne[mongoAccount](ctx, r.col, bson.M{"email": email}, domain.ErrAccountNotFound)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	doc, err := findOne[mongoAccount](ctx, r.col, bson.M{"_id": id}, domain.ErrAccountNotFound)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

// UsernamesWithPrefix returns the usernames equal to base or base followed
// by digits.
func (r *AccountRepository) UsernamesWithPrefix(ctx context.Context, base string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"username": bson.M{"$regex": usernamePattern(base)}}
	opts := options.Find().SetProjection(bson.M{"username": 1})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find usernames: %w", err)
	}
	var docs []struct {
		Username string `bson:"username"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode usernames: %w", err)
	}

	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.Username)
	}
	return names, nil
}

func usernamePattern(base string) string {
	return "^" + regexp.QuoteMeta(base) + `\d*$`
}

func (r *AccountRepository) List(ctx context.Context, filter ports.ListAccountsFilter) ([]*domain.Account, error) {
	query := bson.M{}
	if filter.Role != "" {
		query["role"] = string(filter.Role)
	}
	opts := options.Find().SetSort(bson.D{{Key: "date_joined", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	docs, err := findAll[mongoAccount](ctx, r.col, query, opts)
	if err != nil {
		return nil, err
	}
	accounts := make([]*domain.Account, 0, len(docs))
	for _, d := range docs {
		accounts = append(accounts, d.toDomain())
	}
	return accounts, nil
}

func (r *AccountRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return updateByID(ctx, r.col, id, bson.M{"$set": bson.M{"last_login": at.UTC()}}, domain.ErrAccountNotFound)
}

func (r *AccountRepository) SetActive(ctx context.Context, id string, active bool) error {
	return updateByID(ctx, r.col, id, bson.M{"$set": bson.M{"is_active_resident": active}}, domain.ErrAccountNotFound)
}
