package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/foodcort/foodcort/internal/core/domain"
)

const accountCollection = "users"

type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountCollection)}
}

// mongoAccount keeps the field spellings of the original users collection so
// existing documents remain readable.
type mongoAccount struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FullName     string             `bson:"fullName"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password,omitempty"`
	Mobile       string             `bson:"mobile"`
	Role         string             `bson:"role"`
	ResetOTP     string             `bson:"resetOtp,omitempty"`
	OTPVerified  bool               `bson:"isOtpVerified"`
	OTPExpires   time.Time          `bson:"otpExpires,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAccount{
		FullName:     account.FullName,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		Mobile:       account.Mobile,
		Role:         account.Role,
		CreatedAt:    account.CreatedAt,
		UpdatedAt:    account.UpdatedAt,
	}

	_, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	// fetch back to get ID
	return r.FindByEmail(ctx, account.Email)
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoAccount
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	var ma mongoAccount
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *AccountRepository) SetRecoveryOTP(ctx context.Context, email, code string, expires time.Time) error {
	return r.updateByEmail(ctx, email, bson.M{
		"$set": bson.M{
			"resetOtp":      code,
			"otpExpires":    expires,
			"isOtpVerified": false,
			"updatedAt":     time.Now().UTC(),
		},
	})
}

func (r *AccountRepository) MarkOTPVerified(ctx context.Context, email string) error {
	return r.updateByEmail(ctx, email, bson.M{
		"$set": bson.M{
			"isOtpVerified": true,
			"updatedAt":     time.Now().UTC(),
		},
	})
}

func (r *AccountRepository) ClearRecovery(ctx context.Context, email string) error {
	return r.updateByEmail(ctx, email, bson.M{
		"$unset": bson.M{"resetOtp": "", "otpExpires": ""},
		"$set":   bson.M{"isOtpVerified": false, "updatedAt": time.Now().UTC()},
	})
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	return r.updateByEmail(ctx, email, bson.M{
		"$unset": bson.M{"resetOtp": "", "otpExpires": ""},
		"$set": bson.M{
			"password":      passwordHash,
			"isOtpVerified": false,
			"updatedAt":     time.Now().UTC(),
		},
	})
}

func (r *AccountRepository) updateByEmail(ctx context.Context, email string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// EnsureIndexes creates the unique email index on the users collection.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (ma *mongoAccount) toDomain() *domain.Account {
	return &domain.Account{
		ID:           ma.ID.Hex(),
		FullName:     ma.FullName,
		Email:        ma.Email,
		PasswordHash: ma.PasswordHash,
		Mobile:       ma.Mobile,
		Role:         ma.Role,
		ResetOTP:     ma.ResetOTP,
		OTPVerified:  ma.OTPVerified,
		OTPExpires:   ma.OTPExpires,
		CreatedAt:    ma.CreatedAt,
		UpdatedAt:    ma.UpdatedAt,
	}
}
