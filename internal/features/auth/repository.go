package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/xyz-asif/gohotels/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// Repository handles database interactions for the auth feature
type Repository struct {
	collection *mongo.Collection
	cost       int
}

// NewRepository initializes the repository and creates necessary indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("users")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})

	return &Repository{collection: collection, cost: bcrypt.DefaultCost}
}

// Save inserts a new user or replaces an existing one. A pending password is
// hashed first; otherwise the stored hash is written back unchanged.
func (r *Repository) Save(ctx context.Context, user *User) error {
	if err := user.preparePassword(r.cost); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user.UpdatedAt = now

	if user.ID.IsZero() {
		user.CreatedAt = now

		result, err := r.collection.InsertOne(ctx, user)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return fmt.Errorf("user %s: %w", user.Email, apperrors.ErrDuplicate)
			}
			return err
		}

		if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
			user.ID = oid
		}
		return nil
	}

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("user %s: %w", user.Email, apperrors.ErrDuplicate)
		}
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", user.ID.Hex(), apperrors.ErrNotFound)
	}

	return nil
}

// FindByEmail finds a user by their email address
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByID finds a user by their MongoDB ID
func (r *Repository) GetByID(ctx context.Context, userID string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}

	var user User
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
