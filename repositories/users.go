package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ai-edu-portal/models"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

func (r *UserRepository) Insert(ctx context.Context, u *models.User) (*mongo.InsertOneResult, error) {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return r.col.InsertOne(ctx, u)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpsertByProvider upserts an OAuth user identified by (provider, provider_sub)
// and returns the stored document.
func (r *UserRepository) UpsertByProvider(ctx context.Context, u *models.User) (*models.User, error) {
	now := time.Now()

	filter := bson.M{"provider": u.Provider, "provider_sub": u.ProviderSub}
	update := bson.M{
		"$setOnInsert": bson.M{
			"created_at":     now,
			"role":           models.RoleUser,
			"email_verified": now,
		},
		"$set": bson.M{
			"updated_at": now,
			"name":       u.Name,
			"email":      u.Email,
			"image":      u.Image,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved models.User
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// UpdatePasswordHash replaces the stored bcrypt hash for a user.
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id primitive.ObjectID, hash string) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"password_hash": hash, "updated_at": time.Now()},
	})
	return err
}
