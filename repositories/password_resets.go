package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"ai-edu-portal/models"
)

type PasswordResetRepository struct {
	col *mongo.Collection
}

func NewPasswordResetRepository(db *mongo.Database) *PasswordResetRepository {
	return &PasswordResetRepository{col: db.Collection("password_resets")}
}

func (r *PasswordResetRepository) Insert(ctx context.Context, p *models.PasswordReset) (*mongo.InsertOneResult, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	return r.col.InsertOne(ctx, p)
}

// FindValidByToken returns an unused, unexpired reset entry for the token.
func (r *PasswordResetRepository) FindValidByToken(ctx context.Context, token string) (*models.PasswordReset, error) {
	filter := bson.M{
		"token":      token,
		"used":       false,
		"expires_at": bson.M{"$gt": time.Now()},
	}
	var p models.PasswordReset
	if err := r.col.FindOne(ctx, filter).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkUsed invalidates a reset token after a successful password change.
func (r *PasswordResetRepository) MarkUsed(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"used": true}})
	return err
}
