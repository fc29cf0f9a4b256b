package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ai-edu-portal/models"
)

type UserInterestRepository struct {
	col *mongo.Collection
}

func NewUserInterestRepository(db *mongo.Database) *UserInterestRepository {
	return &UserInterestRepository{col: db.Collection("user_interests")}
}

func (r *UserInterestRepository) FindByUserID(ctx context.Context, userID string) (*models.UserInterest, error) {
	var u models.UserInterest
	if err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpsertByUserID upserts the interest profile keyed by user_id and returns
// the stored document.
func (r *UserInterestRepository) UpsertByUserID(ctx context.Context, u *models.UserInterest) (*models.UserInterest, error) {
	now := time.Now()
	if u.LastAnalyzed.IsZero() {
		u.LastAnalyzed = now
	}

	filter := bson.M{"user_id": u.UserID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"created_at": now,
		},
		"$set": bson.M{
			"updated_at":        now,
			"user_name":         u.UserName,
			"user_email":        u.UserEmail,
			"interests":         u.Interests,
			"reading_behavior":  u.ReadingBehavior,
			"sentiment_profile": u.SentimentProfile,
			"recommendations":   u.Recommendations,
			"analytics":         u.Analytics,
			"ai_insights":       u.AIInsights,
			"last_analyzed":     u.LastAnalyzed,
			"model_version":     u.ModelVersion,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved models.UserInterest
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return nil, err
	}
	return &saved, nil
}
