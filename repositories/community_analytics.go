package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ai-edu-portal/models"
)

type CommunityAnalyticsRepository struct {
	col *mongo.Collection
}

func NewCommunityAnalyticsRepository(db *mongo.Database) *CommunityAnalyticsRepository {
	return &CommunityAnalyticsRepository{col: db.Collection("community_analytics")}
}

// Insert appends a new report. Community analytics are never updated in
// place; each generation produces its own document.
func (r *CommunityAnalyticsRepository) Insert(ctx context.Context, a *models.CommunityAnalytics) (*mongo.InsertOneResult, error) {
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	if a.GeneratedAt.IsZero() {
		a.GeneratedAt = now
	}
	return r.col.InsertOne(ctx, a)
}

// ListByPeriod returns the most recent reports for a period, newest first.
func (r *CommunityAnalyticsRepository) ListByPeriod(ctx context.Context, period string, limit int64) ([]models.CommunityAnalytics, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "generated_at", Value: -1}}).
		SetLimit(limit)
	cur, err := r.col.Find(ctx, bson.M{"period": period}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.CommunityAnalytics
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
