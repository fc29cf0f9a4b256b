package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"ai-edu-portal/models"
)

type AILogRepository struct {
	col *mongo.Collection
}

func NewAILogRepository(db *mongo.Database) *AILogRepository {
	return &AILogRepository{col: db.Collection("ai_logs")}
}

func (r *AILogRepository) Insert(ctx context.Context, doc models.AILog) (*mongo.InsertOneResult, error) {
	if doc.RequestedAt.IsZero() {
		doc.RequestedAt = time.Now()
	}
	if doc.CompletedAt.IsZero() {
		doc.CompletedAt = time.Now()
	}
	return r.col.InsertOne(ctx, doc)
}
