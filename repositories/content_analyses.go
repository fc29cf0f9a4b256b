package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ai-edu-portal/models"
)

type ContentAnalysisRepository struct {
	col *mongo.Collection
}

func NewContentAnalysisRepository(db *mongo.Database) *ContentAnalysisRepository {
	return &ContentAnalysisRepository{col: db.Collection("content_analyses")}
}

// FindByContentID returns the analysis for a content id, if any.
func (r *ContentAnalysisRepository) FindByContentID(ctx context.Context, contentID string) (*models.ContentAnalysis, error) {
	var a models.ContentAnalysis
	if err := r.col.FindOne(ctx, bson.M{"content_id": contentID}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// UpsertByContentID upserts an analysis uniquely identified by
// (content_id, content_type). Recomputation replaces the prior body in
// place; created_at survives across refreshes.
func (r *ContentAnalysisRepository) UpsertByContentID(ctx context.Context, a *models.ContentAnalysis) (*models.ContentAnalysis, error) {
	now := time.Now()
	if a.ProcessedAt.IsZero() {
		a.ProcessedAt = now
	}

	filter := bson.M{"content_id": a.ContentID, "content_type": a.ContentType}
	update := bson.M{
		"$setOnInsert": bson.M{
			"created_at": now,
		},
		"$set": bson.M{
			"updated_at":           now,
			"title":                a.Title,
			"author":               a.Author,
			"author_id":            a.AuthorID,
			"summary":              a.Summary,
			"key_topics":           a.KeyTopics,
			"sentiment":            a.Sentiment,
			"complexity":           a.Complexity,
			"categories":           a.Categories,
			"extracted_concepts":   a.ExtractedConcepts,
			"word_count":           a.WordCount,
			"reading_time_minutes": a.ReadingTimeMinutes,
			"language_metrics":     a.LanguageMetrics,
			"ai_insights":          a.AIInsights,
			"processed_at":         a.ProcessedAt,
			"model_version":        a.ModelVersion,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved models.ContentAnalysis
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// ListByAuthorID returns all analyses of one author's content.
func (r *ContentAnalysisRepository) ListByAuthorID(ctx context.Context, authorID string) ([]models.ContentAnalysis, error) {
	cur, err := r.col.Find(ctx, bson.M{"author_id": authorID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.ContentAnalysis
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListProcessedBetween returns analyses processed inside [start, end].
func (r *ContentAnalysisRepository) ListProcessedBetween(ctx context.Context, start, end time.Time) ([]models.ContentAnalysis, error) {
	cur, err := r.col.Find(ctx, bson.M{"processed_at": bson.M{"$gte": start, "$lte": end}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.ContentAnalysis
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
