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

type BlogRepository struct {
	col *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) *BlogRepository {
	return &BlogRepository{col: db.Collection("blogs")}
}

func (r *BlogRepository) Insert(ctx context.Context, b *models.Blog) (*mongo.InsertOneResult, error) {
	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	if b.Tags == nil {
		b.Tags = []string{}
	}
	return r.col.InsertOne(ctx, b)
}

// FindBySlug returns a published blog by its slug.
func (r *BlogRepository) FindBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	var b models.Blog
	if err := r.col.FindOne(ctx, bson.M{"slug": slug, "published": true}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// FindByIDOrSlug resolves a blog by ObjectID hex or by slug.
// Analytics callers address content either way.
func (r *BlogRepository) FindByIDOrSlug(ctx context.Context, idOrSlug string) (*models.Blog, error) {
	or := bson.A{bson.M{"slug": idOrSlug}}
	if oid, err := primitive.ObjectIDFromHex(idOrSlug); err == nil {
		or = append(or, bson.M{"_id": oid})
	}
	var b models.Blog
	if err := r.col.FindOne(ctx, bson.M{"$or": or}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// SlugExists reports whether any blog already uses the slug.
func (r *BlogRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"slug": slug})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListPublished returns published blogs, newest first.
func (r *BlogRepository) ListPublished(ctx context.Context, limit int64) ([]models.Blog, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cur, err := r.col.Find(ctx, bson.M{"published": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Blog
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListByAuthorID returns all blogs of one author regardless of published state.
func (r *BlogRepository) ListByAuthorID(ctx context.Context, authorID string) ([]models.Blog, error) {
	cur, err := r.col.Find(ctx, bson.M{"author_id": authorID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Blog
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListPublishedBetween returns published blogs created inside [start, end].
func (r *BlogRepository) ListPublishedBetween(ctx context.Context, start, end time.Time) ([]models.Blog, error) {
	filter := bson.M{
		"published":  true,
		"created_at": bson.M{"$gte": start, "$lte": end},
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Blog
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateBySlug applies the given field updates and returns the new document.
func (r *BlogRepository) UpdateBySlug(ctx context.Context, slug string, set bson.M) (*models.Blog, error) {
	set["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var b models.Blog
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"slug": slug}, bson.M{"$set": set}, opts).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BlogRepository) DeleteBySlug(ctx context.Context, slug string) error {
	var b models.Blog
	return r.col.FindOneAndDelete(ctx, bson.M{"slug": slug}).Decode(&b)
}
