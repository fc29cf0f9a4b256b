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

type PortfolioRepository struct {
	col *mongo.Collection
}

func NewPortfolioRepository(db *mongo.Database) *PortfolioRepository {
	return &PortfolioRepository{col: db.Collection("portfolios")}
}

func (r *PortfolioRepository) Insert(ctx context.Context, p *models.Portfolio) (*mongo.InsertOneResult, error) {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	return r.col.InsertOne(ctx, p)
}

// FindBySlug returns a published portfolio by its slug.
func (r *PortfolioRepository) FindBySlug(ctx context.Context, slug string) (*models.Portfolio, error) {
	var p models.Portfolio
	if err := r.col.FindOne(ctx, bson.M{"slug": slug, "published": true}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByIDOrSlug resolves a portfolio by ObjectID hex or by slug.
func (r *PortfolioRepository) FindByIDOrSlug(ctx context.Context, idOrSlug string) (*models.Portfolio, error) {
	or := bson.A{bson.M{"slug": idOrSlug}}
	if oid, err := primitive.ObjectIDFromHex(idOrSlug); err == nil {
		or = append(or, bson.M{"_id": oid})
	}
	var p models.Portfolio
	if err := r.col.FindOne(ctx, bson.M{"$or": or}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SlugExists reports whether any portfolio already uses the slug.
func (r *PortfolioRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"slug": slug})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListPublished returns published portfolios, featured first, then newest.
func (r *PortfolioRepository) ListPublished(ctx context.Context, limit int64) ([]models.Portfolio, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "featured", Value: -1}, {Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cur, err := r.col.Find(ctx, bson.M{"published": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Portfolio
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListByAuthorID returns all portfolios of one author.
func (r *PortfolioRepository) ListByAuthorID(ctx context.Context, authorID string) ([]models.Portfolio, error) {
	cur, err := r.col.Find(ctx, bson.M{"author_id": authorID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Portfolio
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListPublishedBetween returns published portfolios created inside [start, end].
func (r *PortfolioRepository) ListPublishedBetween(ctx context.Context, start, end time.Time) ([]models.Portfolio, error) {
	filter := bson.M{
		"published":  true,
		"created_at": bson.M{"$gte": start, "$lte": end},
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Portfolio
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateBySlug applies the given field updates and returns the new document.
func (r *PortfolioRepository) UpdateBySlug(ctx context.Context, slug string, set bson.M) (*models.Portfolio, error) {
	set["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Portfolio
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"slug": slug}, bson.M{"$set": set}, opts).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PortfolioRepository) DeleteBySlug(ctx context.Context, slug string) error {
	var p models.Portfolio
	return r.col.FindOneAndDelete(ctx, bson.M{"slug": slug}).Decode(&p)
}
