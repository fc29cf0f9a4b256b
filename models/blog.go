package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog represents a user-authored blog post
// Collection: blogs
// Slug is derived from the title and globally unique.
type Blog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Author    string             `bson:"author" json:"author"`
	AuthorID  string             `bson:"author_id" json:"author_id"`
	Tags      []string           `bson:"tags" json:"tags"`
	Published bool               `bson:"published" json:"published"`
	Slug      string             `bson:"slug" json:"slug"`
}
