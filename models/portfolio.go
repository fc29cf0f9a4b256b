package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Portfolio represents a portfolio project entry
// Collection: portfolios
type Portfolio struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Content      string             `bson:"content" json:"content"`
	Author       string             `bson:"author" json:"author"`
	AuthorID     string             `bson:"author_id" json:"author_id"`
	Technologies []string           `bson:"technologies" json:"technologies"`
	ProjectURL   string             `bson:"project_url,omitempty" json:"project_url,omitempty"`
	GithubURL    string             `bson:"github_url,omitempty" json:"github_url,omitempty"`
	ImageURL     string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Featured     bool               `bson:"featured" json:"featured"`
	Published    bool               `bson:"published" json:"published"`
	Slug         string             `bson:"slug" json:"slug"`
}
