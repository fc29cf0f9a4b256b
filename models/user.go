package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	ProviderCredentials = "credentials"
	ProviderGoogle      = "google"
)

// User represents an account document
// Collection: users
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	PasswordHash  string             `bson:"password_hash,omitempty" json:"-"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	Provider      string             `bson:"provider" json:"provider"`
	ProviderSub   string             `bson:"provider_sub,omitempty" json:"provider_sub,omitempty"`
	Role          string             `bson:"role" json:"role"`
	EmailVerified *time.Time         `bson:"email_verified,omitempty" json:"email_verified,omitempty"`
}
