package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PasswordReset stores a single-use password reset token.
// Collection: password_resets
// Tokens expire one hour after creation; the TTL index removes stale docs.
type PasswordReset struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	Email     string             `bson:"email" json:"email"`
	Token     string             `bson:"token" json:"token"`
	UserID    string             `bson:"user_id" json:"user_id"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
	Used      bool               `bson:"used" json:"used"`
}
