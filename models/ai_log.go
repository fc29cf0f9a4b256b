package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AILog stores one analyzer LLM call (system monitoring purpose).
// Fallback results are logged too, with Success=false and the error message.
// Collection: ai_logs
type AILog struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Operation       string             `bson:"operation" json:"operation"`
	SubjectID       string             `bson:"subject_id" json:"subject_id"`
	ModelName       string             `bson:"model_name" json:"model_name"`
	DurationMs      int64              `bson:"duration_ms" json:"duration_ms"`
	Success         bool               `bson:"success" json:"success"`
	ErrorMessage    string             `bson:"error_message,omitempty" json:"error_message,omitempty"`
	ResponseExcerpt string             `bson:"response_excerpt" json:"response_excerpt"`
	RequestedAt     time.Time          `bson:"requested_at" json:"requested_at"`
	CompletedAt     time.Time          `bson:"completed_at" json:"completed_at"`
}
