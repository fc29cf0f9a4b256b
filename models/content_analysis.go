package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ContentTypeBlog      = "blog"
	ContentTypePortfolio = "portfolio"

	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"

	ComplexityBeginner     = "beginner"
	ComplexityIntermediate = "intermediate"
	ComplexityAdvanced     = "advanced"
)

// Sentiment holds the LLM sentiment verdict for one content item.
// Score is -1..1, Confidence 0..1; both are clamped when parsed from
// the external response.
type Sentiment struct {
	Overall    string  `bson:"overall" json:"overall"`
	Score      float64 `bson:"score" json:"score"`
	Confidence float64 `bson:"confidence" json:"confidence"`
}

// Complexity holds the difficulty assessment. Score is 1..10.
type Complexity struct {
	Level            string  `bson:"level" json:"level"`
	Score            float64 `bson:"score" json:"score"`
	ReadabilityScore float64 `bson:"readability_score" json:"readability_score"`
}

// ExtractedConcept is one concept the LLM pulled out of the text.
// Relevance is 0..1.
type ExtractedConcept struct {
	Concept   string  `bson:"concept" json:"concept"`
	Relevance float64 `bson:"relevance" json:"relevance"`
	Category  string  `bson:"category" json:"category"`
}

// LanguageMetrics mixes LLM-estimated and locally-computed text metrics.
// AverageSentenceLength is always overwritten with the local calculation.
type LanguageMetrics struct {
	TechnicalTerms        float64 `bson:"technical_terms" json:"technical_terms"`
	AverageSentenceLength float64 `bson:"average_sentence_length" json:"average_sentence_length"`
	VocabularyRichness    float64 `bson:"vocabulary_richness" json:"vocabulary_richness"`
}

// ContentAIInsights is the free-form qualitative part of a content analysis.
type ContentAIInsights struct {
	MainTheme          string   `bson:"main_theme" json:"main_theme"`
	TargetAudience     []string `bson:"target_audience" json:"target_audience"`
	RecommendedActions []string `bson:"recommended_actions" json:"recommended_actions"`
	RelatedTopics      []string `bson:"related_topics" json:"related_topics"`
}

// ContentAnalysis stores one analysis pass over a blog or portfolio item.
// Collection: content_analyses
// (content_id, content_type) is unique; re-analysis replaces the body in
// place via upsert rather than inserting a second document.
type ContentAnalysis struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at" json:"updated_at"`
	ContentID          string             `bson:"content_id" json:"content_id"`
	ContentType        string             `bson:"content_type" json:"content_type"`
	Title              string             `bson:"title" json:"title"`
	Author             string             `bson:"author" json:"author"`
	AuthorID           string             `bson:"author_id" json:"author_id"`
	Summary            string             `bson:"summary" json:"summary"`
	KeyTopics          []string           `bson:"key_topics" json:"key_topics"`
	Sentiment          Sentiment          `bson:"sentiment" json:"sentiment"`
	Complexity         Complexity         `bson:"complexity" json:"complexity"`
	Categories         []string           `bson:"categories" json:"categories"`
	ExtractedConcepts  []ExtractedConcept `bson:"extracted_concepts" json:"extracted_concepts"`
	WordCount          int                `bson:"word_count" json:"word_count"`
	ReadingTimeMinutes int                `bson:"reading_time_minutes" json:"reading_time_minutes"`
	LanguageMetrics    LanguageMetrics    `bson:"language_metrics" json:"language_metrics"`
	AIInsights         ContentAIInsights  `bson:"ai_insights" json:"ai_insights"`
	ProcessedAt        time.Time          `bson:"processed_at" json:"processed_at"`
	ModelVersion       string             `bson:"model_version" json:"model_version"`
}
