package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Interest is a single weighted interest topic. Weight and Confidence are 0..1.
type Interest struct {
	Topic      string  `bson:"topic" json:"topic"`
	Category   string  `bson:"category" json:"category"`
	Weight     float64 `bson:"weight" json:"weight"`
	Confidence float64 `bson:"confidence" json:"confidence"`
}

// ReadingBehavior aggregates how the user consumes content.
type ReadingBehavior struct {
	AverageReadingTime  float64 `bson:"average_reading_time" json:"average_reading_time"`
	PreferredComplexity string  `bson:"preferred_complexity" json:"preferred_complexity"`
	ReadingFrequency    float64 `bson:"reading_frequency" json:"reading_frequency"`
	CompletionRate      float64 `bson:"completion_rate" json:"completion_rate"`
	EngagementScore     float64 `bson:"engagement_score" json:"engagement_score"`
}

// SentimentProfile captures content-affinity scores, all 0..1.
type SentimentProfile struct {
	PositiveContentAffinity    float64 `bson:"positive_content_affinity" json:"positive_content_affinity"`
	TechnicalContentPreference float64 `bson:"technical_content_preference" json:"technical_content_preference"`
	DiversityScore             float64 `bson:"diversity_score" json:"diversity_score"`
}

// InterestRecommendations is what the analyzer suggests the user read next.
type InterestRecommendations struct {
	SuggestedTopics    []string `bson:"suggested_topics" json:"suggested_topics"`
	RecommendedAuthors []string `bson:"recommended_authors" json:"recommended_authors"`
	NextReadingLevel   string   `bson:"next_reading_level" json:"next_reading_level"`
	PersonalizedTags   []string `bson:"personalized_tags" json:"personalized_tags"`
}

// UserAnalytics holds locally-computed aggregates over the user's history.
type UserAnalytics struct {
	TotalContentViewed      int     `bson:"total_content_viewed" json:"total_content_viewed"`
	TotalReadingTimeMinutes int     `bson:"total_reading_time_minutes" json:"total_reading_time_minutes"`
	UniqueTopicsExplored    int     `bson:"unique_topics_explored" json:"unique_topics_explored"`
	KnowledgeGrowthScore    float64 `bson:"knowledge_growth_score" json:"knowledge_growth_score"`
	CommunityEngagement     float64 `bson:"community_engagement" json:"community_engagement"`
}

// UserAIInsights is the qualitative learning-profile section.
type UserAIInsights struct {
	LearningStyle     string   `bson:"learning_style" json:"learning_style"`
	KnowledgeAreas    []string `bson:"knowledge_areas" json:"knowledge_areas"`
	SkillLevel        string   `bson:"skill_level" json:"skill_level"`
	RecommendedPath   []string `bson:"recommended_path" json:"recommended_path"`
	PersonalityTraits []string `bson:"personality_traits" json:"personality_traits"`
}

// UserInterest stores the interest profile of one user.
// Collection: user_interests
// user_id is unique; the record is regenerated at most once per refresh
// window unless a refresh is forced.
type UserInterest struct {
	ID               primitive.ObjectID      `bson:"_id,omitempty" json:"id"`
	CreatedAt        time.Time               `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time               `bson:"updated_at" json:"updated_at"`
	UserID           string                  `bson:"user_id" json:"user_id"`
	UserName         string                  `bson:"user_name" json:"user_name"`
	UserEmail        string                  `bson:"user_email" json:"user_email"`
	Interests        []Interest              `bson:"interests" json:"interests"`
	ReadingBehavior  ReadingBehavior         `bson:"reading_behavior" json:"reading_behavior"`
	SentimentProfile SentimentProfile        `bson:"sentiment_profile" json:"sentiment_profile"`
	Recommendations  InterestRecommendations `bson:"recommendations" json:"recommendations"`
	Analytics        UserAnalytics           `bson:"analytics" json:"analytics"`
	AIInsights       UserAIInsights          `bson:"ai_insights" json:"ai_insights"`
	LastAnalyzed     time.Time               `bson:"last_analyzed" json:"last_analyzed"`
	ModelVersion     string                  `bson:"model_version" json:"model_version"`
}
