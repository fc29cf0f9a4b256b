package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"

	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// ContentStats are the counting aggregates for one reporting period.
type ContentStats struct {
	TotalPosts          int     `bson:"total_posts" json:"total_posts"`
	TotalPortfolios     int     `bson:"total_portfolios" json:"total_portfolios"`
	TotalAuthors        int     `bson:"total_authors" json:"total_authors"`
	AverageWordsPerPost float64 `bson:"average_words_per_post" json:"average_words_per_post"`
	TotalWordCount      int     `bson:"total_word_count" json:"total_word_count"`
}

// TopicTrend is one trending topic within a period.
type TopicTrend struct {
	Topic      string  `bson:"topic" json:"topic"`
	Category   string  `bson:"category" json:"category"`
	Frequency  float64 `bson:"frequency" json:"frequency"`
	GrowthRate float64 `bson:"growth_rate" json:"growth_rate"`
	Sentiment  string  `bson:"sentiment" json:"sentiment"`
}

// SentimentDistribution holds percentages per sentiment plus the mean score.
type SentimentDistribution struct {
	Positive     int     `bson:"positive" json:"positive"`
	Negative     int     `bson:"negative" json:"negative"`
	Neutral      int     `bson:"neutral" json:"neutral"`
	AverageScore float64 `bson:"average_score" json:"average_score"`
}

// CommunitySentiment combines the distribution with the LLM trend verdict.
type CommunitySentiment struct {
	Overall  SentimentDistribution `bson:"overall" json:"overall"`
	Trending string                `bson:"trending" json:"trending"`
}

// ComplexityDistribution holds percentages per level plus the mean 1..10 score.
type ComplexityDistribution struct {
	Beginner     int     `bson:"beginner" json:"beginner"`
	Intermediate int     `bson:"intermediate" json:"intermediate"`
	Advanced     int     `bson:"advanced" json:"advanced"`
	AverageScore float64 `bson:"average_score" json:"average_score"`
}

// AuthorRanking is one entry in the most-active-authors list.
type AuthorRanking struct {
	Name             string   `bson:"name" json:"name"`
	UserID           string   `bson:"user_id" json:"user_id"`
	PostsCount       int      `bson:"posts_count" json:"posts_count"`
	AverageSentiment float64  `bson:"average_sentiment" json:"average_sentiment"`
	TopTopics        []string `bson:"top_topics" json:"top_topics"`
}

// CommunityEngagement holds the simplified engagement aggregates.
type CommunityEngagement struct {
	AverageReadingTime    float64 `bson:"average_reading_time" json:"average_reading_time"`
	ContentCompletionRate float64 `bson:"content_completion_rate" json:"content_completion_rate"`
	DiversityIndex        float64 `bson:"diversity_index" json:"diversity_index"`
	KnowledgeSharingScore float64 `bson:"knowledge_sharing_score" json:"knowledge_sharing_score"`
}

// CommunityInsights is the qualitative section of a community report.
type CommunityInsights struct {
	TopGrowingTopics      []string `bson:"top_growing_topics" json:"top_growing_topics"`
	DecliningTopics       []string `bson:"declining_topics" json:"declining_topics"`
	ContentGaps           []string `bson:"content_gaps" json:"content_gaps"`
	RecommendedFocusAreas []string `bson:"recommended_focus_areas" json:"recommended_focus_areas"`
	CommunityHealthScore  float64  `bson:"community_health_score" json:"community_health_score"`
}

// CommunityPredictions is the forward-looking section of a community report.
type CommunityPredictions struct {
	NextTrendingTopics  []string `bson:"next_trending_topics" json:"next_trending_topics"`
	ExpectedGrowthAreas []string `bson:"expected_growth_areas" json:"expected_growth_areas"`
	Opportunities       []string `bson:"opportunities" json:"opportunities"`
}

// CommunityAnalytics stores one generated community report.
// Collection: community_analytics
// Append-only: each generation inserts a new document for its period.
type CommunityAnalytics struct {
	ID                     primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	CreatedAt              time.Time              `bson:"created_at" json:"created_at"`
	UpdatedAt              time.Time              `bson:"updated_at" json:"updated_at"`
	Period                 string                 `bson:"period" json:"period"`
	StartDate              time.Time              `bson:"start_date" json:"start_date"`
	EndDate                time.Time              `bson:"end_date" json:"end_date"`
	ContentStats           ContentStats           `bson:"content_stats" json:"content_stats"`
	TopicTrends            []TopicTrend           `bson:"topic_trends" json:"topic_trends"`
	SentimentAnalysis      CommunitySentiment     `bson:"sentiment_analysis" json:"sentiment_analysis"`
	ComplexityDistribution ComplexityDistribution `bson:"complexity_distribution" json:"complexity_distribution"`
	MostActiveAuthors      []AuthorRanking        `bson:"most_active_authors" json:"most_active_authors"`
	CommunityEngagement    CommunityEngagement    `bson:"community_engagement" json:"community_engagement"`
	Insights               CommunityInsights      `bson:"insights" json:"insights"`
	Predictions            CommunityPredictions   `bson:"predictions" json:"predictions"`
	GeneratedAt            time.Time              `bson:"generated_at" json:"generated_at"`
	ModelVersion           string                 `bson:"model_version" json:"model_version"`
}

// ValidPeriod reports whether p is a supported reporting period.
func ValidPeriod(p string) bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}
