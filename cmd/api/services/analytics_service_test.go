package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ai-edu-portal/models"
)

func sampleAnalyses() []models.ContentAnalysis {
	return []models.ContentAnalysis{
		{AuthorID: "u1", Sentiment: models.Sentiment{Overall: models.SentimentPositive, Score: 0.8}, Complexity: models.Complexity{Level: models.ComplexityBeginner, Score: 3}, ReadingTimeMinutes: 4},
		{AuthorID: "u1", Sentiment: models.Sentiment{Overall: models.SentimentPositive, Score: 0.4}, Complexity: models.Complexity{Level: models.ComplexityIntermediate, Score: 5}, ReadingTimeMinutes: 6},
		{AuthorID: "u2", Sentiment: models.Sentiment{Overall: models.SentimentNegative, Score: -0.6}, Complexity: models.Complexity{Level: models.ComplexityAdvanced, Score: 9}, ReadingTimeMinutes: 8},
		{AuthorID: "u3", Sentiment: models.Sentiment{Overall: models.SentimentNeutral, Score: 0.0}, Complexity: models.Complexity{Level: models.ComplexityIntermediate, Score: 6}, ReadingTimeMinutes: 2},
	}
}

func TestSentimentFromAnalyses(t *testing.T) {
	dist := sentimentFromAnalyses(sampleAnalyses(), models.TrendImproving)

	assert.Equal(t, 50, dist.Overall.Positive)
	assert.Equal(t, 25, dist.Overall.Negative)
	assert.Equal(t, 25, dist.Overall.Neutral)
	assert.InDelta(t, 0.15, dist.Overall.AverageScore, 1e-9)
	assert.Equal(t, models.TrendImproving, dist.Trending)
}

func TestSentimentFromAnalysesEmpty(t *testing.T) {
	dist := sentimentFromAnalyses(nil, models.TrendStable)
	assert.Equal(t, 0, dist.Overall.Positive)
	assert.Equal(t, 0.0, dist.Overall.AverageScore)
}

func TestComplexityFromAnalyses(t *testing.T) {
	dist := complexityFromAnalyses(sampleAnalyses())
	assert.Equal(t, 25, dist.Beginner)
	assert.Equal(t, 50, dist.Intermediate)
	assert.Equal(t, 25, dist.Advanced)
	assert.InDelta(t, 5.75, dist.AverageScore, 1e-9)
}

func TestRankAuthorsOrdersByPostCount(t *testing.T) {
	now := time.Now()
	blogs := []models.Blog{
		{AuthorID: "u1", Author: "Alice", Tags: []string{"Go", "Mongo"}, CreatedAt: now},
		{AuthorID: "u1", Author: "Alice", Tags: []string{"Go", "Gin"}, CreatedAt: now},
		{AuthorID: "u2", Author: "Bob", Tags: []string{"React"}, CreatedAt: now},
	}
	portfolios := []models.Portfolio{
		{AuthorID: "u1", Author: "Alice", Technologies: []string{"Docker"}, CreatedAt: now},
	}

	rankings := rankAuthors(blogs, portfolios, sampleAnalyses())

	assert.Len(t, rankings, 2)
	assert.Equal(t, "Alice", rankings[0].Name)
	assert.Equal(t, 3, rankings[0].PostsCount)
	// Top topics keep first-seen order, capped at three unique values.
	assert.Equal(t, []string{"Go", "Mongo", "Gin"}, rankings[0].TopTopics)
	assert.InDelta(t, 0.6, rankings[0].AverageSentiment, 1e-9)
	assert.Equal(t, "Bob", rankings[1].Name)
	assert.InDelta(t, -0.6, rankings[1].AverageSentiment, 1e-9)
}

func TestEngagementFromAnalyses(t *testing.T) {
	e := engagementFromAnalyses(sampleAnalyses(), 3, 10)
	assert.Equal(t, 5.0, e.AverageReadingTime)
	assert.Equal(t, 0.75, e.ContentCompletionRate)
	assert.InDelta(t, 0.3, e.DiversityIndex, 1e-9)
	assert.InDelta(t, 0.5, e.KnowledgeSharingScore, 1e-9)
}

func TestPeriodRange(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	start, end := periodRange(models.PeriodDaily, now)
	assert.Equal(t, now.AddDate(0, 0, -1), start)
	assert.Equal(t, now, end)

	start, _ = periodRange(models.PeriodWeekly, now)
	assert.Equal(t, now.AddDate(0, 0, -7), start)

	start, _ = periodRange(models.PeriodMonthly, now)
	assert.Equal(t, now.AddDate(0, -1, 0), start)
}
