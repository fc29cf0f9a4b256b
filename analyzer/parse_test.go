package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-edu-portal/models"
)

func TestExtractJSONEmbeddedInProse(t *testing.T) {
	raw, err := extractJSON("Sure! Here is the analysis:\n{\"summary\": \"ok\"}\nHope this helps.")
	assert.NoError(t, err)
	assert.Equal(t, `{"summary": "ok"}`, raw)
}

func TestExtractJSONNoObject(t *testing.T) {
	_, err := extractJSON("I cannot produce an analysis for this content.")
	assert.ErrorIs(t, err, errNoJSON)
}

func TestParseContentAnalysisClampsOutOfRange(t *testing.T) {
	response := `{
		"summary": "A post about transformers.",
		"keyTopics": ["Transformers"],
		"sentiment": {"overall": "positive", "score": 3.5, "confidence": 1.4},
		"complexity": {"level": "advanced", "score": 15, "readabilityScore": 6.1},
		"categories": ["AI"],
		"extractedConcepts": [{"concept": "Attention", "relevance": 2.0, "category": "Technical"}],
		"languageMetrics": {"technicalTerms": 12, "averageSentenceLength": 19.2, "vocabularyRichness": 0.8},
		"aiInsights": {"mainTheme": "Deep learning", "targetAudience": ["Researchers"], "recommendedActions": ["Read paper"], "relatedTopics": ["NLP"]}
	}`

	result, err := parseContentAnalysis(response)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, result.Sentiment.Score)
	assert.Equal(t, 1.0, result.Sentiment.Confidence)
	assert.Equal(t, 10.0, result.Complexity.Score)
	assert.Equal(t, 1.0, result.ExtractedConcepts[0].Relevance)
	assert.Equal(t, "A post about transformers.", result.Summary)
	assert.Equal(t, models.SentimentPositive, result.Sentiment.Overall)
	assert.Equal(t, models.ComplexityAdvanced, result.Complexity.Level)
}

func TestParseContentAnalysisFillsDefaults(t *testing.T) {
	result, err := parseContentAnalysis(`{"summary": "Only a summary."}`)
	assert.NoError(t, err)
	assert.Equal(t, "Only a summary.", result.Summary)
	assert.Equal(t, models.SentimentNeutral, result.Sentiment.Overall)
	assert.Equal(t, 0.0, result.Sentiment.Score)
	assert.Equal(t, 0.5, result.Sentiment.Confidence)
	assert.Equal(t, models.ComplexityIntermediate, result.Complexity.Level)
	assert.Equal(t, 5.0, result.Complexity.Score)
	assert.Equal(t, []string{"General"}, result.Categories)
	assert.Equal(t, 15.0, result.LanguageMetrics.AverageSentenceLength)
	assert.Equal(t, "General content", result.AIInsights.MainTheme)
	assert.Equal(t, []string{"General"}, result.AIInsights.TargetAudience)
	assert.Empty(t, result.KeyTopics)
	assert.Empty(t, result.ExtractedConcepts)
}

func TestParseContentAnalysisRejectsUnknownEnums(t *testing.T) {
	result, err := parseContentAnalysis(`{
		"sentiment": {"overall": "ecstatic", "score": 0.2, "confidence": 0.9},
		"complexity": {"level": "expert", "score": 7, "readabilityScore": 4}
	}`)
	assert.NoError(t, err)
	assert.Equal(t, models.SentimentNeutral, result.Sentiment.Overall)
	assert.Equal(t, 0.2, result.Sentiment.Score)
	assert.Equal(t, models.ComplexityIntermediate, result.Complexity.Level)
	assert.Equal(t, 7.0, result.Complexity.Score)
}

func TestParseContentAnalysisMalformedJSON(t *testing.T) {
	_, err := parseContentAnalysis(`{"summary": "broken`)
	assert.Error(t, err)
}

func TestFallbackContentResultUsesTitle(t *testing.T) {
	result := fallbackContentResult(ContentInput{Title: "My Post"})
	assert.Equal(t, `Analysis of "My Post" - Content covers educational topics with moderate complexity.`, result.Summary)
	assert.Equal(t, []string{"AI", "Education", "Technology"}, result.KeyTopics)
	assert.Equal(t, models.SentimentNeutral, result.Sentiment.Overall)
	assert.Equal(t, 5.0, result.Complexity.Score)
	assert.Equal(t, 5.0, result.LanguageMetrics.TechnicalTerms)
	assert.Equal(t, []string{"Students"}, result.AIInsights.TargetAudience)
}

func TestParseUserInterestClampsWeights(t *testing.T) {
	result, err := parseUserInterest(`{
		"interests": [{"topic": "Go", "category": "Technical", "weight": 1.8, "confidence": -0.2}],
		"readingBehavior": {"preferredComplexity": "advanced", "engagementScore": 0.9},
		"sentimentProfile": {"positiveContentAffinity": 0.5, "technicalContentPreference": 0.8, "diversityScore": 0.4},
		"recommendations": {"suggestedTopics": ["Concurrency"], "recommendedAuthors": [], "nextReadingLevel": "advanced", "personalizedTags": ["golang"]},
		"aiInsights": {"learningStyle": "Hands-on", "knowledgeAreas": ["Backend"], "skillLevel": "Advanced", "recommendedPath": [], "personalityTraits": ["persistent"]}
	}`)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, result.Interests[0].Weight)
	assert.Equal(t, 0.0, result.Interests[0].Confidence)
	assert.Equal(t, models.ComplexityAdvanced, result.ReadingBehavior.PreferredComplexity)
	assert.Equal(t, []string{"Concurrency"}, result.Recommendations.SuggestedTopics)
}

func TestParseUserInterestInvalidComplexityDefaults(t *testing.T) {
	result, err := parseUserInterest(`{"readingBehavior": {"preferredComplexity": "guru", "engagementScore": 0.3}}`)
	assert.NoError(t, err)
	assert.Equal(t, models.ComplexityIntermediate, result.ReadingBehavior.PreferredComplexity)
	assert.Equal(t, 0.3, result.ReadingBehavior.EngagementScore)
}

func TestParseCommunityAnalysis(t *testing.T) {
	result, err := parseCommunityAnalysis(`{
		"topicTrends": [{"topic": "RAG", "category": "Technical", "frequency": 8, "growthRate": 0.4, "sentiment": "positive"}],
		"sentimentAnalysis": {"overall": {"positive": 55, "negative": 15, "neutral": 30, "averageScore": 0.25}, "trending": "improving"},
		"insights": {"topGrowingTopics": ["RAG"], "decliningTopics": [], "contentGaps": ["Evaluation"], "recommendedFocusAreas": ["Tutorials"], "communityHealthScore": 0.85},
		"predictions": {"nextTrendingTopics": ["Agents"], "expectedGrowthAreas": ["Education"], "opportunities": ["Workshops"]}
	}`)
	assert.NoError(t, err)
	assert.Len(t, result.TopicTrends, 1)
	assert.Equal(t, models.TrendImproving, result.SentimentAnalysis.Trending)
	assert.Equal(t, 55, result.SentimentAnalysis.Overall.Positive)
	assert.Equal(t, 0.85, result.Insights.CommunityHealthScore)
}

func TestParseCommunityAnalysisInvalidTrendDefaults(t *testing.T) {
	result, err := parseCommunityAnalysis(`{"sentimentAnalysis": {"trending": "skyrocketing"}}`)
	assert.NoError(t, err)
	assert.Equal(t, models.TrendStable, result.SentimentAnalysis.Trending)
}
