package analyzer

import (
	"fmt"

	"ai-edu-portal/models"
)

// fallbackContentResult 는 LLM 호출/파싱이 어떤 이유로든 실패했을 때 저장되는
// 정적 분석 결과이다. 호출자에게는 절대 에러를 돌려주지 않는다.
func fallbackContentResult(in ContentInput) *ContentResult {
	return &ContentResult{
		Summary:   fmt.Sprintf("Analysis of %q - Content covers educational topics with moderate complexity.", in.Title),
		KeyTopics: []string{"AI", "Education", "Technology"},
		Sentiment: models.Sentiment{
			Overall:    models.SentimentNeutral,
			Score:      0,
			Confidence: 0.5,
		},
		Complexity: models.Complexity{
			Level:            models.ComplexityIntermediate,
			Score:            5,
			ReadabilityScore: 5,
		},
		Categories:        []string{"General"},
		ExtractedConcepts: []models.ExtractedConcept{},
		LanguageMetrics: models.LanguageMetrics{
			TechnicalTerms:        5,
			AverageSentenceLength: 15,
			VocabularyRichness:    0.5,
		},
		AIInsights: models.ContentAIInsights{
			MainTheme:          "Educational content",
			TargetAudience:     []string{"Students"},
			RecommendedActions: []string{"Review content"},
			RelatedTopics:      []string{"Learning"},
		},
	}
}

func fallbackUserInterestResult() *UserInterestResult {
	out := &UserInterestResult{
		Interests: []models.Interest{
			{Topic: "AI", Category: "Technology", Weight: 0.5, Confidence: 0.5},
		},
		SentimentProfile: models.SentimentProfile{
			PositiveContentAffinity:    0.5,
			TechnicalContentPreference: 0.5,
			DiversityScore:             0.5,
		},
		Recommendations: models.InterestRecommendations{
			SuggestedTopics:    []string{"Machine Learning"},
			RecommendedAuthors: []string{},
			NextReadingLevel:   models.ComplexityIntermediate,
			PersonalizedTags:   []string{"AI"},
		},
		AIInsights: models.UserAIInsights{
			LearningStyle:     "Balanced learner",
			KnowledgeAreas:    []string{"AI"},
			SkillLevel:        "Intermediate",
			RecommendedPath:   []string{"Continue learning"},
			PersonalityTraits: []string{"curious"},
		},
	}
	out.ReadingBehavior.PreferredComplexity = models.ComplexityIntermediate
	out.ReadingBehavior.EngagementScore = 0.5
	return out
}

func fallbackCommunityResult() *CommunityResult {
	out := &CommunityResult{
		TopicTrends: []models.TopicTrend{
			{Topic: "AI", Category: "Technology", Frequency: 10, GrowthRate: 0, Sentiment: models.SentimentNeutral},
		},
		Insights: models.CommunityInsights{
			TopGrowingTopics:      []string{"AI"},
			DecliningTopics:       []string{},
			ContentGaps:           []string{"Advanced tutorials"},
			RecommendedFocusAreas: []string{"Community engagement"},
			CommunityHealthScore:  0.7,
		},
		Predictions: models.CommunityPredictions{
			NextTrendingTopics:  []string{"Machine Learning"},
			ExpectedGrowthAreas: []string{"Education"},
			Opportunities:       []string{"More beginner content"},
		},
	}
	out.SentimentAnalysis.Overall = models.SentimentDistribution{
		Positive:     50,
		Negative:     20,
		Neutral:      30,
		AverageScore: 0.15,
	}
	out.SentimentAnalysis.Trending = models.TrendStable
	return out
}
