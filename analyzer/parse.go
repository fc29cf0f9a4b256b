package analyzer

import (
	"encoding/json"
	"errors"
	"strings"

	"ai-edu-portal/models"
)

var errNoJSON = errors.New("no JSON object found in response")

// extractJSON pulls the first '{' through the last '}' out of an LLM
// response. Models occasionally wrap the JSON in prose even when told
// not to.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return "", errNoJSON
	}
	return s[start : end+1], nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func validSentiment(s string) bool {
	switch s {
	case models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral:
		return true
	}
	return false
}

func validComplexity(s string) bool {
	switch s {
	case models.ComplexityBeginner, models.ComplexityIntermediate, models.ComplexityAdvanced:
		return true
	}
	return false
}

type rawContentAnalysis struct {
	Summary   *string  `json:"summary"`
	KeyTopics []string `json:"keyTopics"`
	Sentiment *struct {
		Overall    string   `json:"overall"`
		Score      *float64 `json:"score"`
		Confidence *float64 `json:"confidence"`
	} `json:"sentiment"`
	Complexity *struct {
		Level            string   `json:"level"`
		Score            *float64 `json:"score"`
		ReadabilityScore *float64 `json:"readabilityScore"`
	} `json:"complexity"`
	Categories        []string `json:"categories"`
	ExtractedConcepts []struct {
		Concept   string  `json:"concept"`
		Relevance float64 `json:"relevance"`
		Category  string  `json:"category"`
	} `json:"extractedConcepts"`
	LanguageMetrics *struct {
		TechnicalTerms        *float64 `json:"technicalTerms"`
		AverageSentenceLength *float64 `json:"averageSentenceLength"`
		VocabularyRichness    *float64 `json:"vocabularyRichness"`
	} `json:"languageMetrics"`
	AIInsights *struct {
		MainTheme          string   `json:"mainTheme"`
		TargetAudience     []string `json:"targetAudience"`
		RecommendedActions []string `json:"recommendedActions"`
		RelatedTopics      []string `json:"relatedTopics"`
	} `json:"aiInsights"`
}

// parseContentAnalysis 는 LLM 응답을 필드 단위로 검증/보정한다.
// 누락된 필드는 기본값으로 채우고, 수치 필드는 허용 범위로 클램프한다.
// JSON 자체를 추출하지 못한 경우에만 에러를 반환한다.
func parseContentAnalysis(response string) (*ContentResult, error) {
	raw, err := extractJSON(response)
	if err != nil {
		return nil, err
	}

	var p rawContentAnalysis
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, err
	}

	out := &ContentResult{
		Summary: "Content analysis summary",
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
		Categories: []string{"General"},
		LanguageMetrics: models.LanguageMetrics{
			TechnicalTerms:        0,
			AverageSentenceLength: 15,
			VocabularyRichness:    0.5,
		},
		AIInsights: models.ContentAIInsights{
			MainTheme:          "General content",
			TargetAudience:     []string{"General"},
			RecommendedActions: []string{},
			RelatedTopics:      []string{},
		},
		KeyTopics:         []string{},
		ExtractedConcepts: []models.ExtractedConcept{},
	}

	if p.Summary != nil && *p.Summary != "" {
		out.Summary = *p.Summary
	}
	if p.KeyTopics != nil {
		out.KeyTopics = p.KeyTopics
	}
	if p.Sentiment != nil {
		if validSentiment(p.Sentiment.Overall) {
			out.Sentiment.Overall = p.Sentiment.Overall
		}
		if p.Sentiment.Score != nil {
			out.Sentiment.Score = clamp(*p.Sentiment.Score, -1, 1)
		}
		if p.Sentiment.Confidence != nil {
			out.Sentiment.Confidence = clamp(*p.Sentiment.Confidence, 0, 1)
		}
	}
	if p.Complexity != nil {
		if validComplexity(p.Complexity.Level) {
			out.Complexity.Level = p.Complexity.Level
		}
		if p.Complexity.Score != nil {
			out.Complexity.Score = clamp(*p.Complexity.Score, 1, 10)
		}
		if p.Complexity.ReadabilityScore != nil {
			out.Complexity.ReadabilityScore = *p.Complexity.ReadabilityScore
		}
	}
	if len(p.Categories) > 0 {
		out.Categories = p.Categories
	}
	for _, c := range p.ExtractedConcepts {
		out.ExtractedConcepts = append(out.ExtractedConcepts, models.ExtractedConcept{
			Concept:   c.Concept,
			Relevance: clamp(c.Relevance, 0, 1),
			Category:  c.Category,
		})
	}
	if p.LanguageMetrics != nil {
		if p.LanguageMetrics.TechnicalTerms != nil {
			out.LanguageMetrics.TechnicalTerms = *p.LanguageMetrics.TechnicalTerms
		}
		if p.LanguageMetrics.AverageSentenceLength != nil {
			out.LanguageMetrics.AverageSentenceLength = *p.LanguageMetrics.AverageSentenceLength
		}
		if p.LanguageMetrics.VocabularyRichness != nil {
			out.LanguageMetrics.VocabularyRichness = *p.LanguageMetrics.VocabularyRichness
		}
	}
	if p.AIInsights != nil {
		if p.AIInsights.MainTheme != "" {
			out.AIInsights.MainTheme = p.AIInsights.MainTheme
		}
		if len(p.AIInsights.TargetAudience) > 0 {
			out.AIInsights.TargetAudience = p.AIInsights.TargetAudience
		}
		if p.AIInsights.RecommendedActions != nil {
			out.AIInsights.RecommendedActions = p.AIInsights.RecommendedActions
		}
		if p.AIInsights.RelatedTopics != nil {
			out.AIInsights.RelatedTopics = p.AIInsights.RelatedTopics
		}
	}

	return out, nil
}

type rawUserInterest struct {
	Interests []struct {
		Topic      string  `json:"topic"`
		Category   string  `json:"category"`
		Weight     float64 `json:"weight"`
		Confidence float64 `json:"confidence"`
	} `json:"interests"`
	ReadingBehavior struct {
		PreferredComplexity string  `json:"preferredComplexity"`
		EngagementScore     float64 `json:"engagementScore"`
	} `json:"readingBehavior"`
	SentimentProfile struct {
		PositiveContentAffinity    float64 `json:"positiveContentAffinity"`
		TechnicalContentPreference float64 `json:"technicalContentPreference"`
		DiversityScore             float64 `json:"diversityScore"`
	} `json:"sentimentProfile"`
	Recommendations struct {
		SuggestedTopics    []string `json:"suggestedTopics"`
		RecommendedAuthors []string `json:"recommendedAuthors"`
		NextReadingLevel   string   `json:"nextReadingLevel"`
		PersonalizedTags   []string `json:"personalizedTags"`
	} `json:"recommendations"`
	AIInsights struct {
		LearningStyle     string   `json:"learningStyle"`
		KnowledgeAreas    []string `json:"knowledgeAreas"`
		SkillLevel        string   `json:"skillLevel"`
		RecommendedPath   []string `json:"recommendedPath"`
		PersonalityTraits []string `json:"personalityTraits"`
	} `json:"aiInsights"`
}

// parseUserInterest 는 유저 관심사 응답을 파싱한다. 구조가 통째로 깨진 경우에만
// 에러를 반환하며, 수치 필드는 0..1 범위로 클램프한다.
func parseUserInterest(response string) (*UserInterestResult, error) {
	raw, err := extractJSON(response)
	if err != nil {
		return nil, err
	}

	var p rawUserInterest
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, err
	}

	out := &UserInterestResult{
		Interests: []models.Interest{},
	}
	for _, it := range p.Interests {
		out.Interests = append(out.Interests, models.Interest{
			Topic:      it.Topic,
			Category:   it.Category,
			Weight:     clamp(it.Weight, 0, 1),
			Confidence: clamp(it.Confidence, 0, 1),
		})
	}

	out.ReadingBehavior.PreferredComplexity = models.ComplexityIntermediate
	if validComplexity(p.ReadingBehavior.PreferredComplexity) {
		out.ReadingBehavior.PreferredComplexity = p.ReadingBehavior.PreferredComplexity
	}
	out.ReadingBehavior.EngagementScore = clamp(p.ReadingBehavior.EngagementScore, 0, 1)

	out.SentimentProfile = models.SentimentProfile{
		PositiveContentAffinity:    clamp(p.SentimentProfile.PositiveContentAffinity, 0, 1),
		TechnicalContentPreference: clamp(p.SentimentProfile.TechnicalContentPreference, 0, 1),
		DiversityScore:             clamp(p.SentimentProfile.DiversityScore, 0, 1),
	}
	out.Recommendations = models.InterestRecommendations(p.Recommendations)
	out.AIInsights = models.UserAIInsights(p.AIInsights)

	return out, nil
}

type rawCommunityAnalysis struct {
	TopicTrends []struct {
		Topic      string  `json:"topic"`
		Category   string  `json:"category"`
		Frequency  float64 `json:"frequency"`
		GrowthRate float64 `json:"growthRate"`
		Sentiment  string  `json:"sentiment"`
	} `json:"topicTrends"`
	SentimentAnalysis struct {
		Overall struct {
			Positive     int     `json:"positive"`
			Negative     int     `json:"negative"`
			Neutral      int     `json:"neutral"`
			AverageScore float64 `json:"averageScore"`
		} `json:"overall"`
		Trending string `json:"trending"`
	} `json:"sentimentAnalysis"`
	Insights struct {
		TopGrowingTopics      []string `json:"topGrowingTopics"`
		DecliningTopics       []string `json:"decliningTopics"`
		ContentGaps           []string `json:"contentGaps"`
		RecommendedFocusAreas []string `json:"recommendedFocusAreas"`
		CommunityHealthScore  float64  `json:"communityHealthScore"`
	} `json:"insights"`
	Predictions struct {
		NextTrendingTopics  []string `json:"nextTrendingTopics"`
		ExpectedGrowthAreas []string `json:"expectedGrowthAreas"`
		Opportunities       []string `json:"opportunities"`
	} `json:"predictions"`
}

// parseCommunityAnalysis 는 커뮤니티 트렌드 응답을 파싱한다.
func parseCommunityAnalysis(response string) (*CommunityResult, error) {
	raw, err := extractJSON(response)
	if err != nil {
		return nil, err
	}

	var p rawCommunityAnalysis
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, err
	}

	out := &CommunityResult{
		TopicTrends: []models.TopicTrend{},
	}
	for _, t := range p.TopicTrends {
		sentiment := t.Sentiment
		if !validSentiment(sentiment) {
			sentiment = models.SentimentNeutral
		}
		out.TopicTrends = append(out.TopicTrends, models.TopicTrend{
			Topic:      t.Topic,
			Category:   t.Category,
			Frequency:  t.Frequency,
			GrowthRate: t.GrowthRate,
			Sentiment:  sentiment,
		})
	}

	out.SentimentAnalysis.Overall = models.SentimentDistribution(p.SentimentAnalysis.Overall)
	out.SentimentAnalysis.Trending = models.TrendStable
	switch p.SentimentAnalysis.Trending {
	case models.TrendImproving, models.TrendDeclining, models.TrendStable:
		out.SentimentAnalysis.Trending = p.SentimentAnalysis.Trending
	}

	out.Insights = models.CommunityInsights{
		TopGrowingTopics:      p.Insights.TopGrowingTopics,
		DecliningTopics:       p.Insights.DecliningTopics,
		ContentGaps:           p.Insights.ContentGaps,
		RecommendedFocusAreas: p.Insights.RecommendedFocusAreas,
		CommunityHealthScore:  clamp(p.Insights.CommunityHealthScore, 0, 1),
	}
	out.Predictions = models.CommunityPredictions(p.Predictions)

	return out, nil
}
