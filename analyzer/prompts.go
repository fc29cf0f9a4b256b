package analyzer

import (
	"fmt"
	"strings"
	"time"
)

const CONTENT_SYSTEM_INSTRUCTION = `
You are an expert content analyst specializing in AI and education content.
Provide detailed, accurate analysis in the requested JSON format.
You MUST NOT wrap the JSON output in a markdown code block (e.g., ` + "```json ... ```" + `).
The response should contain ONLY the raw JSON string.
`

const USER_SYSTEM_INSTRUCTION = `
You are an expert in educational psychology and learning analytics.
Analyze user behavior patterns to provide personalized insights and recommendations.
You MUST NOT wrap the JSON output in a markdown code block (e.g., ` + "```json ... ```" + `).
The response should contain ONLY the raw JSON string.
`

const COMMUNITY_SYSTEM_INSTRUCTION = `
You are a community analytics expert specializing in educational content trends,
sentiment analysis, and growth predictions. Provide actionable insights for
community growth and engagement.
You MUST NOT wrap the JSON output in a markdown code block (e.g., ` + "```json ... ```" + `).
The response should contain ONLY the raw JSON string.
`

// buildContentPrompt 은 개별 콘텐츠 분석용 프롬프트를 생성한다.
// 본문은 limit(rune) 까지만 포함한다.
func buildContentPrompt(in ContentInput, limit int) string {
	body := in.Body
	if runes := []rune(body); limit > 0 && len(runes) > limit {
		body = string(runes[:limit])
	}

	return fmt.Sprintf(`
Analyze the following %s content and provide a comprehensive analysis:

Title: "%s"
Author: %s
Content: "%s..."

Please provide your analysis in the following JSON format:
{
  "summary": "A concise 2-3 sentence summary of the main points",
  "keyTopics": ["topic1", "topic2", "topic3"],
  "sentiment": {
    "overall": "positive|negative|neutral",
    "score": 0.5,
    "confidence": 0.8
  },
  "complexity": {
    "level": "beginner|intermediate|advanced",
    "score": 6,
    "readabilityScore": 7.2
  },
  "categories": ["AI", "Education", "Machine Learning"],
  "extractedConcepts": [
    {
      "concept": "Neural Networks",
      "relevance": 0.9,
      "category": "Technical"
    }
  ],
  "languageMetrics": {
    "technicalTerms": 15,
    "averageSentenceLength": 18.5,
    "vocabularyRichness": 0.7
  },
  "aiInsights": {
    "mainTheme": "Main theme of the content",
    "targetAudience": ["Students", "Researchers", "Practitioners"],
    "recommendedActions": ["action1", "action2"],
    "relatedTopics": ["topic1", "topic2"]
  }
}

Focus on AI and education related analysis. Be precise and provide actionable insights.
`, in.ContentType, in.Title, in.Author, body)
}

// buildUserInterestPrompt 은 유저 관심사 분석용 프롬프트를 생성한다.
func buildUserInterestPrompt(in UserInput) string {
	var history strings.Builder
	for i, item := range in.ContentHistory {
		if i > 0 {
			history.WriteString("\n")
		}
		fmt.Fprintf(&history, "Title: %s, Time Spent: %dmin, Completed: %t, Categories: %s",
			item.Title, item.TimeSpentMinutes, item.Completed, strings.Join(item.Categories, ", "))
	}

	return fmt.Sprintf(`
Analyze this user's reading behavior and content creation to determine their interests and learning profile:

User: %s
Content History (%d items):
%s

Created Content: %d items

Please provide analysis in JSON format:
{
  "interests": [
    {
      "topic": "Machine Learning",
      "category": "Technical",
      "weight": 0.8,
      "confidence": 0.9
    }
  ],
  "readingBehavior": {
    "preferredComplexity": "intermediate",
    "engagementScore": 0.7
  },
  "sentimentProfile": {
    "positiveContentAffinity": 0.6,
    "technicalContentPreference": 0.8,
    "diversityScore": 0.5
  },
  "recommendations": {
    "suggestedTopics": ["topic1", "topic2"],
    "recommendedAuthors": ["author1", "author2"],
    "nextReadingLevel": "advanced",
    "personalizedTags": ["tag1", "tag2"]
  },
  "aiInsights": {
    "learningStyle": "Visual learner with technical focus",
    "knowledgeAreas": ["AI", "Data Science"],
    "skillLevel": "Intermediate",
    "recommendedPath": ["step1", "step2"],
    "personalityTraits": ["analytical", "curious"]
  }
}
`, in.UserName, len(in.ContentHistory), history.String(), len(in.CreatedContent))
}

// buildCommunityPrompt 은 커뮤니티 트렌드 분석용 프롬프트를 생성한다.
// 게시물은 최대 sampleSize 개까지만 포함한다.
func buildCommunityPrompt(in CommunityInput, sampleSize int) string {
	posts := in.Posts
	if sampleSize > 0 && len(posts) > sampleSize {
		posts = posts[:sampleSize]
	}

	var samples strings.Builder
	for i, post := range posts {
		if i > 0 {
			samples.WriteString("\n")
		}
		fmt.Fprintf(&samples, "%q by %s - Categories: %s",
			post.Title, post.Author, strings.Join(post.Categories, ", "))
	}

	return fmt.Sprintf(`
Analyze this community's content trends and provide insights:

Time Period: %s to %s
Total Posts: %d

Recent Posts Sample:
%s

Provide analysis in JSON format:
{
  "topicTrends": [
    {
      "topic": "Machine Learning",
      "category": "Technical",
      "frequency": 15,
      "growthRate": 0.2,
      "sentiment": "positive"
    }
  ],
  "sentimentAnalysis": {
    "overall": {
      "positive": 60,
      "negative": 10,
      "neutral": 30,
      "averageScore": 0.3
    },
    "trending": "improving"
  },
  "insights": {
    "topGrowingTopics": ["topic1", "topic2"],
    "decliningTopics": ["topic3"],
    "contentGaps": ["gap1", "gap2"],
    "recommendedFocusAreas": ["area1", "area2"],
    "communityHealthScore": 0.8
  },
  "predictions": {
    "nextTrendingTopics": ["trend1", "trend2"],
    "expectedGrowthAreas": ["area1", "area2"],
    "opportunities": ["opportunity1", "opportunity2"]
  }
}
`, in.Start.Format(time.DateOnly), in.End.Format(time.DateOnly), len(in.Posts), samples.String())
}
