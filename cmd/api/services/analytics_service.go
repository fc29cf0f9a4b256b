package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"ai-edu-portal/analyzer"
	"ai-edu-portal/cmd/internal/logger"
	"ai-edu-portal/models"
	"ai-edu-portal/repositories"
)

type communityAnalyzer interface {
	AnalyzeCommunityTrends(ctx context.Context, in analyzer.CommunityInput) (*analyzer.CommunityResult, analyzer.CallLog)
}

// AnalyticsService 는 커뮤니티 단위 리포트를 생성/조회한다.
// 리포트는 append-only 로 저장되며, 기간별 최신 리포트 목록을 조회할 수 있다.
type AnalyticsService struct {
	llm        communityAnalyzer
	blogs      *repositories.BlogRepository
	portfolios *repositories.PortfolioRepository
	analyses   *repositories.ContentAnalysisRepository
	reports    *repositories.CommunityAnalyticsRepository
	aiLogs     aiLogStore
}

func NewAnalyticsService(
	llm communityAnalyzer,
	blogs *repositories.BlogRepository,
	portfolios *repositories.PortfolioRepository,
	analyses *repositories.ContentAnalysisRepository,
	reports *repositories.CommunityAnalyticsRepository,
	aiLogs aiLogStore,
) *AnalyticsService {
	return &AnalyticsService{
		llm:        llm,
		blogs:      blogs,
		portfolios: portfolios,
		analyses:   analyses,
		reports:    reports,
		aiLogs:     aiLogs,
	}
}

// ListReports 는 기간별 최신 리포트를 limit 개까지 반환한다.
func (s *AnalyticsService) ListReports(ctx context.Context, period string, limit int64) ([]models.CommunityAnalytics, error) {
	if !models.ValidPeriod(period) {
		return nil, fmt.Errorf("invalid period: %s", period)
	}
	return s.reports.ListByPeriod(ctx, period, limit)
}

// periodRange 는 기간 문자열에 해당하는 [start, end] 윈도우를 계산한다.
func periodRange(period string, now time.Time) (time.Time, time.Time) {
	switch period {
	case models.PeriodDaily:
		return now.AddDate(0, 0, -1), now
	case models.PeriodMonthly:
		return now.AddDate(0, -1, 0), now
	default:
		return now.AddDate(0, 0, -7), now
	}
}

// GenerateReport 는 주어진 기간의 커뮤니티 리포트를 새로 생성해 저장한다.
func (s *AnalyticsService) GenerateReport(ctx context.Context, period string) (*models.CommunityAnalytics, error) {
	if !models.ValidPeriod(period) {
		return nil, fmt.Errorf("invalid period: %s", period)
	}
	start, end := periodRange(period, time.Now())

	blogs, err := s.blogs.ListPublishedBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	portfolios, err := s.portfolios.ListPublishedBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	contentAnalyses, err := s.analyses.ListProcessedBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	posts := make([]analyzer.CommunityPostSample, 0, len(blogs)+len(portfolios))
	totalWords := 0
	authors := map[string]struct{}{}
	for _, b := range blogs {
		posts = append(posts, analyzer.CommunityPostSample{
			Title:      b.Title,
			Author:     b.Author,
			CreatedAt:  b.CreatedAt,
			Categories: b.Tags,
		})
		totalWords += len(strings.Fields(b.Content))
		authors[b.AuthorID] = struct{}{}
	}
	for _, p := range portfolios {
		posts = append(posts, analyzer.CommunityPostSample{
			Title:      p.Title,
			Author:     p.Author,
			CreatedAt:  p.CreatedAt,
			Categories: p.Technologies,
		})
		totalWords += len(strings.Fields(p.Content))
		authors[p.AuthorID] = struct{}{}
	}

	postCount := len(posts)
	avgWords := 0.0
	if postCount > 0 {
		avgWords = float64(totalWords) / float64(postCount)
	}

	result, callLog := s.llm.AnalyzeCommunityTrends(ctx, analyzer.CommunityInput{
		Posts: posts,
		Start: start,
		End:   end,
	})
	s.recordCallLog(ctx, callLog)

	doc := &models.CommunityAnalytics{
		Period:    period,
		StartDate: start,
		EndDate:   end,
		ContentStats: models.ContentStats{
			TotalPosts:          len(blogs),
			TotalPortfolios:     len(portfolios),
			TotalAuthors:        len(authors),
			AverageWordsPerPost: avgWords,
			TotalWordCount:      totalWords,
		},
		TopicTrends:            result.TopicTrends,
		SentimentAnalysis:      sentimentFromAnalyses(contentAnalyses, result.SentimentAnalysis.Trending),
		ComplexityDistribution: complexityFromAnalyses(contentAnalyses),
		MostActiveAuthors:      rankAuthors(blogs, portfolios, contentAnalyses),
		CommunityEngagement:    engagementFromAnalyses(contentAnalyses, len(authors), postCount),
		Insights:               result.Insights,
		Predictions:            result.Predictions,
		GeneratedAt:            time.Now(),
		ModelVersion:           analyzer.ModelVersion,
	}

	if _, err := s.reports.Insert(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// sentimentFromAnalyses 는 저장된 콘텐츠 분석에서 감성 분포를 집계한다.
// trending 판정은 LLM 결과를 그대로 사용한다.
func sentimentFromAnalyses(analyses []models.ContentAnalysis, trending string) models.CommunitySentiment {
	total := len(analyses)
	denominator := total
	if denominator == 0 {
		denominator = 1
	}

	counts := map[string]int{}
	scoreSum := 0.0
	for _, a := range analyses {
		counts[a.Sentiment.Overall]++
		scoreSum += a.Sentiment.Score
	}

	pct := func(n int) int {
		return int(math.Round(float64(n) / float64(denominator) * 100))
	}

	return models.CommunitySentiment{
		Overall: models.SentimentDistribution{
			Positive:     pct(counts[models.SentimentPositive]),
			Negative:     pct(counts[models.SentimentNegative]),
			Neutral:      pct(counts[models.SentimentNeutral]),
			AverageScore: scoreSum / float64(denominator),
		},
		Trending: trending,
	}
}

func complexityFromAnalyses(analyses []models.ContentAnalysis) models.ComplexityDistribution {
	denominator := len(analyses)
	if denominator == 0 {
		denominator = 1
	}

	counts := map[string]int{}
	scoreSum := 0.0
	for _, a := range analyses {
		counts[a.Complexity.Level]++
		scoreSum += a.Complexity.Score
	}

	pct := func(n int) int {
		return int(math.Round(float64(n) / float64(denominator) * 100))
	}

	return models.ComplexityDistribution{
		Beginner:     pct(counts[models.ComplexityBeginner]),
		Intermediate: pct(counts[models.ComplexityIntermediate]),
		Advanced:     pct(counts[models.ComplexityAdvanced]),
		AverageScore: scoreSum / float64(denominator),
	}
}

// rankAuthors 는 게시물 수 기준 상위 5명의 작성자 통계를 계산한다.
func rankAuthors(blogs []models.Blog, portfolios []models.Portfolio, analyses []models.ContentAnalysis) []models.AuthorRanking {
	type authorAgg struct {
		name       string
		postsCount int
		topics     []string
	}

	aggs := map[string]*authorAgg{}
	add := func(authorID, name string, topics []string) {
		agg, ok := aggs[authorID]
		if !ok {
			agg = &authorAgg{name: name}
			aggs[authorID] = agg
		}
		agg.postsCount++
		agg.topics = append(agg.topics, topics...)
	}
	for _, b := range blogs {
		add(b.AuthorID, b.Author, b.Tags)
	}
	for _, p := range portfolios {
		add(p.AuthorID, p.Author, p.Technologies)
	}

	sentiments := map[string][]float64{}
	for _, a := range analyses {
		sentiments[a.AuthorID] = append(sentiments[a.AuthorID], a.Sentiment.Score)
	}

	rankings := make([]models.AuthorRanking, 0, len(aggs))
	for authorID, agg := range aggs {
		avgSentiment := 0.0
		if scores := sentiments[authorID]; len(scores) > 0 {
			sum := 0.0
			for _, s := range scores {
				sum += s
			}
			avgSentiment = sum / float64(len(scores))
		}

		seen := map[string]struct{}{}
		topTopics := []string{}
		for _, topic := range agg.topics {
			if _, ok := seen[topic]; ok {
				continue
			}
			seen[topic] = struct{}{}
			topTopics = append(topTopics, topic)
			if len(topTopics) == 3 {
				break
			}
		}

		rankings = append(rankings, models.AuthorRanking{
			Name:             agg.name,
			UserID:           authorID,
			PostsCount:       agg.postsCount,
			AverageSentiment: avgSentiment,
			TopTopics:        topTopics,
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].PostsCount > rankings[j].PostsCount
	})
	if len(rankings) > 5 {
		rankings = rankings[:5]
	}
	return rankings
}

func engagementFromAnalyses(analyses []models.ContentAnalysis, authorCount, postCount int) models.CommunityEngagement {
	denominator := len(analyses)
	if denominator == 0 {
		denominator = 1
	}
	readingSum := 0
	for _, a := range analyses {
		readingSum += a.ReadingTimeMinutes
	}

	diversity := float64(authorCount) / 10
	if diversity > 1 {
		diversity = 1
	}
	sharing := float64(postCount) / 20
	if sharing > 1 {
		sharing = 1
	}

	return models.CommunityEngagement{
		AverageReadingTime:    float64(readingSum) / float64(denominator),
		ContentCompletionRate: 0.75,
		DiversityIndex:        diversity,
		KnowledgeSharingScore: sharing,
	}
}

func (s *AnalyticsService) recordCallLog(ctx context.Context, callLog analyzer.CallLog) {
	if s.aiLogs == nil {
		return
	}
	_, err := s.aiLogs.Insert(ctx, models.AILog{
		Operation:       callLog.Operation,
		SubjectID:       callLog.SubjectID,
		ModelName:       callLog.ModelName,
		DurationMs:      callLog.DurationMs,
		Success:         callLog.Success,
		ErrorMessage:    callLog.ErrorMessage,
		ResponseExcerpt: callLog.ResponseExcerpt,
		RequestedAt:     callLog.RequestedAt,
		CompletedAt:     callLog.CompletedAt,
	})
	if err != nil {
		logger.WarnWithFields("recording ai log failed", logger.Fields{
			"operation": callLog.Operation,
			"error":     err.Error(),
		})
	}
}
