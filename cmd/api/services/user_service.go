package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"ai-edu-portal/analyzer"
	"ai-edu-portal/cmd/internal/logger"
	"ai-edu-portal/config"
	"ai-edu-portal/models"
)

type userAnalyzer interface {
	AnalyzeUserInterests(ctx context.Context, in analyzer.UserInput) (*analyzer.UserInterestResult, analyzer.CallLog)
}

type interestStore interface {
	FindByUserID(ctx context.Context, userID string) (*models.UserInterest, error)
	UpsertByUserID(ctx context.Context, u *models.UserInterest) (*models.UserInterest, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type blogLister interface {
	ListByAuthorID(ctx context.Context, authorID string) ([]models.Blog, error)
}

type portfolioLister interface {
	ListByAuthorID(ctx context.Context, authorID string) ([]models.Portfolio, error)
}

// UserService 는 유저 관심사 분석 프로필을 관리한다.
//
// 프로필은 refreshWindow(기본 7일) 동안 캐시처럼 재사용되며,
// 강제 갱신(POST) 또는 기간 만료 시에만 LLM 분석을 다시 수행한다.
type UserService struct {
	llm        userAnalyzer
	users      userFinder
	interests  interestStore
	blogs      blogLister
	portfolios portfolioLister
	analyses   analysisStore
	aiLogs     aiLogStore

	refreshWindow time.Duration
}

func NewUserService(
	llm userAnalyzer,
	users userFinder,
	interests interestStore,
	blogs blogLister,
	portfolios portfolioLister,
	analyses analysisStore,
	aiLogs aiLogStore,
) *UserService {
	days := config.GetConfig().Analysis.UserRefreshDays
	return &UserService{
		llm:           llm,
		users:         users,
		interests:     interests,
		blogs:         blogs,
		portfolios:    portfolios,
		analyses:      analyses,
		aiLogs:        aiLogs,
		refreshWindow: time.Duration(days) * 24 * time.Hour,
	}
}

// GetOrAnalyze 는 유저 관심사 프로필을 반환한다. 최근 분석본이 있으면 그대로
// 반환하고, 없거나 오래됐거나 force 가 켜진 경우 새로 분석해 upsert 한다.
func (s *UserService) GetOrAnalyze(ctx context.Context, userID string, force bool) (*models.UserInterest, error) {
	existing, err := s.interests.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	if existing != nil && !force && time.Since(existing.LastAnalyzed) < s.refreshWindow {
		return existing, nil
	}
	return s.analyze(ctx, userID)
}

func (s *UserService) analyze(ctx context.Context, userID string) (*models.UserInterest, error) {
	userName := "Unknown User"
	userEmail := ""
	if oid, err := primitive.ObjectIDFromHex(userID); err == nil {
		if u, err := s.users.FindByID(ctx, oid); err == nil {
			userName = u.Name
			userEmail = u.Email
		}
	}

	blogs, err := s.blogs.ListByAuthorID(ctx, userID)
	if err != nil {
		return nil, err
	}
	portfolios, err := s.portfolios.ListByAuthorID(ctx, userID)
	if err != nil {
		return nil, err
	}
	contentAnalyses, err := s.analyses.ListByAuthorID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 실제 열람 추적이 없으므로 본인 콘텐츠의 분석 결과를 읽기 이력으로 삼는다.
	history := make([]analyzer.HistoryItem, 0, len(contentAnalyses))
	for _, a := range contentAnalyses {
		history = append(history, analyzer.HistoryItem{
			Title:            a.Title,
			TimeSpentMinutes: a.ReadingTimeMinutes,
			Completed:        true,
			Categories:       a.Categories,
			Sentiment:        a.Sentiment.Overall,
		})
	}

	created := make([]analyzer.CreatedItem, 0, len(blogs)+len(portfolios))
	for _, b := range blogs {
		created = append(created, analyzer.CreatedItem{Title: b.Title, Categories: b.Tags})
	}
	for _, p := range portfolios {
		created = append(created, analyzer.CreatedItem{Title: p.Title, Categories: p.Technologies})
	}

	result, callLog := s.llm.AnalyzeUserInterests(ctx, analyzer.UserInput{
		UserID:         userID,
		UserName:       userName,
		UserEmail:      userEmail,
		ContentHistory: history,
		CreatedContent: created,
	})
	s.recordCallLog(ctx, callLog)

	historyCount := len(history)
	denominator := historyCount
	if denominator == 0 {
		denominator = 1
	}

	totalReadingTime := 0
	topics := map[string]struct{}{}
	for _, item := range history {
		totalReadingTime += item.TimeSpentMinutes
		for _, c := range item.Categories {
			topics[c] = struct{}{}
		}
	}

	knowledgeGrowth := float64(len(topics)) / 10
	if knowledgeGrowth > 1 {
		knowledgeGrowth = 1
	}
	communityEngagement := 0.3
	if len(created) > 0 {
		communityEngagement = 0.8
	}

	doc := &models.UserInterest{
		UserID:    userID,
		UserName:  userName,
		UserEmail: userEmail,
		Interests: result.Interests,
		ReadingBehavior: models.ReadingBehavior{
			AverageReadingTime:  float64(totalReadingTime) / float64(denominator),
			PreferredComplexity: result.ReadingBehavior.PreferredComplexity,
			ReadingFrequency:    float64(historyCount) / 4,
			CompletionRate:      completionRate(history),
			EngagementScore:     result.ReadingBehavior.EngagementScore,
		},
		SentimentProfile: result.SentimentProfile,
		Recommendations:  result.Recommendations,
		Analytics: models.UserAnalytics{
			TotalContentViewed:      historyCount,
			TotalReadingTimeMinutes: totalReadingTime,
			UniqueTopicsExplored:    len(topics),
			KnowledgeGrowthScore:    knowledgeGrowth,
			CommunityEngagement:     communityEngagement,
		},
		AIInsights:   result.AIInsights,
		LastAnalyzed: time.Now(),
		ModelVersion: analyzer.ModelVersion,
	}

	return s.interests.UpsertByUserID(ctx, doc)
}

func completionRate(history []analyzer.HistoryItem) float64 {
	if len(history) == 0 {
		return 0
	}
	completed := 0
	for _, item := range history {
		if item.Completed {
			completed++
		}
	}
	return float64(completed) / float64(len(history))
}

func (s *UserService) recordCallLog(ctx context.Context, callLog analyzer.CallLog) {
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
