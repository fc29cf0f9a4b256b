// Package analyzer wraps the Gemini API for the three content-intelligence
// passes: per-content analysis, per-user interest profiling and
// community-wide trend reports. Every Analyze method degrades to a static
// fallback result on failure instead of returning an error; the CallLog it
// returns tells the caller what actually happened.
package analyzer

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"ai-edu-portal/analyzer/quota"
	"ai-edu-portal/config"
	"ai-edu-portal/models"
)

// ModelVersion tags stored analysis documents with the prompt/schema
// revision that produced them.
const ModelVersion = "1.0"

const responseExcerptLimit = 500

// ContentInput identifies one blog or portfolio item to analyze.
type ContentInput struct {
	ContentID   string
	ContentType string
	Title       string
	Body        string
	Author      string
}

// HistoryItem is one entry of a user's reading history.
type HistoryItem struct {
	Title            string
	TimeSpentMinutes int
	Completed        bool
	Categories       []string
	Sentiment        string
}

// CreatedItem is one piece of content the user authored.
type CreatedItem struct {
	Title      string
	Categories []string
}

// UserInput is the behavioral evidence for a user-interest analysis.
type UserInput struct {
	UserID         string
	UserName       string
	UserEmail      string
	ContentHistory []HistoryItem
	CreatedContent []CreatedItem
}

// CommunityPostSample is one published item included in a community report.
type CommunityPostSample struct {
	Title      string
	Author     string
	CreatedAt  time.Time
	Categories []string
}

// CommunityInput is the post sample and time window for a community report.
type CommunityInput struct {
	Posts []CommunityPostSample
	Start time.Time
	End   time.Time
}

// ContentResult is the LLM-derived portion of a content analysis document.
type ContentResult struct {
	Summary           string
	KeyTopics         []string
	Sentiment         models.Sentiment
	Complexity        models.Complexity
	Categories        []string
	ExtractedConcepts []models.ExtractedConcept
	LanguageMetrics   models.LanguageMetrics
	AIInsights        models.ContentAIInsights
}

// ReadingPreference is the LLM-supplied slice of a user's reading behavior.
// The counting aggregates are computed locally by the caller.
type ReadingPreference struct {
	PreferredComplexity string
	EngagementScore     float64
}

// UserInterestResult is the LLM-derived portion of a user interest profile.
type UserInterestResult struct {
	Interests        []models.Interest
	ReadingBehavior  ReadingPreference
	SentimentProfile models.SentimentProfile
	Recommendations  models.InterestRecommendations
	AIInsights       models.UserAIInsights
}

// CommunityResult is the LLM-derived portion of a community report.
type CommunityResult struct {
	TopicTrends       []models.TopicTrend
	SentimentAnalysis models.CommunitySentiment
	Insights          models.CommunityInsights
	Predictions       models.CommunityPredictions
}

// CallLog records one analysis attempt for the ai_logs audit trail.
// Success=false with a result still returned means the fallback was used.
type CallLog struct {
	Operation       string
	SubjectID       string
	ModelName       string
	DurationMs      int64
	Success         bool
	ErrorMessage    string
	ResponseExcerpt string
	RequestedAt     time.Time
	CompletedAt     time.Time
}

// Analyzer 는 Gemini 기반 분석 클라이언트다. 모든 Analyze 메서드는 실패 시
// 정적 폴백 결과를 반환하며 호출자에게 에러를 전파하지 않는다.
type Analyzer struct {
	apiKey          string
	modelName       string
	bodyPromptLimit int
	sampleSize      int
	limiter         *quota.AnalysisQuotaLimiter
}

// New builds an Analyzer from the application config.
func New() *Analyzer {
	cfg := config.GetConfig()
	return &Analyzer{
		apiKey:          cfg.GeminiApiKey,
		modelName:       cfg.GeminiModel,
		bodyPromptLimit: cfg.Analysis.BodyPromptLimit,
		sampleSize:      cfg.Community.SampleSize,
		limiter:         quota.NewFromConfig(cfg),
	}
}

// AnalyzeContent runs the per-content analysis pass. It never fails: any
// quota, transport or parse problem yields the static fallback result.
func (a *Analyzer) AnalyzeContent(ctx context.Context, in ContentInput) (*ContentResult, CallLog) {
	log := a.newCallLog("content_analysis", in.ContentID)

	prompt := buildContentPrompt(in, a.bodyPromptLimit)
	response, err := a.generate(ctx, &log, CONTENT_SYSTEM_INSTRUCTION, prompt, 0.1, 2000)
	if err != nil {
		return fallbackContentResult(in), finishCallLog(log, err)
	}

	result, err := parseContentAnalysis(response)
	if err != nil {
		return fallbackContentResult(in), finishCallLog(log, err)
	}
	return result, finishCallLog(log, nil)
}

// AnalyzeUserInterests runs the per-user interest profiling pass.
func (a *Analyzer) AnalyzeUserInterests(ctx context.Context, in UserInput) (*UserInterestResult, CallLog) {
	log := a.newCallLog("user_interest_analysis", in.UserID)

	prompt := buildUserInterestPrompt(in)
	response, err := a.generate(ctx, &log, USER_SYSTEM_INSTRUCTION, prompt, 0.2, 1500)
	if err != nil {
		return fallbackUserInterestResult(), finishCallLog(log, err)
	}

	result, err := parseUserInterest(response)
	if err != nil {
		return fallbackUserInterestResult(), finishCallLog(log, err)
	}
	return result, finishCallLog(log, nil)
}

// AnalyzeCommunityTrends runs the community-wide trend pass.
func (a *Analyzer) AnalyzeCommunityTrends(ctx context.Context, in CommunityInput) (*CommunityResult, CallLog) {
	log := a.newCallLog("community_analysis", "")

	prompt := buildCommunityPrompt(in, a.sampleSize)
	response, err := a.generate(ctx, &log, COMMUNITY_SYSTEM_INSTRUCTION, prompt, 0.3, 2000)
	if err != nil {
		return fallbackCommunityResult(), finishCallLog(log, err)
	}

	result, err := parseCommunityAnalysis(response)
	if err != nil {
		return fallbackCommunityResult(), finishCallLog(log, err)
	}
	return result, finishCallLog(log, nil)
}

// generate 는 쿼터 확인 후 단일 Gemini 호출을 수행하고 응답 텍스트를 반환한다.
func (a *Analyzer) generate(ctx context.Context, log *CallLog, systemInstruction, prompt string, temperature float32, maxTokens int32) (string, error) {
	ok, err := a.limiter.WaitAndReserve(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("daily analysis quota exhausted")
	}

	if a.apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: a.apiKey,
	})
	if err != nil {
		return "", err
	}

	result, err := client.Models.GenerateContent(
		ctx,
		a.modelName,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
			Temperature:       genai.Ptr(temperature),
			MaxOutputTokens:   maxTokens,
		},
	)
	if err != nil {
		return "", err
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from LLM")
	}

	log.ResponseExcerpt = excerpt(text, responseExcerptLimit)
	return text, nil
}

func (a *Analyzer) newCallLog(operation, subjectID string) CallLog {
	return CallLog{
		Operation:   operation,
		SubjectID:   subjectID,
		ModelName:   a.modelName,
		RequestedAt: time.Now(),
	}
}

func finishCallLog(log CallLog, err error) CallLog {
	log.CompletedAt = time.Now()
	log.DurationMs = log.CompletedAt.Sub(log.RequestedAt).Milliseconds()
	if err != nil {
		log.Success = false
		log.ErrorMessage = err.Error()
	} else {
		log.Success = true
	}
	return log
}

func excerpt(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
