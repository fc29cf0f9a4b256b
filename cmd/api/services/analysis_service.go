package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"ai-edu-portal/analyzer"
	"ai-edu-portal/cmd/api/trace"
	"ai-edu-portal/cmd/internal/logger"
	"ai-edu-portal/config"
	"ai-edu-portal/models"
)

// contentAnalyzer 는 테스트에서 LLM 호출을 대체하기 위한 최소 인터페이스다.
type contentAnalyzer interface {
	AnalyzeContent(ctx context.Context, in analyzer.ContentInput) (*analyzer.ContentResult, analyzer.CallLog)
}

type analysisStore interface {
	FindByContentID(ctx context.Context, contentID string) (*models.ContentAnalysis, error)
	UpsertByContentID(ctx context.Context, a *models.ContentAnalysis) (*models.ContentAnalysis, error)
	ListByAuthorID(ctx context.Context, authorID string) ([]models.ContentAnalysis, error)
}

type aiLogStore interface {
	Insert(ctx context.Context, doc models.AILog) (*mongo.InsertOneResult, error)
}

type blogResolver interface {
	FindByIDOrSlug(ctx context.Context, idOrSlug string) (*models.Blog, error)
}

type portfolioResolver interface {
	FindByIDOrSlug(ctx context.Context, idOrSlug string) (*models.Portfolio, error)
}

// AnalysisService 는 콘텐츠 생성/수정 시점의 백그라운드 분석과
// 운영용 배치 재분석을 담당한다. 분석 실패는 호출자(HTTP 요청)에
// 전파되지 않고 로그로만 남는다.
type AnalysisService struct {
	llm        contentAnalyzer
	analyses   analysisStore
	aiLogs     aiLogStore
	blogs      blogResolver
	portfolios portfolioResolver

	triggerDelay time.Duration
	batchSize    int
	batchDelay   time.Duration

	// sleep 은 테스트에서 대기를 생략할 수 있도록 주입 가능하게 둔다.
	sleep func(time.Duration)

	wg sync.WaitGroup
}

// AnalysisTarget identifies one content item queued for analysis.
type AnalysisTarget struct {
	ContentID   string
	ContentType string
	Title       string
	Body        string
	Author      string
	AuthorID    string
}

func NewAnalysisService(llm contentAnalyzer, analyses analysisStore, aiLogs aiLogStore, blogs blogResolver, portfolios portfolioResolver) *AnalysisService {
	cfg := config.GetConfig().Analysis
	return &AnalysisService{
		llm:          llm,
		analyses:     analyses,
		aiLogs:       aiLogs,
		blogs:        blogs,
		portfolios:   portfolios,
		triggerDelay: time.Duration(cfg.TriggerDelayMs) * time.Millisecond,
		batchSize:    cfg.BatchSize,
		batchDelay:   time.Duration(cfg.BatchDelayMs) * time.Millisecond,
		sleep:        time.Sleep,
	}
}

// ScheduleAnalysis 는 콘텐츠 저장 직후 백그라운드 분석을 예약한다.
// 호출자는 즉시 리턴받으며, 분석 결과/실패 여부를 알 수 없다.
func (s *AnalysisService) ScheduleAnalysis(target AnalysisTarget) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		// 본문 저장 트랜잭션이 먼저 완료되도록 잠시 대기한다.
		s.sleep(s.triggerDelay)
		s.performAnalysis(context.Background(), target)
	}()
}

// BatchAnalyze 는 여러 콘텐츠를 batchSize 개씩 병렬로 분석한다.
// 그룹 사이에는 batchDelay 만큼 대기하며, 마지막 그룹 뒤에는 대기하지 않는다.
// 개별 항목의 실패는 다른 항목에 영향을 주지 않는다.
func (s *AnalysisService) BatchAnalyze(ctx context.Context, targets []AnalysisTarget) {
	for i := 0; i < len(targets); i += s.batchSize {
		end := i + s.batchSize
		if end > len(targets) {
			end = len(targets)
		}
		group := targets[i:end]

		var wg sync.WaitGroup
		for _, target := range group {
			wg.Add(1)
			go func(t AnalysisTarget) {
				defer wg.Done()
				s.performAnalysis(ctx, t)
			}(target)
		}
		wg.Wait()

		logger.InfoWithFields("batch analysis group completed", logger.Fields{
			"group": i/s.batchSize + 1,
			"size":  len(group),
		})

		if end < len(targets) {
			s.sleep(s.batchDelay)
		}
	}
}

// performAnalysis 는 단일 콘텐츠에 대한 분석 파이프라인 전체를 수행한다.
// 이미 분석된 콘텐츠는 건너뛴다. 존재 확인과 저장 사이에 원자성이 없으므로
// 동시에 두 번 트리거되면 둘 다 분석을 수행할 수 있는데, 저장이 upsert 라서
// 결과 문서는 한 건만 남는다.
func (s *AnalysisService) performAnalysis(ctx context.Context, target AnalysisTarget) {
	existing, err := s.analyses.FindByContentID(ctx, target.ContentID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		logger.ErrorWithFields("analysis existence check failed", logger.Fields{
			"content_id": target.ContentID,
			"error":      err.Error(),
		})
		return
	}
	if existing != nil {
		logger.DebugWithFields("analysis already exists, skipping", logger.Fields{
			"content_id":   target.ContentID,
			"content_type": target.ContentType,
		})
		return
	}

	if _, err := s.analyzeAndStore(ctx, target); err != nil {
		logger.ErrorWithFields("saving content analysis failed", logger.Fields{
			"content_id":   target.ContentID,
			"content_type": target.ContentType,
			"error":        err.Error(),
		})
	}
}

// analyzeAndStore 는 LLM 분석과 로컬 지표 계산을 수행하고 결과를 upsert 한다.
func (s *AnalysisService) analyzeAndStore(ctx context.Context, target AnalysisTarget) (*models.ContentAnalysis, error) {
	result, callLog := s.llm.AnalyzeContent(ctx, analyzer.ContentInput{
		ContentID:   target.ContentID,
		ContentType: target.ContentType,
		Title:       target.Title,
		Body:        target.Body,
		Author:      target.Author,
	})
	s.recordCallLog(ctx, callLog)

	metrics := analyzer.CalculateBasicMetrics(target.Body)

	doc := &models.ContentAnalysis{
		ContentID:          target.ContentID,
		ContentType:        target.ContentType,
		Title:              target.Title,
		Author:             target.Author,
		AuthorID:           target.AuthorID,
		Summary:            result.Summary,
		KeyTopics:          result.KeyTopics,
		Sentiment:          result.Sentiment,
		Complexity:         result.Complexity,
		Categories:         result.Categories,
		ExtractedConcepts:  result.ExtractedConcepts,
		WordCount:          metrics.WordCount,
		ReadingTimeMinutes: metrics.ReadingTimeMinutes,
		LanguageMetrics:    result.LanguageMetrics,
		AIInsights:         result.AIInsights,
		ModelVersion:       analyzer.ModelVersion,
	}
	// LLM 추정치 대신 로컬 계산값을 항상 사용한다.
	doc.LanguageMetrics.AverageSentenceLength = metrics.AverageSentenceLength

	saved, err := s.analyses.UpsertByContentID(ctx, doc)
	if err != nil {
		// 저장 실패는 로그만 남기고 메모리상의 결과를 그대로 돌려준다.
		logger.WarnWithFields("saving content analysis failed", logger.Fields{
			"content_id":   target.ContentID,
			"content_type": target.ContentType,
			"error":        err.Error(),
		})
		return doc, nil
	}

	logger.InfoWithFields("content analysis completed", logger.Fields{
		"content_id":   target.ContentID,
		"content_type": target.ContentType,
		"title":        target.Title,
		"fallback":     !callLog.Success,
	})
	return saved, nil
}

// AnalyzeByIDOrSlug 는 ObjectID hex 또는 슬러그로 콘텐츠를 찾아 동기적으로
// 분석한다. force 가 꺼져 있고 기존 분석이 있으면 그대로 반환한다.
// 콘텐츠 자체가 없으면 (nil, nil) 을 반환한다.
func (s *AnalysisService) AnalyzeByIDOrSlug(ctx context.Context, idOrSlug string, force bool) (*models.ContentAnalysis, error) {
	if !force {
		existing, err := s.analyses.FindByContentID(ctx, idOrSlug)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	target, ok, err := s.resolveTarget(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	if !force {
		// 슬러그로 들어온 요청도 저장 키(ObjectID hex) 기준으로 재확인한다.
		existing, err := s.analyses.FindByContentID(ctx, target.ContentID)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	return s.analyzeAndStore(ctx, target)
}

// resolveTarget 은 블로그를 먼저 찾고, 없으면 포트폴리오를 찾는다.
func (s *AnalysisService) resolveTarget(ctx context.Context, idOrSlug string) (AnalysisTarget, bool, error) {
	if s.blogs != nil {
		b, err := s.blogs.FindByIDOrSlug(ctx, idOrSlug)
		if err == nil {
			return AnalysisTarget{
				ContentID:   b.ID.Hex(),
				ContentType: models.ContentTypeBlog,
				Title:       b.Title,
				Body:        b.Content,
				Author:      b.Author,
				AuthorID:    b.AuthorID,
			}, true, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return AnalysisTarget{}, false, err
		}
	}

	if s.portfolios != nil {
		p, err := s.portfolios.FindByIDOrSlug(ctx, idOrSlug)
		if err == nil {
			return AnalysisTarget{
				ContentID:   p.ID.Hex(),
				ContentType: models.ContentTypePortfolio,
				Title:       p.Title,
				Body:        p.Content,
				Author:      p.Author,
				AuthorID:    p.AuthorID,
			}, true, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return AnalysisTarget{}, false, err
		}
	}

	return AnalysisTarget{}, false, nil
}

// GetByContentID 는 저장된 분석 결과를 조회한다. 없으면 (nil, nil)을 반환한다.
func (s *AnalysisService) GetByContentID(ctx context.Context, contentID string) (*models.ContentAnalysis, error) {
	a, err := s.analyses.FindByContentID(ctx, contentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

// ListByAuthorID 는 특정 작성자의 분석 결과 전체를 반환한다.
func (s *AnalysisService) ListByAuthorID(ctx context.Context, authorID string) ([]models.ContentAnalysis, error) {
	return s.analyses.ListByAuthorID(ctx, authorID)
}

func (s *AnalysisService) recordCallLog(ctx context.Context, callLog analyzer.CallLog) {
	requestID, spanID := trace.NextSpanID(ctx)
	logger.DebugWithFields("llm call finished", logger.Fields{
		"operation":   callLog.Operation,
		"subject_id":  callLog.SubjectID,
		"success":     callLog.Success,
		"duration_ms": callLog.DurationMs,
		"request_id":  requestID,
		"span_id":     spanID,
	})

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
