package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"ai-edu-portal/analyzer"
	"ai-edu-portal/config"
	"ai-edu-portal/models"
)

type fakeAnalyzer struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

func (f *fakeAnalyzer) AnalyzeContent(ctx context.Context, in analyzer.ContentInput) (*analyzer.ContentResult, analyzer.CallLog) {
	f.mu.Lock()
	f.calls = append(f.calls, in.ContentID)
	failed := f.fail[in.ContentID]
	f.mu.Unlock()

	log := analyzer.CallLog{Operation: "content_analysis", SubjectID: in.ContentID, Success: !failed}
	if failed {
		log.ErrorMessage = "simulated LLM failure"
		return &analyzer.ContentResult{Summary: fmt.Sprintf("Analysis of %q - Content covers educational topics with moderate complexity.", in.Title)}, log
	}
	return &analyzer.ContentResult{Summary: "summary for " + in.ContentID}, log
}

func (f *fakeAnalyzer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeAnalysisStore struct {
	mu   sync.Mutex
	docs map[string]*models.ContentAnalysis
}

func newFakeAnalysisStore() *fakeAnalysisStore {
	return &fakeAnalysisStore{docs: map[string]*models.ContentAnalysis{}}
}

func (f *fakeAnalysisStore) FindByContentID(ctx context.Context, contentID string) (*models.ContentAnalysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if doc, ok := f.docs[contentID]; ok {
		copied := *doc
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeAnalysisStore) UpsertByContentID(ctx context.Context, a *models.ContentAnalysis) (*models.ContentAnalysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *a
	f.docs[a.ContentID] = &copied
	return &copied, nil
}

func (f *fakeAnalysisStore) ListByAuthorID(ctx context.Context, authorID string) ([]models.ContentAnalysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ContentAnalysis
	for _, doc := range f.docs {
		if doc.AuthorID == authorID {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (f *fakeAnalysisStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.docs)
}

type fakeAILogStore struct {
	mu   sync.Mutex
	logs []models.AILog
}

func (f *fakeAILogStore) Insert(ctx context.Context, doc models.AILog) (*mongo.InsertOneResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, doc)
	return &mongo.InsertOneResult{}, nil
}

func newTestAnalysisService(llm contentAnalyzer, store *fakeAnalysisStore) (*AnalysisService, *[]time.Duration) {
	config.InitApp()

	var sleeps []time.Duration
	s := NewAnalysisService(llm, store, &fakeAILogStore{}, nil, nil)
	s.sleep = func(d time.Duration) {
		sleeps = append(sleeps, d)
	}
	return s, &sleeps
}

func TestScheduleAnalysisStoresResult(t *testing.T) {
	llm := &fakeAnalyzer{}
	store := newFakeAnalysisStore()
	s, _ := newTestAnalysisService(llm, store)

	s.ScheduleAnalysis(AnalysisTarget{
		ContentID:   "blog-1",
		ContentType: models.ContentTypeBlog,
		Title:       "Hello",
		Body:        "One sentence. Another one.",
		Author:      "Tester",
		AuthorID:    "user-1",
	})
	s.wg.Wait()

	assert.Equal(t, 1, llm.callCount())
	saved, err := store.FindByContentID(context.Background(), "blog-1")
	assert.NoError(t, err)
	assert.Equal(t, "summary for blog-1", saved.Summary)
	assert.Equal(t, 4, saved.WordCount)
	assert.Equal(t, 2.0, saved.LanguageMetrics.AverageSentenceLength)
	assert.Equal(t, analyzer.ModelVersion, saved.ModelVersion)
}

func TestScheduleAnalysisSkipsExistingAnalysis(t *testing.T) {
	llm := &fakeAnalyzer{}
	store := newFakeAnalysisStore()
	store.docs["blog-1"] = &models.ContentAnalysis{ContentID: "blog-1", Summary: "already there"}
	s, _ := newTestAnalysisService(llm, store)

	s.ScheduleAnalysis(AnalysisTarget{ContentID: "blog-1", ContentType: models.ContentTypeBlog})
	s.wg.Wait()

	assert.Equal(t, 0, llm.callCount())
	saved, _ := store.FindByContentID(context.Background(), "blog-1")
	assert.Equal(t, "already there", saved.Summary)
}

func TestBatchAnalyzeGroupsAndDelays(t *testing.T) {
	llm := &fakeAnalyzer{}
	store := newFakeAnalysisStore()
	s, sleeps := newTestAnalysisService(llm, store)

	var targets []AnalysisTarget
	for i := 0; i < 12; i++ {
		targets = append(targets, AnalysisTarget{
			ContentID:   fmt.Sprintf("blog-%d", i),
			ContentType: models.ContentTypeBlog,
			Title:       fmt.Sprintf("Post %d", i),
		})
	}

	s.BatchAnalyze(context.Background(), targets)

	assert.Equal(t, 12, llm.callCount())
	assert.Equal(t, 12, store.count())
	// 12 items with group size 5: groups of 5/5/2, delays between groups only.
	assert.Equal(t, []time.Duration{s.batchDelay, s.batchDelay}, *sleeps)
}

func TestBatchAnalyzeNoDelayForSingleGroup(t *testing.T) {
	llm := &fakeAnalyzer{}
	store := newFakeAnalysisStore()
	s, sleeps := newTestAnalysisService(llm, store)

	s.BatchAnalyze(context.Background(), []AnalysisTarget{
		{ContentID: "blog-0", ContentType: models.ContentTypeBlog},
		{ContentID: "blog-1", ContentType: models.ContentTypeBlog},
	})

	assert.Equal(t, 2, llm.callCount())
	assert.Empty(t, *sleeps)
}

func TestBatchAnalyzeFailureIsolation(t *testing.T) {
	llm := &fakeAnalyzer{fail: map[string]bool{"blog-1": true}}
	store := newFakeAnalysisStore()
	s, _ := newTestAnalysisService(llm, store)

	s.BatchAnalyze(context.Background(), []AnalysisTarget{
		{ContentID: "blog-0", ContentType: models.ContentTypeBlog, Title: "A"},
		{ContentID: "blog-1", ContentType: models.ContentTypeBlog, Title: "B"},
		{ContentID: "blog-2", ContentType: models.ContentTypeBlog, Title: "C"},
	})

	// The failed item still stores its fallback result; others are untouched.
	assert.Equal(t, 3, store.count())
	failed, _ := store.FindByContentID(context.Background(), "blog-1")
	assert.Contains(t, failed.Summary, `Analysis of "B"`)
	ok, _ := store.FindByContentID(context.Background(), "blog-0")
	assert.Equal(t, "summary for blog-0", ok.Summary)
}

func TestGetByContentIDNotFoundReturnsNil(t *testing.T) {
	s, _ := newTestAnalysisService(&fakeAnalyzer{}, newFakeAnalysisStore())

	a, err := s.GetByContentID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, a)
}

type fakeBlogResolver struct {
	blogs map[string]*models.Blog
}

func (f *fakeBlogResolver) FindByIDOrSlug(ctx context.Context, idOrSlug string) (*models.Blog, error) {
	if b, ok := f.blogs[idOrSlug]; ok {
		return b, nil
	}
	return nil, mongo.ErrNoDocuments
}

type fakePortfolioResolver struct {
	portfolios map[string]*models.Portfolio
}

func (f *fakePortfolioResolver) FindByIDOrSlug(ctx context.Context, idOrSlug string) (*models.Portfolio, error) {
	if p, ok := f.portfolios[idOrSlug]; ok {
		return p, nil
	}
	return nil, mongo.ErrNoDocuments
}

func testBlog(oid primitive.ObjectID, slug string) *models.Blog {
	return &models.Blog{
		ID:       oid,
		Title:    "Concurrency Patterns",
		Content:  "Channels carry values. Goroutines run them.",
		Author:   "Tester",
		AuthorID: "user-1",
		Slug:     slug,
	}
}

func TestAnalyzeByIDOrSlugReusesStoredAnalysis(t *testing.T) {
	llm := &fakeAnalyzer{}
	store := newFakeAnalysisStore()
	s, _ := newTestAnalysisService(llm, store)

	oid := primitive.NewObjectID()
	s.blogs = &fakeBlogResolver{blogs: map[string]*models.Blog{
		oid.Hex(): testBlog(oid, "concurrency-patterns"),
	}}

	first, err := s.AnalyzeByIDOrSlug(context.Background(), oid.Hex(), false)
	assert.NoError(t, err)
	assert.Equal(t, 1, llm.callCount())

	// 같은 콘텐츠를 다시 조회하면 저장된 분석을 그대로 돌려주고 LLM 을 호출하지 않는다.
	second, err := s.AnalyzeByIDOrSlug(context.Background(), oid.Hex(), false)
	assert.NoError(t, err)
	assert.Equal(t, 1, llm.callCount())
	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, 1, store.count())
}

func TestAnalyzeByIDOrSlugSlugHitsStoredAnalysis(t *testing.T) {
	llm := &fakeAnalyzer{}
	store := newFakeAnalysisStore()
	s, _ := newTestAnalysisService(llm, store)

	oid := primitive.NewObjectID()
	blog := testBlog(oid, "concurrency-patterns")
	s.blogs = &fakeBlogResolver{blogs: map[string]*models.Blog{
		oid.Hex():              blog,
		"concurrency-patterns": blog,
	}}
	// 분석 문서는 슬러그가 아니라 ObjectID hex 를 키로 저장된다.
	store.docs[oid.Hex()] = &models.ContentAnalysis{ContentID: oid.Hex(), Summary: "stored"}

	got, err := s.AnalyzeByIDOrSlug(context.Background(), "concurrency-patterns", false)
	assert.NoError(t, err)
	assert.Equal(t, "stored", got.Summary)
	assert.Equal(t, 0, llm.callCount())
}

func TestAnalyzeByIDOrSlugForceReplacesStoredAnalysis(t *testing.T) {
	llm := &fakeAnalyzer{}
	store := newFakeAnalysisStore()
	s, _ := newTestAnalysisService(llm, store)

	oid := primitive.NewObjectID()
	s.blogs = &fakeBlogResolver{blogs: map[string]*models.Blog{
		oid.Hex(): testBlog(oid, "concurrency-patterns"),
	}}
	store.docs[oid.Hex()] = &models.ContentAnalysis{ContentID: oid.Hex(), Summary: "stored"}

	got, err := s.AnalyzeByIDOrSlug(context.Background(), oid.Hex(), true)
	assert.NoError(t, err)
	assert.Equal(t, 1, llm.callCount())
	assert.Equal(t, "summary for "+oid.Hex(), got.Summary)

	// 강제 재분석은 기존 문서를 제자리에서 교체한다.
	assert.Equal(t, 1, store.count())
	saved, _ := store.FindByContentID(context.Background(), oid.Hex())
	assert.Equal(t, "summary for "+oid.Hex(), saved.Summary)
}

func TestAnalyzeByIDOrSlugFallsBackToPortfolio(t *testing.T) {
	llm := &fakeAnalyzer{}
	store := newFakeAnalysisStore()
	s, _ := newTestAnalysisService(llm, store)

	oid := primitive.NewObjectID()
	s.blogs = &fakeBlogResolver{blogs: map[string]*models.Blog{}}
	s.portfolios = &fakePortfolioResolver{portfolios: map[string]*models.Portfolio{
		"portfolio-site": {
			ID:       oid,
			Title:    "Portfolio Site",
			Content:  "Built with Go and Mongo.",
			Author:   "Tester",
			AuthorID: "user-1",
			Slug:     "portfolio-site",
		},
	}}

	got, err := s.AnalyzeByIDOrSlug(context.Background(), "portfolio-site", false)
	assert.NoError(t, err)
	assert.Equal(t, models.ContentTypePortfolio, got.ContentType)
	assert.Equal(t, oid.Hex(), got.ContentID)
}

func TestAnalyzeByIDOrSlugMissingContentReturnsNil(t *testing.T) {
	llm := &fakeAnalyzer{}
	store := newFakeAnalysisStore()
	s, _ := newTestAnalysisService(llm, store)
	s.blogs = &fakeBlogResolver{blogs: map[string]*models.Blog{}}
	s.portfolios = &fakePortfolioResolver{portfolios: map[string]*models.Portfolio{}}

	got, err := s.AnalyzeByIDOrSlug(context.Background(), "missing", false)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, llm.callCount())
}
