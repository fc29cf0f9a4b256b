package services

import (
	"context"
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

type fakeUserAnalyzer struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeUserAnalyzer) AnalyzeUserInterests(ctx context.Context, in analyzer.UserInput) (*analyzer.UserInterestResult, analyzer.CallLog) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	return &analyzer.UserInterestResult{
		Interests: []models.Interest{
			{Topic: "Go", Category: "technology", Weight: 0.9, Confidence: 0.8},
		},
		ReadingBehavior: analyzer.ReadingPreference{PreferredComplexity: models.ComplexityIntermediate, EngagementScore: 0.7},
	}, analyzer.CallLog{Operation: "user_interest_analysis", SubjectID: in.UserID, Success: true}
}

func (f *fakeUserAnalyzer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeInterestStore struct {
	mu   sync.Mutex
	docs map[string]*models.UserInterest
}

func newFakeInterestStore() *fakeInterestStore {
	return &fakeInterestStore{docs: map[string]*models.UserInterest{}}
}

func (f *fakeInterestStore) FindByUserID(ctx context.Context, userID string) (*models.UserInterest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if doc, ok := f.docs[userID]; ok {
		copied := *doc
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeInterestStore) UpsertByUserID(ctx context.Context, u *models.UserInterest) (*models.UserInterest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *u
	f.docs[u.UserID] = &copied
	return &copied, nil
}

type fakeUserFinder struct {
	user *models.User
}

func (f *fakeUserFinder) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, mongo.ErrNoDocuments
}

type fakeBlogLister struct {
	blogs []models.Blog
}

func (f *fakeBlogLister) ListByAuthorID(ctx context.Context, authorID string) ([]models.Blog, error) {
	return f.blogs, nil
}

type fakePortfolioLister struct {
	portfolios []models.Portfolio
}

func (f *fakePortfolioLister) ListByAuthorID(ctx context.Context, authorID string) ([]models.Portfolio, error) {
	return f.portfolios, nil
}

func newTestUserService(llm *fakeUserAnalyzer, interests *fakeInterestStore) *UserService {
	config.InitApp()
	return NewUserService(llm, &fakeUserFinder{}, interests,
		&fakeBlogLister{}, &fakePortfolioLister{}, newFakeAnalysisStore(), &fakeAILogStore{})
}

func TestGetOrAnalyzeReusesFreshProfile(t *testing.T) {
	llm := &fakeUserAnalyzer{}
	interests := newFakeInterestStore()
	interests.docs["user-1"] = &models.UserInterest{
		UserID:       "user-1",
		UserName:     "Cached User",
		LastAnalyzed: time.Now().Add(-time.Hour),
	}
	s := newTestUserService(llm, interests)

	got, err := s.GetOrAnalyze(context.Background(), "user-1", false)
	assert.NoError(t, err)
	assert.Equal(t, "Cached User", got.UserName)
	assert.Equal(t, 0, llm.callCount())
}

func TestGetOrAnalyzeRegeneratesStaleProfile(t *testing.T) {
	llm := &fakeUserAnalyzer{}
	interests := newFakeInterestStore()
	stale := time.Now().Add(-8 * 24 * time.Hour)
	interests.docs["user-1"] = &models.UserInterest{
		UserID:       "user-1",
		UserName:     "Cached User",
		LastAnalyzed: stale,
	}
	s := newTestUserService(llm, interests)

	got, err := s.GetOrAnalyze(context.Background(), "user-1", false)
	assert.NoError(t, err)
	assert.Equal(t, 1, llm.callCount())
	assert.True(t, got.LastAnalyzed.After(stale))
	assert.Equal(t, "Go", got.Interests[0].Topic)

	// The regenerated profile replaces the stale one in the store.
	saved, err := interests.FindByUserID(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.True(t, saved.LastAnalyzed.After(stale))
}

func TestGetOrAnalyzeForceBypassesFreshProfile(t *testing.T) {
	llm := &fakeUserAnalyzer{}
	interests := newFakeInterestStore()
	interests.docs["user-1"] = &models.UserInterest{
		UserID:       "user-1",
		LastAnalyzed: time.Now().Add(-time.Minute),
	}
	s := newTestUserService(llm, interests)

	got, err := s.GetOrAnalyze(context.Background(), "user-1", true)
	assert.NoError(t, err)
	assert.Equal(t, 1, llm.callCount())
	assert.Equal(t, analyzer.ModelVersion, got.ModelVersion)
}

func TestGetOrAnalyzeMissingProfileAnalyzes(t *testing.T) {
	llm := &fakeUserAnalyzer{}
	interests := newFakeInterestStore()
	s := newTestUserService(llm, interests)

	got, err := s.GetOrAnalyze(context.Background(), "user-1", false)
	assert.NoError(t, err)
	assert.Equal(t, 1, llm.callCount())
	assert.Equal(t, "user-1", got.UserID)

	saved, err := interests.FindByUserID(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "user-1", saved.UserID)
}

func TestGetOrAnalyzeFillsUserNameFromAccount(t *testing.T) {
	llm := &fakeUserAnalyzer{}
	interests := newFakeInterestStore()
	s := newTestUserService(llm, interests)

	oid := primitive.NewObjectID()
	s.users = &fakeUserFinder{user: &models.User{ID: oid, Name: "Jamie", Email: "jamie@example.com"}}

	got, err := s.GetOrAnalyze(context.Background(), oid.Hex(), false)
	assert.NoError(t, err)
	assert.Equal(t, "Jamie", got.UserName)
	assert.Equal(t, "jamie@example.com", got.UserEmail)
}
