package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"ai-edu-portal/models"
	"ai-edu-portal/repositories"
)

var (
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("not allowed to modify this resource")
)

// BlogService encapsulates business logic for blog posts.
//
// - 생성/수정 시 슬러그를 발급하고 백그라운드 콘텐츠 분석을 예약한다.
// - 수정/삭제는 작성자 본인 또는 admin 만 가능하다.
type BlogService struct {
	blogs    *repositories.BlogRepository
	analysis *AnalysisService
}

func NewBlogService(blogs *repositories.BlogRepository, analysis *AnalysisService) *BlogService {
	return &BlogService{blogs: blogs, analysis: analysis}
}

type CreateBlogInput struct {
	Title     string
	Content   string
	Tags      []string
	Published bool
}

type UpdateBlogInput struct {
	Title     *string
	Content   *string
	Tags      []string
	Published *bool
}

func (s *BlogService) Create(ctx context.Context, in CreateBlogInput, author *models.User) (*models.Blog, error) {
	slug, err := uniqueSlug(ctx, s.blogs, in.Title)
	if err != nil {
		return nil, err
	}

	b := &models.Blog{
		Title:     in.Title,
		Content:   in.Content,
		Author:    author.Name,
		AuthorID:  author.ID.Hex(),
		Tags:      in.Tags,
		Published: in.Published,
		Slug:      slug,
	}
	res, err := s.blogs.Insert(ctx, b)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid
	}

	s.scheduleAnalysis(b)
	return b, nil
}

func (s *BlogService) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	b, err := s.blogs.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *BlogService) ListPublished(ctx context.Context, limit int64) ([]models.Blog, error) {
	return s.blogs.ListPublished(ctx, limit)
}

func (s *BlogService) ListByAuthorID(ctx context.Context, authorID string) ([]models.Blog, error) {
	return s.blogs.ListByAuthorID(ctx, authorID)
}

func (s *BlogService) Update(ctx context.Context, slug string, in UpdateBlogInput, requester *models.User) (*models.Blog, error) {
	existing, err := s.blogs.FindByIDOrSlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !canModify(existing.AuthorID, requester) {
		return nil, ErrForbidden
	}

	set := bson.M{}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Content != nil {
		set["content"] = *in.Content
	}
	if in.Tags != nil {
		set["tags"] = in.Tags
	}
	if in.Published != nil {
		set["published"] = *in.Published
	}

	updated, err := s.blogs.UpdateBySlug(ctx, existing.Slug, set)
	if err != nil {
		return nil, err
	}

	s.scheduleAnalysis(updated)
	return updated, nil
}

func (s *BlogService) Delete(ctx context.Context, slug string, requester *models.User) error {
	existing, err := s.blogs.FindByIDOrSlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}
	if !canModify(existing.AuthorID, requester) {
		return ErrForbidden
	}
	return s.blogs.DeleteBySlug(ctx, existing.Slug)
}

func (s *BlogService) scheduleAnalysis(b *models.Blog) {
	if s.analysis == nil {
		return
	}
	s.analysis.ScheduleAnalysis(AnalysisTarget{
		ContentID:   b.ID.Hex(),
		ContentType: models.ContentTypeBlog,
		Title:       b.Title,
		Body:        b.Content,
		Author:      b.Author,
		AuthorID:    b.AuthorID,
	})
}

// canModify 는 작성자 본인이거나 admin 역할인 경우에만 true 를 반환한다.
func canModify(authorID string, requester *models.User) bool {
	if requester == nil {
		return false
	}
	return requester.Role == models.RoleAdmin || requester.ID.Hex() == authorID
}
