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

// PortfolioService encapsulates business logic for portfolio projects.
// 블로그와 같은 수명주기를 따르며, featured 정렬과 프로젝트 메타데이터가 추가된다.
type PortfolioService struct {
	portfolios *repositories.PortfolioRepository
	analysis   *AnalysisService
}

func NewPortfolioService(portfolios *repositories.PortfolioRepository, analysis *AnalysisService) *PortfolioService {
	return &PortfolioService{portfolios: portfolios, analysis: analysis}
}

type CreatePortfolioInput struct {
	Title        string
	Description  string
	Content      string
	Technologies []string
	ProjectURL   string
	GithubURL    string
	ImageURL     string
	Featured     bool
	Published    bool
}

type UpdatePortfolioInput struct {
	Title        *string
	Description  *string
	Content      *string
	Technologies []string
	ProjectURL   *string
	GithubURL    *string
	ImageURL     *string
	Featured     *bool
	Published    *bool
}

func (s *PortfolioService) Create(ctx context.Context, in CreatePortfolioInput, author *models.User) (*models.Portfolio, error) {
	slug, err := uniqueSlug(ctx, s.portfolios, in.Title)
	if err != nil {
		return nil, err
	}

	p := &models.Portfolio{
		Title:        in.Title,
		Description:  in.Description,
		Content:      in.Content,
		Author:       author.Name,
		AuthorID:     author.ID.Hex(),
		Technologies: in.Technologies,
		ProjectURL:   in.ProjectURL,
		GithubURL:    in.GithubURL,
		ImageURL:     in.ImageURL,
		Featured:     in.Featured,
		Published:    in.Published,
		Slug:         slug,
	}
	res, err := s.portfolios.Insert(ctx, p)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}

	s.scheduleAnalysis(p)
	return p, nil
}

func (s *PortfolioService) GetBySlug(ctx context.Context, slug string) (*models.Portfolio, error) {
	p, err := s.portfolios.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *PortfolioService) ListPublished(ctx context.Context, limit int64) ([]models.Portfolio, error) {
	return s.portfolios.ListPublished(ctx, limit)
}

func (s *PortfolioService) ListByAuthorID(ctx context.Context, authorID string) ([]models.Portfolio, error) {
	return s.portfolios.ListByAuthorID(ctx, authorID)
}

func (s *PortfolioService) Update(ctx context.Context, slug string, in UpdatePortfolioInput, requester *models.User) (*models.Portfolio, error) {
	existing, err := s.portfolios.FindByIDOrSlug(ctx, slug)
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
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.Content != nil {
		set["content"] = *in.Content
	}
	if in.Technologies != nil {
		set["technologies"] = in.Technologies
	}
	if in.ProjectURL != nil {
		set["project_url"] = *in.ProjectURL
	}
	if in.GithubURL != nil {
		set["github_url"] = *in.GithubURL
	}
	if in.ImageURL != nil {
		set["image_url"] = *in.ImageURL
	}
	if in.Featured != nil {
		set["featured"] = *in.Featured
	}
	if in.Published != nil {
		set["published"] = *in.Published
	}

	updated, err := s.portfolios.UpdateBySlug(ctx, existing.Slug, set)
	if err != nil {
		return nil, err
	}

	s.scheduleAnalysis(updated)
	return updated, nil
}

func (s *PortfolioService) Delete(ctx context.Context, slug string, requester *models.User) error {
	existing, err := s.portfolios.FindByIDOrSlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}
	if !canModify(existing.AuthorID, requester) {
		return ErrForbidden
	}
	return s.portfolios.DeleteBySlug(ctx, existing.Slug)
}

func (s *PortfolioService) scheduleAnalysis(p *models.Portfolio) {
	if s.analysis == nil {
		return
	}
	s.analysis.ScheduleAnalysis(AnalysisTarget{
		ContentID:   p.ID.Hex(),
		ContentType: models.ContentTypePortfolio,
		Title:       p.Title,
		Body:        p.Content,
		Author:      p.Author,
		AuthorID:    p.AuthorID,
	})
}
