package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tipbook/models"
)

type newsService struct {
	uowFactory UnitOfWorkFactory
}

// NewNewsService creates a new news service
func NewNewsService(uowFactory UnitOfWorkFactory) NewsService {
	return &newsService{uowFactory: uowFactory}
}

func (s *newsService) Create(ctx context.Context, actor *models.User, article *models.News) (*models.News, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	if strings.TrimSpace(article.Title) == "" {
		return nil, NewValidationError("title is required")
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, NewValidationError("content is required")
	}
	if article.Visibility != models.VisibilityPublic && article.Visibility != models.VisibilityRestricted {
		return nil, NewValidationError("unknown visibility %q", article.Visibility)
	}
	if article.Category == "" {
		article.Category = models.NewsCategoryArticle
	}
	if !models.ValidNewsCategory(article.Category) {
		return nil, NewValidationError("unknown category %q", article.Category)
	}
	if article.Status == "" {
		article.Status = models.PredictionStatusPending
	}
	createdBy := actor.ID
	article.CreatedBy = &createdBy

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.NewsRepository().Create(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return article, nil
}

func (s *newsService) List(ctx context.Context, tier models.ViewerTier) ([]*models.News, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	articles, err := uow.NewsRepository().List(ctx, VisibleTo(tier))
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return articles, nil
}

func (s *newsService) Update(ctx context.Context, actor *models.User, id uuid.UUID, input UpdateNewsInput) (*models.News, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	article, err := uow.NewsRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	if article == nil {
		return nil, NewNotFoundError("article", id.String())
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, NewValidationError("title cannot be empty")
		}
		article.Title = *input.Title
	}
	if input.Content != nil {
		article.Content = *input.Content
	}
	if input.ImageURL != nil {
		article.ImageURL = input.ImageURL
	}
	if input.Visibility != nil {
		if *input.Visibility != models.VisibilityPublic && *input.Visibility != models.VisibilityRestricted {
			return nil, NewValidationError("unknown visibility %q", *input.Visibility)
		}
		article.Visibility = *input.Visibility
	}
	if input.Status != nil {
		switch *input.Status {
		case models.PredictionStatusPending, models.PredictionStatusWon, models.PredictionStatusLost:
			article.Status = *input.Status
		default:
			return nil, NewValidationError("unknown status %q", *input.Status)
		}
	}
	if input.Category != nil {
		if !models.ValidNewsCategory(*input.Category) {
			return nil, NewValidationError("unknown category %q", *input.Category)
		}
		article.Category = *input.Category
	}

	if err := uow.NewsRepository().Update(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to update article: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return article, nil
}

func (s *newsService) Delete(ctx context.Context, actor *models.User, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	article, err := uow.NewsRepository().GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get article: %w", err)
	}
	if article == nil {
		return NewNotFoundError("article", id.String())
	}

	if err := uow.NewsRepository().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
