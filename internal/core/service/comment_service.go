package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/FatimaZahraMH/blog-backend/internal/core/domain"
	"github.com/FatimaZahraMH/blog-backend/internal/core/ports"
)

// CommentService implements the comment use cases. Like articles, ownership
// is checked inside every mutating operation.
type CommentService struct {
	comments ports.CommentRepository
	articles ports.ArticleRepository
	logger   zerolog.Logger
}

func NewCommentService(comments ports.CommentRepository, articles ports.ArticleRepository, logger zerolog.Logger) *CommentService {
	return &CommentService{comments: comments, articles: articles, logger: logger}
}

// Add attaches a comment to an existing article.
func (s *CommentService) Add(ctx context.Context, articleID, content string, actor domain.Identity) (*domain.Comment, error) {
	if _, err := s.articles.FindByID(ctx, articleID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.comments.Create(ctx, &domain.Comment{
		ArticleID:      articleID,
		Content:        content,
		AuthorID:       actor.UserID,
		AuthorUsername: actor.Username,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return nil, err
	}

	if err := s.articles.IncCommentCount(ctx, articleID, 1); err != nil {
		s.logger.Warn().Err(err).Str("article_id", articleID).Msg("failed to bump comment count")
	}

	s.logger.Info().Str("article_id", articleID).Str("author", actor.Username).Msg("comment added")
	return created, nil
}

func (s *CommentService) Update(ctx context.Context, id, content string, actor domain.Identity) (*domain.Comment, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(comment.AuthorID) {
		return nil, domain.ErrForbidden
	}

	comment.Content = content
	comment.UpdatedAt = time.Now().UTC()
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, id string, actor domain.Identity) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(comment.AuthorID) {
		return domain.ErrForbidden
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.articles.IncCommentCount(ctx, comment.ArticleID, -1); err != nil {
		s.logger.Warn().Err(err).Str("article_id", comment.ArticleID).Msg("failed to bump comment count")
	}

	s.logger.Info().Str("id", id).Str("actor", actor.Username).Msg("comment deleted")
	return nil
}

// ListByArticle returns a page of the article's comments, newest first.
func (s *CommentService) ListByArticle(ctx context.Context, articleID string, page ports.PageRequest) (*ports.CommentPage, error) {
	if _, err := s.articles.FindByID(ctx, articleID); err != nil {
		return nil, err
	}

	page = normalizePage(page)
	page.SortBy = "created_at"

	items, total, err := s.comments.FindByArticle(ctx, articleID, page)
	if err != nil {
		return nil, err
	}
	return &ports.CommentPage{
		Items:         items,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: total,
		TotalPages:    totalPages(total, page.Size),
	}, nil
}
