package ports

import (
	"context"

	"github.com/FatimaZahraMH/blog-backend/internal/core/domain"
)

// CommentRepository defines the persistence interface for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	FindByArticle(ctx context.Context, articleID string, page PageRequest) ([]domain.Comment, int64, error)
	DeleteByArticle(ctx context.Context, articleID string) error
}
