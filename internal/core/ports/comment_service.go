package ports

import (
	"context"

	"github.com/FatimaZahraMH/blog-backend/internal/core/domain"
)

// CommentPage is a single page of comments, newest first.
type CommentPage struct {
	Items         []domain.Comment
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}

type CommentService interface {
	Add(ctx context.Context, articleID, content string, actor domain.Identity) (*domain.Comment, error)
	Update(ctx context.Context, id, content string, actor domain.Identity) (*domain.Comment, error)
	Delete(ctx context.Context, id string, actor domain.Identity) error
	ListByArticle(ctx context.Context, articleID string, page PageRequest) (*CommentPage, error)
}
