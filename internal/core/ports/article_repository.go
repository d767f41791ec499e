package ports

import (
	"context"
	"time"

	"github.com/FatimaZahraMH/blog-backend/internal/core/domain"
)

// ArticleFilter is the search predicate. Nil pointer fields mean "not
// filtered"; a nil Published defaults to published-only at query time so that
// drafts never leak into anonymous searches.
type ArticleFilter struct {
	Keyword        string
	AuthorUsername string
	Tags           []string
	Published      *bool
	CreatedAfter   *time.Time
	CreatedBefore  *time.Time
	HasCoverImage  *bool
}

// ArticleRepository defines the persistence interface for articles.
type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) (*domain.Article, error)
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Article, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	FindByAuthor(ctx context.Context, authorID string, published bool, page PageRequest) ([]domain.Article, int64, error)
	Search(ctx context.Context, filter ArticleFilter, page PageRequest) ([]domain.Article, int64, error)
	IncCommentCount(ctx context.Context, id string, delta int64) error
}
