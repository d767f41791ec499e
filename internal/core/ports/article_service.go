package ports

import (
	"context"
	"io"

	"github.com/FatimaZahraMH/blog-backend/internal/core/domain"
)

// ArticleInput is the payload for creating or updating an article.
type ArticleInput struct {
	Title     string
	Content   string
	Summary   string
	Published bool
	Tags      []string
}

// ImageUpload describes an incoming cover image before validation.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// ArticlePage is a single page of search or listing results.
type ArticlePage struct {
	Items         []domain.Article
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}

// ArticleService is the article use-case surface. Every mutating operation
// takes the caller's identity and enforces ownership after the route-level
// role check has already passed.
type ArticleService interface {
	Create(ctx context.Context, in ArticleInput, actor domain.Identity) (*domain.Article, error)
	Update(ctx context.Context, id string, in ArticleInput, actor domain.Identity) (*domain.Article, error)
	Delete(ctx context.Context, id string, actor domain.Identity) error
	GetByID(ctx context.Context, id string) (*domain.Article, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Article, error)
	ListByAuthor(ctx context.Context, authorID string, page PageRequest) (*ArticlePage, error)
	Search(ctx context.Context, filter ArticleFilter, page PageRequest) (*ArticlePage, error)
	UploadCoverImage(ctx context.Context, id string, upload ImageUpload, actor domain.Identity) (*domain.Article, error)
	RemoveCoverImage(ctx context.Context, id string, actor domain.Identity) (*domain.Article, error)
}
