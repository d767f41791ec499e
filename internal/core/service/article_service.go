package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"github.com/FatimaZahraMH/blog-backend/internal/core/domain"
	"github.com/FatimaZahraMH/blog-backend/internal/core/ports"
)

// ArticleCache abstracts the read cache for article-by-slug lookups (Redis).
type ArticleCache interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Article, bool)
	Set(ctx context.Context, article *domain.Article)
	Invalidate(ctx context.Context, slug string)
}

// ArticleService implements the article use cases. The route layer has
// already checked roles when a mutating call lands here; ownership is the
// final gate and is enforced on every update, delete and cover-image change.
type ArticleService struct {
	articles ports.ArticleRepository
	comments ports.CommentRepository
	images   ports.ImageStore
	cache    ArticleCache
	logger   zerolog.Logger
}

func NewArticleService(
	articles ports.ArticleRepository,
	comments ports.CommentRepository,
	images ports.ImageStore,
	cache ArticleCache,
	logger zerolog.Logger,
) *ArticleService {
	return &ArticleService{
		articles: articles,
		comments: comments,
		images:   images,
		cache:    cache,
		logger:   logger,
	}
}

// Create stores a new article authored by the caller.
func (s *ArticleService) Create(ctx context.Context, in ports.ArticleInput, actor domain.Identity) (*domain.Article, error) {
	slug, err := s.uniqueSlug(ctx, in.Title)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.articles.Create(ctx, &domain.Article{
		Title:          in.Title,
		Slug:           slug,
		Content:        in.Content,
		Summary:        in.Summary,
		Published:      in.Published,
		AuthorID:       actor.UserID,
		AuthorUsername: actor.Username,
		Tags:           normalizeTags(in.Tags),
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("slug", created.Slug).Str("author", actor.Username).Msg("article created")
	return created, nil
}

// Update rewrites an article's content. The slug is regenerated only when the
// title changes, so stable links survive content edits.
func (s *ArticleService) Update(ctx context.Context, id string, in ports.ArticleInput, actor domain.Identity) (*domain.Article, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(article.AuthorID) {
		return nil, domain.ErrForbidden
	}

	oldSlug := article.Slug
	if article.Title != in.Title {
		slug, err := s.uniqueSlug(ctx, in.Title)
		if err != nil {
			return nil, err
		}
		article.Slug = slug
	}
	article.Title = in.Title
	article.Content = in.Content
	article.Summary = in.Summary
	article.Published = in.Published
	article.Tags = normalizeTags(in.Tags)
	article.UpdatedAt = time.Now().UTC()

	if err := s.articles.Update(ctx, article); err != nil {
		return nil, err
	}
	s.invalidate(ctx, oldSlug)

	return article, nil
}

// Delete removes an article together with its comments and cover image.
func (s *ArticleService) Delete(ctx context.Context, id string, actor domain.Identity) error {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(article.AuthorID) {
		return domain.ErrForbidden
	}

	if article.CoverImageURL != "" {
		if err := s.images.Delete(article.CoverImageURL); err != nil {
			s.logger.Warn().Err(err).Str("url", article.CoverImageURL).Msg("failed to delete cover image")
		}
	}
	if err := s.comments.DeleteByArticle(ctx, id); err != nil {
		return fmt.Errorf("delete article comments: %w", err)
	}
	if err := s.articles.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, article.Slug)

	s.logger.Info().Str("id", id).Str("actor", actor.Username).Msg("article deleted")
	return nil
}

func (s *ArticleService) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	return s.articles.FindByID(ctx, id)
}

// GetBySlug serves reads through the cache; a miss falls back to the store
// and primes the cache.
func (s *ArticleService) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	if s.cache != nil {
		if article, ok := s.cache.GetBySlug(ctx, slug); ok {
			return article, nil
		}
	}

	article, err := s.articles.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, article)
	}
	return article, nil
}

// ListByAuthor returns the author's published articles, newest first.
func (s *ArticleService) ListByAuthor(ctx context.Context, authorID string, page ports.PageRequest) (*ports.ArticlePage, error) {
	page = normalizePage(page)
	items, total, err := s.articles.FindByAuthor(ctx, authorID, true, page)
	if err != nil {
		return nil, err
	}
	return articlePage(items, total, page), nil
}

func (s *ArticleService) Search(ctx context.Context, filter ports.ArticleFilter, page ports.PageRequest) (*ports.ArticlePage, error) {
	page = normalizePage(page)
	items, total, err := s.articles.Search(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	return articlePage(items, total, page), nil
}

// UploadCoverImage stores the new image, then replaces and deletes the old
// one.
func (s *ArticleService) UploadCoverImage(ctx context.Context, id string, upload ports.ImageUpload, actor domain.Identity) (*domain.Article, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(article.AuthorID) {
		return nil, domain.ErrForbidden
	}

	url, err := s.images.Store(upload)
	if err != nil {
		return nil, err
	}

	if article.CoverImageURL != "" {
		if err := s.images.Delete(article.CoverImageURL); err != nil {
			s.logger.Warn().Err(err).Str("url", article.CoverImageURL).Msg("failed to delete old cover image")
		}
	}
	article.CoverImageURL = url
	article.UpdatedAt = time.Now().UTC()

	if err := s.articles.Update(ctx, article); err != nil {
		return nil, err
	}
	s.invalidate(ctx, article.Slug)

	return article, nil
}

func (s *ArticleService) RemoveCoverImage(ctx context.Context, id string, actor domain.Identity) (*domain.Article, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(article.AuthorID) {
		return nil, domain.ErrForbidden
	}

	if article.CoverImageURL != "" {
		if err := s.images.Delete(article.CoverImageURL); err != nil {
			s.logger.Warn().Err(err).Str("url", article.CoverImageURL).Msg("failed to delete cover image")
		}
	}
	article.CoverImageURL = ""
	article.UpdatedAt = time.Now().UTC()

	if err := s.articles.Update(ctx, article); err != nil {
		return nil, err
	}
	s.invalidate(ctx, article.Slug)

	return article, nil
}

func (s *ArticleService) invalidate(ctx context.Context, slug string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, slug)
	}
}

// uniqueSlug derives a URL slug from the title and suffixes -1, -2, … until
// it is free.
func (s *ArticleService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slugify(title)
	if base == "" {
		base = "article"
	}

	slug := base
	for n := 1; ; n++ {
		exists, err := s.articles.ExistsBySlug(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("slug check: %w", err)
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

// slugify lowercases the title and reduces it to ascii letters and digits,
// collapsing everything in between to single dashes. Accented letters are
// NFD-decomposed first so they keep their base letter ("Café" → "cafe")
// instead of disappearing; the combining marks are dropped with the rest of
// the non-alphanumeric runes.
func slugify(title string) string {
	var b strings.Builder
	pending := false
	for _, r := range norm.NFD.String(strings.ToLower(title)) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_' || r == '.':
			pending = true
		}
	}
	return b.String()
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func articlePage(items []domain.Article, total int64, page ports.PageRequest) *ports.ArticlePage {
	return &ports.ArticlePage{
		Items:         items,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: total,
		TotalPages:    totalPages(total, page.Size),
	}
}
