package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/FatimaZahraMH/blog-backend/internal/core/domain"
)

const articleCacheTTL = 5 * time.Minute

// ArticleCache is a read-through cache for article-by-slug lookups.
// Key format: article:slug:<slug>
//
// Cache failures are logged and treated as misses; MongoDB stays the source
// of truth. Only article documents are cached, never credentials or tokens.
type ArticleCache struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewArticleCache creates an ArticleCache wrapping the given Redis client.
func NewArticleCache(client *redis.Client, logger zerolog.Logger) *ArticleCache {
	return &ArticleCache{client: client, logger: logger}
}

// GetBySlug returns the cached article for slug, or (nil, false) on a miss.
func (c *ArticleCache) GetBySlug(ctx context.Context, slug string) (*domain.Article, bool) {
	data, err := c.client.Get(ctx, c.key(slug)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("slug", slug).Msg("article cache read failed")
		}
		return nil, false
	}

	var article domain.Article
	if err := json.Unmarshal(data, &article); err != nil {
		c.logger.Warn().Err(err).Str("slug", slug).Msg("article cache entry corrupt")
		return nil, false
	}
	return &article, true
}

// Set stores the article under its slug (expires after articleCacheTTL).
func (c *ArticleCache) Set(ctx context.Context, article *domain.Article) {
	data, err := json.Marshal(article)
	if err != nil {
		c.logger.Warn().Err(err).Str("slug", article.Slug).Msg("article cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, c.key(article.Slug), data, articleCacheTTL).Err(); err != nil {
		c.logger.Warn().Err(err).Str("slug", article.Slug).Msg("article cache write failed")
	}
}

// Invalidate drops the cached entry for slug.
func (c *ArticleCache) Invalidate(ctx context.Context, slug string) {
	if slug == "" {
		return
	}
	if err := c.client.Del(ctx, c.key(slug)).Err(); err != nil {
		c.logger.Warn().Err(err).Str("slug", slug).Msg("article cache invalidate failed")
	}
}

func (c *ArticleCache) key(slug string) string {
	return fmt.Sprintf("article:slug:%s", slug)
}
