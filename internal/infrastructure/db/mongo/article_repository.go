package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/FatimaZahraMH/blog-backend/internal/core/domain"
	"github.com/FatimaZahraMH/blog-backend/internal/core/ports"
)

const collectionArticles = "articles"

type ArticleRepository struct {
	col *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{col: db.Collection(collectionArticles)}
}

type articleDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Title          string             `bson:"title"`
	Slug           string             `bson:"slug"`
	Content        string             `bson:"content"`
	Summary        string             `bson:"summary,omitempty"`
	Published      bool               `bson:"published"`
	CoverImageURL  string             `bson:"cover_image_url,omitempty"`
	AuthorID       string             `bson:"author_id"`
	AuthorUsername string             `bson:"author_username"`
	Tags           []string           `bson:"tags,omitempty"`
	CommentCount   int64              `bson:"comment_count"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := articleToDoc(article)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}

	out := *article
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid.Hex()
	}
	return &out, nil
}

func (r *ArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(article.ID)
	if err != nil {
		return domain.ErrArticleNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":           article.Title,
		"slug":            article.Slug,
		"content":         article.Content,
		"summary":         article.Summary,
		"published":       article.Published,
		"cover_image_url": article.CoverImageURL,
		"tags":            article.Tags,
		"updated_at":      article.UpdatedAt,
	}}

	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrArticleNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrArticleNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ArticleRepository) FindBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *ArticleRepository) findOne(ctx context.Context, filter bson.M) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc articleDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}
	return docToArticle(&doc), nil
}

func (r *ArticleRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	count, err := r.col.CountDocuments(ctx, bson.M{"slug": slug}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count articles: %w", err)
	}
	return count > 0, nil
}

func (r *ArticleRepository) FindByAuthor(ctx context.Context, authorID string, published bool, page ports.PageRequest) ([]domain.Article, int64, error) {
	filter := bson.M{"author_id": authorID}
	if published {
		filter["published"] = true
	}
	return r.findPage(ctx, filter, page)
}

// Search applies the filter predicate. A nil Published filter defaults to
// published-only so drafts are never listed to anonymous callers.
func (r *ArticleRepository) Search(ctx context.Context, filter ports.ArticleFilter, page ports.PageRequest) ([]domain.Article, int64, error) {
	return r.findPage(ctx, searchQuery(filter), page)
}

// searchQuery translates an ArticleFilter into a Mongo filter document.
// Author names are matched case-insensitively, and the cover-image flag only
// narrows the result set when set to true.
func searchQuery(filter ports.ArticleFilter) bson.M {
	query := bson.M{}

	if filter.Keyword != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Keyword), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"content": pattern},
			bson.M{"summary": pattern},
		}
	}
	if filter.AuthorUsername != "" {
		query["author_username"] = primitive.Regex{
			Pattern: "^" + regexp.QuoteMeta(filter.AuthorUsername) + "$",
			Options: "i",
		}
	}
	if len(filter.Tags) > 0 {
		query["tags"] = bson.M{"$in": filter.Tags}
	}
	if filter.Published != nil {
		query["published"] = *filter.Published
	} else {
		query["published"] = true
	}

	created := bson.M{}
	if filter.CreatedAfter != nil {
		created["$gte"] = *filter.CreatedAfter
	}
	if filter.CreatedBefore != nil {
		created["$lte"] = *filter.CreatedBefore
	}
	if len(created) > 0 {
		query["created_at"] = created
	}

	if filter.HasCoverImage != nil && *filter.HasCoverImage {
		query["cover_image_url"] = bson.M{"$exists": true, "$ne": ""}
	}

	return query
}

func (r *ArticleRepository) findPage(ctx context.Context, filter bson.M, page ports.PageRequest) ([]domain.Article, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	sortBy := page.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	opts := options.Find().
		SetSort(bson.D{{Key: sortBy, Value: -1}}).
		SetSkip(int64(page.Page) * int64(page.Size)).
		SetLimit(int64(page.Size))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find articles: %w", err)
	}
	defer cur.Close(ctx)

	var docs []articleDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode articles: %w", err)
	}

	items := make([]domain.Article, 0, len(docs))
	for i := range docs {
		items = append(items, *docToArticle(&docs[i]))
	}
	return items, total, nil
}

func (r *ArticleRepository) IncCommentCount(ctx context.Context, id string, delta int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrArticleNotFound
	}

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$inc": bson.M{"comment_count": delta}})
	if err != nil {
		return fmt.Errorf("update comment count: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing slug lookups and search.
func (r *ArticleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "published", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "published", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func articleToDoc(a *domain.Article) articleDoc {
	return articleDoc{
		Title:          a.Title,
		Slug:           a.Slug,
		Content:        a.Content,
		Summary:        a.Summary,
		Published:      a.Published,
		CoverImageURL:  a.CoverImageURL,
		AuthorID:       a.AuthorID,
		AuthorUsername: a.AuthorUsername,
		Tags:           a.Tags,
		CommentCount:   a.CommentCount,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func docToArticle(doc *articleDoc) *domain.Article {
	return &domain.Article{
		ID:             doc.ID.Hex(),
		Title:          doc.Title,
		Slug:           doc.Slug,
		Content:        doc.Content,
		Summary:        doc.Summary,
		Published:      doc.Published,
		CoverImageURL:  doc.CoverImageURL,
		AuthorID:       doc.AuthorID,
		AuthorUsername: doc.AuthorUsername,
		Tags:           doc.Tags,
		CommentCount:   doc.CommentCount,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
}
