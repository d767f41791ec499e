package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/FatimaZahraMH/blog-backend/internal/core/domain"
	"github.com/FatimaZahraMH/blog-backend/internal/core/ports"
)

type commentFixture struct {
	svc      *CommentService
	comments *stubCommentRepo
	articles *stubArticleRepo
}

func newCommentFixture(t *testing.T) (*commentFixture, *domain.Article) {
	t.Helper()
	f := &commentFixture{
		comments: newStubCommentRepo(),
		articles: newStubArticleRepo(),
	}
	f.svc = NewCommentService(f.comments, f.articles, zerolog.Nop())

	article, err := f.articles.Create(context.Background(), &domain.Article{
		Title:     "Host Article",
		Slug:      "host-article",
		AuthorID:  "u1",
		Published: true,
	})
	if err != nil {
		t.Fatalf("seed article: %v", err)
	}
	return f, article
}

func TestCommentService_Add(t *testing.T) {
	f, article := newCommentFixture(t)

	comment, err := f.svc.Add(context.Background(), article.ID, "nice post", authorBob)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if comment.ID == "" {
		t.Fatalf("comment id not assigned")
	}
	if comment.AuthorID != "u2" || comment.AuthorUsername != "bob" {
		t.Fatalf("author not denormalized: %+v", comment)
	}

	stored, _ := f.articles.FindByID(context.Background(), article.ID)
	if stored.CommentCount != 1 {
		t.Fatalf("comment count not bumped, got %d", stored.CommentCount)
	}
}

func TestCommentService_Add_UnknownArticle(t *testing.T) {
	f, _ := newCommentFixture(t)

	_, err := f.svc.Add(context.Background(), "missing", "hello", authorBob)
	if !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}

func TestCommentService_Update_OwnerOnly(t *testing.T) {
	f, article := newCommentFixture(t)
	comment, _ := f.svc.Add(context.Background(), article.ID, "original", authorBob)

	if _, err := f.svc.Update(context.Background(), comment.ID, "hacked", authorAlice); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	updated, err := f.svc.Update(context.Background(), comment.ID, "edited", authorBob)
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Content != "edited" {
		t.Fatalf("content not updated: %q", updated.Content)
	}
}

func TestCommentService_Update_AdminOverride(t *testing.T) {
	f, article := newCommentFixture(t)
	comment, _ := f.svc.Add(context.Background(), article.ID, "original", authorBob)

	updated, err := f.svc.Update(context.Background(), comment.ID, "moderated", adminCarol)
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.AuthorID != "u2" {
		t.Fatalf("comment author changed to %q", updated.AuthorID)
	}
}

func TestCommentService_Delete_DecrementsCount(t *testing.T) {
	f, article := newCommentFixture(t)
	comment, _ := f.svc.Add(context.Background(), article.ID, "bye", authorBob)

	if err := f.svc.Delete(context.Background(), comment.ID, authorBob); err != nil {
		t.Fatalf("delete: %v", err)
	}

	stored, _ := f.articles.FindByID(context.Background(), article.ID)
	if stored.CommentCount != 0 {
		t.Fatalf("comment count not decremented, got %d", stored.CommentCount)
	}
	if _, err := f.comments.FindByID(context.Background(), comment.ID); !errors.Is(err, domain.ErrCommentNotFound) {
		t.Fatalf("comment still present: %v", err)
	}
}

func TestCommentService_Delete_NonOwnerForbidden(t *testing.T) {
	f, article := newCommentFixture(t)
	comment, _ := f.svc.Add(context.Background(), article.ID, "mine", authorBob)

	if err := f.svc.Delete(context.Background(), comment.ID, authorAlice); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCommentService_Delete_NotFoundBeforeOwnership(t *testing.T) {
	f, _ := newCommentFixture(t)

	if err := f.svc.Delete(context.Background(), "missing", authorAlice); !errors.Is(err, domain.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}

func TestCommentService_ListByArticle(t *testing.T) {
	f, article := newCommentFixture(t)
	f.svc.Add(context.Background(), article.ID, "one", authorBob)
	f.svc.Add(context.Background(), article.ID, "two", authorAlice)

	page, err := f.svc.ListByArticle(context.Background(), article.ID, ports.PageRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.TotalElements != 2 {
		t.Fatalf("expected 2 comments, got %d", page.TotalElements)
	}
	if page.Size != 10 || page.Page != 0 {
		t.Fatalf("page not normalized: %+v", page)
	}
}

func TestCommentService_ListByArticle_UnknownArticle(t *testing.T) {
	f, _ := newCommentFixture(t)

	_, err := f.svc.ListByArticle(context.Background(), "missing", ports.PageRequest{})
	if !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}
