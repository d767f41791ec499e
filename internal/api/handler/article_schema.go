package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/FatimaZahraMH/blog-backend/internal/core/domain"
	"github.com/FatimaZahraMH/blog-backend/internal/core/ports"
)

// --- Request / Response types ---

type articleRequest struct {
	Title     string   `json:"title"     validate:"required,max=255"`
	Content   string   `json:"content"   validate:"required"`
	Summary   string   `json:"summary"   validate:"max=500"`
	Published bool     `json:"published"`
	Tags      []string `json:"tags"      validate:"dive,max=50"`
}

type authorSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type articleResponse struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	Content       string        `json:"content"`
	Summary       string        `json:"summary,omitempty"`
	Published     bool          `json:"published"`
	CoverImageURL string        `json:"cover_image_url,omitempty"`
	Author        authorSummary `json:"author"`
	Tags          []string      `json:"tags"`
	CommentCount  int64         `json:"comment_count"`
	CreatedAt     string        `json:"created_at"`
	UpdatedAt     string        `json:"updated_at"`
}

type articlePageResponse struct {
	Content       []articleResponse `json:"content"`
	Page          int               `json:"page"`
	Size          int               `json:"size"`
	TotalElements int64             `json:"total_elements"`
	TotalPages    int               `json:"total_pages"`
	First         bool              `json:"first"`
	Last          bool              `json:"last"`
}

func toArticleResponse(a *domain.Article) articleResponse {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return articleResponse{
		ID:            a.ID,
		Title:         a.Title,
		Slug:          a.Slug,
		Content:       a.Content,
		Summary:       a.Summary,
		Published:     a.Published,
		CoverImageURL: a.CoverImageURL,
		Author:        authorSummary{ID: a.AuthorID, Username: a.AuthorUsername},
		Tags:          tags,
		CommentCount:  a.CommentCount,
		CreatedAt:     a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     a.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toArticlePageResponse(page *ports.ArticlePage) articlePageResponse {
	content := make([]articleResponse, 0, len(page.Items))
	for i := range page.Items {
		content = append(content, toArticleResponse(&page.Items[i]))
	}
	return articlePageResponse{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		First:         page.Page == 0,
		Last:          page.TotalPages == 0 || page.Page >= page.TotalPages-1,
	}
}

// --- Query parsing ---

// parsePage reads page/size/sort_by query params. Unparseable values fall
// back to defaults; range capping happens in the service.
func parsePage(c echo.Context) ports.PageRequest {
	page := ports.PageRequest{SortBy: c.QueryParam("sort_by")}
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		page.Page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("size")); err == nil {
		page.Size = v
	}
	return page
}

func parseSearchFilter(c echo.Context) (ports.ArticleFilter, error) {
	filter := ports.ArticleFilter{
		Keyword:        c.QueryParam("keyword"),
		AuthorUsername: c.QueryParam("author"),
		Tags:           c.QueryParams()["tags"],
	}

	if v := c.QueryParam("published"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "published must be a boolean")
		}
		filter.Published = &b
	}
	if v := c.QueryParam("has_cover_image"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "has_cover_image must be a boolean")
		}
		filter.HasCoverImage = &b
	}
	if v := c.QueryParam("created_after"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "created_after must be RFC 3339")
		}
		filter.CreatedAfter = &t
	}
	if v := c.QueryParam("created_before"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "created_before must be RFC 3339")
		}
		filter.CreatedBefore = &t
	}

	return filter, nil
}
