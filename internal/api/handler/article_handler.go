package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/FatimaZahraMH/blog-backend/internal/api/metrics"
	"github.com/FatimaZahraMH/blog-backend/internal/core/ports"
)

// ArticleHandler handles HTTP requests for article operations.
type ArticleHandler struct {
	service ports.ArticleService
}

func NewArticleHandler(service ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// Create handles POST /api/articles.
//
// @Summary      Create an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      articleRequest  true  "Article details"
// @Success      201   {object}  articleResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	var req articleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}

	article, err := h.service.Create(c.Request().Context(), ports.ArticleInput{
		Title:     req.Title,
		Content:   req.Content,
		Summary:   req.Summary,
		Published: req.Published,
		Tags:      req.Tags,
	}, actor)
	if err != nil {
		return err
	}

	metrics.ArticlesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toArticleResponse(article))
}

// Update handles PUT /api/articles/:id.
//
// @Summary      Update an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Article id"
// @Param        body  body      articleRequest  true  "Article details"
// @Success      200   {object}  articleResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/articles/{id} [put]
func (h *ArticleHandler) Update(c echo.Context) error {
	var req articleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}

	article, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.ArticleInput{
		Title:     req.Title,
		Content:   req.Content,
		Summary:   req.Summary,
		Published: req.Published,
		Tags:      req.Tags,
	}, actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toArticleResponse(article))
}

// Delete handles DELETE /api/articles/:id.
//
// @Summary      Delete an article
// @Tags         articles
// @Security     BearerAuth
// @Param        id  path  string  true  "Article id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/articles/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), actor); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetByID handles GET /api/articles/:id.
//
// @Summary      Get an article by id
// @Tags         articles
// @Produce      json
// @Param        id  path      string  true  "Article id"
// @Success      200  {object}  articleResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/articles/{id} [get]
func (h *ArticleHandler) GetByID(c echo.Context) error {
	article, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleResponse(article))
}

// GetBySlug handles GET /api/articles/slug/:slug.
//
// @Summary      Get an article by slug
// @Tags         articles
// @Produce      json
// @Param        slug  path      string  true  "Article slug"
// @Success      200   {object}  articleResponse
// @Failure      404   {object}  map[string]string
// @Router       /api/articles/slug/{slug} [get]
func (h *ArticleHandler) GetBySlug(c echo.Context) error {
	article, err := h.service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleResponse(article))
}

// ListByAuthor handles GET /api/articles/author/:authorId.
//
// @Summary      List an author's published articles
// @Tags         articles
// @Produce      json
// @Param        authorId  path      string  true   "Author id"
// @Param        page      query     int     false  "Page (0-based)"
// @Param        size      query     int     false  "Page size (max 100)"
// @Success      200       {object}  articlePageResponse
// @Router       /api/articles/author/{authorId} [get]
func (h *ArticleHandler) ListByAuthor(c echo.Context) error {
	page, err := h.service.ListByAuthor(c.Request().Context(), c.Param("authorId"), parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticlePageResponse(page))
}

// Search handles GET /api/articles/search.
//
// @Summary      Search articles
// @Tags         articles
// @Produce      json
// @Param        keyword          query     string  false  "Keyword in title/content/summary"
// @Param        author           query     string  false  "Author username"
// @Param        tags             query     []string  false  "Tag filter (any match)"
// @Param        published        query     bool    false  "Published filter (defaults to published only)"
// @Param        created_after    query     string  false  "RFC 3339 lower bound"
// @Param        created_before   query     string  false  "RFC 3339 upper bound"
// @Param        has_cover_image  query     bool    false  "Only articles with a cover image"
// @Param        page             query     int     false  "Page (0-based)"
// @Param        size             query     int     false  "Page size (max 100)"
// @Param        sort_by          query     string  false  "created_at | updated_at | title"
// @Success      200  {object}  articlePageResponse
// @Router       /api/articles/search [get]
func (h *ArticleHandler) Search(c echo.Context) error {
	filter, err := parseSearchFilter(c)
	if err != nil {
		return err
	}
	page, err := h.service.Search(c.Request().Context(), filter, parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticlePageResponse(page))
}

// UploadCoverImage handles POST /api/articles/:id/cover-image.
//
// @Summary      Upload a cover image
// @Description  Formats: JPEG, PNG, GIF, WEBP — max 5 MB
// @Tags         articles
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true  "Article id"
// @Param        image  formData  file    true  "Image file"
// @Success      200    {object}  articleResponse
// @Failure      400    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /api/articles/{id}/cover-image [post]
func (h *ArticleHandler) UploadCoverImage(c echo.Context) error {
	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is not readable")
	}
	defer file.Close()

	article, err := h.service.UploadCoverImage(c.Request().Context(), c.Param("id"), ports.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Content:     file,
	}, actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toArticleResponse(article))
}

// RemoveCoverImage handles DELETE /api/articles/:id/cover-image.
//
// @Summary      Remove the cover image
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Article id"
// @Success      200  {object}  articleResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/articles/{id}/cover-image [delete]
func (h *ArticleHandler) RemoveCoverImage(c echo.Context) error {
	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}
	article, err := h.service.RemoveCoverImage(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleResponse(article))
}
