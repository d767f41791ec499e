package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/FatimaZahraMH/blog-backend/internal/api/metrics"
	"github.com/FatimaZahraMH/blog-backend/internal/core/domain"
	"github.com/FatimaZahraMH/blog-backend/internal/core/ports"
)

// CommentHandler handles HTTP requests for comment operations.
type CommentHandler struct {
	service ports.CommentService
}

func NewCommentHandler(service ports.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

type commentRequest struct {
	Content string `json:"content" validate:"required,min=2,max=2000"`
}

type commentResponse struct {
	ID        string        `json:"id"`
	ArticleID string        `json:"article_id"`
	Content   string        `json:"content"`
	Author    authorSummary `json:"author"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
}

type commentPageResponse struct {
	Content       []commentResponse `json:"content"`
	Page          int               `json:"page"`
	Size          int               `json:"size"`
	TotalElements int64             `json:"total_elements"`
	TotalPages    int               `json:"total_pages"`
	First         bool              `json:"first"`
	Last          bool              `json:"last"`
}

// ListByArticle handles GET /api/articles/:id/comments.
//
// @Summary      List comments on an article
// @Tags         comments
// @Produce      json
// @Param        id    path      string  true   "Article id"
// @Param        page  query     int     false  "Page (0-based)"
// @Param        size  query     int     false  "Page size (max 100)"
// @Success      200   {object}  commentPageResponse
// @Failure      404   {object}  map[string]string
// @Router       /api/articles/{id}/comments [get]
func (h *CommentHandler) ListByArticle(c echo.Context) error {
	page, err := h.service.ListByArticle(c.Request().Context(), c.Param("id"), parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCommentPageResponse(page))
}

// Add handles POST /api/articles/:id/comments.
//
// @Summary      Add a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Article id"
// @Param        body  body      commentRequest  true  "Comment content"
// @Success      201   {object}  commentResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/articles/{id}/comments [post]
func (h *CommentHandler) Add(c echo.Context) error {
	var req commentRequest
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

	comment, err := h.service.Add(c.Request().Context(), c.Param("id"), req.Content, actor)
	if err != nil {
		return err
	}

	metrics.CommentsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toCommentResponse(comment))
}

// Update handles PUT /api/comments/:id.
//
// @Summary      Update a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Comment id"
// @Param        body  body      commentRequest  true  "Comment content"
// @Success      200   {object}  commentResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/comments/{id} [put]
func (h *CommentHandler) Update(c echo.Context) error {
	var req commentRequest
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

	comment, err := h.service.Update(c.Request().Context(), c.Param("id"), req.Content, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCommentResponse(comment))
}

// Delete handles DELETE /api/comments/:id.
//
// @Summary      Delete a comment
// @Tags         comments
// @Security     BearerAuth
// @Param        id  path  string  true  "Comment id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), actor); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toCommentResponse(comment *domain.Comment) commentResponse {
	return commentResponse{
		ID:        comment.ID,
		ArticleID: comment.ArticleID,
		Content:   comment.Content,
		Author: authorSummary{
			ID:       comment.AuthorID,
			Username: comment.AuthorUsername,
		},
		CreatedAt: comment.CreatedAt.Format(time.RFC3339),
		UpdatedAt: comment.UpdatedAt.Format(time.RFC3339),
	}
}

func toCommentPageResponse(page *ports.CommentPage) commentPageResponse {
	items := make([]commentResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, toCommentResponse(&page.Items[i]))
	}
	return commentPageResponse{
		Content:       items,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		First:         page.Page == 0,
		Last:          page.TotalPages == 0 || page.Page >= page.TotalPages-1,
	}
}
