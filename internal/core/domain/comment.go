package domain

import (
	"errors"
	"time"
)

var ErrCommentNotFound = errors.New("comment not found")

// Comment belongs to exactly one article. The author is denormalized the same
// way as on Article.
type Comment struct {
	ID             string    `json:"id"`
	ArticleID      string    `json:"article_id"`
	Content        string    `json:"content"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
