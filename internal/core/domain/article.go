package domain

import (
	"errors"
	"time"
)

var ErrArticleNotFound = errors.New("article not found")
var ErrInvalidImage = errors.New("invalid image upload")

// Article is the main content aggregate. Tags are stored inline as plain
// names; the author is denormalized (id + username) so that listings and
// search never need a second lookup.
type Article struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Content        string    `json:"content"`
	Summary        string    `json:"summary"`
	Published      bool      `json:"published"`
	CoverImageURL  string    `json:"cover_image_url,omitempty"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Tags           []string  `json:"tags"`
	CommentCount   int64     `json:"comment_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
