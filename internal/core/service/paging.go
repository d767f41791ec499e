package service

import "github.com/FatimaZahraMH/blog-backend/internal/core/ports"

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// sortFields whitelists caller-supplied sort keys and maps them to the
// persisted field names.
var sortFields = map[string]string{
	"":           "created_at",
	"created_at": "created_at",
	"updated_at": "updated_at",
	"title":      "title",
}

func normalizePage(p ports.PageRequest) ports.PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = defaultPageSize
	}
	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}
	if field, ok := sortFields[p.SortBy]; ok {
		p.SortBy = field
	} else {
		p.SortBy = "created_at"
	}
	return p
}

func totalPages(total int64, size int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
