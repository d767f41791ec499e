package ports

// PageRequest carries 0-based pagination plus the sort field requested by the
// caller. Services normalize it (size cap, sort whitelist) before it reaches
// a repository.
type PageRequest struct {
	Page   int
	Size   int
	SortBy string
}
