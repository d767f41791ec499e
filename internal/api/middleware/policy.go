package middleware

import (
	"net/http"
	"strings"

	"github.com/FatimaZahraMH/blog-backend/internal/core/domain"
)

// Access classifies what a route rule demands from the caller.
type Access int

const (
	AccessPublic Access = iota
	AccessAuthenticated
	AccessRoles
)

// Rule binds an HTTP method ("*" for any) and a path pattern to an access
// demand. In patterns, a "*" segment matches exactly one path segment; a
// trailing "*" matches any remainder, including none.
type Rule struct {
	Method  string
	Pattern string
	Access  Access
	Roles   []domain.Role
}

// Policy is the ordered route-tier rule table, loaded once at startup and
// read-only afterwards. Evaluation is first match wins, so rules with a more
// specific suffix (e.g. /:id/cover-image) must be declared before broader
// wildcards on the same prefix. A request matching no rule requires an
// authenticated caller of any role.
type Policy struct {
	rules []Rule
}

func NewPolicy(rules ...Rule) *Policy {
	return &Policy{rules: rules}
}

// DefaultPolicy returns the route table for the blog API.
func DefaultPolicy() *Policy {
	authorOrAdmin := []domain.Role{domain.RoleAuthor, domain.RoleAdmin}

	return NewPolicy(
		Rule{Method: "*", Pattern: "/api/auth/*", Access: AccessPublic},
		Rule{Method: "*", Pattern: "/swagger/*", Access: AccessPublic},
		Rule{Method: "*", Pattern: "/metrics", Access: AccessPublic},
		Rule{Method: "*", Pattern: "/health/*", Access: AccessPublic},
		Rule{Method: "*", Pattern: "/images/*", Access: AccessPublic},

		Rule{Method: http.MethodGet, Pattern: "/api/articles/*", Access: AccessPublic},
		Rule{Method: http.MethodGet, Pattern: "/api/comments/*", Access: AccessPublic},

		Rule{Method: http.MethodPost, Pattern: "/api/articles/*/comments", Access: AccessAuthenticated},
		Rule{Method: http.MethodPut, Pattern: "/api/comments/*", Access: AccessAuthenticated},
		Rule{Method: http.MethodDelete, Pattern: "/api/comments/*", Access: AccessAuthenticated},

		// cover-image rules precede the broader /api/articles/* wildcards.
		Rule{Method: http.MethodPost, Pattern: "/api/articles/*/cover-image", Access: AccessRoles, Roles: authorOrAdmin},
		Rule{Method: http.MethodDelete, Pattern: "/api/articles/*/cover-image", Access: AccessRoles, Roles: authorOrAdmin},
		Rule{Method: http.MethodPost, Pattern: "/api/articles", Access: AccessRoles, Roles: authorOrAdmin},
		Rule{Method: http.MethodPut, Pattern: "/api/articles/*", Access: AccessRoles, Roles: authorOrAdmin},
		Rule{Method: http.MethodDelete, Pattern: "/api/articles/*", Access: AccessRoles, Roles: authorOrAdmin},

		Rule{Method: "*", Pattern: "/api/admin/*", Access: AccessRoles, Roles: []domain.Role{domain.RoleAdmin}},
	)
}

// IsPublic reports whether the first matching rule for the request is PUBLIC.
// Public requests skip identity resolution entirely, so they stay reachable
// even with a malformed Authorization header present.
func (p *Policy) IsPublic(method, path string) bool {
	rule, ok := p.match(method, path)
	return ok && rule.Access == AccessPublic
}

// Evaluate applies the route tier to a request. It returns nil when the
// request may proceed, domain.ErrAuthenticationRequired when a protected
// route was reached without an identity, and domain.ErrForbidden when the
// identity lacks a required role.
func (p *Policy) Evaluate(method, path string, id domain.Identity) error {
	rule, ok := p.match(method, path)
	if !ok {
		if id.IsZero() {
			return domain.ErrAuthenticationRequired
		}
		return nil
	}

	switch rule.Access {
	case AccessPublic:
		return nil
	case AccessAuthenticated:
		if id.IsZero() {
			return domain.ErrAuthenticationRequired
		}
		return nil
	default:
		if id.IsZero() {
			return domain.ErrAuthenticationRequired
		}
		for _, role := range rule.Roles {
			if id.Role == role {
				return nil
			}
		}
		return domain.ErrForbidden
	}
}

func (p *Policy) match(method, path string) (Rule, bool) {
	for _, rule := range p.rules {
		if rule.Method != "*" && rule.Method != method {
			continue
		}
		if matchPath(rule.Pattern, path) {
			return rule, true
		}
	}
	return Rule{}, false
}

func matchPath(pattern, path string) bool {
	ps := splitPath(pattern)
	ss := splitPath(path)

	for i, seg := range ps {
		if seg == "*" && i == len(ps)-1 {
			return true
		}
		if i >= len(ss) {
			return false
		}
		if seg != "*" && seg != ss[i] {
			return false
		}
	}
	return len(ss) == len(ps)
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
