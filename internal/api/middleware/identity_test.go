package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/FatimaZahraMH/blog-backend/internal/core/domain"
	"github.com/FatimaZahraMH/blog-backend/internal/core/service"
)

type stubUserStore struct {
	users map[string]*domain.User
	calls int
}

func (s *stubUserStore) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	s.calls++
	u, ok := s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *stubUserStore) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func (s *stubUserStore) FindByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserStore) ExistsByUsername(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (s *stubUserStore) ExistsByEmail(_ context.Context, _ string) (bool, error) {
	return false, nil
}

// countingTokenService wraps the real codec to observe verification calls.
type countingTokenService struct {
	inner   *service.TokenService
	verifys int
}

func (s *countingTokenService) Issue(u *domain.User) (string, int64, error) {
	return s.inner.Issue(u)
}

func (s *countingTokenService) Verify(token string) (*domain.TokenClaims, error) {
	s.verifys++
	return s.inner.Verify(token)
}

type identityFixture struct {
	tokens *countingTokenService
	users  *stubUserStore
	mw     echo.MiddlewareFunc
}

func newIdentityFixture() *identityFixture {
	f := &identityFixture{
		tokens: &countingTokenService{inner: service.NewTokenService("secret", time.Hour)},
		users: &stubUserStore{users: map[string]*domain.User{
			"alice": {ID: "u1", Username: "alice", Role: domain.RoleAuthor, Enabled: true},
			"mel":   {ID: "u2", Username: "mel", Role: domain.RoleUser, Enabled: false},
		}},
	}
	f.mw = Identity(f.tokens, f.users, DefaultPolicy())
	return f
}

func (f *identityFixture) run(t *testing.T, method, path, authHeader string) domain.Identity {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var resolved domain.Identity
	handler := f.mw(func(c echo.Context) error {
		resolved = CurrentIdentity(c)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("resolver rejected the request with %d", rec.Code)
	}
	return resolved
}

func (f *identityFixture) signFor(t *testing.T, username string) string {
	t.Helper()
	u, ok := f.users.users[username]
	if !ok {
		u = &domain.User{ID: "ghost", Username: username, Role: domain.RoleUser}
	}
	token, _, err := f.tokens.Issue(u)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func TestIdentity_ValidToken(t *testing.T) {
	f := newIdentityFixture()
	token := f.signFor(t, "alice")

	id := f.run(t, http.MethodPost, "/api/articles", "Bearer "+token)
	if id.IsZero() {
		t.Fatalf("identity not resolved")
	}
	if id.UserID != "u1" || id.Username != "alice" || id.Role != domain.RoleAuthor {
		t.Fatalf("unexpected identity %+v", id)
	}
}

// A bad token never causes rejection here; the request continues without an
// identity and the policy decides later.
func TestIdentity_InvalidTokenContinuesUnauthenticated(t *testing.T) {
	f := newIdentityFixture()

	for _, header := range []string{
		"",
		"Bearer garbage",
		"Bearer ",
		"Basic dXNlcjpwYXNz",
		"NotBearer " + f.signFor(t, "alice"),
	} {
		id := f.run(t, http.MethodPost, "/api/articles", header)
		if !id.IsZero() {
			t.Fatalf("header %q: expected unauthenticated, got %+v", header, id)
		}
	}
}

// Tokens for deleted or disabled accounts stop resolving even while they are
// still cryptographically valid.
func TestIdentity_DisabledUserNotResolved(t *testing.T) {
	f := newIdentityFixture()
	token := f.signFor(t, "mel")

	id := f.run(t, http.MethodPost, "/api/articles", "Bearer "+token)
	if !id.IsZero() {
		t.Fatalf("disabled account resolved: %+v", id)
	}
}

func TestIdentity_DeletedUserNotResolved(t *testing.T) {
	f := newIdentityFixture()
	token := f.signFor(t, "ghost")

	id := f.run(t, http.MethodPost, "/api/articles", "Bearer "+token)
	if !id.IsZero() {
		t.Fatalf("unknown subject resolved: %+v", id)
	}
}

// Public routes skip token verification and the store lookup entirely.
func TestIdentity_PublicRouteSkipsResolution(t *testing.T) {
	f := newIdentityFixture()
	token := f.signFor(t, "alice")

	id := f.run(t, http.MethodGet, "/api/articles/abc", "Bearer "+token)
	if !id.IsZero() {
		t.Fatalf("public route resolved an identity: %+v", id)
	}
	if f.tokens.verifys != 0 {
		t.Fatalf("codec invoked %d times on a public route", f.tokens.verifys)
	}
	if f.users.calls != 0 {
		t.Fatalf("user store hit %d times on a public route", f.users.calls)
	}
}

// Each protected request re-reads the subject from the store.
func TestIdentity_PerRequestStoreLookup(t *testing.T) {
	f := newIdentityFixture()
	token := f.signFor(t, "alice")

	f.run(t, http.MethodPost, "/api/articles", "Bearer "+token)
	f.run(t, http.MethodPost, "/api/articles", "Bearer "+token)

	if f.users.calls != 2 {
		t.Fatalf("expected 2 store lookups, got %d", f.users.calls)
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"BEARER abc", "abc", true},
		{"Bearer  abc", "abc", true},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		token, ok := bearerToken(tc.header)
		if token != tc.token || ok != tc.ok {
			t.Fatalf("bearerToken(%q) = (%q, %v), want (%q, %v)", tc.header, token, ok, tc.token, tc.ok)
		}
	}
}
