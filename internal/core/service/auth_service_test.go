package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/FatimaZahraMH/blog-backend/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byUsername map[string]*domain.User
	byEmail    map[string]*domain.User
	nextID     int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byUsername: make(map[string]*domain.User),
		byEmail:    make(map[string]*domain.User),
	}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.nextID++
	clone := *user
	clone.ID = string(rune('a' + r.nextID))
	r.byUsername[clone.Username] = &clone
	r.byEmail[clone.Email] = &clone
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := r.byUsername[username]
	return ok, nil
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *stubUserRepo) add(u *domain.User) {
	r.byUsername[u.Username] = u
	r.byEmail[u.Email] = u
}

func newAuthService(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, NewTokenService("secret", time.Hour), zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	res, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if res.User.Username != "alice" {
		t.Fatalf("unexpected username %q", res.User.Username)
	}
	if res.User.Role != domain.RoleUser {
		t.Fatalf("expected role USER, got %q", res.User.Role)
	}
	if !res.User.Enabled {
		t.Fatalf("expected new account to be enabled")
	}
	if res.AccessToken == "" {
		t.Fatalf("expected a token on registration")
	}
	if res.ExpiresIn != 3600 {
		t.Fatalf("expected expiresIn 3600, got %d", res.ExpiresIn)
	}

	stored := repo.byUsername["alice"]
	if stored.PasswordHash == "s3cret-pass" {
		t.Fatalf("password stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")) != nil {
		t.Fatalf("stored hash does not verify against the password")
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(&domain.User{Username: "alice", Email: "alice@example.com"})
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), "alice", "other@example.com", "s3cret-pass")
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(&domain.User{Username: "alice", Email: "alice@example.com"})
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), "bob", "alice@example.com", "s3cret-pass")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

// Username conflict wins when both username and email are taken.
func TestAuthService_Register_UsernameCheckedFirst(t *testing.T) {
	repo := newStubUserRepo()
	repo.add(&domain.User{Username: "alice", Email: "alice@example.com"})
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "s3cret-pass")
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func seedUser(t *testing.T, repo *stubUserRepo, password string, enabled bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &domain.User{
		ID:           "u1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Enabled:      enabled,
	}
	repo.add(u)
	return u
}

func TestAuthService_Login_ByUsername(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "s3cret-pass", true)
	svc := newAuthService(repo)

	res, err := svc.Login(context.Background(), "alice", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.AccessToken == "" {
		t.Fatalf("expected a token")
	}
	if res.User.Username != "alice" {
		t.Fatalf("unexpected user %q", res.User.Username)
	}
}

func TestAuthService_Login_ByEmail(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "s3cret-pass", true)
	svc := newAuthService(repo)

	res, err := svc.Login(context.Background(), "alice@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login by email: %v", err)
	}
	if res.User.Username != "alice" {
		t.Fatalf("unexpected user %q", res.User.Username)
	}
}

// A wrong password and an unknown identifier must be indistinguishable.
func TestAuthService_Login_UniformFailure(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "s3cret-pass", true)
	svc := newAuthService(repo)

	_, wrongPass := svc.Login(context.Background(), "alice", "wrong")
	_, unknown := svc.Login(context.Background(), "nobody", "whatever")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", unknown)
	}
	if wrongPass.Error() != unknown.Error() {
		t.Fatalf("failure modes are distinguishable: %q vs %q", wrongPass, unknown)
	}
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "s3cret-pass", false)
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), "alice", "s3cret-pass")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	if _, err := svc.Login(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("empty identifier: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "alice", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("empty password: expected ErrInvalidCredentials, got %v", err)
	}
}
