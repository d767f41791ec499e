package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/FatimaZahraMH/blog-backend/internal/core/domain"
	"github.com/FatimaZahraMH/blog-backend/internal/core/ports"
)

// AuthService implements registration and login against the user store.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Register creates a new account with role USER and logs it in immediately.
// Username and email uniqueness are checked independently, in that order, so
// the caller learns which one conflicts.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*ports.AuthResult, error) {
	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	taken, err = s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	token, expiresIn, err := s.tokens.Issue(created)
	if err != nil {
		return nil, fmt.Errorf("register: issue token: %w", err)
	}

	s.logger.Info().Str("username", created.Username).Msg("user registered")

	return &ports.AuthResult{User: created, AccessToken: token, ExpiresIn: expiresIn}, nil
}

// Login resolves the identifier as a username first, then as an email, and
// verifies the password. An unknown identifier, a disabled account and a
// wrong password all return the same ErrInvalidCredentials so the endpoint
// cannot be used to enumerate usernames. No token work happens on failure.
func (s *AuthService) Login(ctx context.Context, usernameOrEmail, password string) (*ports.AuthResult, error) {
	if usernameOrEmail == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, usernameOrEmail)
	if errors.Is(err, domain.ErrUserNotFound) {
		user, err = s.users.FindByEmail(ctx, usernameOrEmail)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !user.Enabled {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresIn, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.logger.Info().Str("username", user.Username).Msg("user logged in")

	return &ports.AuthResult{User: user, AccessToken: token, ExpiresIn: expiresIn}, nil
}
