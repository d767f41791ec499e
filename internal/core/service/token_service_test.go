package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FatimaZahraMH/blog-backend/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       "64f1c0ffee000000000001",
		Username: "alice",
		Email:    "alice@example.com",
		Role:     domain.RoleAuthor,
		Enabled:  true,
	}
}

func TestTokenService_IssueVerify_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, expiresIn, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if expiresIn != 3600 {
		t.Fatalf("expected expiresIn 3600, got %d", expiresIn)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("expected subject alice, got %q", claims.Subject)
	}
	if claims.UserID != "64f1c0ffee000000000001" {
		t.Fatalf("unexpected user id %q", claims.UserID)
	}
	if claims.Role != domain.RoleAuthor {
		t.Fatalf("unexpected role %q", claims.Role)
	}
	if !claims.ExpiresAt.After(claims.IssuedAt) {
		t.Fatalf("expiry %v not after issue time %v", claims.ExpiresAt, claims.IssuedAt)
	}
}

func TestTokenService_Verify_Expired(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	// Sign an already-expired token with the same secret.
	past := time.Now().UTC().Add(-2 * time.Hour)
	expired := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
		},
		UserID: "u1",
		Role:   string(domain.RoleUser),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_Verify_Tampered(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, _, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Flip a byte in the signature.
	tampered := []byte(token)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	if _, err := svc.Verify(string(tampered)); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, _, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_Verify_Garbage(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}

// Expiry and tampering must be indistinguishable to the caller.
func TestTokenService_Verify_UniformFailure(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	past := time.Now().UTC().Add(-2 * time.Hour)
	expiredClaims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
		},
		UserID: "u1",
		Role:   string(domain.RoleUser),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	_, expiredErr := svc.Verify(expired)
	_, garbageErr := svc.Verify("garbage")

	if !errors.Is(expiredErr, domain.ErrInvalidToken) || !errors.Is(garbageErr, domain.ErrInvalidToken) {
		t.Fatalf("expected both failures to be ErrInvalidToken, got %v and %v", expiredErr, garbageErr)
	}
	if expiredErr.Error() != garbageErr.Error() {
		t.Fatalf("failure modes are distinguishable: %q vs %q", expiredErr, garbageErr)
	}
}

func TestTokenService_Verify_UnsignedAlgorithmRejected(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "u1",
		Role:   string(domain.RoleUser),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Verify(unsigned); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
