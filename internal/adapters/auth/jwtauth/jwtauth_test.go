package jwtauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-adoption-api/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	a := New([]byte("test-secret"), time.Hour)

	token, err := a.Issue("user-1", "maria@example.com", auth.RoleAdopter)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := a.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "maria@example.com" || claims.Role != auth.RoleAdopter {
		t.Fatalf("bad claims: %+v", claims)
	}
}

func TestVerify_RejectsExpired(t *testing.T) {
	a := New([]byte("test-secret"), time.Hour)

	issuedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return issuedAt }

	token, err := a.Issue("user-1", "x@example.com", auth.RoleOng)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	a.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	if _, err := a.Verify(context.Background(), token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for expired token, got %v", err)
	}
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	issuer := New([]byte("secret-a"), time.Hour)
	verifier := New([]byte("secret-b"), time.Hour)

	token, err := issuer.Issue("user-1", "x@example.com", auth.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := verifier.Verify(context.Background(), token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong secret, got %v", err)
	}
}

func TestVerify_RejectsEmptyAndGarbage(t *testing.T) {
	a := New([]byte("test-secret"), time.Hour)

	if _, err := a.Verify(context.Background(), "  "); !errors.Is(err, ErrTokenEmpty) {
		t.Fatalf("expected ErrTokenEmpty, got %v", err)
	}
	if _, err := a.Verify(context.Background(), "not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_RejectsUnknownRole(t *testing.T) {
	a := New([]byte("test-secret"), time.Hour)

	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "user-1",
		"email": "x@example.com",
		"type":  "alien",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := a.Verify(context.Background(), signed); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for unknown role, got %v", err)
	}
}
