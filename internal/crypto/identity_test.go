package crypto

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

func TestResolve_DecodeOnly(t *testing.T) {
	resolver := NewIdentityResolver("user_id", "")
	token := signToken(t, "any-key", jwt.MapClaims{"user_id": "u1"})

	ownerID, err := resolver.Resolve("Bearer " + token)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if ownerID != "u1" {
		t.Errorf("expected owner id %q, got %q", "u1", ownerID)
	}
}

func TestResolve_WithoutSchemePrefix(t *testing.T) {
	resolver := NewIdentityResolver("user_id", "")
	token := signToken(t, "any-key", jwt.MapClaims{"user_id": "u1"})

	ownerID, err := resolver.Resolve(token)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if ownerID != "u1" {
		t.Errorf("expected owner id %q, got %q", "u1", ownerID)
	}
}

func TestResolve_MissingClaim(t *testing.T) {
	resolver := NewIdentityResolver("user_id", "")
	token := signToken(t, "any-key", jwt.MapClaims{"sub": "u1"})

	_, err := resolver.Resolve("Bearer " + token)
	if !errors.Is(err, ErrMissingClaim) {
		t.Errorf("expected ErrMissingClaim, got %v", err)
	}
}

func TestResolve_EmptyClaim(t *testing.T) {
	resolver := NewIdentityResolver("user_id", "")
	token := signToken(t, "any-key", jwt.MapClaims{"user_id": ""})

	_, err := resolver.Resolve("Bearer " + token)
	if !errors.Is(err, ErrMissingClaim) {
		t.Errorf("expected ErrMissingClaim, got %v", err)
	}
}

func TestResolve_Garbage(t *testing.T) {
	resolver := NewIdentityResolver("user_id", "")

	for _, credential := range []string{"", "Bearer ", "Bearer not-a-jwt", "a.b"} {
		if _, err := resolver.Resolve(credential); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("credential %q: expected ErrInvalidToken, got %v", credential, err)
		}
	}
}

func TestResolve_VerifiedMode(t *testing.T) {
	resolver := NewIdentityResolver("user_id", "the-secret")
	token := signToken(t, "the-secret", jwt.MapClaims{
		"user_id": "u1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	ownerID, err := resolver.Resolve("Bearer " + token)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if ownerID != "u1" {
		t.Errorf("expected owner id %q, got %q", "u1", ownerID)
	}
}

func TestResolve_VerifiedModeRejectsBadSignature(t *testing.T) {
	resolver := NewIdentityResolver("user_id", "the-secret")
	token := signToken(t, "wrong-secret", jwt.MapClaims{"user_id": "u1"})

	_, err := resolver.Resolve("Bearer " + token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestResolve_VerifiedModeRejectsExpired(t *testing.T) {
	resolver := NewIdentityResolver("user_id", "the-secret")
	token := signToken(t, "the-secret", jwt.MapClaims{
		"user_id": "u1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	_, err := resolver.Resolve("Bearer " + token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestResolve_ConfigurableClaim(t *testing.T) {
	resolver := NewIdentityResolver("sub", "")
	token := signToken(t, "any-key", jwt.MapClaims{"sub": "owner-42"})

	ownerID, err := resolver.Resolve("Bearer " + token)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if ownerID != "owner-42" {
		t.Errorf("expected owner id %q, got %q", "owner-42", ownerID)
	}
}
