package service

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)

	signed, err := tokens.Generate(42)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := tokens.Validate(signed)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("user id = %d, want 42", claims.UserID)
	}
	if claims.ID == "" {
		t.Fatal("expected a jti on issued tokens")
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		t.Fatal("expected a future expiry")
	}
}

func TestTokenUniqueIDs(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Hour)

	first, err := tokens.Generate(1)
	if err != nil {
		t.Fatal(err)
	}
	second, err := tokens.Generate(1)
	if err != nil {
		t.Fatal(err)
	}

	a, _ := tokens.Validate(first)
	b, _ := tokens.Validate(second)
	if a.ID == b.ID {
		t.Fatal("two tokens for the same user must carry distinct jtis")
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	issued, err := NewTokenService("secret-a", time.Hour).Generate(7)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewTokenService("secret-b", time.Hour).Validate(issued); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestTokenRejectsExpired(t *testing.T) {
	tokens := NewTokenService("test-secret", time.Nanosecond)
	signed, err := tokens.Generate(7)
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := tokens.Validate(signed); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestGenerateRequiresUserID(t *testing.T) {
	if _, err := NewTokenService("test-secret", time.Hour).Generate(0); err == nil {
		t.Fatal("expected error for zero user id")
	}
}
