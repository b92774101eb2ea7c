package auth

import (
	"testing"
	"time"

	"github.com/jessupi/jessbook/internal/models"
)

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("super-secret")

	tok, err := m.GenerateSession(42, models.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateSession error: %v", err)
	}

	claims, err := m.VerifySession(tok)
	if err != nil {
		t.Fatalf("VerifySession error: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("userID mismatch: got %d want 42", claims.UserID)
	}
	if claims.Role != models.RoleAdmin {
		t.Fatalf("role mismatch: got %q want %q", claims.Role, models.RoleAdmin)
	}
}

func TestSessionExpired(t *testing.T) {
	t.Parallel()

	m := NewJWTManagerWithTTL("secret", -time.Second, time.Hour)

	tok, err := m.GenerateSession(1, models.RoleUser)
	if err != nil {
		t.Fatalf("GenerateSession error: %v", err)
	}

	if _, err := m.VerifySession(tok); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestSessionWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewJWTManager("right-secret").GenerateSession(2, models.RoleUser)
	if err != nil {
		t.Fatalf("GenerateSession error: %v", err)
	}

	if _, err := NewJWTManager("wrong-secret").VerifySession(tok); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestResetRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("super-secret")

	tok, err := m.GenerateReset(7)
	if err != nil {
		t.Fatalf("GenerateReset error: %v", err)
	}

	userID, err := m.VerifyReset(tok)
	if err != nil {
		t.Fatalf("VerifyReset error: %v", err)
	}
	if userID != 7 {
		t.Fatalf("userID mismatch: got %d want 7", userID)
	}
}

func TestResetExpired(t *testing.T) {
	t.Parallel()

	m := NewJWTManagerWithTTL("secret", time.Hour, -time.Second)

	tok, err := m.GenerateReset(7)
	if err != nil {
		t.Fatalf("GenerateReset error: %v", err)
	}

	if _, err := m.VerifyReset(tok); err == nil {
		t.Fatalf("expected error for expired reset token, got nil")
	}
}

// Токены двух классов не взаимозаменяемы: сессионный не проходит
// проверку восстановления и наоборот.
func TestCrossClassRejection(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("super-secret")

	session, err := m.GenerateSession(3, models.RoleUser)
	if err != nil {
		t.Fatalf("GenerateSession error: %v", err)
	}
	if _, err := m.VerifyReset(session); err == nil {
		t.Fatalf("session token passed reset verification")
	}

	reset, err := m.GenerateReset(3)
	if err != nil {
		t.Fatalf("GenerateReset error: %v", err)
	}
	if _, err := m.VerifySession(reset); err == nil {
		t.Fatalf("reset token passed session verification")
	}
}

func TestMalformedToken(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("k")

	if _, err := m.VerifySession("not.a.jwt"); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
	if _, err := m.VerifyReset(""); err == nil {
		t.Fatalf("expected error for empty token, got nil")
	}
}
