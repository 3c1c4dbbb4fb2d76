package utils

import (
	"testing"
	"time"
)

func TestNewManagerRejectsEmptyKey(t *testing.T) {
	if _, err := NewManager(""); err == nil {
		t.Fatal("expected error for empty signing key")
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m, err := NewManager("test-signing-key")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	token, err := m.NewAccessToken(42, "admin", time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	claims, err := m.ParseClaims(token)
	if err != nil {
		t.Fatalf("ParseClaims: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("expected role admin, got %s", claims.Role)
	}
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	m, err := NewManager("test-signing-key")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	token, err := m.NewAccessToken(1, "user", -time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := m.ParseClaims(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseClaimsWrongKey(t *testing.T) {
	m, _ := NewManager("key-one")
	other, _ := NewManager("key-two")

	token, err := m.NewAccessToken(7, "user", time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := other.ParseClaims(token); err == nil {
		t.Fatal("expected token signed with another key to be rejected")
	}
}

func TestNewRefreshTokenUnique(t *testing.T) {
	m, _ := NewManager("test-signing-key")
	a, err := m.NewRefreshToken()
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	b, err := m.NewRefreshToken()
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if a == b {
		t.Fatal("refresh tokens must not repeat")
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
}
