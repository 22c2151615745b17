package simulator

import (
	"testing"
	"time"
)

func TestIssueAndVerifyToken(t *testing.T) {
	secret := []byte("test-secret")

	token, err := IssueToken(secret, "analyst", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("IssueToken() returned empty token")
	}

	claims, err := VerifyToken(secret, token)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if claims.Username != "analyst" {
		t.Errorf("Username = %q, want %q", claims.Username, "analyst")
	}
	if claims.Subject != "analyst" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "analyst")
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	secret := []byte("test-secret")

	token, err := IssueToken(secret, "analyst", -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	if _, err := VerifyToken(secret, token); err == nil {
		t.Error("VerifyToken() expected error for expired token")
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := IssueToken([]byte("secret-one"), "analyst", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	if _, err := VerifyToken([]byte("secret-two"), token); err == nil {
		t.Error("VerifyToken() expected error for wrong secret")
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	if _, err := VerifyToken([]byte("test-secret"), "not-a-jwt"); err == nil {
		t.Error("VerifyToken() expected error for malformed token")
	}
}

func TestIssueTokenEmptySecret(t *testing.T) {
	if _, err := IssueToken(nil, "analyst", time.Hour); err == nil {
		t.Error("IssueToken() expected error for empty secret")
	}
}
