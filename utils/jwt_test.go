package utils

import (
	"testing"

	"medibook/config"
)

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("user-123", "user@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	id, err := ExtractIDFromToken(token)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if id != "user-123" {
		t.Errorf("subject = %q, want user-123", id)
	}
}

func TestExtractIDFromTokenInvalid(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	if _, err := ExtractIDFromToken("not-a-token"); err == nil {
		t.Error("malformed token accepted")
	}

	// Token signed with a different secret must be rejected.
	config.AppConfig.JWTSecret = "other-secret"
	token, err := GenerateToken("user-123", "user@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	config.AppConfig.JWTSecret = "test-secret"
	if _, err := ExtractIDFromToken(token); err == nil {
		t.Error("token with wrong signature accepted")
	}
}

func TestHashTokenStable(t *testing.T) {
	a := HashToken("token-a")
	if a != HashToken("token-a") {
		t.Error("hash not deterministic")
	}
	if a == HashToken("token-b") {
		t.Error("distinct tokens collide")
	}
}
