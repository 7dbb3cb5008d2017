package utils

import (
	"testing"
	"time"
)

func init() {
	SetJWTSecret("jwt-test-secret")
}

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(1, "alice", "USER", 24)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken() returned empty token")
	}
	if len(token) < 50 {
		t.Errorf("token seems too short: %d chars", len(token))
	}
}

func TestGenerateToken_DistinctPerUser(t *testing.T) {
	token1, _ := GenerateToken(1, "alice", "ADMIN", 24)
	token2, _ := GenerateToken(2, "bob", "USER", 24)

	if token1 == token2 {
		t.Error("different users should produce different tokens")
	}
}

func TestParseToken_RoundTrip(t *testing.T) {
	tests := []struct {
		userID   uint
		username string
		role     string
	}{
		{1, "alice", "USER"},
		{2, "mod", "MODERATOR"},
		{99, "root", "ADMIN"},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			token, err := GenerateToken(tt.userID, tt.username, tt.role, 24)
			if err != nil {
				t.Fatalf("GenerateToken() error = %v", err)
			}

			claims, err := ParseToken(token)
			if err != nil {
				t.Fatalf("ParseToken() error = %v", err)
			}
			if claims.UserID != tt.userID {
				t.Errorf("UserID = %d, expected %d", claims.UserID, tt.userID)
			}
			if claims.Username != tt.username {
				t.Errorf("Username = %q, expected %q", claims.Username, tt.username)
			}
			if claims.Role != tt.role {
				t.Errorf("Role = %q, expected %q", claims.Role, tt.role)
			}
		})
	}
}

func TestParseToken_Issuer(t *testing.T) {
	token, _ := GenerateToken(1, "alice", "USER", 24)
	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.Issuer != "notevault" {
		t.Errorf("Issuer = %q, expected %q", claims.Issuer, "notevault")
	}
}

func TestParseToken_Malformed(t *testing.T) {
	for _, token := range []string{
		"",
		"garbage",
		"not.a.token",
		"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.tampered.signature",
	} {
		if _, err := ParseToken(token); err == nil {
			t.Errorf("ParseToken(%q) should return error", token)
		}
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	SetJWTSecret("secret-one")
	token, _ := GenerateToken(1, "alice", "USER", 24)

	SetJWTSecret("secret-two")
	_, err := ParseToken(token)

	SetJWTSecret("jwt-test-secret")

	if err == nil {
		t.Error("ParseToken should fail after the secret changes")
	}
}

func TestGenerateToken_Expiration(t *testing.T) {
	token, _ := GenerateToken(1, "alice", "USER", 2)
	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}

	expiresAt := claims.ExpiresAt.Time
	now := time.Now()
	if expiresAt.Before(now) {
		t.Fatal("fresh token must not be expired")
	}

	diff := expiresAt.Sub(now.Add(2 * time.Hour))
	if diff < -time.Minute || diff > time.Minute {
		t.Errorf("expiration off by more than a minute: %v", diff)
	}
}

func TestGenerateToken_DefaultExpiry(t *testing.T) {
	// Non-positive expireHour falls back to 24h.
	token, _ := GenerateToken(1, "alice", "USER", 0)
	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}

	diff := claims.ExpiresAt.Time.Sub(time.Now().Add(24 * time.Hour))
	if diff < -time.Minute || diff > time.Minute {
		t.Errorf("default expiry should be 24h, off by %v", diff)
	}
}
